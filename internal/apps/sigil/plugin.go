package sigil

import (
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/apps"
	"github.com/gofiber/fiber/v2"
)

// Plugin implements the apps.Plugin interface for the seal registry.
type Plugin struct{}

// New creates a new sigil Plugin.
func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) ID() string { return "sigil" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{
		&Sigil{},
	}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, deps apps.Deps) {
	svc := NewSigilService(deps.DB, deps.Bus)
	handler := NewSigilHandler(svc)

	router.Post("/sigils", handler.IssueSigil)
	router.Get("/sigils", handler.ListSigils)
	router.Get("/sigils/:serial", handler.GetSigil)
	router.Post("/sigils/:serial/verify", handler.VerifySigil)
}
