package silence

import (
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/apps"
	"github.com/gofiber/fiber/v2"
)

// Plugin implements the apps.Plugin interface for eternal-silence proclamations.
type Plugin struct{}

// New creates a new silence Plugin.
func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) ID() string { return "silence" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{
		&Proclamation{},
	}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, deps apps.Deps) {
	svc := NewSilenceService(deps.DB, deps.Bus)
	handler := NewSilenceHandler(svc)

	router.Post("/proclamations", handler.Proclaim)
	router.Get("/proclamations", handler.ListProclamations)
	router.Get("/proclamations/:id", handler.GetProclamation)
	router.Post("/proclamations/:id/dispatch", handler.Dispatch)
}
