package hymnal

import (
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/apps"
	"github.com/gofiber/fiber/v2"
)

// Plugin implements the apps.Plugin interface for the hymn registry.
type Plugin struct{}

// New creates a new hymnal Plugin.
func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) ID() string { return "hymnal" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{
		&Hymn{},
		&HymnPerformance{},
	}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, deps apps.Deps) {
	svc := NewHymnService(deps.DB, deps.Bus)
	handler := NewHymnHandler(svc)

	router.Post("/hymns", handler.ComposeHymn)
	router.Get("/hymns", handler.ListHymns)
	router.Get("/hymns/:id", handler.GetHymn)
	router.Post("/hymns/:id/perform", handler.PerformHymn)
}
