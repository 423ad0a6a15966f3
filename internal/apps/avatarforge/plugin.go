package avatarforge

import (
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/apps"
	"github.com/gofiber/fiber/v2"
)

// Plugin implements the apps.Plugin interface for the avatar forge.
type Plugin struct{}

// New creates a new avatarforge Plugin.
func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) ID() string { return "avatarforge" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{
		&Avatar{},
		&AvatarRelationship{},
		&AvatarCeremony{},
	}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, deps apps.Deps) {
	svc := NewAvatarService(deps.DB, NewForge(), deps.Bus, deps.Registry, deps.Cfg.ExportDir)
	handler := NewAvatarHandler(svc)

	// Static paths before the :name wildcard.
	router.Post("/avatars/query", handler.QueryAvatars)
	router.Get("/avatars/stats", handler.GetStats)
	router.Get("/avatars/export", handler.Export)

	router.Post("/avatars", handler.CreateAvatar)
	router.Get("/avatars", handler.ListAvatars)
	router.Get("/avatars/:name", handler.GetAvatar)
	router.Put("/avatars/:name/rank", handler.UpdateRank)
	router.Post("/avatars/:name/roles", handler.AddRole)
	router.Post("/avatars/:name/relationships", handler.LinkAvatars)
	router.Get("/avatars/:name/relationships", handler.ListRelationships)
	router.Get("/avatars/:name/ceremonies", handler.ListCeremonies)
}
