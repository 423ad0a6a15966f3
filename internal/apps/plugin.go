package apps

import (
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/config"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/events"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/realm"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Deps bundles the shared infrastructure handed to every plugin.
type Deps struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Bus      *events.Bus
	Registry *realm.Registry
}

// Plugin defines the interface every ceremonial app must implement.
type Plugin interface {
	// ID returns the unique app identifier.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts app-specific routes on the given Fiber group.
	// The group is already prefixed with /api and has JWT middleware applied.
	RegisterRoutes(router fiber.Router, deps Deps)
}

// AdminPlugin extends Plugin with admin-specific route registration.
type AdminPlugin interface {
	Plugin

	// RegisterAdminRoutes mounts admin-only routes on the given Fiber group.
	// The group has both JWT and Admin middleware applied.
	RegisterAdminRoutes(router fiber.Router, deps Deps)
}
