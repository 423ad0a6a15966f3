package handlers

import (
	"time"

	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/database"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/dto"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/realm"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	registry *realm.Registry
}

func NewHealthHandler(registry *realm.Registry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:     "ok",
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		DB:         dbStatus,
		RealmCount: len(h.registry.All()),
	})
}
