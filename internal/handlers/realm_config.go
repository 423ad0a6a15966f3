package handlers

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/dto"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/models"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/realm"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RealmConfigHandler serves per-realm configuration: ceremonial defaults a
// client reads once at startup, adjustable by admins without a redeploy.
type RealmConfigHandler struct {
	db       *gorm.DB
	registry *realm.Registry
}

func NewRealmConfigHandler(db *gorm.DB, registry *realm.Registry) *RealmConfigHandler {
	return &RealmConfigHandler{
		db:       db,
		registry: registry,
	}
}

// GetConfig returns realm-specific configuration (public, requires X-Realm-ID header)
func (h *RealmConfigHandler) GetConfig(c *fiber.Ctx) error {
	realmID := c.Get("X-Realm-ID")
	if realmID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "X-Realm-ID header is required",
		})
	}

	if !h.registry.Exists(realmID) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Invalid X-Realm-ID: " + realmID,
		})
	}

	var configs []models.RealmConfig
	if err := h.db.Where("realm_id = ?", realmID).Find(&configs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Failed to fetch configuration",
		})
	}

	return c.JSON(configsToMap(configs))
}

// SetConfigKey sets or updates a config key (admin only)
func (h *RealmConfigHandler) SetConfigKey(c *fiber.Ctx) error {
	realmID := c.Params("realm_id", "")
	if realmID == "" {
		realmID = c.Get("X-Realm-ID", "")
	}

	key := c.Params("key", "")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Key parameter is required",
		})
	}

	var payload struct {
		Value string `json:"value"`
		Type  string `json:"type"` // string, bool, int, json
	}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Invalid request body",
		})
	}

	if payload.Value == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Value is required",
		})
	}

	if payload.Type == "" {
		payload.Type = "string"
	}

	if !h.registry.Exists(realmID) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Invalid realm_id: " + realmID,
		})
	}

	var config models.RealmConfig
	err := h.db.Where("realm_id = ? AND key = ?", realmID, key).First(&config).Error
	if err == gorm.ErrRecordNotFound {
		config = models.RealmConfig{
			ID:        uuid.New(),
			RealmID:   realmID,
			Key:       key,
			Value:     payload.Value,
			Type:      payload.Type,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := h.db.Create(&config).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Failed to create config",
			})
		}
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Failed to query config",
		})
	} else {
		config.Value = payload.Value
		config.Type = payload.Type
		config.UpdatedAt = time.Now()
		if err := h.db.Save(&config).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Failed to update config",
			})
		}
	}

	return c.JSON(fiber.Map{
		"error":   false,
		"message": "Config updated successfully",
		"config": fiber.Map{
			"realm_id": config.RealmID,
			"key":      config.Key,
			"value":    config.Value,
			"type":     config.Type,
		},
	})
}

// DeleteConfigKey deletes a config key (admin only)
func (h *RealmConfigHandler) DeleteConfigKey(c *fiber.Ctx) error {
	realmID := c.Params("realm_id", "")
	if realmID == "" {
		realmID = c.Get("X-Realm-ID", "")
	}

	key := c.Params("key", "")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Key parameter is required",
		})
	}

	result := h.db.Where("realm_id = ? AND key = ?", realmID, key).Delete(&models.RealmConfig{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Failed to delete config",
		})
	}

	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Config not found",
		})
	}

	return c.JSON(fiber.Map{
		"error":   false,
		"message": "Config deleted successfully",
	})
}

// SeedDefaults creates default configuration for all realms.
func (h *RealmConfigHandler) SeedDefaults(realmNames map[string]string) error {
	for realmID, realmName := range realmNames {
		defaults := []models.RealmConfig{
			{Key: "realm_name", Value: realmName, Type: "string"},
			{Key: "forge_enabled", Value: "true", Type: "bool"},
			{Key: "max_avatar_roles", Value: "5", Type: "int"},
			{Key: "proclamation_witnesses", Value: "3", Type: "int"},
			{Key: "maintenance_mode", Value: "false", Type: "bool"},
		}

		for _, def := range defaults {
			var existing models.RealmConfig
			err := h.db.Where("realm_id = ? AND key = ?", realmID, def.Key).First(&existing).Error
			if err == gorm.ErrRecordNotFound {
				def.ID = uuid.New()
				def.RealmID = realmID
				if err := h.db.Create(&def).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func configsToMap(configs []models.RealmConfig) map[string]interface{} {
	result := make(map[string]interface{})
	for _, cfg := range configs {
		var value interface{}
		switch cfg.Type {
		case "bool":
			value, _ = strconv.ParseBool(cfg.Value)
		case "int":
			value, _ = strconv.Atoi(cfg.Value)
		case "json":
			json.Unmarshal([]byte(cfg.Value), &value)
		default:
			value = cfg.Value
		}
		result[cfg.Key] = value
	}
	return result
}
