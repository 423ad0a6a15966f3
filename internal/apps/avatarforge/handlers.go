package avatarforge

import (
	"errors"
	"strconv"

	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/realm"
	"github.com/gofiber/fiber/v2"
)

// AvatarHandler handles HTTP requests for the avatar constellation.
type AvatarHandler struct {
	service *AvatarService
}

func NewAvatarHandler(service *AvatarService) *AvatarHandler {
	return &AvatarHandler{service: service}
}

// CreateAvatar handles POST /api/p/avatars
func (h *AvatarHandler) CreateAvatar(c *fiber.Ctx) error {
	realmID := realm.GetRealmID(c)

	var req struct {
		Name  string   `json:"name"`
		Rank  string   `json:"rank"`
		Roles []string `json:"roles"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "name is required",
		})
	}

	roles := make([]Role, 0, len(req.Roles))
	for _, r := range req.Roles {
		roles = append(roles, Role(r))
	}

	avatar, err := h.service.CreateAvatar(realmID, req.Name, Rank(req.Rank), roles)
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, ErrNameTaken) {
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(avatar)
}

// GetAvatar handles GET /api/p/avatars/:name
func (h *AvatarHandler) GetAvatar(c *fiber.Ctx) error {
	realmID := realm.GetRealmID(c)

	avatar, err := h.service.GetAvatar(realmID, c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": true, "message": "Avatar not found",
		})
	}

	return c.JSON(avatar)
}

// ListAvatars handles GET /api/p/avatars
func (h *AvatarHandler) ListAvatars(c *fiber.Ctx) error {
	realmID := realm.GetRealmID(c)

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit > 100 {
		limit = 100
	}

	avatars, total, err := h.service.ListAvatars(realmID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to fetch avatars",
		})
	}

	return c.JSON(fiber.Map{
		"data": avatars, "total": total,
		"limit": limit, "offset": offset,
	})
}

// UpdateRank handles PUT /api/p/avatars/:name/rank
func (h *AvatarHandler) UpdateRank(c *fiber.Ctx) error {
	realmID := realm.GetRealmID(c)

	var req struct {
		Rank string `json:"rank"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}

	avatar, err := h.service.UpdateRank(realmID, c.Params("name"), Rank(req.Rank))
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, ErrAvatarNotFound) {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}

	return c.JSON(avatar)
}

// AddRole handles POST /api/p/avatars/:name/roles
func (h *AvatarHandler) AddRole(c *fiber.Ctx) error {
	realmID := realm.GetRealmID(c)

	var req struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}

	avatar, err := h.service.AddRole(realmID, c.Params("name"), Role(req.Role))
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, ErrAvatarNotFound) {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}

	return c.JSON(avatar)
}

// QueryAvatars handles POST /api/p/avatars/query
func (h *AvatarHandler) QueryAvatars(c *fiber.Ctx) error {
	realmID := realm.GetRealmID(c)

	var q AvatarQuery
	if err := c.BodyParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}

	avatars, err := h.service.QueryAvatars(realmID, q)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data":  avatars,
		"total": len(avatars),
	})
}

// GetStats handles GET /api/p/avatars/stats
func (h *AvatarHandler) GetStats(c *fiber.Ctx) error {
	realmID := realm.GetRealmID(c)

	stats, err := h.service.GetStats(realmID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to fetch stats",
		})
	}

	return c.JSON(stats)
}

// Export handles GET /api/p/avatars/export
func (h *AvatarHandler) Export(c *fiber.Ctx) error {
	realmID := realm.GetRealmID(c)

	path, payload, err := h.service.Export(realmID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to export constellation",
		})
	}

	return c.JSON(fiber.Map{
		"file":    path,
		"payload": payload,
	})
}

// LinkAvatars handles POST /api/p/avatars/:name/relationships
func (h *AvatarHandler) LinkAvatars(c *fiber.Ctx) error {
	realmID := realm.GetRealmID(c)

	var req struct {
		Related  string  `json:"related"`
		Kind     string  `json:"kind"`
		Strength float64 `json:"strength"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}
	if req.Related == "" || req.Kind == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "related and kind are required",
		})
	}

	rel, err := h.service.LinkAvatars(realmID, c.Params("name"), req.Related, req.Kind, req.Strength)
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, ErrAvatarNotFound) {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(rel)
}

// ListRelationships handles GET /api/p/avatars/:name/relationships
func (h *AvatarHandler) ListRelationships(c *fiber.Ctx) error {
	realmID := realm.GetRealmID(c)

	rels, err := h.service.ListRelationships(realmID, c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"data": rels, "total": len(rels)})
}

// ListCeremonies handles GET /api/p/avatars/:name/ceremonies
func (h *AvatarHandler) ListCeremonies(c *fiber.Ctx) error {
	realmID := realm.GetRealmID(c)

	ceremonies, err := h.service.ListCeremonies(realmID, c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"data": ceremonies, "total": len(ceremonies)})
}
