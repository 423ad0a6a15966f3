package hymnal

import (
	"errors"
	"strconv"

	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/realm"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HymnHandler handles HTTP requests for the hymn registry.
type HymnHandler struct {
	service *HymnService
}

func NewHymnHandler(service *HymnService) *HymnHandler {
	return &HymnHandler{service: service}
}

// ComposeHymn handles POST /api/p/hymns
func (h *HymnHandler) ComposeHymn(c *fiber.Ctx) error {
	realmID := realm.GetRealmID(c)

	var req struct {
		Title      string `json:"title"`
		Theme      string `json:"theme"`
		VerseCount int    `json:"verse_count"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}

	hymn, err := h.service.ComposeHymn(realmID, req.Title, req.Theme, req.VerseCount)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(hymn)
}

// GetHymn handles GET /api/p/hymns/:id
func (h *HymnHandler) GetHymn(c *fiber.Ctx) error {
	realmID := realm.GetRealmID(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid hymn id",
		})
	}

	hymn, err := h.service.GetHymn(realmID, id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": true, "message": "Hymn not found",
		})
	}

	return c.JSON(hymn)
}

// ListHymns handles GET /api/p/hymns
func (h *HymnHandler) ListHymns(c *fiber.Ctx) error {
	realmID := realm.GetRealmID(c)

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit > 100 {
		limit = 100
	}

	hymns, total, err := h.service.ListHymns(realmID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to fetch hymns",
		})
	}

	return c.JSON(fiber.Map{
		"data": hymns, "total": total,
		"limit": limit, "offset": offset,
	})
}

// PerformHymn handles POST /api/p/hymns/:id/perform
func (h *HymnHandler) PerformHymn(c *fiber.Ctx) error {
	realmID := realm.GetRealmID(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid hymn id",
		})
	}

	var req struct {
		Performer string `json:"performer"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}

	perf, err := h.service.PerformHymn(realmID, id, req.Performer)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, ErrHymnNotFound) {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(perf)
}
