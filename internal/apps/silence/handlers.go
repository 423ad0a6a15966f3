package silence

import (
	"errors"
	"strconv"

	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/realm"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SilenceHandler handles HTTP requests for eternal-silence proclamations.
type SilenceHandler struct {
	service *SilenceService
}

func NewSilenceHandler(service *SilenceService) *SilenceHandler {
	return &SilenceHandler{service: service}
}

// Proclaim handles POST /api/p/proclamations
func (h *SilenceHandler) Proclaim(c *fiber.Ctx) error {
	realmID := realm.GetRealmID(c)

	var req struct {
		Subject      string `json:"subject"`
		WitnessCount int    `json:"witness_count"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}

	p, err := h.service.Proclaim(realmID, req.Subject, req.WitnessCount)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(p)
}

// GetProclamation handles GET /api/p/proclamations/:id
func (h *SilenceHandler) GetProclamation(c *fiber.Ctx) error {
	realmID := realm.GetRealmID(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid proclamation id",
		})
	}

	p, err := h.service.GetProclamation(realmID, id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": true, "message": "Proclamation not found",
		})
	}

	return c.JSON(p)
}

// ListProclamations handles GET /api/p/proclamations
func (h *SilenceHandler) ListProclamations(c *fiber.Ctx) error {
	realmID := realm.GetRealmID(c)

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit > 100 {
		limit = 100
	}
	dispatchedOnly := c.QueryBool("dispatched", false)

	procs, total, err := h.service.ListProclamations(realmID, dispatchedOnly, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to fetch proclamations",
		})
	}

	return c.JSON(fiber.Map{
		"data": procs, "total": total,
		"limit": limit, "offset": offset,
	})
}

// Dispatch handles POST /api/p/proclamations/:id/dispatch
func (h *SilenceHandler) Dispatch(c *fiber.Ctx) error {
	realmID := realm.GetRealmID(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid proclamation id",
		})
	}

	p, err := h.service.Dispatch(realmID, id)
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, ErrProclamationNotFound) {
			status = fiber.StatusNotFound
		}
		if errors.Is(err, ErrAlreadyDispatched) {
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}

	return c.JSON(p)
}
