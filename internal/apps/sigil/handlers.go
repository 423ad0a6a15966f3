package sigil

import (
	"strconv"

	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/realm"
	"github.com/gofiber/fiber/v2"
)

// SigilHandler handles HTTP requests for the seal registry.
type SigilHandler struct {
	service *SigilService
}

func NewSigilHandler(service *SigilService) *SigilHandler {
	return &SigilHandler{service: service}
}

// IssueSigil handles POST /api/p/sigils
func (h *SigilHandler) IssueSigil(c *fiber.Ctx) error {
	realmID := realm.GetRealmID(c)

	var req struct {
		Bearer  string `json:"bearer"`
		Purpose string `json:"purpose"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}
	if req.Bearer == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "bearer is required",
		})
	}

	sg, err := h.service.IssueSigil(realmID, req.Bearer, req.Purpose)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(sg)
}

// GetSigil handles GET /api/p/sigils/:serial
func (h *SigilHandler) GetSigil(c *fiber.Ctx) error {
	realmID := realm.GetRealmID(c)

	sg, err := h.service.GetSigil(realmID, c.Params("serial"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": true, "message": "Sigil not found",
		})
	}

	return c.JSON(sg)
}

// ListSigils handles GET /api/p/sigils
func (h *SigilHandler) ListSigils(c *fiber.Ctx) error {
	realmID := realm.GetRealmID(c)

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit > 100 {
		limit = 100
	}

	sigils, total, err := h.service.ListSigils(realmID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to fetch sigils",
		})
	}

	return c.JSON(fiber.Map{
		"data": sigils, "total": total,
		"limit": limit, "offset": offset,
	})
}

// VerifySigil handles POST /api/p/sigils/:serial/verify
func (h *SigilHandler) VerifySigil(c *fiber.Ctx) error {
	realmID := realm.GetRealmID(c)

	sg, valid, err := h.service.VerifySigil(realmID, c.Params("serial"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": true, "message": "Sigil not found",
		})
	}

	return c.JSON(fiber.Map{
		"serial": sg.Serial,
		"valid":  valid,
	})
}
