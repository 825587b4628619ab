package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/postforge/postforge/internal/service"
)

type AIHandler struct {
	s service.AIService
}

func NewAIHandler(service service.AIService) *AIHandler {
	return &AIHandler{s: service}
}

// ListModels returns the models the generation endpoints advertise. The
// listing is best-effort: either side may come back empty.
func (h *AIHandler) ListModels(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"text":  h.s.ListTextModels(c.Context()),
		"image": h.s.ListImageModels(c.Context()),
	})
}
