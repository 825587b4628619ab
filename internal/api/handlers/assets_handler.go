package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/postforge/postforge/internal/service"
)

type AssetHandler struct {
	s service.AssetService
}

func NewAssetHandler(service service.AssetService) *AssetHandler {
	return &AssetHandler{s: service}
}

// UploadAsset accepts a single image file and returns the stored asset with
// its public URL, usable as a post's image_url.
func (h *AssetHandler) UploadAsset(c *fiber.Ctx) error {
	userID := GetUserID(c)

	file, err := c.FormFile("file")
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file selected",
		})
	}

	asset, err := h.s.UploadImage(c.Context(), userID, file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(asset)
}
