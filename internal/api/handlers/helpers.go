package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/postforge/postforge/internal/service"
)

func GetUserID(c *fiber.Ctx) int64 {
	userID, _ := strconv.Atoi(c.Locals("user_id").(string))
	return int64(userID)
}

// parseStrictJSON decodes the request body into v, rejecting unknown fields.
func parseStrictJSON(c *fiber.Ctx, v any) error {
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// renderError maps service failures to responses: per-field validation
// errors become 422, unknown posts 404, everything else 500.
func renderError(c *fiber.Ctx, err error) error {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": verr.Fields,
		})
	}

	if errors.Is(err, service.ErrPostNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Post not found",
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Something went wrong",
	})
}
