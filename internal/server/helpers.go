package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// parseListQuery extracts the listing endpoint's query parameters.
// Out-of-range values are left to the service layer to clamp.
func parseListQuery(c *fiber.Ctx) service.ListPostsInput {
	return service.ListPostsInput{
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 0),
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}
}

// statusForError maps an application error to its HTTP status.
func statusForError(err error) int {
	if appErr, ok := err.(*models.AppError); ok {
		switch appErr.Code {
		case "NOT_FOUND":
			return fiber.StatusNotFound
		case "VALIDATION_ERROR":
			return fiber.StatusBadRequest
		}
	}
	return fiber.StatusInternalServerError
}

// respondError writes the standardized error body with the mapped status.
func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, statusForError(err), err)
}
