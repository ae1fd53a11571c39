package server

import (
	"errors"

	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		label := "ID"
		if param != "id" {
			label = param
		}
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+label))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// currentUserID returns the authenticated user's ID stored by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// respondServiceError maps a service error to its HTTP status and writes the
// standard error body.
func respondServiceError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusFor(err), err)
}
