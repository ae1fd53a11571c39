package server

import (
	"warbler/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// ToggleLike handles POST /api/messages/:id/toggle_like
//
// This is warbler's classic toggle endpoint. It performs its own auth check
// so anonymous callers receive the legacy "Access Unauthorized." body
// instead of the standard error envelope.
//
// @Summary Toggle a like
// @Description Flip the like state on a message and report the result
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} object{message=string}
// @Failure 401 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /messages/{id}/toggle_like [post]
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	userID, ok := s.optionalUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Access Unauthorized.",
		})
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, err := s.likeService.Toggle(c.Context(), userID, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	msg := "Successfully unliked!"
	state := "unliked"
	if liked {
		msg = "Successfully liked!"
		state = "liked"
	}
	middleware.LikeToggles.WithLabelValues(state).Inc()

	return c.JSON(fiber.Map{
		"message": msg,
	})
}

// LikeMessage handles POST /api/messages/:id/like
// @Summary Like a message
// @Description Set the like; already liked is a no-op
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /messages/{id}/like [post]
func (s *Server) LikeMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.likeService.Like(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Liked",
	})
}

// UnlikeMessage handles DELETE /api/messages/:id/like
// @Summary Unlike a message
// @Description Clear the like; not liked is a no-op
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /messages/{id}/like [delete]
func (s *Server) UnlikeMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.likeService.Unlike(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Unliked",
	})
}

// GetLikedMessages handles GET /api/users/:id/likes
// @Summary Messages a user has liked
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} object{messages=[]models.Message}
// @Router /users/{id}/likes [get]
func (s *Server) GetLikedMessages(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	messages, err := s.likeService.LikedMessages(c.Context(), id, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"messages": messages,
	})
}
