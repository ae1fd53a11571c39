package server

import (
	"warbler/internal/middleware"
	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateMessage handles POST /api/messages
// @Summary Post a message
// @Description Create a new message owned by the authenticated user
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{text=string} true "Message text"
// @Success 201 {object} object{message=models.Message}
// @Failure 400 {object} models.ErrorResponse
// @Router /messages [post]
func (s *Server) CreateMessage(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, err := s.messageService.Post(c.Context(), currentUserID(c), req.Text)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.MessagesPosted.Inc()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
	})
}

// GetMessage handles GET /api/messages/:id
// @Summary Message detail
// @Description A single message; like state is personalized when a valid token is presented
// @Tags messages
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} object{message=models.Message}
// @Failure 404 {object} models.ErrorResponse
// @Router /messages/{id} [get]
func (s *Server) GetMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewerID, _ := s.optionalUserID(c)

	message, err := s.messageService.Get(c.Context(), id, viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": message,
	})
}

// DeleteMessage handles DELETE /api/messages/:id
// @Summary Delete a message
// @Description Remove a message and its likes. Only the owner may delete.
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /messages/{id} [delete]
func (s *Server) DeleteMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.messageService.Delete(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Message deleted",
	})
}

// GetFeed handles GET /api/feed
// @Summary Home feed
// @Description Newest messages from the user and the accounts they follow, capped at 100. Anonymous callers get an empty feed.
// @Tags messages
// @Produce json
// @Success 200 {object} object{messages=[]models.Message}
// @Router /feed [get]
func (s *Server) GetFeed(c *fiber.Ctx) error {
	viewerID, ok := s.optionalUserID(c)
	if !ok {
		// The anonymous view has no feed.
		return c.JSON(fiber.Map{
			"messages": []models.Message{},
		})
	}

	messages, err := s.messageService.Feed(c.Context(), viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"messages": messages,
	})
}
