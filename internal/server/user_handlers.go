package server

import (
	"time"

	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAllUsers handles GET /api/users
// @Summary List users
// @Description List users, optionally narrowed to usernames containing q
// @Tags users
// @Produce json
// @Param q query string false "Username substring filter"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} object{users=[]models.User}
// @Router /users [get]
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	query := c.Query("q")

	users, err := s.userService.ListUsers(c.Context(), query, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"users": users,
	})
}

// GetMyProfile handles GET /api/users/me
// @Summary Current user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{user=models.User}
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByID(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user": user,
	})
}

// UpdateMyProfile handles PUT /api/users/me
// @Summary Edit profile
// @Description Update profile fields; requires the current password to confirm
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{username=string,email=string,image_url=string,header_image_url=string,bio=string,location=string,password=string} true "Profile edit"
// @Success 200 {object} object{user=models.User}
// @Failure 401 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /users/me [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Username       string `json:"username"`
		Email          string `json:"email"`
		ImageURL       string `json:"image_url"`
		HeaderImageURL string `json:"header_image_url"`
		Bio            string `json:"bio"`
		Location       string `json:"location"`
		Password       string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.UpdateProfile(c.Context(), currentUserID(c), service.UpdateProfileInput{
		Username:       req.Username,
		Email:          req.Email,
		ImageURL:       req.ImageURL,
		HeaderImageURL: req.HeaderImageURL,
		Bio:            req.Bio,
		Location:       req.Location,
		Password:       req.Password,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user": user,
	})
}

// DeleteMyAccount handles DELETE /api/users/me
// @Summary Delete account
// @Description Remove the account with all messages, likes and follow edges
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string}
// @Router /users/me [delete]
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	if err := s.authService.DeleteUser(c.Context(), currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}

	// The account is gone; revoke the presenting token as well.
	if s.redis != nil {
		if jti, exp, ok := s.tokenRevocationInfo(c); ok {
			if ttl := time.Until(exp); ttl > 0 {
				s.redis.Set(c.Context(), "blacklist:"+jti, "1", ttl)
			}
		}
	}

	return c.JSON(fiber.Map{
		"message": "Account deleted",
	})
}

// GetUserProfile handles GET /api/users/:id
// @Summary User profile
// @Description A user's profile together with their recent messages
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Param limit query int false "Number of recent messages" default(20)
// @Success 200 {object} object{user=models.User}
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [get]
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	user, err := s.userService.GetUserWithMessages(c.Context(), id, p.Limit)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user": user,
	})
}

// GetUserMessages handles GET /api/users/:id/messages
// @Summary A user's messages
// @Tags messages
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{messages=[]models.Message}
// @Router /users/{id}/messages [get]
func (s *Server) GetUserMessages(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	viewerID, _ := s.optionalUserID(c)
	messages, err := s.messageService.MessagesByUser(c.Context(), id, p.Limit, p.Offset, viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"messages": messages,
	})
}
