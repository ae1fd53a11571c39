package server

import (
	"warbler/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/users/:id/follow
// @Summary Follow a user
// @Description Start following a user; already following is a no-op
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID to follow"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/follow [post]
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.Follow(c.Context(), currentUserID(c), targetID); err != nil {
		return respondServiceError(c, err)
	}

	middleware.FollowChanges.WithLabelValues("follow").Inc()

	return c.JSON(fiber.Map{
		"message": "Following",
	})
}

// UnfollowUser handles DELETE /api/users/:id/follow
// @Summary Unfollow a user
// @Description Stop following a user; not following is a no-op
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID to unfollow"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/follow [delete]
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.Unfollow(c.Context(), currentUserID(c), targetID); err != nil {
		return respondServiceError(c, err)
	}

	middleware.FollowChanges.WithLabelValues("unfollow").Inc()

	return c.JSON(fiber.Map{
		"message": "Unfollowed",
	})
}

// GetFollowers handles GET /api/users/:id/followers
// @Summary A user's followers
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} object{users=[]models.User}
// @Router /users/{id}/followers [get]
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	users, err := s.followService.Followers(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"users": users,
	})
}

// GetFollowing handles GET /api/users/:id/following
// @Summary Users a user follows
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} object{users=[]models.User}
// @Router /users/{id}/following [get]
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	users, err := s.followService.Following(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"users": users,
	})
}
