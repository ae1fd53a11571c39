package server

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"warbler/internal/middleware"
	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// tokenTTL is the lifetime of issued access tokens.
const tokenTTL = 7 * 24 * time.Hour

// Signup handles POST /api/auth/signup
// @Summary User signup
// @Description Register a new user account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,password=string,image_url=string} true "Signup request"
// @Success 201 {object} object{token=string,user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		ImageURL string `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.Signup(c.Context(), service.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	middleware.SignupsTotal.Inc()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login
// @Summary User login
// @Description Authenticate with username and password, returns a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Login credentials"
// @Success 200 {object} object{token=string,user=models.User}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.Authenticate(c.Context(), req.Username, req.Password)
	if err != nil {
		return respondServiceError(c, err)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /api/auth/logout
// @Summary User logout
// @Description Revoke the presented token until its natural expiry
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string}
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	// AuthRequired already validated the token; revoke its JTI so it can
	// no longer be replayed. Without Redis logout degrades to client-side
	// token disposal.
	if s.redis != nil {
		if jti, exp, ok := s.tokenRevocationInfo(c); ok {
			ttl := time.Until(exp)
			if ttl > 0 {
				s.redis.Set(c.Context(), "blacklist:"+jti, "1", ttl)
			}
		}
	}

	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}

// Refresh handles POST /api/auth/refresh
// @Summary Refresh token
// @Description Issue a fresh token for the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{token=string}
// @Router /auth/refresh [post]
func (s *Server) Refresh(c *fiber.Ctx) error {
	userID := currentUserID(c)

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
	})
}

// tokenRevocationInfo re-parses the presented bearer token and returns its
// JTI and expiry.
func (s *Server) tokenRevocationInfo(c *fiber.Ctx) (string, time.Time, bool) {
	parts := strings.Split(c.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", time.Time{}, false
	}

	_, claims, err := s.parseToken(c.Context(), parts[1])
	if err != nil {
		return "", time.Time{}, false
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return "", time.Time{}, false
	}
	expFloat, ok := claims["exp"].(float64)
	if !ok {
		return "", time.Time{}, false
	}
	return jti, time.Unix(int64(expFloat), 0), true
}

// generateToken creates a JWT token for the given user ID and username
func (s *Server) generateToken(userID uint, username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10), // Subject (user ID as string)
		"username": username,                               // Username (cached in token)
		"iss":      "warbler-api",                          // Issuer
		"aud":      "warbler-client",                       // Audience
		"exp":      now.Add(tokenTTL).Unix(),               // Expiration
		"iat":      now.Unix(),                             // Issued at
		"nbf":      now.Unix(),                             // Not before
		"jti":      s.generateJTI(),                        // JWT ID (unique identifier)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID so individual tokens can be revoked
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
