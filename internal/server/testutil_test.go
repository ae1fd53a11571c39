package server

import (
	"warbler/internal/config"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
)

// testMocks bundles the repository mocks wired into a test Server.
type testMocks struct {
	users    *MockUserRepository
	messages *MockMessageRepository
	follows  *MockFollowRepository
	likes    *MockLikeRepository
}

// newTestServer builds a Server over fresh repository mocks. Redis is left
// nil so token revocation checks are skipped in tests.
func newTestServer() (*Server, *testMocks) {
	m := &testMocks{
		users:    new(MockUserRepository),
		messages: new(MockMessageRepository),
		follows:  new(MockFollowRepository),
		likes:    new(MockLikeRepository),
	}

	s := &Server{
		config:      &config.Config{JWTSecret: "test_secret", Env: "test"},
		userRepo:    m.users,
		messageRepo: m.messages,
		followRepo:  m.follows,
		likeRepo:    m.likes,
	}
	s.authService = service.NewAuthService(m.users)
	s.userService = service.NewUserService(m.users)
	s.followService = service.NewFollowService(m.follows, m.users)
	s.messageService = service.NewMessageService(m.messages, m.follows)
	s.likeService = service.NewLikeService(m.likes, m.messages)

	return s, m
}

// asUser returns middleware that injects a fixed authenticated user ID,
// standing in for AuthRequired.
func asUser(id uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", id)
		return c.Next()
	}
}
