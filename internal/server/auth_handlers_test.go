package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func postJSON(t *testing.T, app *fiber.App, path string, body map[string]string) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestSignup(t *testing.T) {
	app := fiber.New()
	s, m := newTestServer()
	app.Post("/signup", s.Signup)

	t.Run("Success", func(t *testing.T) {
		m.users.On("GetByUsername", mock.Anything, "testuser").Return(nil, nil).Once()
		m.users.On("GetByEmail", mock.Anything, "test@example.com").Return(nil, nil).Once()
		m.users.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		resp := postJSON(t, app, "/signup", map[string]string{
			"username": "testuser",
			"email":    "test@example.com",
			"password": "Password123!",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.NotEmpty(t, body["token"])
	})

	t.Run("Short Password", func(t *testing.T) {
		resp := postJSON(t, app, "/signup", map[string]string{
			"username": "testuser",
			"email":    "test@example.com",
			"password": "short",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Both Duplicates Reported Together", func(t *testing.T) {
		m.users.On("GetByUsername", mock.Anything, "taken").Return(&models.User{ID: 2, Username: "taken"}, nil).Once()
		m.users.On("GetByEmail", mock.Anything, "taken@example.com").Return(&models.User{ID: 3, Email: "taken@example.com"}, nil).Once()

		resp := postJSON(t, app, "/signup", map[string]string{
			"username": "taken",
			"email":    "taken@example.com",
			"password": "Password123!",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		body := decodeBody(t, resp)
		fields, ok := body["fields"].(map[string]any)
		require.True(t, ok, "expected fields map in response, got %v", body)
		assert.Equal(t, "Username is taken.", fields["username"])
		assert.Equal(t, "Email is taken.", fields["email"])
	})
}

func TestLogin(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{ID: 1, Username: "testuser", Password: string(hashed)}

	app := fiber.New()
	s, m := newTestServer()
	app.Post("/login", s.Login)

	t.Run("Success", func(t *testing.T) {
		m.users.On("GetByUsername", mock.Anything, "testuser").Return(user, nil).Once()

		resp := postJSON(t, app, "/login", map[string]string{
			"username": "testuser",
			"password": "Password123!",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.NotEmpty(t, body["token"])
	})

	t.Run("Wrong Password", func(t *testing.T) {
		m.users.On("GetByUsername", mock.Anything, "testuser").Return(user, nil).Once()

		resp := postJSON(t, app, "/login", map[string]string{
			"username": "testuser",
			"password": "wrong",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Unknown Username Same Error", func(t *testing.T) {
		m.users.On("GetByUsername", mock.Anything, "ghost").Return(nil, nil).Once()

		resp := postJSON(t, app, "/login", map[string]string{
			"username": "ghost",
			"password": "Password123!",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Invalid credentials", body["error"])
	})
}

func TestAuthRequired(t *testing.T) {
	app := fiber.New()
	s, _ := newTestServer()

	app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userID": c.Locals("userID")})
	})

	t.Run("Missing Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Valid Token", func(t *testing.T) {
		token, err := s.generateToken(42, "testuser")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, float64(42), body["userID"])
	})

	t.Run("Garbage Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
