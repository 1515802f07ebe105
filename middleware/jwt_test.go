package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/akshayrachakonda/course-enrollment/config"
	"github.com/akshayrachakonda/course-enrollment/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthApp(t *testing.T) *fiber.App {
	t.Helper()
	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	app := fiber.New()
	app.Get("/whoami", JWTMiddleware, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userId": c.Locals("userId"),
			"role":   c.Locals("role"),
		})
	})
	app.Get("/instructor-only", JWTMiddleware, RequireInstructor, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestJWTMiddlewareAcceptsValidToken(t *testing.T) {
	app := setupAuthApp(t)

	token, err := GenerateJWT(7, "Ana", models.RoleInstructor, "ana@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJWTMiddlewareRejectsMissingHeader(t *testing.T) {
	app := setupAuthApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareRejectsGarbageToken(t *testing.T) {
	app := setupAuthApp(t)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireInstructorBlocksStudents(t *testing.T) {
	app := setupAuthApp(t)

	token, err := GenerateJWT(8, "Ben", models.RoleStudent, "ben@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/instructor-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
