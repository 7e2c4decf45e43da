package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"savoria/initializers"
	"savoria/middleware"
	"savoria/models"
	"savoria/testutil"
	"savoria/utils"
)

func newGuardedApp(t *testing.T) *fiber.App {
	t.Helper()

	initializers.DB = testutil.OpenDB(t)
	initializers.AppConfig.JwtSecret = "test-secret"

	app := fiber.New()
	app.Get("/me", middleware.DeserializeUser, func(c *fiber.Ctx) error {
		user := c.Locals("user").(models.UserResponse)
		return c.JSON(fiber.Map{"status": "success", "data": user.Email})
	})
	return app
}

func request(t *testing.T, app *fiber.App, auth string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	return resp
}

func TestDeserializeUser(t *testing.T) {
	app := newGuardedApp(t)
	user := testutil.SeedUser(t, initializers.DB, "auth@example.com", models.RoleCustomer)

	token, _, err := utils.GenerateToken(user.ID, time.Minute, "test-secret")
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	if resp := request(t, app, "Bearer "+token); resp.StatusCode != fiber.StatusOK {
		t.Errorf("valid token: status = %d, want 200", resp.StatusCode)
	}
	if resp := request(t, app, ""); resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", resp.StatusCode)
	}
	if resp := request(t, app, "Bearer not-a-token"); resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("garbage token: status = %d, want 401", resp.StatusCode)
	}
}

func TestDeserializeUserBlockedAccount(t *testing.T) {
	app := newGuardedApp(t)
	user := testutil.SeedUser(t, initializers.DB, "blocked@example.com", models.RoleCustomer)
	if err := initializers.DB.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("block user: %v", err)
	}

	token, _, err := utils.GenerateToken(user.ID, time.Minute, "test-secret")
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	if resp := request(t, app, "Bearer "+token); resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("blocked account: status = %d, want 403", resp.StatusCode)
	}
}
