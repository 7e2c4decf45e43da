package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"savoria/controllers"
	"savoria/initializers"
	"savoria/middleware"
	"savoria/models"
	"savoria/testutil"
	"savoria/utils"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	initializers.DB = testutil.OpenDB(t)
	initializers.AppConfig.JwtSecret = "test-secret"

	app := fiber.New()
	orders := app.Group("/api/orders", middleware.DeserializeUser)
	orders.Post("/", controllers.CreateOrder)
	orders.Get("/:id", controllers.GetOrder)
	orders.Patch("/:id/status", middleware.RequireRole(models.RoleAdmin), controllers.UpdateOrderStatus)
	return app
}

func bearerFor(t *testing.T, userID uint) string {
	t.Helper()

	token, _, err := utils.GenerateToken(userID, time.Minute, initializers.AppConfig.JwtSecret)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return "Bearer " + token
}

func doJSON(t *testing.T, app *fiber.App, method, target, auth string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	return resp
}

func TestCreateOrderEndpoint(t *testing.T) {
	app := newTestApp(t)
	user := testutil.SeedUser(t, initializers.DB, "http@example.com", models.RoleCustomer)
	item := testutil.SeedMenuItem(t, initializers.DB, "Tacos", 3.50)

	resp := doJSON(t, app, http.MethodPost, "/api/orders/", bearerFor(t, user.ID), fiber.Map{
		"items":          []fiber.Map{{"menu_item_id": item.ID, "quantity": 4}},
		"payment_method": "card",
		"delivery_type":  "pickup",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var order models.Order
	if err := initializers.DB.Preload("Items").Where("user_id = ?", user.ID).First(&order).Error; err != nil {
		t.Fatalf("load created order: %v", err)
	}
	if order.TotalAmount != 14.00 {
		t.Errorf("total = %.2f, want 14.00", order.TotalAmount)
	}
}

func TestCreateOrderEndpointRequiresAuth(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/orders/", "", fiber.Map{"payment_method": "card"})
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestUpdateOrderStatusEndpointRoleGuard(t *testing.T) {
	app := newTestApp(t)
	user := testutil.SeedUser(t, initializers.DB, "guard@example.com", models.RoleCustomer)
	admin := testutil.SeedUser(t, initializers.DB, "guard-admin@example.com", models.RoleAdmin)
	order := testutil.SeedOrder(t, initializers.DB, user.ID, models.OrderPending, 10)

	target := fmt.Sprintf("/api/orders/%d/status", order.ID)
	body := fiber.Map{"status": "confirmed"}

	resp := doJSON(t, app, http.MethodPatch, target, bearerFor(t, user.ID), body)
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("customer status = %d, want 403", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodPatch, target, bearerFor(t, admin.ID), body)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("admin status = %d, want 200", resp.StatusCode)
	}

	var stored models.Order
	initializers.DB.First(&stored, order.ID)
	if stored.Status != models.OrderConfirmed {
		t.Errorf("status = %q, want confirmed", stored.Status)
	}
}
