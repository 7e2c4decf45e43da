package routes

import (
	"github.com/gofiber/fiber/v2"
)

// NotFoundRoute func for describe 404 Error route.

func NotFoundRoute(app *fiber.App) {
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "sorry, endpoint is not found",
		})
	})
}
