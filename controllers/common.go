package controllers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"savoria/models"
	"savoria/services"
)

var validate = validator.New()

func currentUser(c *fiber.Ctx) models.UserResponse {
	user, _ := c.Locals("user").(models.UserResponse)
	return user
}

// serviceError translates a typed service error into the JSON envelope.
func serviceError(c *fiber.Ctx, err error) error {
	code := services.StatusCode(err)
	status := "fail"
	message := err.Error()
	if code == fiber.StatusInternalServerError {
		status = "error"
		message = "Something went wrong"
	}
	return c.Status(code).JSON(fiber.Map{
		"status":  status,
		"message": message,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status":  "fail",
		"message": message,
	})
}
