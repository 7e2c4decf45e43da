package controllers

import (
	"github.com/gofiber/fiber/v2"

	"savoria/initializers"
	"savoria/services"
)

// AssignDelivery is admin-only, enforced by RequireRole on the route.
func AssignDelivery(c *fiber.Ctx) error {
	var payload services.AssignDeliveryInput
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	task, err := services.AssignDelivery(initializers.DB, payload)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": task})
}

func GetAssignedDeliveries(c *fiber.Ctx) error {
	driver := currentUser(c)

	tasks, err := services.GetAssignedDeliveries(initializers.DB, driver.ID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"status": "success", "data": tasks})
}

func UpdateDeliveryStatus(c *fiber.Ctx) error {
	driver := currentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid delivery task id")
	}

	var payload services.UpdateDeliveryStatusInput
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if payload.Status == "" {
		return badRequest(c, "Status is required")
	}

	task, err := services.UpdateDeliveryStatus(initializers.DB, uint(id), payload.Status, driver.ID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"status": "success", "data": task})
}

func ConfirmDelivery(c *fiber.Ctx) error {
	driver := currentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid delivery task id")
	}

	var payload services.ConfirmDeliveryInput
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	task, err := services.ConfirmDelivery(initializers.DB, uint(id), payload.OTP, driver.ID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Delivery confirmed",
		"data":    task,
	})
}
