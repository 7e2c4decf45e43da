package controllers

import (
	"github.com/gofiber/fiber/v2"

	"savoria/initializers"
	"savoria/models"
	"savoria/services"
	"savoria/utils"
)

func CreateOrder(c *fiber.Ctx) error {
	user := currentUser(c)

	var payload services.CreateOrderInput
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	order, err := services.CreateOrder(initializers.DB, user.ID, payload)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": order})
}

func GetOrder(c *fiber.Ctx) error {
	user := currentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid order id")
	}

	order, err := services.GetOrder(initializers.DB, uint(id), user)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"status": "success", "data": order})
}

func ListOrders(c *fiber.Ctx) error {
	user := currentUser(c)

	orders, err := services.ListOrders(initializers.DB, user.ID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"status": "success", "data": orders})
}

func UpdateOrderStatus(c *fiber.Ctx) error {
	user := currentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid order id")
	}

	var payload services.UpdateOrderStatusInput
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if payload.Status == "" {
		return badRequest(c, "Status is required")
	}

	order, err := services.UpdateStatus(initializers.DB, uint(id), payload.Status, user)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"status": "success", "data": order})
}

func CancelOrder(c *fiber.Ctx) error {
	user := currentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid order id")
	}

	order, err := services.CancelOrder(initializers.DB, uint(id), user)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Order cancelled",
		"data":    order,
	})
}

func TrackOrder(c *fiber.Ctx) error {
	user := currentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid order id")
	}

	view, err := services.TrackOrder(initializers.DB, uint(id), user)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"status": "success", "data": view})
}

// ListAllOrders is the admin view across users, newest first, paginated.
func ListAllOrders(c *fiber.Ctx) error {
	var orders []models.Order
	tx := initializers.DB.Preload("Items").Order("created_at DESC")
	if err := utils.Paginate(c, tx, &orders); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load orders",
		})
	}
	return c.JSON(fiber.Map{"status": "success", "data": orders})
}
