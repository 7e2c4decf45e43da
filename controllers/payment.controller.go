package controllers

import (
	"github.com/gofiber/fiber/v2"

	"savoria/initializers"
	"savoria/services"
)

func InitiatePayment(c *fiber.Ctx) error {
	user := currentUser(c)

	var payload services.InitiatePaymentInput
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	payment, checkoutURL, err := services.InitiatePayment(initializers.DB, user.ID, payload)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"payment":      payment,
			"checkout_url": checkoutURL,
		},
	})
}

func GetPaymentStatus(c *fiber.Ctx) error {
	user := currentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid payment id")
	}

	payment, err := services.GetPaymentStatus(initializers.DB, uint(id), user)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"status": "success", "data": payment})
}

func ConfirmPayment(c *fiber.Ctx) error {
	user := currentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid payment id")
	}

	var payload services.ConfirmPaymentInput
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	payment, err := services.ConfirmPayment(initializers.DB, uint(id), payload, user.ID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"status": "success", "data": payment})
}

// PaymentWebhook is called by the gateway, not by users, so it skips auth.
// A non-2xx answer makes the gateway retry; replays are acknowledged no-ops.
func PaymentWebhook(c *fiber.Ctx) error {
	var event services.WebhookEvent
	if err := c.BodyParser(&event); err != nil {
		return badRequest(c, "Could not parse webhook payload")
	}
	if err := validate.Struct(&event); err != nil {
		return badRequest(c, err.Error())
	}

	payment, err := services.HandleWebhook(initializers.DB, event)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{"payment_status": payment.Status}})
}
