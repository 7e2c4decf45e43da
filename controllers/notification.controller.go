package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"savoria/initializers"
	"savoria/models"
	"savoria/utils"
)

func ListMyNotifications(c *fiber.Ctx) error {
	user := currentUser(c)

	var notifications []models.Notification
	err := initializers.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").Find(&notifications).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load notifications",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "data": notifications})
}

func MarkNotificationRead(c *fiber.Ctx) error {
	user := currentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid notification id")
	}

	result := initializers.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, user.ID).Update("read", true)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not update notification",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "Notification not found",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Notification marked as read"})
}

// SendReservationReminder emails the reservation owner. 202: delivery is
// asynchronous best-effort, only the lookup can fail the request.
func SendReservationReminder(c *fiber.Ctx) error {
	user := currentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid reservation id")
	}

	var reservation models.Reservation
	err = initializers.DB.First(&reservation, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "Reservation not found",
		})
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load reservation",
		})
	}
	if reservation.UserID != user.ID && user.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "Reservation belongs to another user",
		})
	}

	var owner models.User
	if err := initializers.DB.First(&owner, reservation.UserID).Error; err == nil {
		utils.SendEmail(owner.Email, "Reservation reminder",
			fmt.Sprintf("<p>Reminder: your table for %d is booked on %s at %s.</p>",
				reservation.GuestCount, reservation.ReservationDate, reservation.ReservationTime))
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "success", "message": "Reminder queued"})
}

func SendOrderConfirmation(c *fiber.Ctx) error {
	return sendOrderEmail(c, "Order confirmation", func(order *models.Order) string {
		return fmt.Sprintf("<p>Your order #%d is %s. Total: %.2f.</p>", order.ID, order.Status, order.TotalAmount)
	})
}

// SendOrderReceipt emails an itemized receipt for a delivered order.
func SendOrderReceipt(c *fiber.Ctx) error {
	return sendOrderEmail(c, "Your receipt", func(order *models.Order) string {
		body := fmt.Sprintf("<h3>Receipt for order #%d</h3><ul>", order.ID)
		for _, line := range order.Items {
			body += fmt.Sprintf("<li>%s x%d - %.2f</li>", line.Name, line.Quantity, line.Price*float64(line.Quantity))
		}
		body += fmt.Sprintf("</ul><p>Total: %.2f</p>", order.TotalAmount)
		return body
	})
}

func sendOrderEmail(c *fiber.Ctx, subject string, render func(*models.Order) string) error {
	user := currentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid order id")
	}

	var order models.Order
	err = initializers.DB.Preload("Items").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "Order not found",
		})
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load order",
		})
	}
	if order.UserID != user.ID && user.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "Order belongs to another user",
		})
	}

	var owner models.User
	if err := initializers.DB.First(&owner, order.UserID).Error; err == nil {
		utils.SendEmail(owner.Email, subject, render(&order))
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "success", "message": "Email queued"})
}

// NotifyAdmins fans a message out to every admin account.
func NotifyAdmins(c *fiber.Ctx) error {
	var payload struct {
		Subject string `json:"subject"`
		Message string `json:"message" validate:"required"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}
	if payload.Subject == "" {
		payload.Subject = "Admin Notification"
	}

	var admins []models.User
	if err := initializers.DB.Where("role = ?", models.RoleAdmin).Find(&admins).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load admins",
		})
	}

	for i := range admins {
		notification := models.Notification{
			UserID: admins[i].ID,
			Title:  payload.Subject,
			Body:   payload.Message,
		}
		initializers.DB.Create(&notification)
		utils.SendEmail(admins[i].Email, payload.Subject, "<p>"+payload.Message+"</p>")
		utils.PushToUser(admins[i].ID, "admin.alert", payload.Message)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "success", "message": "Admins notified"})
}
