package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"savoria/initializers"
	"savoria/models"
	"savoria/utils"
)

func CreateSupportTicket(c *fiber.Ctx) error {
	user := currentUser(c)

	var payload models.SupportTicketInput
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	ticket := models.SupportTicket{
		UserID:        user.ID,
		Subject:       payload.Subject,
		Message:       payload.Message,
		OrderID:       payload.OrderID,
		ReservationID: payload.ReservationID,
		Status:        models.TicketOpen,
	}

	if err := initializers.DB.Create(&ticket).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not create ticket",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": ticket})
}

func ListMyTickets(c *fiber.Ctx) error {
	user := currentUser(c)

	var tickets []models.SupportTicket
	err := initializers.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").Find(&tickets).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load tickets",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "data": tickets})
}

// ListAllTickets is the admin queue, open tickets first.
func ListAllTickets(c *fiber.Ctx) error {
	tx := initializers.DB.Model(&models.SupportTicket{}).Order("status ASC, created_at DESC")
	if status := c.Query("status"); status != "" {
		tx = tx.Where("status = ?", status)
	}

	var tickets []models.SupportTicket
	if err := utils.Paginate(c, tx, &tickets); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load tickets",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "data": tickets})
}

func GetSupportTicket(c *fiber.Ctx) error {
	user := currentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid ticket id")
	}

	var ticket models.SupportTicket
	err = initializers.DB.Preload("Replies").First(&ticket, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "Ticket not found",
		})
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load ticket",
		})
	}

	if ticket.UserID != user.ID && user.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "Ticket belongs to another user",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "data": ticket})
}

// UpdateTicketStatus is an admin action.
func UpdateTicketStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid ticket id")
	}

	var payload struct {
		Status models.TicketStatus `json:"status" validate:"required"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if !payload.Status.Valid() {
		return badRequest(c, "Unknown ticket status")
	}

	result := initializers.DB.Model(&models.SupportTicket{}).
		Where("id = ?", id).Update("status", payload.Status)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not update ticket",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "Ticket not found",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Ticket updated"})
}

func ReplyToTicket(c *fiber.Ctx) error {
	user := currentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid ticket id")
	}

	var payload models.TicketReplyInput
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	var ticket models.SupportTicket
	err = initializers.DB.First(&ticket, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "Ticket not found",
		})
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load ticket",
		})
	}

	isAdmin := user.Role == models.RoleAdmin
	if ticket.UserID != user.ID && !isAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "Ticket belongs to another user",
		})
	}
	if ticket.Status == models.TicketClosed {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":  "fail",
			"message": "Ticket is closed",
		})
	}

	reply := models.TicketReply{
		TicketID: ticket.ID,
		SenderID: user.ID,
		Message:  payload.Message,
		IsAdmin:  isAdmin,
	}

	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reply).Error; err != nil {
			return err
		}
		if isAdmin && ticket.Status == models.TicketOpen {
			return tx.Model(&ticket).Update("status", models.TicketInProgress).Error
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not save reply",
		})
	}

	// let the customer know an agent responded
	if isAdmin {
		var owner models.User
		if err := initializers.DB.First(&owner, ticket.UserID).Error; err == nil {
			utils.SendEmail(owner.Email, "Support replied to your ticket",
				"<p>There is a new reply on your support ticket: "+ticket.Subject+"</p>")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": reply})
}
