package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"savoria/initializers"
	"savoria/models"
)

func GetMe(c *fiber.Ctx) error {
	user := currentUser(c)
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"user": user},
	})
}

func UpdateMe(c *fiber.Ctx) error {
	user := currentUser(c)

	var payload struct {
		FullName    string `json:"full_name"`
		PhoneNumber string `json:"phone_number"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}

	updates := map[string]interface{}{}
	if payload.FullName != "" {
		updates["full_name"] = payload.FullName
	}
	if payload.PhoneNumber != "" {
		updates["phone_number"] = payload.PhoneNumber
	}
	if len(updates) == 0 {
		return badRequest(c, "Nothing to update")
	}

	if err := initializers.DB.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not update profile",
		})
	}

	var updated models.User
	initializers.DB.First(&updated, user.ID)
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"user": models.FilterUserRecord(&updated)},
	})
}

func ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := initializers.DB.Order("id ASC").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not list users",
		})
	}

	out := make([]models.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, models.FilterUserRecord(&users[i]))
	}
	return c.JSON(fiber.Map{"status": "success", "data": out})
}

func GetUserByID(c *fiber.Ctx) error {
	requester := currentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid user id")
	}
	if requester.Role != models.RoleAdmin && requester.ID != uint(id) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You can only view your own profile",
		})
	}

	var user models.User
	if err := initializers.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "fail",
				"message": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load user",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"user": models.FilterUserRecord(&user)},
	})
}

// BlockUser flips is_active off so the account can no longer authenticate.
func BlockUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	result := initializers.DB.Model(&models.User{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not block user",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "User not found",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "User blocked"})
}

// DeleteUser removes an account; owned rows go with it via cascade.
func DeleteUser(c *fiber.Ctx) error {
	requester := currentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid user id")
	}
	if requester.Role != models.RoleAdmin && requester.ID != uint(id) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You can only delete your own account",
		})
	}

	result := initializers.DB.Select("Addresses", "CartItems", "Orders", "Reservations",
		"Reviews", "SupportTickets", "Payments", "Notifications").
		Delete(&models.User{ID: uint(id)})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not delete user",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "User not found",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "User deleted"})
}
