package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"savoria/initializers"
	"savoria/models"
)

func CreateRestaurant(c *fiber.Ctx) error {
	var payload models.RestaurantInput
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	restaurant := models.Restaurant{
		Name:         payload.Name,
		Description:  payload.Description,
		Address:      payload.Address,
		Phone:        payload.Phone,
		OpeningHours: payload.OpeningHours,
		IsActive:     true,
	}
	if payload.IsActive != nil {
		restaurant.IsActive = *payload.IsActive
	}

	if err := initializers.DB.Create(&restaurant).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":  "fail",
			"message": "Restaurant with that name already exists",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": restaurant})
}

func ListRestaurants(c *fiber.Ctx) error {
	var restaurants []models.Restaurant
	if err := initializers.DB.Where("is_active = ?", true).Order("name ASC").Find(&restaurants).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load restaurants",
		})
	}
	return c.JSON(fiber.Map{"status": "success", "data": restaurants})
}

func GetRestaurant(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid restaurant id")
	}

	var restaurant models.Restaurant
	err = initializers.DB.First(&restaurant, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "Restaurant not found",
		})
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load restaurant",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "data": restaurant})
}

func UpdateRestaurant(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid restaurant id")
	}

	var payload models.RestaurantInput
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	updates := map[string]interface{}{
		"name":          payload.Name,
		"description":   payload.Description,
		"address":       payload.Address,
		"phone":         payload.Phone,
		"opening_hours": payload.OpeningHours,
	}
	if payload.IsActive != nil {
		updates["is_active"] = *payload.IsActive
	}

	result := initializers.DB.Model(&models.Restaurant{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not update restaurant",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "Restaurant not found",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Restaurant updated"})
}

func DeleteRestaurant(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid restaurant id")
	}

	result := initializers.DB.Delete(&models.Restaurant{}, id)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not delete restaurant",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "Restaurant not found",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Restaurant deleted"})
}
