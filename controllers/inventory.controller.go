package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"savoria/initializers"
	"savoria/models"
)

func CreateInventoryItem(c *fiber.Ctx) error {
	var payload models.InventoryItemInput
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	item := models.InventoryItem{
		Name:      payload.Name,
		Quantity:  payload.Quantity,
		Unit:      payload.Unit,
		Threshold: payload.Threshold,
	}

	if err := initializers.DB.Create(&item).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":  "fail",
			"message": "Inventory item with that name already exists",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": item})
}

func ListInventoryItems(c *fiber.Ctx) error {
	var items []models.InventoryItem
	if err := initializers.DB.Order("name ASC").Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load inventory",
		})
	}
	return c.JSON(fiber.Map{"status": "success", "data": items})
}

func GetInventoryItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid inventory item id")
	}

	var item models.InventoryItem
	err = initializers.DB.First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "Inventory item not found",
		})
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load inventory item",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "data": item})
}

func UpdateInventoryItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid inventory item id")
	}

	var payload models.InventoryItemInput
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	result := initializers.DB.Model(&models.InventoryItem{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":      payload.Name,
		"quantity":  payload.Quantity,
		"unit":      payload.Unit,
		"threshold": payload.Threshold,
	})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not update inventory item",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "Inventory item not found",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Inventory item updated"})
}

func DeleteInventoryItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid inventory item id")
	}

	result := initializers.DB.Delete(&models.InventoryItem{}, id)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not delete inventory item",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "Inventory item not found",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Inventory item deleted"})
}

// ListLowStockItems surfaces everything at or below its restock threshold.
func ListLowStockItems(c *fiber.Ctx) error {
	var items []models.InventoryItem
	err := initializers.DB.Where("quantity <= threshold").Order("quantity ASC").Find(&items).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load inventory",
		})
	}
	return c.JSON(fiber.Map{"status": "success", "data": items})
}
