package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"savoria/initializers"
	"savoria/models"
	"savoria/utils"
)

func CreateCategory(c *fiber.Ctx) error {
	var payload models.CategoryInput
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	category := models.Category{Name: payload.Name, Description: payload.Description}
	if err := initializers.DB.Create(&category).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":  "fail",
			"message": "Category with that name already exists",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": category})
}

func ListCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := initializers.DB.Preload("MenuItems").Order("name ASC").Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load categories",
		})
	}
	return c.JSON(fiber.Map{"status": "success", "data": categories})
}

func UpdateCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid category id")
	}

	var payload models.CategoryInput
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	result := initializers.DB.Model(&models.Category{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":        payload.Name,
		"description": payload.Description,
	})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not update category",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "Category not found",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Category updated"})
}

func DeleteCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid category id")
	}

	result := initializers.DB.Delete(&models.Category{}, id)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not delete category",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "Category not found",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Category deleted"})
}

func CreateMenuItem(c *fiber.Ctx) error {
	var payload models.MenuItemInput
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	item := models.MenuItem{
		Name:         payload.Name,
		Description:  payload.Description,
		Price:        payload.Price,
		ImageURL:     payload.ImageURL,
		Available:    true,
		IsVegetarian: payload.IsVegetarian,
		CategoryID:   payload.CategoryID,
	}
	if payload.Available != nil {
		item.Available = *payload.Available
	}

	if err := initializers.DB.Create(&item).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":  "fail",
			"message": "Menu item with that name already exists",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": item})
}

// ListMenuItems supports ?category_id= and ?available= filters plus paging.
func ListMenuItems(c *fiber.Ctx) error {
	tx := initializers.DB.Model(&models.MenuItem{}).Order("name ASC")

	if categoryID := c.QueryInt("category_id"); categoryID > 0 {
		tx = tx.Where("category_id = ?", categoryID)
	}
	if available := c.Query("available"); available != "" {
		tx = tx.Where("available = ?", available == "true")
	}

	var items []models.MenuItem
	if err := utils.Paginate(c, tx, &items); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load menu",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "data": items})
}

func GetMenuItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid menu item id")
	}

	var item models.MenuItem
	err = initializers.DB.First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "Menu item not found",
		})
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load menu item",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "data": item})
}

func UpdateMenuItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid menu item id")
	}

	var payload models.MenuItemInput
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	updates := map[string]interface{}{
		"name":          payload.Name,
		"description":   payload.Description,
		"price":         payload.Price,
		"image_url":     payload.ImageURL,
		"is_vegetarian": payload.IsVegetarian,
		"category_id":   payload.CategoryID,
	}
	if payload.Available != nil {
		updates["available"] = *payload.Available
	}

	result := initializers.DB.Model(&models.MenuItem{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not update menu item",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "Menu item not found",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Menu item updated"})
}

func DeleteMenuItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid menu item id")
	}

	result := initializers.DB.Delete(&models.MenuItem{}, id)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not delete menu item",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "Menu item not found",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Menu item deleted"})
}

func SearchMenuItems(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return badRequest(c, "Search query is required")
	}

	pattern := "%" + strings.ToLower(query) + "%"
	var items []models.MenuItem
	err := initializers.DB.
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Order("name ASC").Find(&items).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Search failed",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "data": items})
}
