package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"savoria/initializers"
	"savoria/models"
)

// AddCartItem inserts or increments depending on whether the user already has
// the item carted. The transaction plus the (user_id, menu_item_id) unique
// index keeps concurrent adds from creating duplicate rows.
func AddCartItem(c *fiber.Ctx) error {
	user := currentUser(c)

	var payload models.CartItemInput
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	var menuItem models.MenuItem
	err := initializers.DB.First(&menuItem, payload.MenuItemID).Error
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
	if !menuItem.Available {
		return badRequest(c, "Menu item is not available")
	}

	var item models.CartItem
	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND menu_item_id = ?", user.ID, payload.MenuItemID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			item = models.CartItem{UserID: user.ID, MenuItemID: payload.MenuItemID, Quantity: payload.Quantity}
			return tx.Create(&item).Error
		} else if err != nil {
			return err
		}
		item.Quantity += payload.Quantity
		return tx.Save(&item).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not add item to cart",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": item})
}

func GetCart(c *fiber.Ctx) error {
	user := currentUser(c)

	var items []models.CartItem
	if err := initializers.DB.Preload("MenuItem").Where("user_id = ?", user.ID).Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load cart",
		})
	}

	var total float64
	for _, item := range items {
		total += item.MenuItem.Price * float64(item.Quantity)
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"items": items, "total": total},
	})
}

func UpdateCartItem(c *fiber.Ctx) error {
	user := currentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid cart item id")
	}

	var payload struct {
		Quantity int `json:"quantity" validate:"required,gt=0"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	result := initializers.DB.Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", id, user.ID).
		Update("quantity", payload.Quantity)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not update cart item",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "Cart item not found",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Cart item updated"})
}

func RemoveCartItem(c *fiber.Ctx) error {
	user := currentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid cart item id")
	}

	result := initializers.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.CartItem{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not remove cart item",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "Cart item not found",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Cart item removed"})
}

func ClearCart(c *fiber.Ctx) error {
	user := currentUser(c)

	if err := initializers.DB.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not clear cart",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Cart cleared"})
}
