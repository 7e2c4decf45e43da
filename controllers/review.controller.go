package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"savoria/initializers"
	"savoria/models"
)

func CreateReview(c *fiber.Ctx) error {
	user := currentUser(c)

	var payload models.ReviewInput
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}
	if (payload.MenuItemID == nil) == (payload.RestaurantID == nil) {
		return badRequest(c, "Review must target exactly one of menu_item_id or restaurant_id")
	}

	if payload.MenuItemID != nil {
		var item models.MenuItem
		if err := initializers.DB.First(&item, *payload.MenuItemID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "fail",
				"message": "Menu item not found",
			})
		}
	} else {
		var restaurant models.Restaurant
		if err := initializers.DB.First(&restaurant, *payload.RestaurantID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "fail",
				"message": "Restaurant not found",
			})
		}
	}

	review := models.Review{
		UserID:       user.ID,
		MenuItemID:   payload.MenuItemID,
		RestaurantID: payload.RestaurantID,
		Rating:       payload.Rating,
		Comment:      payload.Comment,
	}

	if err := initializers.DB.Create(&review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not create review",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": review})
}

func GetReview(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid review id")
	}

	var review models.Review
	err = initializers.DB.First(&review, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "Review not found",
		})
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load review",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "data": review})
}

func ListReviewsForItem(c *fiber.Ctx) error {
	itemID, err := c.ParamsInt("item_id")
	if err != nil {
		return badRequest(c, "Invalid menu item id")
	}

	var reviews []models.Review
	err = initializers.DB.Where("menu_item_id = ?", itemID).
		Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load reviews",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "data": reviews})
}

func ListMyReviews(c *fiber.Ctx) error {
	user := currentUser(c)

	var reviews []models.Review
	err := initializers.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load reviews",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "data": reviews})
}

func UpdateReview(c *fiber.Ctx) error {
	user := currentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid review id")
	}

	var payload struct {
		Rating  float64 `json:"rating" validate:"required,gte=1,lte=5"`
		Comment string  `json:"comment"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	result := initializers.DB.Model(&models.Review{}).
		Where("id = ? AND user_id = ?", id, user.ID).
		Updates(map[string]interface{}{"rating": payload.Rating, "comment": payload.Comment})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not update review",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "Review not found",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Review updated"})
}

func DeleteReview(c *fiber.Ctx) error {
	user := currentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid review id")
	}

	tx := initializers.DB.Where("id = ?", id)
	if user.Role != models.RoleAdmin {
		tx = tx.Where("user_id = ?", user.ID)
	}
	result := tx.Delete(&models.Review{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not delete review",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "Review not found",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Review deleted"})
}
