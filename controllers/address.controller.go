package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"savoria/initializers"
	"savoria/models"
)

func CreateAddress(c *fiber.Ctx) error {
	user := currentUser(c)

	var payload models.AddressInput
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	address := models.Address{
		UserID:    user.ID,
		Street:    payload.Street,
		City:      payload.City,
		State:     payload.State,
		Country:   payload.Country,
		ZipCode:   payload.ZipCode,
		IsDefault: payload.IsDefault,
		Label:     payload.Label,
	}

	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			// only one default per user
			if err := tx.Model(&models.Address{}).Where("user_id = ?", user.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not create address",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": address})
}

func GetMyAddresses(c *fiber.Ctx) error {
	user := currentUser(c)

	var addresses []models.Address
	if err := initializers.DB.Where("user_id = ?", user.ID).Order("id ASC").Find(&addresses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load addresses",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "data": addresses})
}

func GetDefaultAddress(c *fiber.Ctx) error {
	user := currentUser(c)

	var address models.Address
	err := initializers.DB.Where("user_id = ? AND is_default = ?", user.ID, true).First(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "No default address set",
		})
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load address",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "data": address})
}

func UpdateAddress(c *fiber.Ctx) error {
	user := currentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid address id")
	}

	var payload models.AddressInput
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	var address models.Address
	err = initializers.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "Address not found",
		})
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load address",
		})
	}

	address.Street = payload.Street
	address.City = payload.City
	address.State = payload.State
	address.Country = payload.Country
	address.ZipCode = payload.ZipCode
	address.Label = payload.Label

	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		if payload.IsDefault && !address.IsDefault {
			if err := tx.Model(&models.Address{}).Where("user_id = ?", user.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		address.IsDefault = payload.IsDefault
		return tx.Save(&address).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not update address",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "data": address})
}

func DeleteAddress(c *fiber.Ctx) error {
	user := currentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid address id")
	}

	result := initializers.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.Address{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not delete address",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "Address not found",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Address deleted"})
}
