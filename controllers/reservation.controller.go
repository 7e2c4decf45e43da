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

func CreateReservation(c *fiber.Ctx) error {
	user := currentUser(c)

	var payload models.ReservationInput
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	reservation := models.Reservation{
		UserID:          user.ID,
		ReservationDate: payload.ReservationDate,
		ReservationTime: payload.ReservationTime,
		GuestCount:      payload.GuestCount,
		Status:          models.ReservationPending,
		SpecialRequests: payload.SpecialRequests,
	}

	if err := initializers.DB.Create(&reservation).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not create reservation",
		})
	}

	utils.SendEmail(user.Email, "Reservation received",
		fmt.Sprintf("<p>Your table for %d on %s at %s is pending confirmation.</p>",
			reservation.GuestCount, reservation.ReservationDate, reservation.ReservationTime))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": reservation})
}

func GetReservation(c *fiber.Ctx) error {
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

	return c.JSON(fiber.Map{"status": "success", "data": reservation})
}

// ListReservations returns the caller's reservations; admins see all.
func ListReservations(c *fiber.Ctx) error {
	user := currentUser(c)

	tx := initializers.DB.Order("reservation_date DESC, reservation_time DESC")
	if user.Role != models.RoleAdmin {
		tx = tx.Where("user_id = ?", user.ID)
	}

	var reservations []models.Reservation
	if err := utils.Paginate(c, tx, &reservations); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load reservations",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "data": reservations})
}

func UpdateReservation(c *fiber.Ctx) error {
	user := currentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid reservation id")
	}

	var payload models.ReservationInput
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Could not parse request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	var reservation models.Reservation
	err = initializers.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&reservation).Error
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

	if reservation.Status == models.ReservationCancelled {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":  "fail",
			"message": "Cancelled reservations cannot be changed",
		})
	}

	reservation.ReservationDate = payload.ReservationDate
	reservation.ReservationTime = payload.ReservationTime
	reservation.GuestCount = payload.GuestCount
	reservation.SpecialRequests = payload.SpecialRequests

	if err := initializers.DB.Save(&reservation).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not update reservation",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "data": reservation})
}

// ConfirmReservation is the admin action that locks a booking in.
func ConfirmReservation(c *fiber.Ctx) error {
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

	if reservation.Status != models.ReservationPending {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":  "fail",
			"message": "Only pending reservations can be confirmed",
		})
	}

	reservation.Status = models.ReservationConfirmed
	reservation.Confirmed = true
	if err := initializers.DB.Save(&reservation).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not confirm reservation",
		})
	}

	var owner models.User
	if err := initializers.DB.First(&owner, reservation.UserID).Error; err == nil {
		utils.SendEmail(owner.Email, "Reservation confirmed",
			fmt.Sprintf("<p>Your table for %d on %s at %s is confirmed. See you then!</p>",
				reservation.GuestCount, reservation.ReservationDate, reservation.ReservationTime))
	}

	return c.JSON(fiber.Map{"status": "success", "data": reservation})
}

func CancelReservation(c *fiber.Ctx) error {
	user := currentUser(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid reservation id")
	}

	var reservation models.Reservation
	tx := initializers.DB.Where("id = ?", id)
	if user.Role != models.RoleAdmin {
		tx = tx.Where("user_id = ?", user.ID)
	}
	err = tx.First(&reservation).Error
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

	if reservation.Status == models.ReservationCancelled {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":  "fail",
			"message": "Reservation is already cancelled",
		})
	}

	reservation.Status = models.ReservationCancelled
	reservation.Confirmed = false
	if err := initializers.DB.Save(&reservation).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not cancel reservation",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Reservation cancelled"})
}
