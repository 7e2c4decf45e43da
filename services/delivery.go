package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"savoria/models"
	"savoria/utils"
)

type AssignDeliveryInput struct {
	OrderID  uint `json:"order_id" validate:"required"`
	DriverID uint `json:"driver_id" validate:"required"`
}

type UpdateDeliveryStatusInput struct {
	Status models.DeliveryStatus `json:"status" validate:"required"`
}

type ConfirmDeliveryInput struct {
	OTP string `json:"otp" validate:"required"`
}

// AssignDelivery creates the single delivery task for an order and hands it
// to a driver with a fresh OTP. Admin-only, enforced at the route.
func AssignDelivery(db *gorm.DB, input AssignDeliveryInput) (*models.DeliveryTask, error) {
	var order models.Order
	err := db.First(&order, input.OrderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Message: fmt.Sprintf("order %d not found", input.OrderID)}
	} else if err != nil {
		return nil, err
	}

	var driver models.User
	err = db.First(&driver, input.DriverID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && driver.Role != models.RoleDriver) {
		return nil, &NotFoundError{Message: fmt.Sprintf("driver %d not found", input.DriverID)}
	} else if err != nil {
		return nil, err
	}

	otp, err := utils.GenerateOTP(6)
	if err != nil {
		return nil, err
	}

	task := models.DeliveryTask{
		OrderID:  order.ID,
		DriverID: driver.ID,
		Status:   models.DeliveryAssigned,
		OTPCode:  otp,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var existing models.DeliveryTask
		err := tx.Where("order_id = ?", order.ID).First(&existing).Error
		if err == nil {
			return &ConflictError{Message: fmt.Sprintf("order %d already has a delivery task", order.ID)}
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&task).Error
	})
	if err != nil {
		return nil, err
	}

	utils.PublishOrderEvent("delivery.assigned", map[string]interface{}{
		"order_id":  order.ID,
		"driver_id": driver.ID,
		"task_id":   task.ID,
	})
	utils.PushToUser(driver.ID, "delivery.assigned",
		fmt.Sprintf("Order #%d has been assigned to you.", order.ID))

	return &task, nil
}

// GetAssignedDeliveries returns the driver's active work queue, oldest first.
func GetAssignedDeliveries(db *gorm.DB, driverID uint) ([]models.DeliveryTask, error) {
	var tasks []models.DeliveryTask
	err := db.Where("driver_id = ? AND status NOT IN ?", driverID,
		[]models.DeliveryStatus{models.DeliveryDelivered, models.DeliveryFailed}).
		Order("created_at ASC").Find(&tasks).Error
	return tasks, err
}

// UpdateDeliveryStatus moves a task along assigned → en_route → failed.
// delivered is never reachable here, only through ConfirmDelivery.
func UpdateDeliveryStatus(db *gorm.DB, taskID uint, newStatus models.DeliveryStatus, driverID uint) (*models.DeliveryTask, error) {
	if !newStatus.Valid() {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown delivery status %q", newStatus)}
	}

	task, err := getDriverTask(db, taskID, driverID)
	if err != nil {
		return nil, err
	}

	if newStatus == models.DeliveryDelivered {
		return nil, &InvalidTransitionError{Message: "delivered requires OTP confirmation"}
	}
	if !task.Status.CanMoveTo(newStatus) {
		return nil, &InvalidTransitionError{
			Message: fmt.Sprintf("cannot move delivery from %q to %q", task.Status, newStatus),
		}
	}

	task.Status = newStatus
	if err := db.Save(task).Error; err != nil {
		return nil, err
	}

	utils.PublishOrderEvent("delivery.status_changed", map[string]interface{}{
		"task_id":  task.ID,
		"order_id": task.OrderID,
		"status":   task.Status,
	})

	return task, nil
}

// ConfirmDelivery completes a task via OTP. A correct code flips the task and
// its parent order to delivered exactly once; any replay fails.
func ConfirmDelivery(db *gorm.DB, taskID uint, otp string, driverID uint) (*models.DeliveryTask, error) {
	task, err := getDriverTask(db, taskID, driverID)
	if err != nil {
		return nil, err
	}

	if task.Confirmed {
		return nil, &InvalidOTPError{Message: "delivery already confirmed"}
	}
	if task.Status.Terminal() {
		return nil, &InvalidOTPError{Message: "delivery is no longer confirmable"}
	}
	if task.OTPCode == "" || otp != task.OTPCode {
		return nil, &InvalidOTPError{Message: "OTP does not match"}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		task.Confirmed = true
		task.Status = models.DeliveryDelivered
		if err := tx.Save(task).Error; err != nil {
			return err
		}
		return tx.Model(&models.Order{}).Where("id = ?", task.OrderID).
			Update("status", models.OrderDelivered).Error
	})
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := db.First(&order, task.OrderID).Error; err == nil {
		notifyOrderEvent(db, &order, "order.delivered", "Order delivered",
			fmt.Sprintf("Your order #%d has been delivered. Enjoy!", order.ID))
	}

	return task, nil
}

func getDriverTask(db *gorm.DB, taskID, driverID uint) (*models.DeliveryTask, error) {
	var task models.DeliveryTask
	err := db.First(&task, taskID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Message: fmt.Sprintf("delivery task %d not found", taskID)}
	} else if err != nil {
		return nil, err
	}
	if task.DriverID != driverID {
		return nil, &AuthorizationError{Message: "delivery task is assigned to another driver"}
	}
	return &task, nil
}
