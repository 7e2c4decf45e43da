package services

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"savoria/models"
	"savoria/utils"
)

type OrderItemInput struct {
	MenuItemID uint `json:"menu_item_id" validate:"required"`
	Quantity   int  `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderInput struct {
	Items             []OrderItemInput    `json:"items"`
	PaymentMethod     string              `json:"payment_method" validate:"required"`
	DeliveryType      models.DeliveryType `json:"delivery_type" validate:"required,oneof=delivery pickup"`
	DeliveryAddressID *uint               `json:"delivery_address_id"`
}

type UpdateOrderStatusInput struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

// TrackingView is the projection returned by order tracking.
type TrackingView struct {
	OrderID      uint                   `json:"order_id"`
	Status       models.OrderStatus     `json:"status"`
	DriverStatus *models.DeliveryStatus `json:"driver_status,omitempty"`
	ETAMinutes   *int                   `json:"eta_minutes,omitempty"`
}

// CreateOrder places an order from the user's cart snapshot. When the request
// carries explicit items those are the snapshot, otherwise the persisted cart
// rows are. Totals use current menu prices; each line keeps a price snapshot.
// The order, its lines and the cart clear commit in one transaction.
func CreateOrder(db *gorm.DB, userID uint, input CreateOrderInput) (*models.Order, error) {
	snapshot := input.Items
	if len(snapshot) == 0 {
		var cartItems []models.CartItem
		if err := db.Where("user_id = ?", userID).Find(&cartItems).Error; err != nil {
			return nil, err
		}
		for _, ci := range cartItems {
			snapshot = append(snapshot, OrderItemInput{MenuItemID: ci.MenuItemID, Quantity: ci.Quantity})
		}
	}
	if len(snapshot) == 0 {
		return nil, &ValidationError{Message: "cart is empty"}
	}
	for _, item := range snapshot {
		if item.Quantity <= 0 {
			return nil, &ValidationError{Message: fmt.Sprintf("invalid quantity for menu item %d", item.MenuItemID)}
		}
	}

	if input.DeliveryType == models.DeliveryTypeDelivery {
		if input.DeliveryAddressID == nil {
			return nil, &ValidationError{Message: "delivery address is required for delivery orders"}
		}
		var address models.Address
		err := db.Where("id = ? AND user_id = ?", *input.DeliveryAddressID, userID).First(&address).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ValidationError{Message: "delivery address does not belong to user"}
		} else if err != nil {
			return nil, err
		}
	}

	order := models.Order{
		UserID:        userID,
		Status:        models.OrderPending,
		PaymentMethod: input.PaymentMethod,
		DeliveryType:  input.DeliveryType,
	}
	if input.DeliveryType == models.DeliveryTypeDelivery {
		order.AddressID = input.DeliveryAddressID
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var total float64
		lines := make([]models.OrderItem, 0, len(snapshot))

		for _, item := range snapshot {
			var menuItem models.MenuItem
			err := tx.First(&menuItem, item.MenuItemID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &ValidationError{Message: fmt.Sprintf("menu item %d not found", item.MenuItemID)}
			} else if err != nil {
				return err
			}
			if !menuItem.Available {
				return &ValidationError{Message: fmt.Sprintf("menu item %q is not available", menuItem.Name)}
			}

			total += menuItem.Price * float64(item.Quantity)
			lines = append(lines, models.OrderItem{
				MenuItemID: menuItem.ID,
				Name:       menuItem.Name,
				Price:      menuItem.Price,
				Quantity:   item.Quantity,
			})
		}

		order.TotalAmount = total
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].OrderID = order.ID
			if err := tx.Create(&lines[i]).Error; err != nil {
				return err
			}
		}
		order.Items = lines

		// the snapshot is consumed
		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	notifyOrderEvent(db, &order, "order.created", "Order confirmed",
		fmt.Sprintf("Your order #%d for %.2f has been placed.", order.ID, order.TotalAmount))

	return &order, nil
}

// GetOrder returns the order when the requester owns it or is an admin.
func GetOrder(db *gorm.DB, orderID uint, requester models.UserResponse) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Items").First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Message: fmt.Sprintf("order %d not found", orderID)}
	} else if err != nil {
		return nil, err
	}
	if order.UserID != requester.ID && requester.Role != models.RoleAdmin {
		return nil, &AuthorizationError{Message: "order belongs to another user"}
	}
	return &order, nil
}

// ListOrders returns the user's orders, newest first.
func ListOrders(db *gorm.DB, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := db.Preload("Items").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// UpdateStatus advances an order strictly forward through the lifecycle.
// Terminal orders and backward or sideways moves fail.
func UpdateStatus(db *gorm.DB, orderID uint, newStatus models.OrderStatus, requester models.UserResponse) (*models.Order, error) {
	if !newStatus.Valid() {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown order status %q", newStatus)}
	}
	if newStatus == models.OrderCancelled {
		return nil, &InvalidTransitionError{Message: "orders are cancelled through the cancel action"}
	}

	order, err := GetOrder(db, orderID, requester)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanAdvanceTo(newStatus) {
		return nil, &InvalidTransitionError{
			Message: fmt.Sprintf("cannot move order from %q to %q", order.Status, newStatus),
		}
	}

	order.Status = newStatus
	if err := db.Save(order).Error; err != nil {
		return nil, err
	}

	notifyOrderEvent(db, order, "order.status_changed", "Order update",
		fmt.Sprintf("Your order #%d is now %s.", order.ID, order.Status))

	return order, nil
}

// CancelOrder cancels an order that is still pending or confirmed.
func CancelOrder(db *gorm.DB, orderID uint, requester models.UserResponse) (*models.Order, error) {
	order, err := GetOrder(db, orderID, requester)
	if err != nil {
		return nil, err
	}
	if !order.Status.Cancellable() {
		return nil, &InvalidTransitionError{
			Message: fmt.Sprintf("order in status %q can no longer be cancelled", order.Status),
		}
	}

	order.Status = models.OrderCancelled
	if err := db.Save(order).Error; err != nil {
		return nil, err
	}

	notifyOrderEvent(db, order, "order.cancelled", "Order cancelled",
		fmt.Sprintf("Your order #%d has been cancelled.", order.ID))

	return order, nil
}

// deliveryETAMinutes is a fixed schedule keyed on delivery status. There are
// no coordinates in the schema, so no distance math.
func deliveryETAMinutes(status models.DeliveryStatus) *int {
	var eta int
	switch status {
	case models.DeliveryAssigned:
		eta = 45
	case models.DeliveryEnRoute:
		eta = 20
	default:
		return nil
	}
	return &eta
}

// TrackOrder projects the order status plus the delivery task view if one exists.
func TrackOrder(db *gorm.DB, orderID uint, requester models.UserResponse) (*TrackingView, error) {
	order, err := GetOrder(db, orderID, requester)
	if err != nil {
		return nil, err
	}

	view := &TrackingView{OrderID: order.ID, Status: order.Status}

	var task models.DeliveryTask
	err = db.Where("order_id = ?", order.ID).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return view, nil
	} else if err != nil {
		return nil, err
	}

	view.DriverStatus = &task.Status
	view.ETAMinutes = deliveryETAMinutes(task.Status)
	return view, nil
}

// notifyOrderEvent fans an order event out to every best-effort channel:
// notification row, email, broker, websocket. Failures never fail the request.
func notifyOrderEvent(db *gorm.DB, order *models.Order, event, title, body string) {
	notification := models.Notification{UserID: order.UserID, Title: title, Body: body}
	if err := db.Create(&notification).Error; err != nil {
		log.Println("Could not store notification:", err)
	}

	var user models.User
	if err := db.First(&user, order.UserID).Error; err == nil {
		utils.SendEmail(user.Email, title, fmt.Sprintf("<p>%s</p>", body))
	}

	utils.PublishOrderEvent(event, map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"status":   order.Status,
		"total":    order.TotalAmount,
	})
	utils.PushToUser(order.UserID, event, body)
}
