package models

import (
	"time"
)

type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderConfirmed      OrderStatus = "confirmed"
	OrderPreparing      OrderStatus = "preparing"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

// orderStatusRank fixes the forward ordering of the lifecycle. cancelled is
// not part of the progression and is only reachable through CancelOrder.
var orderStatusRank = map[OrderStatus]int{
	OrderPending:        0,
	OrderConfirmed:      1,
	OrderPreparing:      2,
	OrderOutForDelivery: 3,
	OrderDelivered:      4,
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatusRank[s]
	return ok || s == OrderCancelled
}

// Terminal reports whether no further status updates are accepted.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// CanAdvanceTo reports whether a status update from s to next is legal.
// Only strictly forward moves through the progression are allowed.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	if s.Terminal() {
		return false
	}
	from, ok := orderStatusRank[s]
	if !ok {
		return false
	}
	to, ok := orderStatusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// Cancellable reports whether CancelOrder may still be applied.
func (s OrderStatus) Cancellable() bool {
	return s == OrderPending || s == OrderConfirmed
}

type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "delivery"
	DeliveryTypePickup   DeliveryType = "pickup"
)

type Order struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	UserID        uint         `gorm:"not null;index" json:"user_id"`
	TotalAmount   float64      `gorm:"not null" json:"total_amount"`
	Status        OrderStatus  `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentMethod string       `gorm:"type:varchar(50);default:'cash'" json:"payment_method"`
	DeliveryType  DeliveryType `gorm:"type:varchar(20);default:'delivery'" json:"delivery_type"`
	AddressID     *uint        `json:"address_id,omitempty"`
	CreatedAt     time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"autoUpdateTime" json:"updated_at"`

	Items        []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
	Address      *Address      `gorm:"foreignKey:AddressID;constraint:OnDelete:SET NULL" json:"address,omitempty"`
	DeliveryTask *DeliveryTask `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"delivery_task,omitempty"`
	Payment      *Payment      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"payment,omitempty"`
}

// OrderItem is an immutable snapshot of a menu item at order-creation time.
type OrderItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	MenuItemID uint      `gorm:"not null" json:"menu_item_id"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	Price      float64   `gorm:"not null" json:"price"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
