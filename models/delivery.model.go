package models

import "time"

type DeliveryStatus string

const (
	DeliveryAssigned  DeliveryStatus = "assigned"
	DeliveryEnRoute   DeliveryStatus = "en_route"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
)

func (s DeliveryStatus) Valid() bool {
	switch s {
	case DeliveryAssigned, DeliveryEnRoute, DeliveryDelivered, DeliveryFailed:
		return true
	}
	return false
}

func (s DeliveryStatus) Terminal() bool {
	return s == DeliveryDelivered || s == DeliveryFailed
}

// CanMoveTo covers driver-initiated updates. delivered is deliberately
// absent: it is only reachable through OTP confirmation.
func (s DeliveryStatus) CanMoveTo(next DeliveryStatus) bool {
	switch s {
	case DeliveryAssigned:
		return next == DeliveryEnRoute
	case DeliveryEnRoute:
		return next == DeliveryFailed
	}
	return false
}

type DeliveryTask struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	OrderID   uint           `gorm:"not null;uniqueIndex" json:"order_id"`
	DriverID  uint           `gorm:"not null;index" json:"driver_id"`
	Status    DeliveryStatus `gorm:"type:varchar(20);not null;default:'assigned'" json:"status"`
	OTPCode   string         `gorm:"type:varchar(10)" json:"-"`
	Confirmed bool           `gorm:"default:false" json:"confirmed"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}
