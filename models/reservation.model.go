package models

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

type Reservation struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	UserID          uint              `gorm:"not null;index" json:"user_id"`
	ReservationDate string            `gorm:"type:varchar(10);not null" json:"reservation_date"` // YYYY-MM-DD
	ReservationTime string            `gorm:"type:varchar(5);not null" json:"reservation_time"`  // HH:MM
	GuestCount      int               `gorm:"not null" json:"guest_count"`
	Status          ReservationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	SpecialRequests string            `gorm:"type:text" json:"special_requests,omitempty"`
	Confirmed       bool              `gorm:"default:false" json:"confirmed"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

type ReservationInput struct {
	ReservationDate string `json:"reservation_date" validate:"required,datetime=2006-01-02"`
	ReservationTime string `json:"reservation_time" validate:"required,datetime=15:04"`
	GuestCount      int    `json:"guest_count" validate:"required,gt=0"`
	SpecialRequests string `json:"special_requests"`
}
