package models

import "time"

type InventoryItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Quantity  float64   `gorm:"not null;default:0" json:"quantity"`
	Unit      string    `gorm:"type:varchar(20);not null" json:"unit"` // kg, l, pcs
	Threshold float64   `gorm:"not null;default:0" json:"threshold"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type InventoryItemInput struct {
	Name      string  `json:"name" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"gte=0"`
	Unit      string  `json:"unit" validate:"required"`
	Threshold float64 `json:"threshold" validate:"gte=0"`
}
