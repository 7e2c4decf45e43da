package models

import "time"

type Address struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Street    string    `gorm:"type:varchar(255);not null" json:"street"`
	City      string    `gorm:"type:varchar(100);not null" json:"city"`
	State     string    `gorm:"type:varchar(100)" json:"state,omitempty"`
	Country   string    `gorm:"type:varchar(100);not null" json:"country"`
	ZipCode   string    `gorm:"type:varchar(20);not null" json:"zip_code"`
	IsDefault bool      `gorm:"default:false" json:"is_default"`
	Label     string    `gorm:"type:varchar(50)" json:"label,omitempty"` // e.g. "Home", "Work"
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type AddressInput struct {
	Street    string `json:"street" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state"`
	Country   string `json:"country" validate:"required"`
	ZipCode   string `json:"zip_code" validate:"required"`
	IsDefault bool   `json:"is_default"`
	Label     string `json:"label"`
}
