package models

import "time"

type Restaurant struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description  string    `gorm:"type:varchar(500)" json:"description,omitempty"`
	Address      string    `gorm:"type:varchar(255);not null" json:"address"`
	Phone        string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	OpeningHours string    `gorm:"type:varchar(100)" json:"opening_hours,omitempty"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type RestaurantInput struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	Address      string `json:"address" validate:"required"`
	Phone        string `json:"phone"`
	OpeningHours string `json:"opening_hours"`
	IsActive     *bool  `json:"is_active"`
}
