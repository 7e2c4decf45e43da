package models

import "time"

// Review targets either a menu item or a restaurant, never both.
type Review struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	MenuItemID   *uint     `gorm:"index" json:"menu_item_id,omitempty"`
	RestaurantID *uint     `gorm:"index" json:"restaurant_id,omitempty"`
	Rating       float64   `gorm:"not null" json:"rating"`
	Comment      string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type ReviewInput struct {
	MenuItemID   *uint   `json:"menu_item_id"`
	RestaurantID *uint   `json:"restaurant_id"`
	Rating       float64 `json:"rating" validate:"required,gte=1,lte=5"`
	Comment      string  `json:"comment"`
}
