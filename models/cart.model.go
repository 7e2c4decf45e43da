package models

type CartItem struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	UserID     uint     `gorm:"not null;uniqueIndex:uq_user_menu_item" json:"user_id"`
	MenuItemID uint     `gorm:"not null;uniqueIndex:uq_user_menu_item" json:"menu_item_id"`
	Quantity   int      `gorm:"not null;default:1" json:"quantity"`
	MenuItem   MenuItem `gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE" json:"menu_item,omitempty"`
}

type CartItemInput struct {
	MenuItemID uint `json:"menu_item_id" validate:"required"`
	Quantity   int  `json:"quantity" validate:"required,gt=0"`
}
