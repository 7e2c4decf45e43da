package models

type Category struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string     `gorm:"type:varchar(255)" json:"description,omitempty"`
	MenuItems   []MenuItem `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"menu_items,omitempty"`
}

type MenuItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description  string  `gorm:"type:varchar(500)" json:"description,omitempty"`
	Price        float64 `gorm:"not null" json:"price"`
	ImageURL     string  `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	Available    bool    `gorm:"default:true" json:"available"`
	IsVegetarian bool    `gorm:"default:false" json:"is_vegetarian"`
	CategoryID   *uint   `gorm:"index" json:"category_id,omitempty"`
}

type MenuItemInput struct {
	Name         string  `json:"name" validate:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	ImageURL     string  `json:"image_url"`
	Available    *bool   `json:"available"`
	IsVegetarian bool    `json:"is_vegetarian"`
	CategoryID   *uint   `json:"category_id"`
}

type CategoryInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}
