package models

import (
	"time"
)

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
	RoleDriver   UserRole = "driver"
)

type User struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Email       string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password    string   `gorm:"type:varchar(255);not null" json:"-"`
	FullName    string   `gorm:"type:varchar(100)" json:"full_name"`
	PhoneNumber string   `gorm:"type:varchar(20)" json:"phone_number"`
	IsActive    bool     `gorm:"default:true" json:"is_active"`
	Role        UserRole `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Addresses      []Address       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CartItems      []CartItem      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Orders         []Order         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Reservations   []Reservation   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Reviews        []Review        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	SupportTickets []SupportTicket `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Payments       []Payment       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Notifications  []Notification  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	DeliveryTasks  []DeliveryTask  `gorm:"foreignKey:DriverID;constraint:OnDelete:CASCADE" json:"-"`
}

type SignUpInput struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FullName    string `json:"full_name" validate:"required"`
	PhoneNumber string `json:"phone_number"`
}

type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the principal stored in c.Locals("user") after auth.
type UserResponse struct {
	ID          uint      `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	PhoneNumber string    `json:"phone_number"`
	Role        UserRole  `json:"role"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func FilterUserRecord(user *User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		PhoneNumber: user.PhoneNumber,
		Role:        user.Role,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
	}
}
