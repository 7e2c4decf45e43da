package models

import "time"

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketResolved, TicketClosed:
		return true
	}
	return false
}

type SupportTicket struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	UserID        uint         `gorm:"not null;index" json:"user_id"`
	Subject       string       `gorm:"type:varchar(255);not null" json:"subject"`
	Message       string       `gorm:"type:text;not null" json:"message"`
	OrderID       *uint        `json:"order_id,omitempty"`
	ReservationID *uint        `json:"reservation_id,omitempty"`
	Status        TicketStatus `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	CreatedAt     time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"autoUpdateTime" json:"updated_at"`

	Replies []TicketReply `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE" json:"replies,omitempty"`
}

type TicketReply struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TicketID  uint      `gorm:"not null;index" json:"ticket_id"`
	SenderID  uint      `gorm:"not null" json:"sender_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	IsAdmin   bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type SupportTicketInput struct {
	Subject       string `json:"subject" validate:"required"`
	Message       string `json:"message" validate:"required"`
	OrderID       *uint  `json:"order_id"`
	ReservationID *uint  `json:"reservation_id"`
}

type TicketReplyInput struct {
	Message string `json:"message" validate:"required"`
}
