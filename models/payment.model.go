package models

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
	PaymentRefunded  PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentCancelled, PaymentRefunded:
		return true
	}
	return false
}

// Terminal payments ignore further webhook events for the same transaction.
func (s PaymentStatus) Terminal() bool {
	return s != PaymentPending
}

type Payment struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	OrderID       uint          `gorm:"not null;index" json:"order_id"`
	UserID        uint          `gorm:"not null;index" json:"user_id"`
	Amount        float64       `gorm:"not null" json:"amount"`
	Status        PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Method        string        `gorm:"type:varchar(50);default:'cash'" json:"method"`
	TransactionID string        `gorm:"type:varchar(100);uniqueIndex" json:"transaction_id,omitempty"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}
