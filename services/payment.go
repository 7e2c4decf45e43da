package services

import (
	"errors"
	"fmt"

	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"

	"savoria/models"
	"savoria/utils"
)

type InitiatePaymentInput struct {
	OrderID uint   `json:"order_id" validate:"required"`
	Method  string `json:"method" validate:"required"`
}

type ConfirmPaymentInput struct {
	TransactionID string `json:"transaction_id" validate:"required"`
}

// WebhookEvent is the payload the payment gateway delivers. Events may arrive
// duplicated or out of order; TransactionID is the idempotency key.
type WebhookEvent struct {
	TransactionID string `json:"transaction_id" validate:"required"`
	Status        string `json:"status" validate:"required"`
}

// InitiatePayment opens a payment session for an owned, still-payable order.
// The amount always comes from the order row, never from the client.
func InitiatePayment(db *gorm.DB, userID uint, input InitiatePaymentInput) (*models.Payment, string, error) {
	var order models.Order
	err := db.First(&order, input.OrderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", &NotFoundError{Message: fmt.Sprintf("order %d not found", input.OrderID)}
	} else if err != nil {
		return nil, "", err
	}
	if order.UserID != userID {
		return nil, "", &AuthorizationError{Message: "order belongs to another user"}
	}
	if order.Status.Terminal() {
		return nil, "", &ValidationError{Message: fmt.Sprintf("order in status %q cannot be paid", order.Status)}
	}

	var completed models.Payment
	err = db.Where("order_id = ? AND status = ?", order.ID, models.PaymentCompleted).First(&completed).Error
	if err == nil {
		return nil, "", &ConflictError{Message: fmt.Sprintf("order %d is already paid", order.ID)}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	payment := models.Payment{
		OrderID:       order.ID,
		UserID:        userID,
		Amount:        order.TotalAmount,
		Status:        models.PaymentPending,
		Method:        input.Method,
		TransactionID: uuid.NewV4().String(),
	}
	if err := db.Create(&payment).Error; err != nil {
		return nil, "", err
	}

	checkoutURL, err := utils.CreateGatewaySession(payment.TransactionID, payment.Amount)
	if err != nil {
		return nil, "", err
	}
	return &payment, checkoutURL, nil
}

// GetPaymentStatus returns the payment when the requester owns it or is an admin.
func GetPaymentStatus(db *gorm.DB, paymentID uint, requester models.UserResponse) (*models.Payment, error) {
	var payment models.Payment
	err := db.First(&payment, paymentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Message: fmt.Sprintf("payment %d not found", paymentID)}
	} else if err != nil {
		return nil, err
	}
	if payment.UserID != requester.ID && requester.Role != models.RoleAdmin {
		return nil, &AuthorizationError{Message: "payment belongs to another user"}
	}
	return &payment, nil
}

// ConfirmPayment applies the frontend confirmation of a pending session.
func ConfirmPayment(db *gorm.DB, paymentID uint, input ConfirmPaymentInput, userID uint) (*models.Payment, error) {
	var payment models.Payment
	err := db.First(&payment, paymentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Message: fmt.Sprintf("payment %d not found", paymentID)}
	} else if err != nil {
		return nil, err
	}
	if payment.UserID != userID {
		return nil, &AuthorizationError{Message: "payment belongs to another user"}
	}
	if payment.TransactionID != input.TransactionID {
		return nil, &ValidationError{Message: "transaction id does not match"}
	}
	if payment.Status.Terminal() {
		return nil, &ConflictError{Message: fmt.Sprintf("payment already %s", payment.Status)}
	}

	if err := applyPaymentStatus(db, &payment, models.PaymentCompleted); err != nil {
		return nil, err
	}
	return &payment, nil
}

// HandleWebhook applies a gateway event exactly once. Repeats against a
// terminal payment are acknowledged no-ops, so the gateway stops retrying.
func HandleWebhook(db *gorm.DB, event WebhookEvent) (*models.Payment, error) {
	newStatus := models.PaymentStatus(event.Status)
	if !newStatus.Valid() || newStatus == models.PaymentPending {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown payment status %q", event.Status)}
	}

	var payment models.Payment
	err := db.Where("transaction_id = ?", event.TransactionID).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Message: fmt.Sprintf("no payment for transaction %s", event.TransactionID)}
	} else if err != nil {
		return nil, err
	}

	// replayed or late event, nothing to apply
	if payment.Status.Terminal() {
		return &payment, nil
	}

	if err := applyPaymentStatus(db, &payment, newStatus); err != nil {
		return nil, err
	}
	return &payment, nil
}

// applyPaymentStatus transitions a pending payment and, on completion,
// confirms the parent order. All-or-nothing per event.
func applyPaymentStatus(db *gorm.DB, payment *models.Payment, newStatus models.PaymentStatus) error {
	return db.Transaction(func(tx *gorm.DB) error {
		payment.Status = newStatus
		if err := tx.Save(payment).Error; err != nil {
			return err
		}
		if newStatus != models.PaymentCompleted {
			return nil
		}
		return tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", payment.OrderID, models.OrderPending).
			Update("status", models.OrderConfirmed).Error
	})
}
