package services_test

import (
	"errors"
	"testing"

	"savoria/models"
	"savoria/services"
	"savoria/testutil"
)

func TestInitiatePayment(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "pay@example.com", models.RoleCustomer)
	order := testutil.SeedOrder(t, db, user.ID, models.OrderPending, 42.50)

	payment, _, err := services.InitiatePayment(db, user.ID, services.InitiatePaymentInput{
		OrderID: order.ID,
		Method:  "card",
	})
	if err != nil {
		t.Fatalf("InitiatePayment: %v", err)
	}
	if payment.Amount != 42.50 {
		t.Errorf("amount = %.2f, want order total 42.50", payment.Amount)
	}
	if payment.Status != models.PaymentPending {
		t.Errorf("status = %q, want pending", payment.Status)
	}
	if payment.TransactionID == "" {
		t.Error("empty transaction id")
	}
}

func TestInitiatePaymentGuards(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "pay2@example.com", models.RoleCustomer)
	stranger := testutil.SeedUser(t, db, "pay2b@example.com", models.RoleCustomer)
	order := testutil.SeedOrder(t, db, user.ID, models.OrderPending, 10)

	_, _, err := services.InitiatePayment(db, stranger.ID, services.InitiatePaymentInput{OrderID: order.ID, Method: "card"})
	var aerr *services.AuthorizationError
	if !errors.As(err, &aerr) {
		t.Errorf("foreign order: err = %v, want AuthorizationError", err)
	}

	cancelled := testutil.SeedOrder(t, db, user.ID, models.OrderCancelled, 10)
	_, _, err = services.InitiatePayment(db, user.ID, services.InitiatePaymentInput{OrderID: cancelled.ID, Method: "card"})
	var verr *services.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("cancelled order: err = %v, want ValidationError", err)
	}

	paid := testutil.SeedOrder(t, db, user.ID, models.OrderConfirmed, 10)
	done := models.Payment{OrderID: paid.ID, UserID: user.ID, Amount: 10, Status: models.PaymentCompleted, TransactionID: "txn-done"}
	if err := db.Create(&done).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}
	_, _, err = services.InitiatePayment(db, user.ID, services.InitiatePaymentInput{OrderID: paid.ID, Method: "card"})
	var cerr *services.ConflictError
	if !errors.As(err, &cerr) {
		t.Errorf("already paid: err = %v, want ConflictError", err)
	}
}

func TestHandleWebhookAppliesOnce(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "hook@example.com", models.RoleCustomer)
	order := testutil.SeedOrder(t, db, user.ID, models.OrderPending, 25)

	payment, _, err := services.InitiatePayment(db, user.ID, services.InitiatePaymentInput{OrderID: order.ID, Method: "card"})
	if err != nil {
		t.Fatalf("InitiatePayment: %v", err)
	}

	applied, err := services.HandleWebhook(db, services.WebhookEvent{
		TransactionID: payment.TransactionID,
		Status:        string(models.PaymentCompleted),
	})
	if err != nil {
		t.Fatalf("first event: %v", err)
	}
	if applied.Status != models.PaymentCompleted {
		t.Errorf("payment status = %q, want completed", applied.Status)
	}

	var confirmed models.Order
	db.First(&confirmed, order.ID)
	if confirmed.Status != models.OrderConfirmed {
		t.Errorf("order status = %q, want confirmed after payment", confirmed.Status)
	}

	// the gateway retries; a replayed event must change nothing
	replayed, err := services.HandleWebhook(db, services.WebhookEvent{
		TransactionID: payment.TransactionID,
		Status:        string(models.PaymentFailed),
	})
	if err != nil {
		t.Fatalf("replayed event: %v", err)
	}
	if replayed.Status != models.PaymentCompleted {
		t.Errorf("replay changed payment status to %q", replayed.Status)
	}
}

func TestHandleWebhookUnknownTransaction(t *testing.T) {
	db := testutil.OpenDB(t)

	_, err := services.HandleWebhook(db, services.WebhookEvent{TransactionID: "nope", Status: "completed"})
	var nerr *services.NotFoundError
	if !errors.As(err, &nerr) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}

	_, err = services.HandleWebhook(db, services.WebhookEvent{TransactionID: "nope", Status: "sideways"})
	var verr *services.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("bad status: err = %v, want ValidationError", err)
	}
}

func TestWebhookFailureKeepsOrderPending(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "fail@example.com", models.RoleCustomer)
	order := testutil.SeedOrder(t, db, user.ID, models.OrderPending, 25)

	payment, _, err := services.InitiatePayment(db, user.ID, services.InitiatePaymentInput{OrderID: order.ID, Method: "card"})
	if err != nil {
		t.Fatalf("InitiatePayment: %v", err)
	}

	if _, err := services.HandleWebhook(db, services.WebhookEvent{
		TransactionID: payment.TransactionID,
		Status:        string(models.PaymentFailed),
	}); err != nil {
		t.Fatalf("failed event: %v", err)
	}

	var stored models.Order
	db.First(&stored, order.ID)
	if stored.Status != models.OrderPending {
		t.Errorf("order status = %q, want still pending after failed payment", stored.Status)
	}
}
