package services_test

import (
	"errors"
	"math"
	"testing"

	"savoria/models"
	"savoria/services"
	"savoria/testutil"
)

// Walks one order from cart to delivered: place (total from menu prices,
// cart emptied), assign a driver, reject a wrong OTP without side effects,
// then confirm with the right one and see task and order land on delivered.
func TestPlaceAndDeliverOrderFlow(t *testing.T) {
	db := testutil.OpenDB(t)
	customer := testutil.SeedUser(t, db, "flow@example.com", models.RoleCustomer)
	driver := testutil.SeedUser(t, db, "flow-driver@example.com", models.RoleDriver)
	burger := testutil.SeedMenuItem(t, db, "Flow Burger", 9.99)
	testutil.SeedCartItem(t, db, customer.ID, burger.ID, 2)

	order, err := services.CreateOrder(db, customer.ID, services.CreateOrderInput{
		PaymentMethod: "card",
		DeliveryType:  models.DeliveryTypePickup,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if math.Abs(order.TotalAmount-19.98) > 1e-9 {
		t.Errorf("total = %.2f, want 19.98", order.TotalAmount)
	}
	var cartRows int64
	db.Model(&models.CartItem{}).Where("user_id = ?", customer.ID).Count(&cartRows)
	if cartRows != 0 {
		t.Errorf("cart still has %d rows after placement", cartRows)
	}

	task, err := services.AssignDelivery(db, services.AssignDeliveryInput{
		OrderID:  order.ID,
		DriverID: driver.ID,
	})
	if err != nil {
		t.Fatalf("AssignDelivery: %v", err)
	}

	wrong := "000000"
	if wrong == task.OTPCode {
		wrong = "999999"
	}
	_, err = services.ConfirmDelivery(db, task.ID, wrong, driver.ID)
	var oerr *services.InvalidOTPError
	if !errors.As(err, &oerr) {
		t.Fatalf("wrong otp: err = %v, want InvalidOTPError", err)
	}
	var afterWrong models.DeliveryTask
	db.First(&afterWrong, task.ID)
	if afterWrong.Confirmed || afterWrong.Status != models.DeliveryAssigned {
		t.Fatalf("wrong otp mutated task: %+v", afterWrong)
	}

	confirmed, err := services.ConfirmDelivery(db, task.ID, task.OTPCode, driver.ID)
	if err != nil {
		t.Fatalf("correct otp: %v", err)
	}
	if confirmed.Status != models.DeliveryDelivered || !confirmed.Confirmed {
		t.Errorf("task after confirm = %+v, want delivered and confirmed", confirmed)
	}

	var delivered models.Order
	db.First(&delivered, order.ID)
	if delivered.Status != models.OrderDelivered {
		t.Errorf("order status = %q, want delivered", delivered.Status)
	}
}
