package services_test

import (
	"errors"
	"testing"

	"savoria/models"
	"savoria/services"
	"savoria/testutil"
)

func TestAssignDelivery(t *testing.T) {
	db := testutil.OpenDB(t)
	customer := testutil.SeedUser(t, db, "cust@example.com", models.RoleCustomer)
	driver := testutil.SeedUser(t, db, "driver@example.com", models.RoleDriver)
	order := testutil.SeedOrder(t, db, customer.ID, models.OrderConfirmed, 20)

	task, err := services.AssignDelivery(db, services.AssignDeliveryInput{OrderID: order.ID, DriverID: driver.ID})
	if err != nil {
		t.Fatalf("AssignDelivery: %v", err)
	}
	if task.Status != models.DeliveryAssigned {
		t.Errorf("status = %q, want assigned", task.Status)
	}
	if len(task.OTPCode) != 6 {
		t.Errorf("otp %q, want 6 digits", task.OTPCode)
	}

	_, err = services.AssignDelivery(db, services.AssignDeliveryInput{OrderID: order.ID, DriverID: driver.ID})
	var cerr *services.ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("second assign: err = %v, want ConflictError", err)
	}
}

func TestAssignDeliveryRejectsNonDriver(t *testing.T) {
	db := testutil.OpenDB(t)
	customer := testutil.SeedUser(t, db, "cust2@example.com", models.RoleCustomer)
	order := testutil.SeedOrder(t, db, customer.ID, models.OrderConfirmed, 20)

	_, err := services.AssignDelivery(db, services.AssignDeliveryInput{OrderID: order.ID, DriverID: customer.ID})
	var nerr *services.NotFoundError
	if !errors.As(err, &nerr) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestGetAssignedDeliveriesExcludesTerminal(t *testing.T) {
	db := testutil.OpenDB(t)
	customer := testutil.SeedUser(t, db, "cust3@example.com", models.RoleCustomer)
	driver := testutil.SeedUser(t, db, "driver3@example.com", models.RoleDriver)

	statuses := []models.DeliveryStatus{
		models.DeliveryAssigned, models.DeliveryEnRoute,
		models.DeliveryDelivered, models.DeliveryFailed,
	}
	for _, status := range statuses {
		order := testutil.SeedOrder(t, db, customer.ID, models.OrderConfirmed, 10)
		task := models.DeliveryTask{OrderID: order.ID, DriverID: driver.ID, Status: status, OTPCode: "111111"}
		if err := db.Create(&task).Error; err != nil {
			t.Fatalf("seed task: %v", err)
		}
	}

	tasks, err := services.GetAssignedDeliveries(db, driver.ID)
	if err != nil {
		t.Fatalf("GetAssignedDeliveries: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2 active", len(tasks))
	}
	for _, task := range tasks {
		if task.Status.Terminal() {
			t.Errorf("terminal task %d in active queue", task.ID)
		}
	}
}

func TestUpdateDeliveryStatusNeverReachesDelivered(t *testing.T) {
	db := testutil.OpenDB(t)
	customer := testutil.SeedUser(t, db, "cust4@example.com", models.RoleCustomer)
	driver := testutil.SeedUser(t, db, "driver4@example.com", models.RoleDriver)
	order := testutil.SeedOrder(t, db, customer.ID, models.OrderConfirmed, 10)

	task, err := services.AssignDelivery(db, services.AssignDeliveryInput{OrderID: order.ID, DriverID: driver.ID})
	if err != nil {
		t.Fatalf("AssignDelivery: %v", err)
	}

	_, err = services.UpdateDeliveryStatus(db, task.ID, models.DeliveryDelivered, driver.ID)
	var terr *services.InvalidTransitionError
	if !errors.As(err, &terr) {
		t.Fatalf("delivered via status update: err = %v, want InvalidTransitionError", err)
	}

	updated, err := services.UpdateDeliveryStatus(db, task.ID, models.DeliveryEnRoute, driver.ID)
	if err != nil {
		t.Fatalf("en_route: %v", err)
	}
	if updated.Status != models.DeliveryEnRoute {
		t.Errorf("status = %q, want en_route", updated.Status)
	}

	if _, err := services.UpdateDeliveryStatus(db, task.ID, models.DeliveryAssigned, driver.ID); err == nil {
		t.Error("backward move en_route -> assigned accepted")
	}
}

func TestUpdateDeliveryStatusWrongDriver(t *testing.T) {
	db := testutil.OpenDB(t)
	customer := testutil.SeedUser(t, db, "cust5@example.com", models.RoleCustomer)
	driver := testutil.SeedUser(t, db, "driver5@example.com", models.RoleDriver)
	imposter := testutil.SeedUser(t, db, "driver5b@example.com", models.RoleDriver)
	order := testutil.SeedOrder(t, db, customer.ID, models.OrderConfirmed, 10)

	task, err := services.AssignDelivery(db, services.AssignDeliveryInput{OrderID: order.ID, DriverID: driver.ID})
	if err != nil {
		t.Fatalf("AssignDelivery: %v", err)
	}

	_, err = services.UpdateDeliveryStatus(db, task.ID, models.DeliveryEnRoute, imposter.ID)
	var aerr *services.AuthorizationError
	if !errors.As(err, &aerr) {
		t.Fatalf("err = %v, want AuthorizationError", err)
	}
}

func TestConfirmDeliveryOTP(t *testing.T) {
	db := testutil.OpenDB(t)
	customer := testutil.SeedUser(t, db, "cust6@example.com", models.RoleCustomer)
	driver := testutil.SeedUser(t, db, "driver6@example.com", models.RoleDriver)
	order := testutil.SeedOrder(t, db, customer.ID, models.OrderOutForDelivery, 10)

	task, err := services.AssignDelivery(db, services.AssignDeliveryInput{OrderID: order.ID, DriverID: driver.ID})
	if err != nil {
		t.Fatalf("AssignDelivery: %v", err)
	}

	_, err = services.ConfirmDelivery(db, task.ID, "000000", driver.ID)
	var oerr *services.InvalidOTPError
	if !errors.As(err, &oerr) {
		t.Fatalf("wrong otp: err = %v, want InvalidOTPError", err)
	}
	var unchanged models.DeliveryTask
	db.First(&unchanged, task.ID)
	if unchanged.Status != models.DeliveryAssigned || unchanged.Confirmed {
		t.Errorf("task changed by failed confirmation: %+v", unchanged)
	}

	confirmed, err := services.ConfirmDelivery(db, task.ID, task.OTPCode, driver.ID)
	if err != nil {
		t.Fatalf("correct otp: %v", err)
	}
	if confirmed.Status != models.DeliveryDelivered || !confirmed.Confirmed {
		t.Errorf("task after confirm = %+v, want delivered and confirmed", confirmed)
	}

	var parent models.Order
	db.First(&parent, order.ID)
	if parent.Status != models.OrderDelivered {
		t.Errorf("order status = %q, want delivered", parent.Status)
	}

	_, err = services.ConfirmDelivery(db, task.ID, task.OTPCode, driver.ID)
	if !errors.As(err, &oerr) {
		t.Fatalf("replay: err = %v, want InvalidOTPError", err)
	}
}
