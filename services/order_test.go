package services_test

import (
	"errors"
	"math"
	"testing"

	"savoria/models"
	"savoria/services"
	"savoria/testutil"
)

func TestCreateOrderFromCart(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "cart@example.com", models.RoleCustomer)
	burger := testutil.SeedMenuItem(t, db, "Burger", 9.99)
	testutil.SeedCartItem(t, db, user.ID, burger.ID, 2)

	order, err := services.CreateOrder(db, user.ID, services.CreateOrderInput{
		PaymentMethod: "card",
		DeliveryType:  models.DeliveryTypePickup,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if order.Status != models.OrderPending {
		t.Errorf("status = %q, want %q", order.Status, models.OrderPending)
	}
	if math.Abs(order.TotalAmount-19.98) > 1e-9 {
		t.Errorf("total = %.2f, want 19.98", order.TotalAmount)
	}
	if len(order.Items) != 1 {
		t.Fatalf("got %d order lines, want 1", len(order.Items))
	}
	line := order.Items[0]
	if line.Name != "Burger" || line.Price != 9.99 || line.Quantity != 2 {
		t.Errorf("line = %+v, want Burger at 9.99 x2", line)
	}

	var remaining int64
	db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&remaining)
	if remaining != 0 {
		t.Errorf("cart still has %d items after order placement", remaining)
	}
}

func TestCreateOrderSnapshotPriceSurvivesMenuChange(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "snapshot@example.com", models.RoleCustomer)
	pizza := testutil.SeedMenuItem(t, db, "Pizza", 12.50)

	order, err := services.CreateOrder(db, user.ID, services.CreateOrderInput{
		Items:         []services.OrderItemInput{{MenuItemID: pizza.ID, Quantity: 1}},
		PaymentMethod: "cash",
		DeliveryType:  models.DeliveryTypePickup,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if err := db.Model(&models.MenuItem{}).Where("id = ?", pizza.ID).Update("price", 99.0).Error; err != nil {
		t.Fatalf("reprice menu item: %v", err)
	}

	var line models.OrderItem
	if err := db.Where("order_id = ?", order.ID).First(&line).Error; err != nil {
		t.Fatalf("load order line: %v", err)
	}
	if line.Price != 12.50 {
		t.Errorf("snapshot price = %.2f, want 12.50", line.Price)
	}
}

func TestCreateOrderEmptyCart(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "empty@example.com", models.RoleCustomer)

	_, err := services.CreateOrder(db, user.ID, services.CreateOrderInput{
		PaymentMethod: "card",
		DeliveryType:  models.DeliveryTypePickup,
	})

	var verr *services.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Errorf("found %d orders after rejected placement", count)
	}
}

func TestCreateOrderUnavailableItemRollsBack(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "unavailable@example.com", models.RoleCustomer)
	soup := testutil.SeedMenuItem(t, db, "Soup", 5.00)
	if err := db.Model(&models.MenuItem{}).Where("id = ?", soup.ID).Update("available", false).Error; err != nil {
		t.Fatalf("mark unavailable: %v", err)
	}
	testutil.SeedCartItem(t, db, user.ID, soup.ID, 1)

	_, err := services.CreateOrder(db, user.ID, services.CreateOrderInput{
		PaymentMethod: "cash",
		DeliveryType:  models.DeliveryTypePickup,
	})

	var verr *services.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}

	var cartCount int64
	db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount)
	if cartCount != 1 {
		t.Errorf("cart count = %d after rollback, want 1", cartCount)
	}
}

func TestCreateOrderDeliveryNeedsOwnedAddress(t *testing.T) {
	db := testutil.OpenDB(t)
	buyer := testutil.SeedUser(t, db, "buyer@example.com", models.RoleCustomer)
	other := testutil.SeedUser(t, db, "other@example.com", models.RoleCustomer)
	salad := testutil.SeedMenuItem(t, db, "Salad", 7.25)

	foreign := models.Address{UserID: other.ID, Street: "1 Elm St", City: "Springfield", Country: "US", ZipCode: "12345"}
	if err := db.Create(&foreign).Error; err != nil {
		t.Fatalf("seed address: %v", err)
	}

	input := services.CreateOrderInput{
		Items:         []services.OrderItemInput{{MenuItemID: salad.ID, Quantity: 1}},
		PaymentMethod: "card",
		DeliveryType:  models.DeliveryTypeDelivery,
	}

	if _, err := services.CreateOrder(db, buyer.ID, input); err == nil {
		t.Fatal("missing address accepted for delivery order")
	}

	input.DeliveryAddressID = &foreign.ID
	_, err := services.CreateOrder(db, buyer.ID, input)
	var verr *services.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("foreign address: err = %v, want ValidationError", err)
	}

	mine := models.Address{UserID: buyer.ID, Street: "2 Oak St", City: "Springfield", Country: "US", ZipCode: "12345"}
	if err := db.Create(&mine).Error; err != nil {
		t.Fatalf("seed address: %v", err)
	}
	input.DeliveryAddressID = &mine.ID
	order, err := services.CreateOrder(db, buyer.ID, input)
	if err != nil {
		t.Fatalf("owned address: %v", err)
	}
	if order.AddressID == nil || *order.AddressID != mine.ID {
		t.Errorf("order address = %v, want %d", order.AddressID, mine.ID)
	}
}

func TestUpdateStatusForwardOnly(t *testing.T) {
	db := testutil.OpenDB(t)
	admin := testutil.SeedUser(t, db, "admin@example.com", models.RoleAdmin)
	adminResp := models.FilterUserRecord(admin)

	order := testutil.SeedOrder(t, db, admin.ID, models.OrderPreparing, 10)

	if _, err := services.UpdateStatus(db, order.ID, models.OrderConfirmed, adminResp); err == nil {
		t.Error("backward move preparing -> confirmed accepted")
	}
	if _, err := services.UpdateStatus(db, order.ID, models.OrderPreparing, adminResp); err == nil {
		t.Error("sideways move preparing -> preparing accepted")
	}

	updated, err := services.UpdateStatus(db, order.ID, models.OrderDelivered, adminResp)
	if err != nil {
		t.Fatalf("forward move: %v", err)
	}
	if updated.Status != models.OrderDelivered {
		t.Errorf("status = %q, want delivered", updated.Status)
	}

	if _, err := services.UpdateStatus(db, order.ID, models.OrderOutForDelivery, adminResp); err == nil {
		t.Error("update on terminal order accepted")
	}
}

func TestUpdateStatusRejectsCancelledTarget(t *testing.T) {
	db := testutil.OpenDB(t)
	admin := testutil.SeedUser(t, db, "admin2@example.com", models.RoleAdmin)
	order := testutil.SeedOrder(t, db, admin.ID, models.OrderPending, 10)

	_, err := services.UpdateStatus(db, order.ID, models.OrderCancelled, models.FilterUserRecord(admin))
	var terr *services.InvalidTransitionError
	if !errors.As(err, &terr) {
		t.Fatalf("err = %v, want InvalidTransitionError", err)
	}
}

func TestCancelOrderOnce(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "cancel@example.com", models.RoleCustomer)
	resp := models.FilterUserRecord(user)
	order := testutil.SeedOrder(t, db, user.ID, models.OrderPending, 10)

	cancelled, err := services.CancelOrder(db, order.ID, resp)
	if err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	if cancelled.Status != models.OrderCancelled {
		t.Errorf("status = %q, want cancelled", cancelled.Status)
	}

	_, err = services.CancelOrder(db, order.ID, resp)
	var terr *services.InvalidTransitionError
	if !errors.As(err, &terr) {
		t.Fatalf("second cancel: err = %v, want InvalidTransitionError", err)
	}

	var stored models.Order
	db.First(&stored, order.ID)
	if stored.Status != models.OrderCancelled {
		t.Errorf("stored status = %q after failed re-cancel", stored.Status)
	}
}

func TestCancelOrderPastCutoff(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "late@example.com", models.RoleCustomer)
	order := testutil.SeedOrder(t, db, user.ID, models.OrderPreparing, 10)

	_, err := services.CancelOrder(db, order.ID, models.FilterUserRecord(user))
	var terr *services.InvalidTransitionError
	if !errors.As(err, &terr) {
		t.Fatalf("err = %v, want InvalidTransitionError", err)
	}
}

func TestGetOrderOwnership(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.SeedUser(t, db, "owner@example.com", models.RoleCustomer)
	stranger := testutil.SeedUser(t, db, "stranger@example.com", models.RoleCustomer)
	admin := testutil.SeedUser(t, db, "peek@example.com", models.RoleAdmin)
	order := testutil.SeedOrder(t, db, owner.ID, models.OrderPending, 10)

	if _, err := services.GetOrder(db, order.ID, models.FilterUserRecord(owner)); err != nil {
		t.Errorf("owner read: %v", err)
	}
	if _, err := services.GetOrder(db, order.ID, models.FilterUserRecord(admin)); err != nil {
		t.Errorf("admin read: %v", err)
	}

	_, err := services.GetOrder(db, order.ID, models.FilterUserRecord(stranger))
	var aerr *services.AuthorizationError
	if !errors.As(err, &aerr) {
		t.Errorf("stranger read: err = %v, want AuthorizationError", err)
	}
}

func TestTrackOrder(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "track@example.com", models.RoleCustomer)
	driver := testutil.SeedUser(t, db, "driver-track@example.com", models.RoleDriver)
	resp := models.FilterUserRecord(user)

	order := testutil.SeedOrder(t, db, user.ID, models.OrderConfirmed, 10)

	view, err := services.TrackOrder(db, order.ID, resp)
	if err != nil {
		t.Fatalf("TrackOrder: %v", err)
	}
	if view.DriverStatus != nil || view.ETAMinutes != nil {
		t.Errorf("view before assignment = %+v, want no driver fields", view)
	}

	task := models.DeliveryTask{OrderID: order.ID, DriverID: driver.ID, Status: models.DeliveryEnRoute, OTPCode: "123456"}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("seed task: %v", err)
	}

	view, err = services.TrackOrder(db, order.ID, resp)
	if err != nil {
		t.Fatalf("TrackOrder with task: %v", err)
	}
	if view.DriverStatus == nil || *view.DriverStatus != models.DeliveryEnRoute {
		t.Errorf("driver status = %v, want en_route", view.DriverStatus)
	}
	if view.ETAMinutes == nil || *view.ETAMinutes != 20 {
		t.Errorf("eta = %v, want 20", view.ETAMinutes)
	}
}
