// Package testutil provides shared helpers for service and handler tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"savoria/initializers"
	"savoria/models"
)

var dbSeq uint64

// OpenDB returns a fresh in-memory database with the full schema migrated.
// Each call gets its own named database, so tests never share state.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_fk=1", atomic.AddUint64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := initializers.MigrateModels(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// SeedUser inserts a user with the given role and returns it.
func SeedUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()

	user := models.User{
		Email:    email,
		Password: "$2a$10$testhashtesthashtesthashte",
		FullName: "Test " + string(role),
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return &user
}

// SeedMenuItem inserts a category plus one available menu item at the given price.
func SeedMenuItem(t *testing.T, db *gorm.DB, name string, price float64) *models.MenuItem {
	t.Helper()

	category := models.Category{Name: "Seed " + name}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	item := models.MenuItem{
		CategoryID: &category.ID,
		Name:       name,
		Price:      price,
		Available:  true,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed menu item %s: %v", name, err)
	}
	return &item
}

// SeedCartItem puts quantity of the menu item into the user's cart.
func SeedCartItem(t *testing.T, db *gorm.DB, userID, menuItemID uint, quantity int) *models.CartItem {
	t.Helper()

	ci := models.CartItem{UserID: userID, MenuItemID: menuItemID, Quantity: quantity}
	if err := db.Create(&ci).Error; err != nil {
		t.Fatalf("seed cart item: %v", err)
	}
	return &ci
}

// SeedOrder inserts an order in the given status with one snapshot line.
func SeedOrder(t *testing.T, db *gorm.DB, userID uint, status models.OrderStatus, total float64) *models.Order {
	t.Helper()

	order := models.Order{
		UserID:        userID,
		Status:        status,
		TotalAmount:   total,
		PaymentMethod: "card",
		DeliveryType:  models.DeliveryTypePickup,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return &order
}
