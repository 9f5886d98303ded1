package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/osharov/shop-backend/internal/models"
	"github.com/osharov/shop-backend/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.Customer{}, &models.Product{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	return &repo.GormRepo{DB: newTestDB(t)}
}

func seedCustomer(t *testing.T, r *repo.GormRepo, name, email string) *models.Customer {
	t.Helper()
	customer, err := r.CreateCustomer(context.Background(), &models.Customer{Name: name, Email: email})
	require.NoError(t, err)
	return customer
}

func seedProduct(t *testing.T, r *repo.GormRepo, name string, price float64, quantity uint) *models.Product {
	t.Helper()
	product, err := r.CreateProduct(context.Background(), &models.Product{
		Name:     name,
		Price:    price,
		Quantity: quantity,
	})
	require.NoError(t, err)
	return product
}

func productQuantity(t *testing.T, r *repo.GormRepo, id uuid.UUID) uint {
	t.Helper()
	product, err := r.FindProductByID(context.Background(), id)
	require.NoError(t, err)
	return product.Quantity
}
