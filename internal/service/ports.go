package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/osharov/shop-backend/internal/models"
)

// Collaborator contracts the services consume. GormRepo implements all three;
// tests substitute in-memory sqlite behind the same interfaces.

type CustomerRepository interface {
	FindCustomerByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	FindCustomerByEmail(ctx context.Context, email string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error)
}

type ProductRepository interface {
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindProductByName(ctx context.Context, name string) (*models.Product, error)
	FindProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	ListProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error)
	UpdateProductQuantities(ctx context.Context, updates []models.StockUpdate) error
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, customerID uuid.UUID, offset, limit int) ([]models.Order, error)
}
