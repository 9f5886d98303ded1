package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/osharov/shop-backend/internal/models"
	"github.com/osharov/shop-backend/internal/transport"
)

type OrderService struct {
	Customers CustomerRepository
	Products  ProductRepository
	Orders    OrderRepository
}

// CreateOrder validates a multi-item order against current stock, persists it
// and decrements the quantity of every ordered product. Validation runs
// against a single snapshot read; the later decrement reuses that snapshot
// without re-fetching, so concurrent orders on the same product can oversell.
// Serializing the read and the write in one transaction would close that
// window at the cost of lock contention on hot products.
func (s *OrderService) CreateOrder(ctx context.Context, req transport.CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}

	ids := make([]uuid.UUID, 0, len(req.Items))
	for i := range req.Items {
		if req.Items[i].ProductID == uuid.Nil {
			return nil, fmt.Errorf("%w: product_id required", ErrValidation)
		}
		if req.Items[i].Quantity == 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
		ids = append(ids, req.Items[i].ProductID)
	}

	_, err := s.Customers.FindCustomerByID(ctx, req.CustomerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}

	inStock, err := s.Products.FindProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(inStock) == 0 {
		return nil, ErrProductsNotFound
	}

	byID := make(map[uuid.UUID]models.Product, len(inStock))
	for _, p := range inStock {
		byID[p.ID] = p
	}

	for _, item := range req.Items {
		if _, ok := byID[item.ProductID]; !ok {
			return nil, ErrProductNotFound
		}
	}

	for _, item := range req.Items {
		if item.Quantity > byID[item.ProductID].Quantity {
			return nil, ErrInsufficientStock
		}
	}

	order := &models.Order{
		CustomerID: req.CustomerID,
		Items:      make([]models.OrderItem, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     byID[item.ProductID].Price,
		})
	}

	created, err := s.Orders.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	updates := make([]models.StockUpdate, 0, len(created.Items))
	for _, item := range created.Items {
		updates = append(updates, models.StockUpdate{
			ID:       item.ProductID,
			Quantity: byID[item.ProductID].Quantity - item.Quantity,
		})
	}

	if err := s.Products.UpdateProductQuantities(ctx, updates); err != nil {
		return nil, err
	}

	return created, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.Orders.GetOrder(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	return order, err
}

func (s *OrderService) ListOrders(ctx context.Context, customerID uuid.UUID, offset, limit int) ([]models.Order, error) {
	return s.Orders.ListOrders(ctx, customerID, offset, limit)
}
