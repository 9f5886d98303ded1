package transport

import "github.com/google/uuid"

type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    uint    `json:"quantity"`
}

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  uint      `json:"quantity"`
}

type CreateOrderRequest struct {
	CustomerID uuid.UUID          `json:"customer_id"`
	Items      []OrderItemRequest `json:"items"`
}
