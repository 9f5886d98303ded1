package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/osharov/shop-backend/internal/events"
	"github.com/osharov/shop-backend/internal/service"
	"github.com/osharov/shop-backend/internal/transport"
	"github.com/osharov/shop-backend/pkg/logging"
)

type CustomerHTTP struct {
	Svc      *service.CustomerService
	Producer *events.Producer
}

func (h *CustomerHTTP) publish(c echo.Context, key string, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicCustomerEvents, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_error", "error", err)
	}
}

func (h *CustomerHTTP) CreateCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.create_customer")

	var req transport.CreateCustomerRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_customer_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	customer, err := h.Svc.CreateCustomer(ctx, req)
	if err != nil {
		l.Warn("create_customer_error", "status", statusOf(err), "error", err)
		return domainError(err)
	}

	h.publish(c, customer.ID.String(), map[string]any{
		"type":       "customer_created",
		"customerID": customer.ID,
		"email":      customer.Email,
	})

	l.Info("create_customer_success", "customer_id", customer.ID)
	return c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHTTP) GetCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.get_customer")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_customer_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid id: %s", c.Param("id")))
	}

	customer, err := h.Svc.GetCustomer(ctx, id)
	if err != nil {
		l.Warn("get_customer_error", "status", statusOf(err), "error", err)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, customer)
}
