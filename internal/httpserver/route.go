package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/osharov/shop-backend/pkg/middleware/auth"
)

type Deps struct {
	CustomerHandler *CustomerHTTP
	ProductHandler  *ProductHTTP
	OrderHandler    *OrderHTTP
	JWTSecret       []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := middleware.NewAuthMiddleware(d.JWTSecret)

	customers := e.Group("/customers")
	customers.POST("", d.CustomerHandler.CreateCustomer)
	customers.GET("/:id", d.CustomerHandler.GetCustomer)

	products := e.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/search", d.ProductHandler.SearchProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)

	admin := products.Group("", authMW.RequireAdmin)
	admin.POST("", d.ProductHandler.CreateProduct)

	orders := e.Group("/orders")
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("", d.OrderHandler.ListOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
}
