package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/osharov/shop-backend/internal/models"
	"github.com/osharov/shop-backend/internal/repo"
	"github.com/osharov/shop-backend/internal/service"
	"github.com/osharov/shop-backend/internal/transport"
)

type testEnv struct {
	T        *testing.T
	E        *echo.Echo
	DB       *gorm.DB
	Customer *CustomerHTTP
	Product  *ProductHTTP
	Order    *OrderHTTP
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.Product{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	r := &repo.GormRepo{DB: db}

	return &testEnv{
		T:        t,
		E:        echo.New(),
		DB:       db,
		Customer: &CustomerHTTP{Svc: &service.CustomerService{Repo: r}},
		Product:  &ProductHTTP{Svc: &service.ProductService{Repo: r}},
		Order:    &OrderHTTP{Svc: &service.OrderService{Customers: r, Products: r, Orders: r}},
	}
}

func (env *testEnv) doJSONRequest(method, target string, body any) (*httptest.ResponseRecorder, echo.Context) {
	env.T.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(env.T, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}

func TestCreateCustomerHandler(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/customers", transport.CreateCustomerRequest{
		Name:  "John Doe",
		Email: "john@example.com",
	})
	require.NoError(t, env.Customer.CreateCustomer(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "John Doe", resp.Name)
	assert.Equal(t, "john@example.com", resp.Email)
	assert.NotZero(t, resp.ID)
}

func TestCreateCustomerHandler_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/customers", transport.CreateCustomerRequest{
		Name:  "John Doe",
		Email: "john@example.com",
	})
	require.NoError(t, env.Customer.CreateCustomer(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	_, c = env.doJSONRequest(http.MethodPost, "/customers", transport.CreateCustomerRequest{
		Name:  "Jane Doe",
		Email: "john@example.com",
	})
	err := env.Customer.CreateCustomer(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, httpStatus(t, err))
}

func TestCreateProductHandler(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/products", transport.CreateProductRequest{
		Name:     "keyboard",
		Price:    49.9,
		Quantity: 25,
	})
	require.NoError(t, env.Product.CreateProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "keyboard", resp.Name)
	assert.Equal(t, 49.9, resp.Price)
	assert.EqualValues(t, 25, resp.Quantity)

	_, c = env.doJSONRequest(http.MethodPost, "/products", transport.CreateProductRequest{
		Name:  "keyboard",
		Price: 10,
	})
	err := env.Product.CreateProduct(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, httpStatus(t, err))
}

func TestCreateOrderHandler(t *testing.T) {
	env := newTestEnv(t)

	var customer models.Customer
	rec, c := env.doJSONRequest(http.MethodPost, "/customers", transport.CreateCustomerRequest{
		Name:  "John Doe",
		Email: "john@example.com",
	})
	require.NoError(t, env.Customer.CreateCustomer(c))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &customer))

	var product models.Product
	rec, c = env.doJSONRequest(http.MethodPost, "/products", transport.CreateProductRequest{
		Name:     "keyboard",
		Price:    5.0,
		Quantity: 10,
	})
	require.NoError(t, env.Product.CreateProduct(c))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))

	rec, c = env.doJSONRequest(http.MethodPost, "/orders", transport.CreateOrderRequest{
		CustomerID: customer.ID,
		Items:      []transport.OrderItemRequest{{ProductID: product.ID, Quantity: 3}},
	})
	require.NoError(t, env.Order.CreateOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	require.Len(t, order.Items, 1)
	assert.Equal(t, product.ID, order.Items[0].ProductID)
	assert.EqualValues(t, 3, order.Items[0].Quantity)
	assert.Equal(t, 5.0, order.Items[0].Price)

	var stored models.Product
	require.NoError(t, env.DB.First(&stored, "id = ?", product.ID).Error)
	assert.EqualValues(t, 7, stored.Quantity)
}

func TestCreateOrderHandler_Failures(t *testing.T) {
	env := newTestEnv(t)

	var customer models.Customer
	rec, c := env.doJSONRequest(http.MethodPost, "/customers", transport.CreateCustomerRequest{
		Name:  "John Doe",
		Email: "john@example.com",
	})
	require.NoError(t, env.Customer.CreateCustomer(c))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &customer))

	var product models.Product
	rec, c = env.doJSONRequest(http.MethodPost, "/products", transport.CreateProductRequest{
		Name:     "keyboard",
		Price:    5.0,
		Quantity: 2,
	})
	require.NoError(t, env.Product.CreateProduct(c))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))

	tests := []struct {
		name       string
		req        transport.CreateOrderRequest
		wantStatus int
	}{
		{
			name: "unknown customer",
			req: transport.CreateOrderRequest{
				CustomerID: uuid.New(),
				Items:      []transport.OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "unknown product",
			req: transport.CreateOrderRequest{
				CustomerID: customer.ID,
				Items:      []transport.OrderItemRequest{{ProductID: uuid.New(), Quantity: 1}},
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "insufficient stock",
			req: transport.CreateOrderRequest{
				CustomerID: customer.ID,
				Items:      []transport.OrderItemRequest{{ProductID: product.ID, Quantity: 5}},
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "no items",
			req:        transport.CreateOrderRequest{CustomerID: customer.ID},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c := env.doJSONRequest(http.MethodPost, "/orders", tt.req)
			err := env.Order.CreateOrder(c)
			require.Error(t, err)
			assert.Equal(t, tt.wantStatus, httpStatus(t, err))
		})
	}

	// failed attempts never touch stock
	var stored models.Product
	require.NoError(t, env.DB.First(&stored, "id = ?", product.ID).Error)
	assert.EqualValues(t, 2, stored.Quantity)
}

func TestGetProductHandler(t *testing.T) {
	env := newTestEnv(t)

	var product models.Product
	rec, c := env.doJSONRequest(http.MethodPost, "/products", transport.CreateProductRequest{
		Name:     "keyboard",
		Price:    49.9,
		Quantity: 10,
	})
	require.NoError(t, env.Product.CreateProduct(c))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))

	rec, c = env.doJSONRequest(http.MethodGet, "/products/"+product.ID.String(), nil)
	c.SetParamNames("id")
	c.SetParamValues(product.ID.String())
	require.NoError(t, env.Product.GetProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, product.ID, resp.ID)

	_, c = env.doJSONRequest(http.MethodGet, "/products/not-a-uuid", nil)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")
	err := env.Product.GetProduct(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}
