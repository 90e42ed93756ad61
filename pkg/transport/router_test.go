package transport_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/domain/model"
	"storefront/pkg/domain/service"
	"storefront/pkg/infrastructure/cache"
	"storefront/pkg/infrastructure/event"
	"storefront/pkg/infrastructure/memory"
	"storefront/pkg/infrastructure/upload"
	"storefront/pkg/transport"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type stubGateway struct{}

func (stubGateway) CreatePaymentIntent(context.Context, int64, string) (string, error) {
	return "pi_test_secret", nil
}

type testServer struct {
	handler http.Handler
	cache   *cache.LRU
	uploads *upload.Store
}

func setupServer(t *testing.T) *testServer {
	lru, err := cache.NewLRU(64)
	require.NoError(t, err)
	uploads, err := upload.NewStore(t.TempDir())
	require.NoError(t, err)

	dispatcher := event.NewLogDispatcher()
	products := memory.NewProductRepository()
	orders := memory.NewOrderRepository()
	users := memory.NewUserRepository()

	handler := transport.Router(transport.Services{
		Products:  service.NewProductService(products, lru, uploads, dispatcher, 0),
		Orders:    service.NewOrderService(orders, service.NewStockReducer(products, dispatcher), lru, dispatcher),
		Payments:  service.NewPaymentService(stubGateway{}),
		Coupons:   service.NewCouponService(memory.NewCouponRepository(), dispatcher, nil),
		Users:     service.NewUserService(users, lru, dispatcher),
		Dashboard: service.NewDashboardService(products, users, orders, lru, service.DashboardOptions{}),
		Uploads:   uploads,
	})
	return &testServer{handler: handler, cache: lru, uploads: uploads}
}

func (s *testServer) do(t *testing.T, req *http.Request, dst interface{}) int {
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	if dst != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
	}
	return rec.Code
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func productRequest(t *testing.T, fields map[string]string, photoName string) *http.Request {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if photoName != "" {
		part, err := w.CreateFormFile("photo", photoName)
		require.NoError(t, err)
		_, err = part.Write([]byte("not really a png"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/product/new", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

type message struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func TestOrderFlowInvalidatesDashboard(t *testing.T) {
	s := setupServer(t)

	var created message
	code := s.do(t, productRequest(t, map[string]string{
		"name":        "Trail Shoe",
		"price":       "100",
		"description": "Grippy",
		"stock":       "10",
		"category":    "Shoes",
	}, "shoe.PNG"), &created)
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, created.Success)

	var list struct {
		Products []model.Product `json:"products"`
	}
	require.Equal(t, http.StatusOK, s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/product/admin-products", nil), &list))
	require.Len(t, list.Products, 1)
	product := list.Products[0]
	assert.Equal(t, "shoes", product.Category)
	assert.True(t, strings.HasSuffix(product.Photo, ".png"))
	_, err := os.Stat(filepath.FromSlash(product.Photo))
	assert.NoError(t, err)

	var stats struct {
		Stats model.Stats `json:"stats"`
	}
	require.Equal(t, http.StatusOK, s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil), &stats))
	assert.Equal(t, int64(1), stats.Stats.Products.TotalProducts)
	assert.Equal(t, int64(0), stats.Stats.Orders.TotalOrders)
	assert.True(t, s.cache.Has(service.KeyAdminStats))

	code = s.do(t, jsonRequest(t, http.MethodPost, "/api/v1/order/new", map[string]interface{}{
		"shippingInfo": map[string]interface{}{"address": "1 Main St", "city": "Pune", "state": "MH", "country": "India", "phoneNo": "9999999999"},
		"orderItems":   []map[string]interface{}{{"name": "Trail Shoe", "price": 100, "quantity": 3, "productId": product.ID}},
		"user":         "u1",
		"subtotal":     300,
		"tax":          10,
		"total":        310,
	}), &created)
	require.Equal(t, http.StatusCreated, code)
	assert.False(t, s.cache.Has(service.KeyAdminStats))

	var single struct {
		Product model.Product `json:"product"`
	}
	require.Equal(t, http.StatusOK, s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/product/"+product.ID, nil), &single))
	assert.Equal(t, 7, single.Product.Stock)

	require.Equal(t, http.StatusOK, s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil), &stats))
	assert.Equal(t, int64(1), stats.Stats.Products.TotalProducts)
	assert.Equal(t, int64(1), stats.Stats.Orders.TotalOrders)
	assert.Equal(t, 310.0, stats.Stats.Revenue.TotalRevenue)
	require.Len(t, stats.Stats.LatestTransactions, 1)
	assert.Equal(t, 1, stats.Stats.LatestTransactions[0].Quantity)

	var mine struct {
		Orders []model.Order `json:"orders"`
	}
	require.Equal(t, http.StatusOK, s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/order/my-orders?id=u1", nil), &mine))
	require.Len(t, mine.Orders, 1)
	assert.Equal(t, model.Processing, mine.Orders[0].Status)
}

func TestErrorResponses(t *testing.T) {
	s := setupServer(t)

	tests := []struct {
		name    string
		req     *http.Request
		status  int
		message string
	}{
		{"Invalid product id", httptest.NewRequest(http.MethodGet, "/api/v1/product/not-an-id", nil), http.StatusBadRequest, "Invalid ID"},
		{"Unknown product", httptest.NewRequest(http.MethodGet, "/api/v1/product/5b4a6c1e-8f0e-4c5d-9d0a-2f3e4b5c6d7e", nil), http.StatusNotFound, "Product not found"},
		{"No orders for user", httptest.NewRequest(http.MethodGet, "/api/v1/order/my-orders?id=nobody", nil), http.StatusNotFound, "You have no orders"},
		{"Unknown user", httptest.NewRequest(http.MethodGet, "/api/v1/user/nobody", nil), http.StatusNotFound, "Invalid Id"},
		{"Product without photo", productRequest(t, map[string]string{"name": "x"}, ""), http.StatusBadRequest, "Please provide a photo for this product."},
		{"Order missing fields", jsonRequest(t, http.MethodPost, "/api/v1/order/new", map[string]interface{}{"user": "u1"}), http.StatusBadRequest, "Please fill all the fields"},
		{"Zero payment amount", jsonRequest(t, http.MethodPost, "/api/v1/payment/create", map[string]interface{}{"amount": 0}), http.StatusBadRequest, "Please enter amount"},
		{"Unknown coupon", httptest.NewRequest(http.MethodGet, "/api/v1/payment/discount?coupon=NOPE", nil), http.StatusNotFound, "Invalid coupon"},
		{"Malformed body", httptest.NewRequest(http.MethodPost, "/api/v1/user/new", strings.NewReader("[1]")), http.StatusBadRequest, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp message
			assert.Equal(t, tt.status, s.do(t, tt.req, &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestPaymentAndCoupons(t *testing.T) {
	s := setupServer(t)

	var intent struct {
		Success      bool   `json:"success"`
		ClientSecret string `json:"client_secret"`
	}
	require.Equal(t, http.StatusCreated, s.do(t, jsonRequest(t, http.MethodPost, "/api/v1/payment/create", map[string]interface{}{"amount": 12.5}), &intent))
	assert.Equal(t, "pi_test_secret", intent.ClientSecret)

	var resp message
	require.Equal(t, http.StatusCreated, s.do(t, jsonRequest(t, http.MethodPost, "/api/v1/payment/coupon/new", map[string]interface{}{
		"coupon":   "SAVE10",
		"discount": "10",
		"expireAt": "2099-12-31",
	}), &resp))

	var discount struct {
		Discount float64 `json:"discount"`
	}
	require.Equal(t, http.StatusOK, s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/payment/discount?coupon=SAVE10", nil), &discount))
	assert.Equal(t, 10.0, discount.Discount)

	require.Equal(t, http.StatusBadRequest, s.do(t, jsonRequest(t, http.MethodPost, "/api/v1/payment/coupon/new", map[string]interface{}{
		"coupon":   "SAVE10",
		"discount": 5,
		"expireAt": "2099-12-31",
	}), &resp))
	assert.Equal(t, "Coupon code already exists", resp.Message)
}

func TestApiStatus(t *testing.T) {
	s := setupServer(t)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "API is working", rec.Body.String())
}
