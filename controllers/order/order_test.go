package orderControllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	orderControllers "github.com/ResonanceSE/Resonance/controllers/order"
	"github.com/ResonanceSE/Resonance/middleware"
	"github.com/ResonanceSE/Resonance/models"
)

var testDBCounter int

type fixture struct {
	db    *gorm.DB
	r     *gin.Engine
	user  models.User
	token string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	testDBCounter++
	dsn := fmt.Sprintf("file:ordertest%d?mode=memory&cache=shared", testDBCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Token{}, &models.Category{}, &models.Product{},
		&models.Cart{}, &models.CartItem{}, &models.Order{}, &models.OrderItem{},
	))

	hash, _ := bcrypt.GenerateFromPassword([]byte("Str0ngPass"), bcrypt.DefaultCost)
	user := models.User{
		Username:     "buyer",
		Email:        "buyer@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
	}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.Cart{UserID: user.ID}).Error)
	token := models.NewToken(user.ID)
	require.NoError(t, db.Create(&token).Error)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	orders := r.Group("/api/orders", middleware.RequireAuth(db))
	orders.POST("/create", orderControllers.CreateOrder(db, zap.NewNop()))
	orders.GET("", orderControllers.GetUserOrders(db))
	orders.GET("/:order_id", orderControllers.GetOrderDetails(db))
	orders.POST("/:order_id/payment", orderControllers.ProcessPayment(db))

	return &fixture{db: db, r: r, user: user, token: token.Key}
}

func (f *fixture) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.token)
	w := httptest.NewRecorder()
	f.r.ServeHTTP(w, req)
	return w
}

func (f *fixture) seedProduct(t *testing.T, name string, price float64, stock int) models.Product {
	t.Helper()
	p := models.Product{Name: name, Slug: name, Price: price, Stock: stock, IsActive: true}
	require.NoError(t, f.db.Create(&p).Error)
	return p
}

func (f *fixture) stockOf(t *testing.T, id uint) int {
	t.Helper()
	var p models.Product
	require.NoError(t, f.db.First(&p, id).Error)
	return p.Stock
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCreateOrderTotalsAndDecrement(t *testing.T) {
	f := newFixture(t)
	p1 := f.seedProduct(t, "amp", 500, 10)
	p2 := f.seedProduct(t, "speaker", 120, 8)

	w := f.do(http.MethodPost, "/api/orders/create", gin.H{
		"shipping_address": "1 Main St\nSpringfield, IL 62701\nUSA",
		"items": []gin.H{
			{"product_id": p1.ID, "quantity": 2, "price": 500},
			{"product_id": p2.ID, "quantity": 3, "price": 120},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := decode(t, w)["data"].(map[string]interface{})
	assert.EqualValues(t, 2*500+3*120, data["total_amount"])
	number := data["order_number"].(string)
	assert.True(t, strings.HasPrefix(number, "ORD-"), number)
	assert.Len(t, number, len("ORD-")+8)

	assert.Equal(t, 8, f.stockOf(t, p1.ID))
	assert.Equal(t, 5, f.stockOf(t, p2.ID))

	var order models.Order
	require.NoError(t, f.db.Preload("Items").First(&order).Error)
	require.Len(t, order.Items, 2)
	var sum float64
	for _, item := range order.Items {
		sum += item.Price * float64(item.Quantity)
	}
	assert.Equal(t, sum, order.TotalAmount)
}

func TestCreateOrderUsesLivePriceWhenAbsent(t *testing.T) {
	f := newFixture(t)
	sale := 80.0
	p := models.Product{Name: "deck", Slug: "deck", Price: 100, SalePrice: &sale, Stock: 5, IsActive: true}
	require.NoError(t, f.db.Create(&p).Error)

	w := f.do(http.MethodPost, "/api/orders/create", gin.H{
		"shipping_address": "1 Main St",
		"items":            []gin.H{{"product_id": p.ID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := decode(t, w)["data"].(map[string]interface{})
	assert.EqualValues(t, 160, data["total_amount"])
}

func TestInsufficientStockRollsBackEverything(t *testing.T) {
	f := newFixture(t)
	p1 := f.seedProduct(t, "cable", 15, 10)
	p2 := f.seedProduct(t, "needle", 40, 1)

	w := f.do(http.MethodPost, "/api/orders/create", gin.H{
		"shipping_address": "1 Main St",
		"items": []gin.H{
			{"product_id": p1.ID, "quantity": 2},
			{"product_id": p2.ID, "quantity": 5},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	msg := decode(t, w)["message"].(string)
	assert.Contains(t, msg, "Not enough stock")
	assert.Contains(t, msg, "Only 1 available.")

	// Nothing persisted, nothing decremented.
	var orderCount, itemCount int64
	f.db.Model(&models.Order{}).Count(&orderCount)
	f.db.Model(&models.OrderItem{}).Count(&itemCount)
	assert.EqualValues(t, 0, orderCount)
	assert.EqualValues(t, 0, itemCount)
	assert.Equal(t, 10, f.stockOf(t, p1.ID))
	assert.Equal(t, 1, f.stockOf(t, p2.ID))
}

func TestExactStockBoundary(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "limited", 999, 5)

	first := f.do(http.MethodPost, "/api/orders/create", gin.H{
		"shipping_address": "1 Main St",
		"items":            []gin.H{{"product_id": p.ID, "quantity": 5}},
	})
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	assert.Equal(t, 0, f.stockOf(t, p.ID))

	second := f.do(http.MethodPost, "/api/orders/create", gin.H{
		"shipping_address": "1 Main St",
		"items":            []gin.H{{"product_id": p.ID, "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, second.Code)
	assert.Contains(t, decode(t, second)["message"], "Only 0 available.")
}

func TestCreateOrderFallsBackToCartAndClearsIt(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "record", 25, 10)

	var cart models.Cart
	require.NoError(t, f.db.Where("user_id = ?", f.user.ID).First(&cart).Error)
	require.NoError(t, f.db.Create(&models.CartItem{
		CartID: cart.CartID, ProductID: p.ID, Quantity: 3, AddedAt: time.Now(),
	}).Error)

	w := f.do(http.MethodPost, "/api/orders/create", gin.H{
		"shipping_address": "1 Main St",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := decode(t, w)["data"].(map[string]interface{})
	assert.EqualValues(t, 75, data["total_amount"])
	assert.Equal(t, 7, f.stockOf(t, p.ID))

	var remaining int64
	f.db.Model(&models.CartItem{}).Where("cart_id = ?", cart.CartID).Count(&remaining)
	assert.EqualValues(t, 0, remaining)
}

func TestCreateOrderNoItemsNoCart(t *testing.T) {
	f := newFixture(t)

	// The fixture cart exists but is empty.
	w := f.do(http.MethodPost, "/api/orders/create", gin.H{
		"shipping_address": "1 Main St",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No cart found and no cart items provided", decode(t, w)["message"])
}

func TestCreateOrderMissingAddress(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "thing", 10, 10)

	w := f.do(http.MethodPost, "/api/orders/create", gin.H{
		"items": []gin.H{{"product_id": p.ID, "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Shipping address is required", decode(t, w)["message"])
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/orders/create", gin.H{
		"shipping_address": "1 Main St",
		"items":            []gin.H{{"product_id": 777, "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Product with ID 777 not found", decode(t, w)["message"])
}

func TestSaveAddressPersistsProfileFields(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "gadget", 30, 5)

	w := f.do(http.MethodPost, "/api/orders/create", gin.H{
		"shipping_address": "42 Elm Street\nPortland, OR 97201\nUSA",
		"save_address":     true,
		"items":            []gin.H{{"product_id": p.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user models.User
	require.NoError(t, f.db.First(&user, f.user.ID).Error)
	assert.Equal(t, "42 Elm Street", user.Address)
	assert.Equal(t, "Portland", user.City)
	assert.Equal(t, "USA", user.Country)
}

func TestGetOrdersOwnershipEnforced(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "mine", 50, 5)

	created := f.do(http.MethodPost, "/api/orders/create", gin.H{
		"shipping_address": "1 Main St",
		"items":            []gin.H{{"product_id": p.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, created.Code)

	// Another user cannot read it.
	hash, _ := bcrypt.GenerateFromPassword([]byte("Str0ngPass"), bcrypt.DefaultCost)
	other := models.User{Username: "other", Email: "other@example.com", PasswordHash: string(hash), Role: models.RoleCustomer}
	require.NoError(t, f.db.Create(&other).Error)
	otherToken := models.NewToken(other.ID)
	require.NoError(t, f.db.Create(&otherToken).Error)

	var order models.Order
	require.NoError(t, f.db.First(&order).Error)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID), nil)
	req.Header.Set("Authorization", "Bearer "+otherToken.Key)
	w := httptest.NewRecorder()
	f.r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The owner can.
	own := f.do(http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID), nil)
	assert.Equal(t, http.StatusOK, own.Code)
}

func TestProcessPayment(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "paid-item", 200, 5)

	created := f.do(http.MethodPost, "/api/orders/create", gin.H{
		"shipping_address": "1 Main St",
		"items":            []gin.H{{"product_id": p.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, created.Code)

	var order models.Order
	require.NoError(t, f.db.First(&order).Error)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	w := f.do(http.MethodPost, fmt.Sprintf("/api/orders/%d/payment", order.ID), gin.H{
		"payment_status": true,
		"payment_method": "card",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, f.db.First(&order, order.ID).Error)
	assert.True(t, order.PaymentStatus)
	assert.Equal(t, "card", order.PaymentMethod)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.NotNil(t, order.PaymentDate)
}
