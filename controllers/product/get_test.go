package productControllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	productControllers "github.com/ResonanceSE/Resonance/controllers/product"
	"github.com/ResonanceSE/Resonance/models"
)

var testDBCounter int

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDBCounter++
	dsn := fmt.Sprintf("file:producttest%d?mode=memory&cache=shared", testDBCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Product{}))
	return db
}

func newRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	products := r.Group("/api/products")
	products.GET("", productControllers.GetProducts(db))
	products.GET("/filters", productControllers.GetFilters(db))
	products.GET("/recommendations", productControllers.GetRecommended(db))
	products.GET("/check-stock/:id", productControllers.CheckStock(db))
	products.GET("/:param", productControllers.GetProductOrCategory(db))
	products.GET("/:param/:id", productControllers.GetProductDetail(db))
	r.GET("/api/categories", productControllers.GetCategories(db))
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func dataList(t *testing.T, w *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	return decode(t, w)["data"].([]interface{})
}

func seed(t *testing.T, db *gorm.DB) (models.Category, []models.Product) {
	t.Helper()
	cat := models.Category{Name: "Speakers", Slug: "speakers", IsActive: true}
	require.NoError(t, db.Create(&cat).Error)

	products := []models.Product{
		{Name: "Bookshelf Speaker", Slug: "bookshelf-speaker", Brand: "Acme", Price: 250, Stock: 4, IsActive: true, CategoryID: &cat.ID},
		{Name: "Floor Speaker", Slug: "floor-speaker", Brand: "Acme", Price: 900, Stock: 2, IsActive: true, CategoryID: &cat.ID, IsFeatured: true},
		{Name: "Budget Earbuds", Slug: "budget-earbuds", Brand: "Generic", Price: 40, Stock: 0, IsActive: true},
		{Name: "Retired Model", Slug: "retired-model", Brand: "Acme", Price: 100, Stock: 9, IsActive: false},
	}
	for i := range products {
		require.NoError(t, db.Create(&products[i]).Error)
	}
	return cat, products
}

func TestListReturnsOnlyActiveProducts(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	r := newRouter(db)

	w := get(r, "/api/products")
	require.Equal(t, http.StatusOK, w.Code)

	items := dataList(t, w)
	assert.Len(t, items, 3)
	for _, raw := range items {
		p := raw.(map[string]interface{})
		assert.NotEqual(t, "Retired Model", p["name"])
	}
}

func TestListFilters(t *testing.T) {
	db := newTestDB(t)
	cat, _ := seed(t, db)
	r := newRouter(db)

	byBrand := get(r, "/api/products?brand=Acme")
	require.Equal(t, http.StatusOK, byBrand.Code)
	assert.Len(t, dataList(t, byBrand), 2)

	byCategory := get(r, fmt.Sprintf("/api/products?category_id=%d", cat.ID))
	require.Equal(t, http.StatusOK, byCategory.Code)
	assert.Len(t, dataList(t, byCategory), 2)

	byPrice := get(r, "/api/products?min_price=100&max_price=500")
	require.Equal(t, http.StatusOK, byPrice.Code)
	items := dataList(t, byPrice)
	require.Len(t, items, 1)
	assert.Equal(t, "Bookshelf Speaker", items[0].(map[string]interface{})["name"])

	bySearch := get(r, "/api/products?search=speaker")
	require.Equal(t, http.StatusOK, bySearch.Code)
	assert.Len(t, dataList(t, bySearch), 2)

	badCategory := get(r, "/api/products?category_id=banana")
	assert.Equal(t, http.StatusBadRequest, badCategory.Code)
}

func TestListSortByPriceAsc(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	r := newRouter(db)

	w := get(r, "/api/products?sort_by=price&order=asc")
	require.Equal(t, http.StatusOK, w.Code)

	items := dataList(t, w)
	require.Len(t, items, 3)
	prev := -1.0
	for _, raw := range items {
		price := raw.(map[string]interface{})["price"].(float64)
		assert.GreaterOrEqual(t, price, prev)
		prev = price
	}
}

func TestParamResolvesProductIDOrCategorySlug(t *testing.T) {
	db := newTestDB(t)
	_, products := seed(t, db)
	r := newRouter(db)

	byID := get(r, fmt.Sprintf("/api/products/%d", products[0].ID))
	require.Equal(t, http.StatusOK, byID.Code)
	detail := decode(t, byID)["data"].(map[string]interface{})
	assert.Equal(t, "Bookshelf Speaker", detail["name"])

	bySlug := get(r, "/api/products/speakers")
	require.Equal(t, http.StatusOK, bySlug.Code)
	assert.Len(t, dataList(t, bySlug), 2)

	missing := get(r, "/api/products/no-such-category")
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, "Category not found", decode(t, missing)["message"])
}

func TestProductDetailUnderCategoryPath(t *testing.T) {
	db := newTestDB(t)
	_, products := seed(t, db)
	r := newRouter(db)

	w := get(r, fmt.Sprintf("/api/products/speakers/%d", products[1].ID))
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Floor Speaker", detail["name"])

	missing := get(r, "/api/products/speakers/99999")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestCheckStock(t *testing.T) {
	db := newTestDB(t)
	_, products := seed(t, db)
	r := newRouter(db)

	inStock := get(r, fmt.Sprintf("/api/products/check-stock/%d", products[0].ID))
	require.Equal(t, http.StatusOK, inStock.Code)
	data := decode(t, inStock)["data"].(map[string]interface{})
	assert.EqualValues(t, 4, data["stock"])
	assert.Equal(t, true, data["in_stock"])

	outOfStock := get(r, fmt.Sprintf("/api/products/check-stock/%d", products[2].ID))
	require.Equal(t, http.StatusOK, outOfStock.Code)
	data = decode(t, outOfStock)["data"].(map[string]interface{})
	assert.Equal(t, false, data["in_stock"])

	missing := get(r, "/api/products/check-stock/99999")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestRecommendationsReturnFeatured(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	r := newRouter(db)

	w := get(r, "/api/products/recommendations")
	require.Equal(t, http.StatusOK, w.Code)

	items := dataList(t, w)
	require.Len(t, items, 1)
	assert.Equal(t, "Floor Speaker", items[0].(map[string]interface{})["name"])
}

func TestFiltersPayload(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	r := newRouter(db)

	w := get(r, "/api/products/filters")
	require.Equal(t, http.StatusOK, w.Code)

	data := decode(t, w)["data"].(map[string]interface{})

	brands := data["brands"].([]interface{})
	require.Len(t, brands, 2)
	acme := brands[0].(map[string]interface{})
	assert.Equal(t, "Acme", acme["brand"])
	assert.EqualValues(t, 2, acme["count"])

	ranges := data["price_ranges"].([]interface{})
	require.Len(t, ranges, 4)
	under100 := ranges[0].(map[string]interface{})
	assert.Equal(t, "Under $100", under100["name"])
	assert.EqualValues(t, 1, under100["count"])
	over500 := ranges[3].(map[string]interface{})
	assert.EqualValues(t, 1, over500["count"])

	categories := data["categories"].([]interface{})
	assert.Len(t, categories, 1)
}

func TestPublicCategoryListing(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	inactive := models.Category{Name: "Hidden", Slug: "hidden", IsActive: false}
	require.NoError(t, db.Create(&inactive).Error)
	r := newRouter(db)

	w := get(r, "/api/categories")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataList(t, w), 1)
}
