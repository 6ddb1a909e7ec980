package controller

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/jangheelee880707/wooahhan/pkg/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductController_GetProducts_All(t *testing.T) {
	sf := setupStorefrontTest(t, nil)

	w := sf.do(t, http.MethodGet, "/products", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := decode(t, w)
	assert.Equal(t, float64(6), response["count"])
	assert.Equal(t, "all", response["category"])
}

func TestProductController_GetProducts_QueryCategory(t *testing.T) {
	sf := setupStorefrontTest(t, nil)

	w := sf.do(t, http.MethodGet, "/products?category=grill", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := decode(t, w)
	products := response["products"].([]interface{})
	require.Len(t, products, 1)
	assert.Equal(t, "p5", products[0].(map[string]interface{})["id"])
}

func TestProductController_GetProducts_UsesActiveCategory(t *testing.T) {
	sf := setupStorefrontTest(t, nil)

	w := sf.do(t, http.MethodPost, "/view/events", map[string]string{"type": "select_category", "category": "ceremonial"})
	require.Equal(t, http.StatusOK, w.Code)

	w = sf.do(t, http.MethodGet, "/products", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, float64(1), response["count"])
	assert.Equal(t, "ceremonial", response["category"])
}

func TestProductController_GetProducts_UnknownCategory(t *testing.T) {
	sf := setupStorefrontTest(t, nil)

	w := sf.do(t, http.MethodGet, "/products?category=dessert", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "PRODUCT_INVALID_CATEGORY", decode(t, w)["error"])
}

func TestProductController_GetCategories(t *testing.T) {
	sf := setupStorefrontTest(t, nil)

	w := sf.do(t, http.MethodGet, "/products/categories", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["categories"], 4)
}

func TestProductController_GetProductByID(t *testing.T) {
	sf := setupStorefrontTest(t, nil)

	w := sf.do(t, http.MethodGet, "/products/p3", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	product := decode(t, w)["product"].(map[string]interface{})
	assert.Equal(t, "명품 꿀 육회", product["name"])
	assert.Equal(t, "₩35,000", product["price"])

	w = sf.do(t, http.MethodGet, "/products/p404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PRODUCT_NOT_FOUND", decode(t, w)["error"])
}

func TestProductController_GenerateImage_Success(t *testing.T) {
	sf := setupStorefrontTest(t, &stubGenerativeClient{image: &gemini.Image{Data: []byte("img"), MIMEType: "image/png"}})

	w := sf.do(t, http.MethodPost, "/products/p5/image", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	image := decode(t, w)["image"].(map[string]interface{})
	assert.Equal(t, "p5", image["product_id"])
	assert.True(t, strings.HasPrefix(image["url"].(string), "data:image/png;base64,"))

	w = sf.do(t, http.MethodGet, "/products/images", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])
}

func TestProductController_GenerateImage_Disabled(t *testing.T) {
	sf := setupStorefrontTest(t, nil)

	w := sf.do(t, http.MethodPost, "/products/p1/image", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "AI_DISABLED", decode(t, w)["error"])
}

func TestProductController_GenerateImage_NoImage(t *testing.T) {
	sf := setupStorefrontTest(t, &stubGenerativeClient{})

	w := sf.do(t, http.MethodPost, "/products/p1/image", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "AI_GENERATION_FAILED", decode(t, w)["error"])
}

func TestProductController_GenerateImage_GatewayError(t *testing.T) {
	sf := setupStorefrontTest(t, &stubGenerativeClient{err: errors.New("quota exceeded")})

	w := sf.do(t, http.MethodPost, "/products/p1/image", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "AI_GENERATION_FAILED", decode(t, w)["error"])

	w = sf.do(t, http.MethodGet, "/products/images", nil)
	assert.Equal(t, float64(0), decode(t, w)["count"])
}

func TestProductController_GenerateImage_UnknownProduct(t *testing.T) {
	sf := setupStorefrontTest(t, &stubGenerativeClient{})

	w := sf.do(t, http.MethodPost, "/products/p404/image", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
