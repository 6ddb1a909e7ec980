package controller

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func cartFrom(t *testing.T, response map[string]interface{}) map[string]interface{} {
	t.Helper()
	cart, ok := response["cart"].(map[string]interface{})
	require.True(t, ok)
	return cart
}

func TestCartController_GetCart_Empty(t *testing.T) {
	sf := setupStorefrontTest(t, nil)

	w := sf.do(t, http.MethodGet, "/cart", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	cart := cartFrom(t, decode(t, w))
	assert.Len(t, cart["lines"], 0)
	assert.Equal(t, float64(0), cart["total"])
}

func TestCartController_AddToCart(t *testing.T) {
	sf := setupStorefrontTest(t, nil)

	sf.do(t, http.MethodPost, "/cart", map[string]string{"product_id": "p1"})
	sf.do(t, http.MethodPost, "/cart", map[string]string{"product_id": "p1"})
	w := sf.do(t, http.MethodPost, "/cart", map[string]string{"product_id": "p3"})
	assert.Equal(t, http.StatusOK, w.Code)

	response := decode(t, w)
	cart := cartFrom(t, response)
	assert.Equal(t, float64(125000), cart["total"])
	assert.Equal(t, "₩125,000", cart["total_display"])
	assert.Equal(t, float64(3), cart["item_count"])

	notice := response["notice"].(map[string]interface{})
	assert.Equal(t, "'명품 꿀 육회' 장바구니에 담겼습니다.", notice["message"])
}

func TestCartController_AddToCart_InvalidRequest(t *testing.T) {
	sf := setupStorefrontTest(t, nil)

	w := sf.do(t, http.MethodPost, "/cart", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_INVALID_INPUT", decode(t, w)["error"])
}

func TestCartController_AddToCart_ProductNotFound(t *testing.T) {
	sf := setupStorefrontTest(t, nil)

	w := sf.do(t, http.MethodPost, "/cart", map[string]string{"product_id": "p404"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PRODUCT_NOT_FOUND", decode(t, w)["error"])
}

func TestCartController_UpdateQuantity(t *testing.T) {
	sf := setupStorefrontTest(t, nil)
	sf.do(t, http.MethodPost, "/cart", map[string]string{"product_id": "p2"})

	w := sf.do(t, http.MethodPatch, "/cart/p2", map[string]int{"delta": 2})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), cartFrom(t, decode(t, w))["item_count"])

	w = sf.do(t, http.MethodPatch, "/cart/p2", map[string]int{"delta": -9})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), cartFrom(t, decode(t, w))["item_count"])

	// Unknown line is a no-op
	w = sf.do(t, http.MethodPatch, "/cart/p9", map[string]int{"delta": 1})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), cartFrom(t, decode(t, w))["item_count"])

	w = sf.do(t, http.MethodPatch, "/cart/p2", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartController_RemoveAndClear(t *testing.T) {
	sf := setupStorefrontTest(t, nil)
	sf.do(t, http.MethodPost, "/cart", map[string]string{"product_id": "p1"})
	sf.do(t, http.MethodPost, "/cart", map[string]string{"product_id": "p2"})

	w := sf.do(t, http.MethodDelete, "/cart/p1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, cartFrom(t, decode(t, w))["lines"], 1)

	w = sf.do(t, http.MethodDelete, "/cart/p1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = sf.do(t, http.MethodDelete, "/cart", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, cartFrom(t, decode(t, w))["lines"], 0)
}

func TestCartController_ExportCart(t *testing.T) {
	sf := setupStorefrontTest(t, nil)
	sf.do(t, http.MethodPost, "/cart", map[string]string{"product_id": "p6"})

	w := sf.do(t, http.MethodGet, "/cart/export", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "woo-ah-han-cart.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, "p6", rows[1][0])
}

func TestCartController_NoSession(t *testing.T) {
	sf := setupStorefrontTest(t, nil)

	w := sf.do(t, http.MethodGet, "/anonymous/cart", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "SESSION_INVALID", decode(t, w)["error"])
}
