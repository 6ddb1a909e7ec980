package controller

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutFrom(t *testing.T, response map[string]interface{}) map[string]interface{} {
	t.Helper()
	checkout, ok := response["checkout"].(map[string]interface{})
	require.True(t, ok)
	return checkout
}

func TestCheckoutController_Open_EmptyCart(t *testing.T) {
	sf := setupStorefrontTest(t, nil)

	w := sf.do(t, http.MethodPost, "/checkout", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CART_EMPTY", decode(t, w)["error"])
}

func TestCheckoutController_Get_NotOpen(t *testing.T) {
	sf := setupStorefrontTest(t, nil)

	w := sf.do(t, http.MethodGet, "/checkout", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CHECKOUT_NOT_OPEN", decode(t, w)["error"])
}

func TestCheckoutController_FullFlow(t *testing.T) {
	sf := setupStorefrontTest(t, nil)
	sf.do(t, http.MethodPost, "/cart", map[string]string{"product_id": "p1"})
	sf.do(t, http.MethodPost, "/cart", map[string]string{"product_id": "p1"})
	sf.do(t, http.MethodPost, "/cart", map[string]string{"product_id": "p3"})

	w := sf.do(t, http.MethodPost, "/checkout", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	checkout := checkoutFrom(t, decode(t, w))
	assert.Equal(t, "draft", checkout["step"])
	assert.Equal(t, float64(128500), checkout["total"])

	w = sf.do(t, http.MethodPut, "/checkout/shipping", shippingBody())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "paying", checkoutFrom(t, decode(t, w))["step"])

	w = sf.do(t, http.MethodPut, "/checkout/payment-method", map[string]string{"method": "bank"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "무통장 입금", checkoutFrom(t, decode(t, w))["payment_method_label"])

	w = sf.do(t, http.MethodPost, "/checkout/pay", nil)
	require.Equal(t, http.StatusOK, w.Code)
	checkout = checkoutFrom(t, decode(t, w))
	assert.Equal(t, "complete", checkout["step"])
	assert.Equal(t, float64(128500), checkout["total"])
	assert.True(t, strings.HasPrefix(checkout["order_number"].(string), "WH-"))

	w = sf.do(t, http.MethodDelete, "/checkout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	notice := response["notice"].(map[string]interface{})
	assert.Equal(t, "주문이 성공적으로 완료되었습니다!", notice["message"])

	w = sf.do(t, http.MethodGet, "/cart", nil)
	assert.Len(t, cartFrom(t, decode(t, w))["lines"], 0)

	w = sf.do(t, http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])
}

func TestCheckoutController_SubmitShipping_Validation(t *testing.T) {
	sf := setupStorefrontTest(t, nil)
	sf.do(t, http.MethodPost, "/cart", map[string]string{"product_id": "p1"})
	sf.do(t, http.MethodPost, "/checkout", nil)

	body := shippingBody()
	delete(body, "name")
	body["address"] = ""

	w := sf.do(t, http.MethodPut, "/checkout/shipping", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	response := decode(t, w)
	assert.Equal(t, "VALIDATION_REQUIRED", response["error"])
	fields := response["fields"].(map[string]interface{})
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "address")
	assert.NotContains(t, fields, "phone")
}

func TestCheckoutController_StepViolation(t *testing.T) {
	sf := setupStorefrontTest(t, nil)
	sf.do(t, http.MethodPost, "/cart", map[string]string{"product_id": "p1"})
	sf.do(t, http.MethodPost, "/checkout", nil)

	w := sf.do(t, http.MethodPost, "/checkout/pay", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CHECKOUT_INVALID_STEP", decode(t, w)["error"])
}

func TestCheckoutController_InvalidPaymentMethod(t *testing.T) {
	sf := setupStorefrontTest(t, nil)
	sf.do(t, http.MethodPost, "/cart", map[string]string{"product_id": "p1"})
	sf.do(t, http.MethodPost, "/checkout", nil)
	sf.do(t, http.MethodPut, "/checkout/shipping", shippingBody())

	w := sf.do(t, http.MethodPut, "/checkout/payment-method", map[string]string{"method": "cash"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CHECKOUT_INVALID_PAYMENT", decode(t, w)["error"])
}

func TestCheckoutController_CloseWithoutPaying_KeepsCart(t *testing.T) {
	sf := setupStorefrontTest(t, nil)
	sf.do(t, http.MethodPost, "/cart", map[string]string{"product_id": "p1"})
	sf.do(t, http.MethodPost, "/checkout", nil)

	w := sf.do(t, http.MethodDelete, "/checkout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode(t, w)["notice"])

	w = sf.do(t, http.MethodGet, "/cart", nil)
	assert.Len(t, cartFrom(t, decode(t, w))["lines"], 1)
}
