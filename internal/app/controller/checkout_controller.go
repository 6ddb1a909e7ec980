package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/jangheelee880707/wooahhan/internal/app/service"
	"github.com/jangheelee880707/wooahhan/internal/middleware"
)

type CheckoutController struct {
	checkoutService service.CheckoutService
}

func NewCheckoutController(checkoutService service.CheckoutService) *CheckoutController {
	return &CheckoutController{
		checkoutService: checkoutService,
	}
}

type ShippingRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	AddressDetail string `json:"address_detail"`
	DeliveryNote  string `json:"delivery_note"`
}

type PaymentMethodRequest struct {
	Method model.PaymentMethod `json:"method" binding:"required"`
}

// OpenCheckout starts a new checkout at the shipping step
// POST /api/v1/checkout
func (ctrl *CheckoutController) OpenCheckout(c *gin.Context) {
	sessionID, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	summary, err := ctrl.checkoutService.Open(c.Request.Context(), sessionID)
	if err != nil {
		respondWithServiceError(c, err, "checkout")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"checkout": summary,
	})
}

// GetCheckout returns the current checkout
// GET /api/v1/checkout
func (ctrl *CheckoutController) GetCheckout(c *gin.Context) {
	sessionID, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	summary, err := ctrl.checkoutService.Summary(c.Request.Context(), sessionID)
	if err != nil {
		respondWithServiceError(c, err, "checkout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"checkout": summary,
	})
}

// SubmitShipping validates the delivery form and moves to payment
// PUT /api/v1/checkout/shipping
func (ctrl *CheckoutController) SubmitShipping(c *gin.Context) {
	sessionID, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	var req ShippingRequest
	if !bindJSON(c, &req) {
		return
	}

	summary, err := ctrl.checkoutService.SubmitShipping(c.Request.Context(), sessionID, model.ShippingInfo{
		Name:          req.Name,
		Phone:         req.Phone,
		Address:       req.Address,
		AddressDetail: req.AddressDetail,
		DeliveryNote:  req.DeliveryNote,
	})
	if err != nil {
		respondWithServiceError(c, err, "checkout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"checkout": summary,
	})
}

// SelectPaymentMethod chooses card or bank transfer
// PUT /api/v1/checkout/payment-method
func (ctrl *CheckoutController) SelectPaymentMethod(c *gin.Context) {
	sessionID, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	var req PaymentMethodRequest
	if !bindJSON(c, &req) {
		return
	}

	summary, err := ctrl.checkoutService.SelectPaymentMethod(c.Request.Context(), sessionID, req.Method)
	if err != nil {
		respondWithServiceError(c, err, "checkout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"checkout": summary,
	})
}

// Pay runs the simulated payment and completes the order
// POST /api/v1/checkout/pay
func (ctrl *CheckoutController) Pay(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	summary, err := ctrl.checkoutService.Pay(c.Request.Context(), sessionID)
	if err != nil {
		respondWithServiceError(c, err, "checkout payment")
		return
	}

	log.Info("Checkout paid", map[string]interface{}{
		"order_number": summary.OrderNumber,
		"total":        summary.Total,
	})

	c.JSON(http.StatusOK, gin.H{
		"checkout": summary,
	})
}

// CloseCheckout discards the checkout; a completed one also clears the cart
// DELETE /api/v1/checkout
func (ctrl *CheckoutController) CloseCheckout(c *gin.Context) {
	sessionID, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	view, notice, err := ctrl.checkoutService.Close(c.Request.Context(), sessionID)
	if err != nil {
		respondWithServiceError(c, err, "checkout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"view":   view,
		"notice": notice,
	})
}

// GetOrders returns the session's completed orders
// GET /api/v1/orders
func (ctrl *CheckoutController) GetOrders(c *gin.Context) {
	sessionID, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	orders, err := ctrl.checkoutService.ListOrders(sessionID)
	if err != nil {
		respondWithServiceError(c, err, "order list")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}
