package controller

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jangheelee880707/wooahhan/internal/app/service"
	"github.com/jangheelee880707/wooahhan/internal/middleware"
)

type CartController struct {
	cartService   service.CartService
	exportService service.ExportService
}

func NewCartController(cartService service.CartService, exportService service.ExportService) *CartController {
	return &CartController{
		cartService:   cartService,
		exportService: exportService,
	}
}

type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

type UpdateCartRequest struct {
	Delta *int `json:"delta" binding:"required"`
}

// GetCart returns the session's cart
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	sessionID, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	cart, err := ctrl.cartService.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		respondWithServiceError(c, err, "cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart": cart,
	})
}

// AddToCart adds one unit of a product
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	var req AddToCartRequest
	if !bindJSON(c, &req) {
		return
	}

	cart, notice, err := ctrl.cartService.AddToCart(c.Request.Context(), sessionID, req.ProductID)
	if err != nil {
		respondWithServiceError(c, err, "cart")
		return
	}

	log.Info("Item added to cart", map[string]interface{}{
		"product_id": req.ProductID,
		"items":      cart.ItemCount,
	})

	c.JSON(http.StatusOK, gin.H{
		"cart":   cart,
		"notice": notice,
	})
}

// UpdateQuantity changes a line's quantity by delta, never below 1
// PATCH /api/v1/cart/:product_id
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	sessionID, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	var req UpdateCartRequest
	if !bindJSON(c, &req) {
		return
	}

	cart, err := ctrl.cartService.UpdateQuantity(c.Request.Context(), sessionID, c.Param("product_id"), *req.Delta)
	if err != nil {
		respondWithServiceError(c, err, "cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart": cart,
	})
}

// RemoveFromCart deletes a line
// DELETE /api/v1/cart/:product_id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	sessionID, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	cart, err := ctrl.cartService.RemoveFromCart(c.Request.Context(), sessionID, c.Param("product_id"))
	if err != nil {
		respondWithServiceError(c, err, "cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart": cart,
	})
}

// ClearCart empties the cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	sessionID, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	cart, err := ctrl.cartService.ClearCart(c.Request.Context(), sessionID)
	if err != nil {
		respondWithServiceError(c, err, "cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart": cart,
	})
}

// ExportCart downloads the cart as a spreadsheet
// GET /api/v1/cart/export
func (ctrl *CartController) ExportCart(c *gin.Context) {
	sessionID, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := ctrl.exportService.ExportCart(c.Request.Context(), sessionID, &buf); err != nil {
		respondWithServiceError(c, err, "cart export")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+service.CartExportFilename+`"`)
	c.Data(http.StatusOK, service.CartExportMIMEType, buf.Bytes())
}
