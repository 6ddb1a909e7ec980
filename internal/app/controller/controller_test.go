package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/jangheelee880707/wooahhan/internal/app/repository"
	"github.com/jangheelee880707/wooahhan/internal/app/service"
	"github.com/jangheelee880707/wooahhan/internal/db"
	"github.com/jangheelee880707/wooahhan/pkg/gemini"
	"github.com/jangheelee880707/wooahhan/pkg/payment/simpay"
	"github.com/stretchr/testify/require"
)

const testSessionID = "test-session"

type stubGenerativeClient struct {
	reply string
	image *gemini.Image
	err   error
}

func (s *stubGenerativeClient) GenerateText(context.Context, string, []gemini.Turn) (string, error) {
	return s.reply, s.err
}

func (s *stubGenerativeClient) GenerateImage(context.Context, string) (*gemini.Image, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.image == nil {
		return nil, gemini.ErrNoImage
	}
	return s.image, nil
}

type storefront struct {
	products *ProductController
	cart     *CartController
	checkout *CheckoutController
	chat     *ChatController
	view     *ViewController
	router   *gin.Engine
}

// setupStorefrontTest wires every controller over a seeded database and
// in-memory sessions. client may be nil for a storefront without AI.
func setupStorefrontTest(t *testing.T, client service.GenerativeClient) *storefront {
	testDB, err := db.SetupSeededTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	payments, err := simpay.NewClient(simpay.Config{MerchantID: "TEST", Latency: 0})
	require.NoError(t, err)

	sessions := service.NewSessionService(repository.NewMemorySessionRepository())
	productService := service.NewProductService(repository.NewProductRepository(testDB))
	aiService := service.NewAIService(client)
	viewService := service.NewViewService(sessions)

	sf := &storefront{
		products: NewProductController(productService, viewService, service.NewImageService(sessions, productService, aiService, nil)),
		cart:     NewCartController(service.NewCartService(sessions, productService, nil), service.NewExportService(sessions)),
		checkout: NewCheckoutController(service.NewCheckoutService(sessions, repository.NewOrderRepository(testDB), payments, nil, model.DefaultShippingFee)),
		chat:     NewChatController(service.NewChatService(sessions, aiService)),
		view:     NewViewController(viewService),
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	withSession := func(handler gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			setSessionIDInContext(c, testSessionID)
			handler(c)
		}
	}

	router.GET("/products", withSession(sf.products.GetProducts))
	router.GET("/products/categories", sf.products.GetCategories)
	router.GET("/products/images", withSession(sf.products.GetImages))
	router.GET("/products/:id", sf.products.GetProductByID)
	router.POST("/products/:id/image", withSession(sf.products.GenerateImage))

	router.GET("/cart", withSession(sf.cart.GetCart))
	router.POST("/cart", withSession(sf.cart.AddToCart))
	router.DELETE("/cart", withSession(sf.cart.ClearCart))
	router.GET("/cart/export", withSession(sf.cart.ExportCart))
	router.PATCH("/cart/:product_id", withSession(sf.cart.UpdateQuantity))
	router.DELETE("/cart/:product_id", withSession(sf.cart.RemoveFromCart))

	router.POST("/checkout", withSession(sf.checkout.OpenCheckout))
	router.GET("/checkout", withSession(sf.checkout.GetCheckout))
	router.PUT("/checkout/shipping", withSession(sf.checkout.SubmitShipping))
	router.PUT("/checkout/payment-method", withSession(sf.checkout.SelectPaymentMethod))
	router.POST("/checkout/pay", withSession(sf.checkout.Pay))
	router.DELETE("/checkout", withSession(sf.checkout.CloseCheckout))
	router.GET("/orders", withSession(sf.checkout.GetOrders))

	router.GET("/chat", withSession(sf.chat.GetTranscript))
	router.POST("/chat", withSession(sf.chat.SendMessage))

	router.GET("/view", withSession(sf.view.GetView))
	router.POST("/view/events", withSession(sf.view.ApplyEvent))

	// Route without a session attached
	router.GET("/anonymous/cart", sf.cart.GetCart)

	sf.router = router
	return sf
}

// Helper function to set session ID in context
func setSessionIDInContext(c *gin.Context, sessionID string) {
	c.Set("session_id", sessionID)
}

func (sf *storefront) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	sf.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func shippingBody() map[string]string {
	return map[string]string{
		"name":           "홍길동",
		"phone":          "010-1234-5678",
		"address":        "서울특별시 강남구 테헤란로 1",
		"address_detail": "101동 1001호",
	}
}
