package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jangheelee880707/wooahhan/config"
	"github.com/jangheelee880707/wooahhan/internal/app/controller"
	"github.com/jangheelee880707/wooahhan/internal/middleware"
	"github.com/jangheelee880707/wooahhan/pkg/metrics"
)

type Router struct {
	productController  *controller.ProductController
	cartController     *controller.CartController
	checkoutController *controller.CheckoutController
	chatController     *controller.ChatController
	viewController     *controller.ViewController
	wsController       *controller.WSController
	sessionMiddleware  *middleware.SessionMiddleware
	config             *config.Config
}

func NewRouter(
	productController *controller.ProductController,
	cartController *controller.CartController,
	checkoutController *controller.CheckoutController,
	chatController *controller.ChatController,
	viewController *controller.ViewController,
	wsController *controller.WSController,
	sessionMiddleware *middleware.SessionMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		productController:  productController,
		cartController:     cartController,
		checkoutController: checkoutController,
		chatController:     chatController,
		viewController:     viewController,
		wsController:       wsController,
		sessionMiddleware:  sessionMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"message":    "WOO-AH-HAN API is running",
			"ai_enabled": r.config.GenAI.AIEnabled(),
		})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/api/v1")
	v1.Use(r.sessionMiddleware.Attach())
	{
		products := v1.Group("/products")
		{
			products.GET("", r.productController.GetProducts)
			products.GET("/categories", r.productController.GetCategories)
			products.GET("/images", r.productController.GetImages)
			products.GET("/:id", r.productController.GetProductByID)
			products.POST("/:id/image", r.productController.GenerateImage)
		}

		cart := v1.Group("/cart")
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.DELETE("", r.cartController.ClearCart)
			cart.GET("/export", r.cartController.ExportCart)
			cart.PATCH("/:product_id", r.cartController.UpdateQuantity)
			cart.DELETE("/:product_id", r.cartController.RemoveFromCart)
		}

		checkout := v1.Group("/checkout")
		{
			checkout.POST("", r.checkoutController.OpenCheckout)
			checkout.GET("", r.checkoutController.GetCheckout)
			checkout.DELETE("", r.checkoutController.CloseCheckout)
			checkout.PUT("/shipping", r.checkoutController.SubmitShipping)
			checkout.PUT("/payment-method", r.checkoutController.SelectPaymentMethod)
			checkout.POST("/pay", r.checkoutController.Pay)
		}

		v1.GET("/orders", r.checkoutController.GetOrders)

		chat := v1.Group("/chat")
		{
			chat.GET("", r.chatController.GetTranscript)
			chat.POST("", r.chatController.SendMessage)
		}

		view := v1.Group("/view")
		{
			view.GET("", r.viewController.GetView)
			view.POST("/events", r.viewController.ApplyEvent)
		}

		// 실시간 알림 채널
		v1.GET("/ws", r.wsController.Connect)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, "+middleware.SessionTokenHeader+", "+middleware.RequestIDHeader+", accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Expose-Headers", middleware.SessionTokenHeader+", "+middleware.RequestIDHeader+", Content-Disposition")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
