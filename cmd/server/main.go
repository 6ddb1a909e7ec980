package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jangheelee880707/wooahhan/config"
	"github.com/jangheelee880707/wooahhan/internal/app/controller"
	"github.com/jangheelee880707/wooahhan/internal/app/repository"
	"github.com/jangheelee880707/wooahhan/internal/app/service"
	"github.com/jangheelee880707/wooahhan/internal/db"
	"github.com/jangheelee880707/wooahhan/internal/middleware"
	"github.com/jangheelee880707/wooahhan/internal/router"
	"github.com/jangheelee880707/wooahhan/internal/scheduler"
	"github.com/jangheelee880707/wooahhan/internal/storage"
	"github.com/jangheelee880707/wooahhan/internal/websocket"
	"github.com/jangheelee880707/wooahhan/pkg/gemini"
	"github.com/jangheelee880707/wooahhan/pkg/logger"
	"github.com/jangheelee880707/wooahhan/pkg/payment/simpay"
	"github.com/jangheelee880707/wooahhan/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logger.Initialize(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		EnableColor: cfg.Log.Format == "console",
	})

	logger.Info("Starting WOO-AH-HAN Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   cfg.Log.Level,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations (seeds the default catalog on an empty table)
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Session store: Redis when enabled, otherwise process memory
	var sessionRepo repository.SessionRepository
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Fatal("Failed to connect to Redis", err)
		}
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()
		sessionRepo = repository.NewRedisSessionRepository(redis.GetClient(), cfg.Session.TTL)
	} else {
		sessionRepo = repository.NewMemorySessionRepository()
	}

	// Generative AI is optional. Without a key chat and images degrade.
	var generative service.GenerativeClient
	if cfg.GenAI.AIEnabled() {
		client, err := gemini.NewClient(context.Background(), gemini.Config{
			APIKey:      cfg.GenAI.APIKey,
			ChatModel:   cfg.GenAI.ChatModel,
			ImageModel:  cfg.GenAI.ImageModel,
			AspectRatio: cfg.GenAI.ImageAspectRatio,
			Timeout:     cfg.GenAI.Timeout,
		})
		if err != nil {
			logger.Error("Failed to initialize Gemini client, AI features disabled", err)
		} else {
			generative = client
		}
	} else {
		logger.Warn("API_KEY not set, AI features disabled")
	}

	payments, err := simpay.NewClient(simpay.Config{
		MerchantID: cfg.Checkout.MerchantID,
		Latency:    cfg.Checkout.PaymentLatency,
	})
	if err != nil {
		logger.Fatal("Failed to initialize payment client", err)
	}

	var imageStore storage.ImageStore = storage.NewDataURIStore()
	if cfg.Images.Store == "s3" {
		if cfg.S3.Bucket == "" {
			logger.Warn("IMAGE_STORE=s3 without AWS_S3_BUCKET, keeping images inline")
		} else {
			imageStore = storage.NewS3Storage(
				cfg.S3.Region,
				cfg.S3.Bucket,
				cfg.S3.AccessKeyID,
				cfg.S3.SecretAccessKey,
				cfg.S3.BaseURL,
				cfg.S3.Folder,
			)
		}
	}

	hub := websocket.NewHub()
	go hub.Run()

	// Initialize repositories
	productRepo := repository.NewProductRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())

	// Initialize services
	sessionService := service.NewSessionService(sessionRepo)
	productService := service.NewProductService(productRepo)
	aiService := service.NewAIService(generative)
	viewService := service.NewViewService(sessionService)
	cartService := service.NewCartService(sessionService, productService, hub)
	checkoutService := service.NewCheckoutService(sessionService, orderRepo, payments, hub, cfg.Checkout.ShippingFee)
	chatService := service.NewChatService(sessionService, aiService)
	imageService := service.NewImageService(sessionService, productService, aiService, imageStore)
	exportService := service.NewExportService(sessionService)

	// Initialize controllers
	productController := controller.NewProductController(productService, viewService, imageService)
	cartController := controller.NewCartController(cartService, exportService)
	checkoutController := controller.NewCheckoutController(checkoutService)
	chatController := controller.NewChatController(chatService)
	viewController := controller.NewViewController(viewService)
	wsController := controller.NewWSController(hub, cfg.CORS.AllowedOrigins)

	sessionMiddleware := middleware.NewSessionMiddleware(
		cfg.Session.Secret,
		cfg.Session.TTL,
		cfg.Session.CookieName,
		cfg.Server.Environment == "production",
	)

	// Redis expires sessions itself
	var sweeper *scheduler.SessionSweeper
	if !cfg.Redis.Enabled {
		sweeper = scheduler.NewSessionSweeper(sessionService, cfg.Session.SweepSchedule, cfg.Session.TTL)
		if err := sweeper.Start(); err != nil {
			logger.Error("Failed to start session sweeper", err)
			sweeper = nil
		}
	}

	// Setup router
	r := router.NewRouter(
		productController,
		cartController,
		checkoutController,
		chatController,
		viewController,
		wsController,
		sessionMiddleware,
		cfg,
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r.Setup(),
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address":    srv.Addr,
			"pid":        os.Getpid(),
			"ai_enabled": generative != nil,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	if sweeper != nil {
		sweeper.Stop()
	}
	hub.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Info("Server stopped successfully")
}
