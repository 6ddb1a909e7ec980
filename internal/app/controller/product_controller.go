package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/jangheelee880707/wooahhan/internal/app/service"
	apperrors "github.com/jangheelee880707/wooahhan/internal/errors"
	"github.com/jangheelee880707/wooahhan/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
	viewService    service.ViewService
	imageService   service.ImageService
}

func NewProductController(productService service.ProductService, viewService service.ViewService, imageService service.ImageService) *ProductController {
	return &ProductController{
		productService: productService,
		viewService:    viewService,
		imageService:   imageService,
	}
}

// GetProducts returns the catalog filtered by category. Without a query
// parameter the session's active category applies.
// GET /api/v1/products?category=
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	category := model.ProductCategory(c.Query("category"))
	if category == "" {
		if sessionID, ok := middleware.GetSessionID(c); ok {
			view, err := ctrl.viewService.Get(c.Request.Context(), sessionID)
			if err != nil {
				respondWithServiceError(c, err, "product list")
				return
			}
			category = view.ActiveCategory
		}
	}

	products, err := ctrl.productService.ListProducts(category)
	if err != nil {
		respondWithServiceError(c, err, "product list")
		return
	}

	log.Info("Products fetched successfully", map[string]interface{}{
		"category": category,
		"count":    len(products),
	})

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
		"category": category,
	})
}

// GetCategories returns the filter tabs
// GET /api/v1/products/categories
func (ctrl *ProductController) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": ctrl.productService.Categories(),
	})
}

// GetProductByID returns a product by ID
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	product, err := ctrl.productService.GetProductByID(c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// GenerateImage synthesizes a new product photo for the session
// POST /api/v1/products/:id/image
func (ctrl *ProductController) GenerateImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, ok := middleware.RequireSession(c)
	if !ok {
		return
	}
	productID := c.Param("id")

	image, err := ctrl.imageService.Generate(c.Request.Context(), sessionID, productID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound),
			errors.Is(err, service.ErrAIDisabled),
			errors.Is(err, service.ErrRequestInFlight):
			respondWithServiceError(c, err, "product image")
		default:
			log.Error("Product image generation failed", err, map[string]interface{}{
				"product_id": productID,
			})
			apperrors.BadGateway(c, apperrors.AIGenerationFailed, "이미지를 생성하지 못했습니다. 잠시 후 다시 시도해주세요")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"image": image,
	})
}

// GetImages returns the session's generated photos
// GET /api/v1/products/images
func (ctrl *ProductController) GetImages(c *gin.Context) {
	sessionID, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	images, err := ctrl.imageService.List(c.Request.Context(), sessionID)
	if err != nil {
		respondWithServiceError(c, err, "product image")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"images": images,
		"count":  len(images),
	})
}
