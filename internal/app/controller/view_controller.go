package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/jangheelee880707/wooahhan/internal/app/service"
	"github.com/jangheelee880707/wooahhan/internal/middleware"
)

type ViewController struct {
	viewService service.ViewService
}

func NewViewController(viewService service.ViewService) *ViewController {
	return &ViewController{
		viewService: viewService,
	}
}

type ViewEventRequest struct {
	Type     model.ViewEventType   `json:"type" binding:"required"`
	Category model.ProductCategory `json:"category"`
}

// GetView returns the storefront shell state
// GET /api/v1/view
func (ctrl *ViewController) GetView(c *gin.Context) {
	sessionID, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	view, err := ctrl.viewService.Get(c.Request.Context(), sessionID)
	if err != nil {
		respondWithServiceError(c, err, "view")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"view": view,
	})
}

// ApplyEvent applies one shell event
// POST /api/v1/view/events
func (ctrl *ViewController) ApplyEvent(c *gin.Context) {
	sessionID, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	var req ViewEventRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := ctrl.viewService.Apply(c.Request.Context(), sessionID, model.ViewEvent{
		Type:     req.Type,
		Category: req.Category,
	})
	if err != nil {
		respondWithServiceError(c, err, "view")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"view": view,
	})
}
