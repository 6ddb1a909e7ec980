package controller

import (
	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
	"github.com/jangheelee880707/wooahhan/internal/middleware"
	"github.com/jangheelee880707/wooahhan/internal/websocket"
)

type WSController struct {
	hub      *websocket.Hub
	upgrader *gorillaws.Upgrader
}

func NewWSController(hub *websocket.Hub, allowedOrigins []string) *WSController {
	return &WSController{
		hub:      hub,
		upgrader: websocket.NewUpgrader(allowedOrigins),
	}
}

// Connect upgrades to the notice channel of the session
// GET /api/v1/ws
func (ctrl *WSController) Connect(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	conn, err := websocket.Upgrade(ctrl.upgrader, c.Writer, c.Request)
	if err != nil {
		// Upgrade already wrote the HTTP error
		log.Warn("WebSocket upgrade failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	client := websocket.NewClient(ctrl.hub, conn, sessionID)
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
