package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jangheelee880707/wooahhan/internal/app/service"
	"github.com/jangheelee880707/wooahhan/internal/middleware"
)

type ChatController struct {
	chatService service.ChatService
}

func NewChatController(chatService service.ChatService) *ChatController {
	return &ChatController{
		chatService: chatService,
	}
}

type SendMessageRequest struct {
	Message string `json:"message"`
}

// GetTranscript returns the consultation so far
// GET /api/v1/chat
func (ctrl *ChatController) GetTranscript(c *gin.Context) {
	sessionID, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	transcript, err := ctrl.chatService.Transcript(c.Request.Context(), sessionID)
	if err != nil {
		respondWithServiceError(c, err, "chat")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": transcript.Messages,
	})
}

// SendMessage asks the master butcher. Gateway failures still answer 200
// with the apology as the reply.
// POST /api/v1/chat
func (ctrl *ChatController) SendMessage(c *gin.Context) {
	sessionID, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	exchange, err := ctrl.chatService.Send(c.Request.Context(), sessionID, req.Message)
	if err != nil {
		respondWithServiceError(c, err, "chat")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  exchange.User,
		"reply": exchange.Reply,
	})
}
