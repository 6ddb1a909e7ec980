package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/jangheelee880707/wooahhan/pkg/logger"
)

// Event types pushed to the browser
const (
	EventNotice = "notice"
	EventPong   = "pong"
)

// ServerEvent 서버가 보내는 메시지
type ServerEvent struct {
	Type   string        `json:"type"`
	Notice *model.Notice `json:"notice,omitempty"`
}

// ClientMessage 클라이언트로부터 받은 메시지
type ClientMessage struct {
	Type string `json:"type"` // ping
}

// Client WebSocket 클라이언트 (브라우저 탭 하나)
type Client struct {
	Hub           *Hub
	Conn          *Conn
	SessionID     string
	Send          chan []byte
	MessageCount  int       // 최근 1초간 받은 메시지 수
	LastResetTime time.Time // 마지막 카운터 리셋 시간
	RateMu        sync.Mutex
}

// NewClient wraps an upgraded connection for sessionID.
func NewClient(hub *Hub, conn *Conn, sessionID string) *Client {
	return &Client{
		Hub:       hub,
		Conn:      conn,
		SessionID: sessionID,
		Send:      make(chan []byte, 16),
	}
}

// Hub WebSocket 연결 관리자
type Hub struct {
	// 등록된 클라이언트들 (SessionID -> []*Client, 여러 탭 지원)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan *BroadcastMessage
	quit       chan struct{}
	stopOnce   sync.Once

	mu sync.RWMutex
}

// BroadcastMessage 세션 단위 메시지
type BroadcastMessage struct {
	SessionID string
	Message   []byte
}

// NewHub Hub 생성
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan *BroadcastMessage, 1024),
		quit:       make(chan struct{}),
	}
}

// Run Hub 실행. Stop이 호출될 때까지 블록
func (h *Hub) Run() {
	for {
		select {
		case <-h.quit:
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			total := len(h.clients[client.SessionID])
			h.mu.Unlock()
			logger.Info("WebSocket client registered", map[string]interface{}{
				"session_id":  client.SessionID,
				"connections": total,
			})

		case client := <-h.unregister:
			h.remove(client)

		case message := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients[message.SessionID] {
				select {
				case client.Send <- message.Message:
				default:
					// Send 채널이 막혀있음 - 비동기로 정리
					go h.Unregister(client)
					logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
						"session_id": message.SessionID,
					})
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clientList, ok := h.clients[client.SessionID]
	if !ok {
		return
	}
	newList := make([]*Client, 0, len(clientList))
	found := false
	for _, c := range clientList {
		if c == client {
			found = true
			continue
		}
		newList = append(newList, c)
	}
	if !found {
		return
	}
	if len(newList) == 0 {
		delete(h.clients, client.SessionID)
	} else {
		h.clients[client.SessionID] = newList
	}
	close(client.Send)

	logger.Info("WebSocket client unregistered", map[string]interface{}{
		"session_id":            client.SessionID,
		"remaining_connections": len(newList),
	})
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sessionID, clientList := range h.clients {
		for _, c := range clientList {
			close(c.Send)
		}
		delete(h.clients, sessionID)
	}
}

// Stop ends Run and closes every connection's send channel.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

// SendToSession 특정 세션의 모든 연결에 메시지 전송
func (h *Hub) SendToSession(sessionID string, event ServerEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal event", err)
		return err
	}

	select {
	case h.broadcast <- &BroadcastMessage{SessionID: sessionID, Message: data}:
	default:
		// 토스트는 유실되어도 무방함
		logger.Warn("Broadcast channel full, event dropped", map[string]interface{}{
			"session_id": sessionID,
		})
	}
	return nil
}

// Notify pushes a toast to every open tab of the session.
func (h *Hub) Notify(sessionID string, notice model.Notice) {
	h.SendToSession(sessionID, ServerEvent{Type: EventNotice, Notice: &notice})
}

// Register 클라이언트 등록
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister 클라이언트 등록 해제
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.quit:
	}
}

// IsSessionOnline 세션의 연결 여부 확인
func (h *Hub) IsSessionOnline(sessionID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[sessionID]
	return ok
}

// ConnectionCount returns the number of open connections of a session.
func (h *Hub) ConnectionCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

// HandleClientMessage 클라이언트 메시지 처리
func (h *Hub) HandleClientMessage(client *Client, message []byte) {
	// Rate limiting 체크
	client.RateMu.Lock()
	now := time.Now()
	if now.Sub(client.LastResetTime) >= time.Second {
		client.MessageCount = 0
		client.LastResetTime = now
	}
	client.MessageCount++
	count := client.MessageCount
	client.RateMu.Unlock()

	if count > maxMessagesPerSecond {
		logger.Warn("Rate limit exceeded", map[string]interface{}{
			"session_id": client.SessionID,
			"count":      count,
		})
		return
	}

	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		logger.Warn("Failed to parse client message", map[string]interface{}{
			"session_id": client.SessionID,
			"error":      err.Error(),
		})
		return
	}

	if msg.Type == "ping" {
		h.SendToSession(client.SessionID, ServerEvent{Type: EventPong})
	}
}
