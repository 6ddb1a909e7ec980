package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/jangheelee880707/wooahhan/pkg/logger"
)

var ErrEmptyMessage = errors.New("message is empty")

// ChatExchange is the pair of messages one Send appends.
type ChatExchange struct {
	User  model.ChatMessage `json:"user"`
	Reply model.ChatMessage `json:"reply"`
}

type ChatService interface {
	Transcript(ctx context.Context, sessionID string) (*model.ChatTranscript, error)
	Send(ctx context.Context, sessionID, text string) (*ChatExchange, error)
}

type chatService struct {
	sessions SessionService
	ai       AIService
	now      func() time.Time
}

func NewChatService(sessions SessionService, ai AIService) ChatService {
	return &chatService{
		sessions: sessions,
		ai:       ai,
		now:      time.Now,
	}
}

func (s *chatService) Transcript(ctx context.Context, sessionID string) (*model.ChatTranscript, error) {
	session, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return session.Transcript(s.now()), nil
}

// Send asks the butcher and appends the user's message together with exactly
// one reply. Gateway failures become the apology message, never an error.
func (s *chatService) Send(ctx context.Context, sessionID, text string) (*ChatExchange, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	release, err := s.sessions.Acquire(ctx, "chat:"+sessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	session, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	history := session.Transcript(s.now()).Messages
	sentAt := s.now()

	reply, err := s.ai.Chat(ctx, history, text)
	switch {
	case err != nil:
		logger.Warn("Chat exchange failed, answering with apology", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		reply = model.ChatApology
	case strings.TrimSpace(reply) == "":
		reply = model.ChatEmptyReply
	}

	// both messages land in one save so a transcript never ends on an
	// unanswered question
	var exchange ChatExchange
	_, err = s.sessions.Update(context.WithoutCancel(ctx), sessionID, func(session *model.Session) error {
		transcript := session.Transcript(s.now())
		exchange.User = transcript.Append(model.ChatRoleUser, text, sentAt)
		exchange.Reply = transcript.Append(model.ChatRoleModel, reply, s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Chat exchange completed", map[string]interface{}{
		"session_id": sessionID,
		"messages":   len(history) + 2,
	})
	return &exchange, nil
}
