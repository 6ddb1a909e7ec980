package service

import (
	"context"
	"time"

	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/jangheelee880707/wooahhan/pkg/logger"
)

type ViewService interface {
	Get(ctx context.Context, sessionID string) (*model.ViewState, error)
	Apply(ctx context.Context, sessionID string, event model.ViewEvent) (*model.ViewState, error)
}

type viewService struct {
	sessions SessionService
	now      func() time.Time
}

func NewViewService(sessions SessionService) ViewService {
	return &viewService{sessions: sessions, now: time.Now}
}

// Get returns the shell state with an expired notice already dropped.
func (s *viewService) Get(ctx context.Context, sessionID string) (*model.ViewState, error) {
	session, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	view := session.View.WithoutExpiredNotice(s.now())
	return &view, nil
}

func (s *viewService) Apply(ctx context.Context, sessionID string, event model.ViewEvent) (*model.ViewState, error) {
	session, err := s.sessions.Update(ctx, sessionID, func(session *model.Session) error {
		next, err := model.Reduce(session.View.WithoutExpiredNotice(s.now()), event)
		if err != nil {
			return err
		}
		session.View = next
		return nil
	})
	if err != nil {
		logger.Warn("View event rejected", map[string]interface{}{
			"session_id": sessionID,
			"event":      event.Type,
			"error":      err.Error(),
		})
		return nil, err
	}
	return &session.View, nil
}
