package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/jangheelee880707/wooahhan/internal/app/repository"
	"github.com/jangheelee880707/wooahhan/internal/app/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSweeper_Sweep(t *testing.T) {
	sessions := service.NewSessionService(repository.NewMemorySessionRepository())
	ctx := context.Background()

	_, err := sessions.Update(ctx, "s1", func(s *model.Session) error {
		s.Cart.Add(model.Product{ID: "p1", Price: "₩45,000"})
		return nil
	})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	NewSessionSweeper(sessions, "@every 1h", time.Millisecond).Sweep()

	session, err := sessions.Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, session.Cart.IsEmpty())
}

func TestSessionSweeper_KeepsActiveSessions(t *testing.T) {
	sessions := service.NewSessionService(repository.NewMemorySessionRepository())
	ctx := context.Background()

	sessions.Update(ctx, "s1", func(s *model.Session) error {
		s.Cart.Add(model.Product{ID: "p1", Price: "₩45,000"})
		return nil
	})
	NewSessionSweeper(sessions, "@every 1h", time.Hour).Sweep()

	session, _ := sessions.Load(ctx, "s1")
	assert.Equal(t, 1, session.Cart.TotalItemCount())
}

func TestSessionSweeper_StartRejectsBadSchedule(t *testing.T) {
	sessions := service.NewSessionService(repository.NewMemorySessionRepository())

	sweeper := NewSessionSweeper(sessions, "not a schedule", time.Hour)
	assert.Error(t, sweeper.Start())

	ok := NewSessionSweeper(sessions, "@every 10m", time.Hour)
	require.NoError(t, ok.Start())
	ok.Stop()
}
