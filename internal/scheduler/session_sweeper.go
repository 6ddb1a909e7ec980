package scheduler

import (
	"context"
	"time"

	"github.com/jangheelee880707/wooahhan/internal/app/service"
	"github.com/jangheelee880707/wooahhan/pkg/logger"
	"github.com/jangheelee880707/wooahhan/pkg/metrics"
	"github.com/robfig/cron/v3"
)

// SessionSweeper 유휴 세션 정리 스케줄러
type SessionSweeper struct {
	cron     *cron.Cron
	sessions service.SessionService
	schedule string
	idle     time.Duration
}

// NewSessionSweeper 유휴 세션 정리 스케줄러 생성
func NewSessionSweeper(sessions service.SessionService, schedule string, idle time.Duration) *SessionSweeper {
	return &SessionSweeper{
		cron:     cron.New(),
		sessions: sessions,
		schedule: schedule,
		idle:     idle,
	}
}

// Start 스케줄러 시작
func (s *SessionSweeper) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.Sweep)
	if err != nil {
		logger.Error("Failed to add cron job for session sweep", err, map[string]interface{}{
			"schedule": s.schedule,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Session sweeper started", map[string]interface{}{
		"schedule": s.schedule,
		"idle":     s.idle.String(),
	})
	return nil
}

// Sweep removes sessions idle longer than the configured TTL once.
func (s *SessionSweeper) Sweep() {
	removed, err := s.sessions.SweepIdle(context.Background(), s.idle)
	if err != nil {
		logger.Error("Failed to sweep idle sessions", err)
		return
	}
	if removed > 0 {
		metrics.SessionsSwept.Add(float64(removed))
		logger.Info("Idle sessions swept", map[string]interface{}{
			"removed": removed,
		})
	}
}

// Stop 스케줄러 중지. 실행 중인 작업이 끝날 때까지 대기
func (s *SessionSweeper) Stop() {
	logger.Info("Stopping session sweeper...")
	<-s.cron.Stop().Done()
	logger.Info("Session sweeper stopped")
}
