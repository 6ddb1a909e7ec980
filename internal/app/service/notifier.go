package service

import (
	"time"

	"github.com/jangheelee880707/wooahhan/internal/app/model"
)

// Notifier pushes transient notices to a session's open connections.
type Notifier interface {
	Notify(sessionID string, notice model.Notice)
}

type noopNotifier struct{}

func (noopNotifier) Notify(string, model.Notice) {}

func notifierOrNoop(n Notifier) Notifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}

// postNotice stores the toast in the session view and returns it for pushing.
func postNotice(session *model.Session, message string, at time.Time) *model.Notice {
	notice := model.NewNotice(message, at)
	session.View.Notice = notice
	return notice
}
