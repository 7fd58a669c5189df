package notifications

import (
	"context"
	"time"

	"github.com/blissmahlathi/campusmarket-backend/pkg/logger"
)

const dispatchTimeout = 10 * time.Second

// Notifier dispatches notifications asynchronously. Failures are logged and
// swallowed so order flow never blocks or fails on notification problems.
type Notifier struct {
	service Service
	logg    *logger.Logger
}

// NewNotifier wraps the service in a fire-and-forget dispatcher.
func NewNotifier(service Service, logg *logger.Logger) *Notifier {
	return &Notifier{service: service, logg: logg}
}

// Notify dispatches in a background goroutine detached from the caller's
// context lifetime.
func (n *Notifier) Notify(ctx context.Context, input DispatchInput) {
	if n == nil || n.service == nil {
		return
	}
	detached := context.WithoutCancel(ctx)
	go func() {
		dispatchCtx, cancel := context.WithTimeout(detached, dispatchTimeout)
		defer cancel()
		if err := n.service.Dispatch(dispatchCtx, input); err != nil {
			fields := map[string]any{"type": string(input.Type)}
			if input.Order != nil {
				fields["order_id"] = input.Order.ID.String()
			}
			n.logg.Warn(n.logg.WithFields(dispatchCtx, fields), "notification dispatch failed: "+err.Error())
		}
	}()
}
