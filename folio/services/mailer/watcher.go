package mailer

import (
	"context"
	"time"

	"folio/folio/sources/psql/dao"
	"folio/folio/sources/psql/models"
	"folio/folio/utils/logging"

	"go.uber.org/zap"
)

// Watcher polls for contact messages created after startup and hands each
// one to notify exactly once. It is the subscription half of the email
// pipeline; Start returns an explicit stop handle.
type Watcher struct {
	messages *dao.ContactMessageDAO
	notify   func(models.ContactMessage) error
	interval time.Duration
	lastID   uint
}

func NewWatcher(messageDAO *dao.ContactMessageDAO, notify func(models.ContactMessage) error, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Watcher{
		messages: messageDAO,
		notify:   notify,
		interval: interval,
	}
}

// Start begins polling and returns a stop function. Only messages created
// after Start is called are notified. Notification errors are logged and
// swallowed; a failed message is not retried.
func (w *Watcher) Start(ctx context.Context) (func(), error) {
	lastID, err := w.messages.LatestID(ctx)
	if err != nil {
		return nil, err
	}
	w.lastID = lastID

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				w.poll(runCtx)
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}, nil
}

func (w *Watcher) poll(ctx context.Context) {
	msgs, err := w.messages.ListAfter(ctx, w.lastID)
	if err != nil {
		logging.ErrorLogger.Error("contact watcher poll failed", zap.Error(err))
		return
	}
	for _, msg := range msgs {
		if err := w.notify(msg); err != nil {
			logging.ErrorLogger.Error("contact notification failed",
				zap.Uint("message_id", msg.ID), zap.Error(err))
		}
		w.lastID = msg.ID
	}
}
