// Package telemetry is the widget's analytics emitter: a best-effort,
// non-blocking dispatch queue in front of a pluggable sink. A failing or
// slow sink can drop events but never stalls the chat path.
package telemetry

import (
	"context"
	"sync"
	"time"

	"folio/folio/utils/logging"
	"folio/folio/utils/types"

	"go.uber.org/zap"
)

const (
	EventChatOpened   = "chat_opened"
	EventChatSent     = "chat_sent"
	EventChatResponse = "chat_response"
	EventChatSession  = "chat_session"
)

type Event struct {
	Name      string
	SessionID string
	Data      map[string]interface{}
	// Session is set only on the end-of-chat summary event.
	Session *types.SessionRequest
}

type Sink interface {
	Send(ctx context.Context, ev Event) error
}

const queueSize = 64

// Tracker owns the dispatch queue. Emission is suppressed entirely while
// allowed() reports false (restrictive consent).
type Tracker struct {
	sink    Sink
	allowed func() bool

	ch   chan Event
	done chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
}

func NewTracker(sink Sink, allowed func() bool) *Tracker {
	if allowed == nil {
		allowed = func() bool { return true }
	}
	return &Tracker{
		sink:    sink,
		allowed: allowed,
		ch:      make(chan Event, queueSize),
		done:    make(chan struct{}),
	}
}

// Start spins up the dispatch worker. It is idempotent; every call returns
// the same disposer, and the disposer itself is safe to call repeatedly.
func (t *Tracker) Start() func() {
	t.startOnce.Do(func() {
		go t.run()
	})
	return func() {
		t.stopOnce.Do(func() {
			close(t.done)
		})
	}
}

func (t *Tracker) run() {
	for {
		select {
		case <-t.done:
			return
		case ev := <-t.ch:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := t.sink.Send(ctx, ev); err != nil {
				// Best effort: log and move on.
				logging.AppLogger.Warn("telemetry send failed",
					zap.String("event", ev.Name), zap.Error(err))
			}
			cancel()
		}
	}
}

// Emit queues an event without ever blocking. Events are dropped when the
// tracker is stopped, consent forbids emission, or the queue is full.
func (t *Tracker) Emit(ev Event) {
	if !t.allowed() {
		return
	}
	select {
	case <-t.done:
		return
	default:
	}
	select {
	case t.ch <- ev:
	default:
	}
}
