// Package widget is the chat session controller: it owns the visible
// transcript, gates sending on consent, talks to the proxy, and emits
// lifecycle telemetry. Rendering is left to whoever embeds it.
package widget

import (
	"context"
	"strings"
	"sync"
	"time"

	"folio/folio/services/telemetry"
	"folio/folio/utils/types"
	"folio/folio/widget/consent"

	"github.com/google/uuid"
)

const (
	// WelcomeMessage seeds every new transcript.
	WelcomeMessage = "Hi! I'm Shaun's AI assistant. Ask me about pricing, services, or Shaun's background and work."

	// DisabledNotice is appended instead of calling the network while
	// consent is necessary-only.
	DisabledNotice = "Chat is disabled when only necessary cookies are allowed. Use Cookie Settings to enable additional cookies."

	// ErrorBubble keeps the conversation coherent when the proxy call
	// fails. The underlying error is never shown.
	ErrorBubble = "Sorry, there was an error reaching the assistant."

	// maxTurns bounds the payload sent to the proxy; older turns stay
	// visible locally but are not transmitted.
	maxTurns = 10
)

// Widget is safe for concurrent use, though the intended driver is a single
// UI event loop. A second Send while one is outstanding is a no-op.
type Widget struct {
	client   ProxyClient
	tracker  *telemetry.Tracker
	embedded bool

	mu           sync.Mutex
	open         bool
	awaiting     bool
	ended        bool
	transcript   []types.Message
	consentLevel consent.Level

	unsubscribe func()

	sessionID    string
	startedAt    time.Time
	messageCount int
}

// New wires a widget to its proxy, consent store, and tracker. Embedded
// widgets start open and cannot be closed.
func New(client ProxyClient, store *consent.Store, tracker *telemetry.Tracker, embedded bool) *Widget {
	w := &Widget{
		client:   client,
		tracker:  tracker,
		embedded: embedded,
		open:     embedded,
		transcript: []types.Message{
			{Role: types.RoleAssistant, Content: WelcomeMessage},
		},
		sessionID: uuid.New().String(),
		startedAt: time.Now(),
	}
	if store != nil {
		w.consentLevel = store.Level()
		w.unsubscribe = store.Subscribe(func(pref consent.Pref) {
			w.mu.Lock()
			w.consentLevel = pref.Level
			w.mu.Unlock()
		})
	}
	return w
}

func (w *Widget) SessionID() string { return w.sessionID }

// Transcript returns a copy of the visible conversation.
func (w *Widget) Transcript() []types.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]types.Message, len(w.transcript))
	copy(out, w.transcript)
	return out
}

func (w *Widget) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open
}

// Disabled reports whether sends are consent-blocked.
func (w *Widget) Disabled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.consentLevel == consent.LevelNecessary
}

// Open activates the chat affordance and emits the opened event.
func (w *Widget) Open() {
	w.mu.Lock()
	if w.open || w.ended {
		w.mu.Unlock()
		return
	}
	w.open = true
	w.mu.Unlock()
	w.tracker.Emit(telemetry.Event{
		Name:      telemetry.EventChatOpened,
		SessionID: w.sessionID,
	})
}

// Close dismisses the widget. Embedded widgets have no closed state. The
// transcript is kept; reopening resumes the conversation.
func (w *Widget) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.embedded {
		return
	}
	w.open = false
}

// Send submits one user input. Empty input, a send already in flight, and a
// closed widget are all no-ops. Consent-blocked sends append an explanatory
// assistant message locally and never reach the network. Every other
// outcome, success or failure, lands in the transcript as an assistant turn.
func (w *Widget) Send(ctx context.Context, input string) {
	text := strings.TrimSpace(input)
	if text == "" {
		return
	}

	w.mu.Lock()
	if !w.open || w.awaiting || w.ended {
		w.mu.Unlock()
		return
	}
	if w.consentLevel == consent.LevelNecessary {
		w.transcript = append(w.transcript, types.Message{
			Role: types.RoleAssistant, Content: DisabledNotice,
		})
		w.mu.Unlock()
		return
	}

	// Optimistic update: the user's own turn always renders immediately.
	w.transcript = append(w.transcript, types.Message{
		Role: types.RoleUser, Content: text,
	})
	w.messageCount++
	w.awaiting = true
	payload := lastTurns(w.transcript, maxTurns)
	w.mu.Unlock()

	w.tracker.Emit(telemetry.Event{
		Name:      telemetry.EventChatSent,
		SessionID: w.sessionID,
		Data:      map[string]interface{}{"text": text},
	})

	reply, err := w.client.SendChat(ctx, payload)

	w.mu.Lock()
	if w.ended {
		// Widget was torn down mid-call; discard the response.
		w.mu.Unlock()
		return
	}
	w.awaiting = false
	success := err == nil
	if err != nil {
		w.transcript = append(w.transcript, types.Message{
			Role: types.RoleAssistant, Content: ErrorBubble,
		})
	} else {
		if reply == "" {
			reply = " "
		}
		w.transcript = append(w.transcript, types.Message{
			Role: types.RoleAssistant, Content: reply,
		})
	}
	w.mu.Unlock()

	w.tracker.Emit(telemetry.Event{
		Name:      telemetry.EventChatResponse,
		SessionID: w.sessionID,
		Data:      map[string]interface{}{"success": success},
	})
}

// Awaiting reports whether a proxy call is outstanding (the "thinking"
// indicator).
func (w *Widget) Awaiting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.awaiting
}

// End tears the widget down: any in-flight response is discarded, the
// consent subscription is released, and the session summary is emitted.
func (w *Widget) End() {
	w.mu.Lock()
	if w.ended {
		w.mu.Unlock()
		return
	}
	w.ended = true
	w.open = false
	count := w.messageCount
	w.mu.Unlock()

	if w.unsubscribe != nil {
		w.unsubscribe()
	}

	w.tracker.Emit(telemetry.Event{
		Name:      telemetry.EventChatSession,
		SessionID: w.sessionID,
		Session: &types.SessionRequest{
			SessionID:    w.sessionID,
			StartedAt:    w.startedAt.Format(time.RFC3339),
			MessageCount: count,
			DurationMs:   time.Since(w.startedAt).Milliseconds(),
		},
	})
}

func lastTurns(msgs []types.Message, n int) []types.Message {
	if len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	out := make([]types.Message, len(msgs))
	copy(out, msgs)
	return out
}
