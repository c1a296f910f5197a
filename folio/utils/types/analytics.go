package types

// EventRequest is the body of POST /api/analytics/events.
type EventRequest struct {
	Type      string                 `json:"type"`  // page_view | chat_event | custom_event
	Event     string                 `json:"event"` // chat_opened, chat_sent, chat_response, ...
	SessionID string                 `json:"session_id,omitempty"`
	Page      string                 `json:"page,omitempty"`
	Title     string                 `json:"title,omitempty"`
	Referrer  string                 `json:"referrer,omitempty"`
	UserAgent string                 `json:"user_agent,omitempty"`
	Language  string                 `json:"language,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// SessionRequest is the body of POST /api/analytics/sessions, the end-of-chat
// session summary.
type SessionRequest struct {
	SessionID    string `json:"session_id"`
	StartedAt    string `json:"started_at"` // RFC3339
	MessageCount int    `json:"message_count"`
	DurationMs   int64  `json:"duration_ms"`
	UserAgent    string `json:"user_agent,omitempty"`
	Language     string `json:"language,omitempty"`
}

// For the admin dashboard panels.
type EventCount struct {
	Event string `json:"event"`
	Count int64  `json:"count"`
}

type ChatStats struct {
	Events          []EventCount `json:"events"`
	SessionCount    int64        `json:"session_count"`
	AvgDurationMs   float64      `json:"avg_duration_ms"`
	AvgMessageCount float64      `json:"avg_message_count"`
}

type PageView struct {
	Page     string `json:"page"`
	Title    string `json:"title"`
	Referrer string `json:"referrer"`
	At       string `json:"at"`
}
