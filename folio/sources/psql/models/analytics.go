package models

import "time"

// AnalyticsEvent is one row of the site's event log (page views, chat
// lifecycle events, custom events). Best-effort data: writes are never
// allowed to fail a user-facing request.
type AnalyticsEvent struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Type      string    `json:"type" gorm:"type:varchar(50);not null;index"`
	Event     string    `json:"event" gorm:"type:varchar(100);index"`
	SessionID string    `json:"session_id" gorm:"type:varchar(255);index"`
	Page      string    `json:"page" gorm:"type:varchar(255)"`
	Title     string    `json:"title" gorm:"type:varchar(255)"`
	Referrer  string    `json:"referrer" gorm:"type:varchar(512)"`
	UserAgent string    `json:"user_agent" gorm:"type:varchar(512)"`
	Language  string    `json:"language" gorm:"type:varchar(20)"`
	Data      string    `json:"data" gorm:"type:text"` // JSON-encoded extras
	CreatedAt time.Time `json:"created_at" gorm:"not null;index"`
}

// ChatSession is the end-of-conversation summary the widget emits. It is an
// analytics record, not conversation state; transcripts are never stored.
type ChatSession struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	SessionID    string    `json:"session_id" gorm:"type:varchar(255);uniqueIndex;not null"`
	StartedAt    time.Time `json:"started_at" gorm:"not null"`
	MessageCount int       `json:"message_count" gorm:"not null"`
	DurationMs   int64     `json:"duration_ms" gorm:"not null"`
	UserAgent    string    `json:"user_agent" gorm:"type:varchar(512)"`
	Language     string    `json:"language" gorm:"type:varchar(20)"`
	Archived     bool      `json:"archived" gorm:"not null;default:false;index"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null"`
}
