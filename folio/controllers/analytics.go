// folio/controllers/analytics.go
package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"folio/folio/sources/psql/dao"
	"folio/folio/sources/psql/models"
	"folio/folio/utils/types"
)

var ErrInvalidSession = errors.New("session_id is required")

// SessionArchiver is the object-storage collaborator; see sources/storage.
type SessionArchiver interface {
	UploadSessions(ctx context.Context, cutoff time.Time, sessions []models.ChatSession) (string, error)
}

type AnalyticsController struct {
	dao      *dao.AnalyticsDAO
	archiver SessionArchiver
}

func NewAnalyticsController(analyticsDAO *dao.AnalyticsDAO, archiver SessionArchiver) *AnalyticsController {
	return &AnalyticsController{dao: analyticsDAO, archiver: archiver}
}

func (c *AnalyticsController) RecordEvent(ctx context.Context, req types.EventRequest) error {
	if req.Type == "" {
		req.Type = "custom_event"
	}
	var extra string
	if len(req.Data) > 0 {
		raw, err := json.Marshal(req.Data)
		if err != nil {
			return fmt.Errorf("encode event data: %w", err)
		}
		extra = string(raw)
	}
	return c.dao.SaveEvent(ctx, &models.AnalyticsEvent{
		Type:      req.Type,
		Event:     req.Event,
		SessionID: req.SessionID,
		Page:      req.Page,
		Title:     req.Title,
		Referrer:  req.Referrer,
		UserAgent: req.UserAgent,
		Language:  req.Language,
		Data:      extra,
	})
}

func (c *AnalyticsController) RecordSession(ctx context.Context, req types.SessionRequest) error {
	if req.SessionID == "" {
		return ErrInvalidSession
	}
	startedAt, err := time.Parse(time.RFC3339, req.StartedAt)
	if err != nil {
		startedAt = time.Now()
	}
	return c.dao.SaveSession(ctx, &models.ChatSession{
		SessionID:    req.SessionID,
		StartedAt:    startedAt,
		MessageCount: req.MessageCount,
		DurationMs:   req.DurationMs,
		UserAgent:    req.UserAgent,
		Language:     req.Language,
	})
}

func (c *AnalyticsController) ChatStats(ctx context.Context) (types.ChatStats, error) {
	events, err := c.dao.ChatEventCounts(ctx)
	if err != nil {
		return types.ChatStats{}, err
	}
	count, avgDuration, avgMessages, err := c.dao.SessionStats(ctx)
	if err != nil {
		return types.ChatStats{}, err
	}
	return types.ChatStats{
		Events:          events,
		SessionCount:    count,
		AvgDurationMs:   avgDuration,
		AvgMessageCount: avgMessages,
	}, nil
}

func (c *AnalyticsController) PageStats(ctx context.Context, limit int) ([]types.PageView, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	events, err := c.dao.RecentPageViews(ctx, limit)
	if err != nil {
		return nil, err
	}
	views := make([]types.PageView, 0, len(events))
	for _, ev := range events {
		views = append(views, types.PageView{
			Page:     ev.Page,
			Title:    ev.Title,
			Referrer: ev.Referrer,
			At:       ev.CreatedAt.Format(time.RFC3339),
		})
	}
	return views, nil
}

// Archive exports all unarchived sessions older than cutoff to object
// storage and marks them archived. Returns the object key and batch size;
// an empty batch uploads nothing.
func (c *AnalyticsController) Archive(ctx context.Context, cutoff time.Time) (string, int, error) {
	sessions, err := c.dao.UnarchivedSessionsBefore(ctx, cutoff)
	if err != nil {
		return "", 0, err
	}
	if len(sessions) == 0 {
		return "", 0, nil
	}
	key, err := c.archiver.UploadSessions(ctx, cutoff, sessions)
	if err != nil {
		return "", 0, err
	}
	ids := make([]uint, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, s.ID)
	}
	if err := c.dao.MarkSessionsArchived(ctx, ids); err != nil {
		return "", 0, err
	}
	return key, len(sessions), nil
}
