package dao

import (
	"context"
	"time"

	"folio/folio/sources/psql/models"
	"folio/folio/utils/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnalyticsDAO struct {
	DB *gorm.DB
}

func NewAnalyticsDAO(db *gorm.DB) *AnalyticsDAO {
	return &AnalyticsDAO{DB: db}
}

func (dao *AnalyticsDAO) SaveEvent(ctx context.Context, ev *models.AnalyticsEvent) error {
	return dao.DB.WithContext(ctx).Create(ev).Error
}

// SaveSession upserts on session_id so a re-sent summary does not error.
func (dao *AnalyticsDAO) SaveSession(ctx context.Context, s *models.ChatSession) error {
	return dao.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"message_count", "duration_ms"}),
		}).
		Create(s).Error
}

func (dao *AnalyticsDAO) ChatEventCounts(ctx context.Context) ([]types.EventCount, error) {
	var counts []types.EventCount
	err := dao.DB.WithContext(ctx).
		Model(&models.AnalyticsEvent{}).
		Select("event, count(*) as count").
		Where("type = ?", "chat_event").
		Group("event").
		Order("count DESC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (dao *AnalyticsDAO) SessionStats(ctx context.Context) (int64, float64, float64, error) {
	var row struct {
		Count       int64
		AvgDuration float64
		AvgMessages float64
	}
	err := dao.DB.WithContext(ctx).
		Model(&models.ChatSession{}).
		Select("count(*) as count, coalesce(avg(duration_ms), 0) as avg_duration, coalesce(avg(message_count), 0) as avg_messages").
		Scan(&row).Error
	if err != nil {
		return 0, 0, 0, err
	}
	return row.Count, row.AvgDuration, row.AvgMessages, nil
}

func (dao *AnalyticsDAO) RecentPageViews(ctx context.Context, limit int) ([]models.AnalyticsEvent, error) {
	var events []models.AnalyticsEvent
	err := dao.DB.WithContext(ctx).
		Where("type = ?", "page_view").
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (dao *AnalyticsDAO) UnarchivedSessionsBefore(ctx context.Context, cutoff time.Time) ([]models.ChatSession, error) {
	var sessions []models.ChatSession
	err := dao.DB.WithContext(ctx).
		Where("archived = ? AND created_at < ?", false, cutoff).
		Order("created_at ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (dao *AnalyticsDAO) MarkSessionsArchived(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return dao.DB.WithContext(ctx).
		Model(&models.ChatSession{}).
		Where("id IN ?", ids).
		Update("archived", true).Error
}
