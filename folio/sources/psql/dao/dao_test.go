package dao

import (
	"context"
	"fmt"
	"testing"
	"time"

	"folio/folio/sources/psql"
	"folio/folio/sources/psql/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_fk=1"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := psql.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		// Each test gets a fresh schema; shared-cache memory DBs persist
		// across connections in the same process.
		db.Exec("DELETE FROM analytics_events")
		db.Exec("DELETE FROM chat_sessions")
		db.Exec("DELETE FROM contact_messages")
		db.Exec("DELETE FROM admin_users")
	})
	return db
}

func TestSaveEventAndChatEventCounts(t *testing.T) {
	db := testDB(t)
	dao := NewAnalyticsDAO(db)
	ctx := context.Background()

	events := []models.AnalyticsEvent{
		{Type: "chat_event", Event: "chat_opened", SessionID: "s1"},
		{Type: "chat_event", Event: "chat_sent", SessionID: "s1"},
		{Type: "chat_event", Event: "chat_sent", SessionID: "s2"},
		{Type: "page_view", Page: "/pricing"},
	}
	for i := range events {
		if err := dao.SaveEvent(ctx, &events[i]); err != nil {
			t.Fatalf("save event: %v", err)
		}
	}

	counts, err := dao.ChatEventCounts(ctx)
	if err != nil {
		t.Fatalf("chat event counts: %v", err)
	}
	got := map[string]int64{}
	for _, c := range counts {
		got[c.Event] = c.Count
	}
	if got["chat_sent"] != 2 || got["chat_opened"] != 1 {
		t.Errorf("unexpected counts: %v", got)
	}
	if _, ok := got["page_view"]; ok {
		t.Errorf("page views must not show up in chat event counts")
	}
}

func TestSaveSessionUpsertsOnSessionID(t *testing.T) {
	db := testDB(t)
	dao := NewAnalyticsDAO(db)
	ctx := context.Background()

	first := &models.ChatSession{
		SessionID: "sess-1", StartedAt: time.Now(),
		MessageCount: 2, DurationMs: 1000,
	}
	if err := dao.SaveSession(ctx, first); err != nil {
		t.Fatalf("save session: %v", err)
	}

	// Re-sent summary with updated totals.
	again := &models.ChatSession{
		SessionID: "sess-1", StartedAt: time.Now(),
		MessageCount: 5, DurationMs: 9000,
	}
	if err := dao.SaveSession(ctx, again); err != nil {
		t.Fatalf("upsert session: %v", err)
	}

	count, avgDur, avgMsgs, err := dao.SessionStats(ctx)
	if err != nil {
		t.Fatalf("session stats: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one session row after upsert, got %d", count)
	}
	if avgDur != 9000 || avgMsgs != 5 {
		t.Errorf("stats should reflect the updated summary, got dur=%v msgs=%v", avgDur, avgMsgs)
	}
}

func TestSessionStatsEmpty(t *testing.T) {
	db := testDB(t)
	dao := NewAnalyticsDAO(db)

	count, avgDur, avgMsgs, err := dao.SessionStats(context.Background())
	if err != nil {
		t.Fatalf("session stats: %v", err)
	}
	if count != 0 || avgDur != 0 || avgMsgs != 0 {
		t.Errorf("empty table should yield zeros, got count=%d dur=%v msgs=%v", count, avgDur, avgMsgs)
	}
}

func TestRecentPageViews(t *testing.T) {
	db := testDB(t)
	dao := NewAnalyticsDAO(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		ev := models.AnalyticsEvent{
			Type:      "page_view",
			Page:      fmt.Sprintf("/page-%d", i),
			CreatedAt: time.Now().Add(time.Duration(i) * time.Minute),
		}
		if err := dao.SaveEvent(ctx, &ev); err != nil {
			t.Fatalf("save event: %v", err)
		}
	}
	if err := dao.SaveEvent(ctx, &models.AnalyticsEvent{Type: "chat_event", Event: "chat_opened"}); err != nil {
		t.Fatalf("save event: %v", err)
	}

	views, err := dao.RecentPageViews(ctx, 3)
	if err != nil {
		t.Fatalf("recent page views: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 views, got %d", len(views))
	}
	if views[0].Page != "/page-4" {
		t.Errorf("expected newest first, got %q", views[0].Page)
	}
	for _, v := range views {
		if v.Type != "page_view" {
			t.Errorf("non page_view row leaked: %+v", v)
		}
	}
}

func TestArchiveLifecycle(t *testing.T) {
	db := testDB(t)
	dao := NewAnalyticsDAO(db)
	ctx := context.Background()

	old := models.ChatSession{SessionID: "old", StartedAt: time.Now(), CreatedAt: time.Now().Add(-48 * time.Hour)}
	fresh := models.ChatSession{SessionID: "fresh", StartedAt: time.Now(), CreatedAt: time.Now()}
	for _, s := range []*models.ChatSession{&old, &fresh} {
		if err := dao.SaveSession(ctx, s); err != nil {
			t.Fatalf("save session: %v", err)
		}
	}

	cutoff := time.Now().Add(-24 * time.Hour)
	sessions, err := dao.UnarchivedSessionsBefore(ctx, cutoff)
	if err != nil {
		t.Fatalf("unarchived sessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].SessionID != "old" {
		t.Fatalf("expected only the old session, got %+v", sessions)
	}

	if err := dao.MarkSessionsArchived(ctx, []uint{sessions[0].ID}); err != nil {
		t.Fatalf("mark archived: %v", err)
	}
	sessions, err = dao.UnarchivedSessionsBefore(ctx, cutoff)
	if err != nil {
		t.Fatalf("unarchived sessions: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("archived session still reported: %+v", sessions)
	}

	// Empty id list is a no-op, not an error.
	if err := dao.MarkSessionsArchived(ctx, nil); err != nil {
		t.Errorf("empty archive batch: %v", err)
	}
}

func TestContactMessageWatcherQueries(t *testing.T) {
	db := testDB(t)
	dao := NewContactMessageDAO(db)
	ctx := context.Background()

	latest, err := dao.LatestID(ctx)
	if err != nil {
		t.Fatalf("latest id on empty table: %v", err)
	}
	if latest != 0 {
		t.Fatalf("empty table should seed at 0, got %d", latest)
	}

	for i := 1; i <= 3; i++ {
		msg := models.ContactMessage{
			Name:    fmt.Sprintf("Visitor %d", i),
			Email:   fmt.Sprintf("v%d@example.com", i),
			Message: "hello",
		}
		if err := dao.Create(ctx, &msg); err != nil {
			t.Fatalf("create message: %v", err)
		}
	}

	latest, err = dao.LatestID(ctx)
	if err != nil {
		t.Fatalf("latest id: %v", err)
	}

	msg := models.ContactMessage{Name: "Late", Email: "late@example.com", Message: "new"}
	if err := dao.Create(ctx, &msg); err != nil {
		t.Fatalf("create message: %v", err)
	}

	after, err := dao.ListAfter(ctx, latest)
	if err != nil {
		t.Fatalf("list after: %v", err)
	}
	if len(after) != 1 || after[0].Name != "Late" {
		t.Fatalf("expected only the late message, got %+v", after)
	}

	all, err := dao.List(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("expected 4 messages, got %d", len(all))
	}
}
