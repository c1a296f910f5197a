package mailer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"folio/folio/sources/psql"
	"folio/folio/sources/psql/dao"
	"folio/folio/sources/psql/models"
	"folio/folio/utils/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testMessages(t *testing.T) *dao.ContactMessageDAO {
	t.Helper()
	logging.InitLogger()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_fk=1"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := psql.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM contact_messages") })
	return dao.NewContactMessageDAO(db)
}

type notifyRecorder struct {
	mu    sync.Mutex
	names []string
	err   error
	ch    chan string
}

func newNotifyRecorder() *notifyRecorder {
	return &notifyRecorder{ch: make(chan string, 16)}
}

func (r *notifyRecorder) notify(msg models.ContactMessage) error {
	r.mu.Lock()
	r.names = append(r.names, msg.Name)
	err := r.err
	r.mu.Unlock()
	r.ch <- msg.Name
	return err
}

func (r *notifyRecorder) wait(t *testing.T) string {
	t.Helper()
	select {
	case name := <-r.ch:
		return name
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for notification")
		return ""
	}
}

func (r *notifyRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.names)
}

func TestWatcherNotifiesNewMessagesOnce(t *testing.T) {
	messages := testMessages(t)
	ctx := context.Background()

	// Pre-existing message: must never notify.
	if err := messages.Create(ctx, &models.ContactMessage{Name: "Old", Email: "o@example.com", Message: "old"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := newNotifyRecorder()
	w := NewWatcher(messages, rec.notify, 10*time.Millisecond)
	stop, err := w.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	defer stop()

	if err := messages.Create(ctx, &models.ContactMessage{Name: "New", Email: "n@example.com", Message: "new"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if name := rec.wait(t); name != "New" {
		t.Fatalf("expected notification for New, got %q", name)
	}

	// Give the watcher a few more polls; the same message must not repeat
	// and the pre-existing one must stay silent.
	time.Sleep(50 * time.Millisecond)
	if rec.count() != 1 {
		t.Errorf("expected exactly one notification, got %d (%v)", rec.count(), rec.names)
	}
}

func TestWatcherSwallowsNotifyErrors(t *testing.T) {
	messages := testMessages(t)
	ctx := context.Background()

	rec := newNotifyRecorder()
	rec.err = errors.New("smtp unavailable")
	w := NewWatcher(messages, rec.notify, 10*time.Millisecond)
	stop, err := w.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	defer stop()

	if err := messages.Create(ctx, &models.ContactMessage{Name: "First", Email: "f@example.com", Message: "m"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	rec.wait(t)

	// The failed message advances the cursor: no retry, and later messages
	// still come through.
	rec.mu.Lock()
	rec.err = nil
	rec.mu.Unlock()
	if err := messages.Create(ctx, &models.ContactMessage{Name: "Second", Email: "s@example.com", Message: "m"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if name := rec.wait(t); name != "Second" {
		t.Fatalf("expected Second, got %q", name)
	}
	if rec.count() != 2 {
		t.Errorf("expected two notify attempts, got %d (%v)", rec.count(), rec.names)
	}
}

func TestWatcherStopEndsPolling(t *testing.T) {
	messages := testMessages(t)
	ctx := context.Background()

	rec := newNotifyRecorder()
	w := NewWatcher(messages, rec.notify, 10*time.Millisecond)
	stop, err := w.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	stop()

	if err := messages.Create(ctx, &models.ContactMessage{Name: "Late", Email: "l@example.com", Message: "m"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if rec.count() != 0 {
		t.Errorf("stopped watcher must not notify, got %d", rec.count())
	}
}
