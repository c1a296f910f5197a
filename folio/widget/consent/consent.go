// Package consent persists the visitor's cookie-consent preference and
// broadcasts updates so every live widget instance converges without a
// central store.
package consent

import (
	"encoding/json"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

type Level string

const (
	LevelNecessary Level = "necessary"
	LevelAll       Level = "all"
)

// Pref mirrors the browser-side cookieConsent.v1 payload.
type Pref struct {
	Level Level     `json:"level"`
	SetAt time.Time `json:"ts"`
}

var (
	bucketName = []byte("preferences")
	prefKey    = []byte("cookieConsent.v1")
)

// Store is a small bolt-backed preference store. The preference never
// expires; it changes only through Set.
type Store struct {
	db *bolt.DB

	mu     sync.Mutex
	subs   map[int]func(Pref)
	nextID int
}

func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(bucketName)
		return e
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, subs: map[int]func(Pref){}}, nil
}

// Current returns the stored preference; ok is false when the visitor has
// not chosen yet.
func (s *Store) Current() (Pref, bool) {
	var pref Pref
	found := false
	_ = s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketName).Get(prefKey)
		if len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, &pref); err != nil {
			// Malformed entry reads as unset rather than failing the caller.
			return nil
		}
		found = true
		return nil
	})
	return pref, found
}

// Level returns the stored level, or "" when unset. Gating logic treats
// anything other than LevelNecessary as permissive.
func (s *Store) Level() Level {
	pref, ok := s.Current()
	if !ok {
		return ""
	}
	return pref.Level
}

// Set persists the preference and notifies every subscriber.
func (s *Store) Set(level Level) error {
	pref := Pref{Level: level, SetAt: time.Now()}
	raw, err := json.Marshal(pref)
	if err != nil {
		return err
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(prefKey, raw)
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	fns := make([]func(Pref), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(pref)
	}
	return nil
}

// Subscribe registers fn for future updates and returns its unsubscribe
// handle.
func (s *Store) Subscribe(fn func(Pref)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) Close() error {
	return s.db.Close()
}
