package services

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/pocketbase/pocketbase/core"
)

// StateStore is durable key/value storage for the persisted session record.
type StateStore interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

// SessionStateCollection is the PocketBase collection holding persisted
// session records, one per storage key.
const SessionStateCollection = "session_state"

// RecordStateStore keeps session records in a PocketBase collection, the
// embedded SQLite database standing in for browser local storage.
type RecordStateStore struct {
	app core.App
}

// NewRecordStateStore returns a StateStore backed by app's session_state
// collection. The collection must already exist (see collections.Setup).
func NewRecordStateStore(app core.App) *RecordStateStore {
	return &RecordStateStore{app: app}
}

// Load returns the payload stored under key or ErrStateNotFound.
func (s *RecordStateStore) Load(key string) ([]byte, error) {
	rec, err := s.app.FindFirstRecordByData(SessionStateCollection, "key", key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("find state record: %w", err)
	}
	payload := rec.GetString("payload")
	if payload == "" {
		return nil, ErrStateNotFound
	}
	return []byte(payload), nil
}

// Save upserts the payload stored under key.
func (s *RecordStateStore) Save(key string, data []byte) error {
	rec, err := s.app.FindFirstRecordByData(SessionStateCollection, "key", key)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("find state record: %w", err)
		}
		col, err := s.app.FindCollectionByNameOrId(SessionStateCollection)
		if err != nil {
			return fmt.Errorf("collection not found: %w", err)
		}
		rec = core.NewRecord(col)
		rec.Set("key", key)
	}
	rec.Set("payload", string(data))
	if err := s.app.Save(rec); err != nil {
		return fmt.Errorf("save state record: %w", err)
	}
	return nil
}

// MemoryStateStore is an in-process StateStore, used by tests and by
// one-shot commands that must not touch the database.
type MemoryStateStore struct {
	mu   sync.Mutex
	data map[string][]byte
	// FailSaves makes every Save return an error.
	FailSaves bool
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{data: make(map[string][]byte)}
}

func (m *MemoryStateStore) Load(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return nil, ErrStateNotFound
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (m *MemoryStateStore) Save(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSaves {
		return errors.New("storage unavailable")
	}
	b := make([]byte, len(data))
	copy(b, data)
	m.data[key] = b
	return nil
}
