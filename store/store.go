package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"newsdesk/types"
)

// Persisted keys
const (
	KeyBookmarks        = "bookmarks"
	KeySelectedCategory = "selectedCategory"
)

// maxLogs bounds the dispatch log ring buffer
const maxLogs = 50

// Persister is a string key/value store that survives restarts
type Persister interface {
	// Get returns the stored value and whether the key exists
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// LogEntry records one dispatched action
type LogEntry struct {
	Timestamp time.Time  `json:"timestamp"`
	Action    ActionType `json:"action"`
	Message   string     `json:"message,omitempty"`
}

// Store holds the application state with thread-safe access. Every mutation
// goes through Dispatch.
type Store struct {
	mu sync.RWMutex

	state     State
	persister Persister

	// Logs (ring buffer)
	logs []LogEntry

	subs    map[int]chan State
	nextSub int

	// Persister writes run outside mu; writeMu orders them and written holds
	// the newest version stored per key
	version uint64
	writeMu sync.Mutex
	written map[string]uint64
}

// pendingWrite is an encoded value waiting to reach the persister
type pendingWrite struct {
	key     string
	value   string
	version uint64
}

// New creates a store in the startup state. A nil persister keeps state in memory only.
func New(persister Persister) *Store {
	return &Store{
		state:     NewState(),
		persister: persister,
		logs:      make([]LogEntry, 0),
		subs:      make(map[int]chan State),
		written:   make(map[string]uint64),
	}
}

// State returns a snapshot of the current state (thread-safe)
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Logs returns the most recent dispatched actions, oldest first
func (s *Store) Logs() []LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]LogEntry{}, s.logs...)
}

// Dispatch applies a and persists bookmarks or the selected category when
// the action touches them. The in-memory state advances and subscribers are
// notified before the write; the write error is returned.
func (s *Store) Dispatch(ctx context.Context, a Action) error {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	s.addLog(a)
	s.publish()
	w, err := s.encode(a.Type)
	s.mu.Unlock()

	if err != nil || w == nil {
		return err
	}
	return s.write(ctx, *w)
}

// encode snapshots the value affected by t (must hold lock). It returns nil
// when t touches no persisted key.
func (s *Store) encode(t ActionType) (*pendingWrite, error) {
	if s.persister == nil {
		return nil, nil
	}

	var (
		key  string
		data []byte
		err  error
	)
	switch t {
	case ActionAddBookmark, ActionRemoveBookmark:
		key = KeyBookmarks
		if data, err = json.Marshal(s.state.Bookmarks); err != nil {
			return nil, fmt.Errorf("failed to encode bookmarks: %w", err)
		}
	case ActionSetCategory:
		key = KeySelectedCategory
		if data, err = json.Marshal(string(s.state.SelectedCategory)); err != nil {
			return nil, fmt.Errorf("failed to encode category: %w", err)
		}
	default:
		return nil, nil
	}

	s.version++
	return &pendingWrite{key: key, value: string(data), version: s.version}, nil
}

// write stores w unless a newer value for the same key already landed
func (s *Store) write(ctx context.Context, w pendingWrite) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.written[w.key] > w.version {
		return nil
	}
	if err := s.persister.Set(ctx, w.key, w.value); err != nil {
		if w.key == KeyBookmarks {
			return fmt.Errorf("failed to persist bookmarks: %w", err)
		}
		return fmt.Errorf("failed to persist category: %w", err)
	}
	s.written[w.key] = w.version
	return nil
}

// addLog appends to the ring buffer (must hold lock)
func (s *Store) addLog(a Action) {
	entry := LogEntry{Timestamp: time.Now(), Action: a.Type}
	switch a.Type {
	case ActionSetArticles:
		entry.Message = fmt.Sprintf("%d articles", len(a.Articles))
	case ActionAddBookmark:
		entry.Message = a.Article.ID
	case ActionRemoveBookmark:
		entry.Message = a.ID
	case ActionSetCategory:
		entry.Message = string(a.Category)
	case ActionSetError:
		entry.Message = a.Message
	}

	s.logs = append(s.logs, entry)
	if len(s.logs) > maxLogs {
		s.logs = s.logs[len(s.logs)-maxLogs:]
	}
}

// Hydrate reads the persisted keys once and overlays them on the current
// state. Absent or malformed values keep the defaults. Backend read errors
// are returned after whatever could be read has been applied.
func (s *Store) Hydrate(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}

	var snapshot Snapshot
	var errs []error

	if raw, ok, err := s.persister.Get(ctx, KeyBookmarks); err != nil {
		errs = append(errs, fmt.Errorf("failed to read %s: %w", KeyBookmarks, err))
	} else if ok {
		if bookmarks, ok := decodeBookmarks(raw); ok {
			snapshot.Bookmarks = bookmarks
		} else {
			log.Printf("⚠️ Ignoring malformed %s value", KeyBookmarks)
		}
	}

	if raw, ok, err := s.persister.Get(ctx, KeySelectedCategory); err != nil {
		errs = append(errs, fmt.Errorf("failed to read %s: %w", KeySelectedCategory, err))
	} else if ok {
		if category, ok := decodeCategory(raw); ok {
			snapshot.Category = category
		} else {
			log.Printf("⚠️ Ignoring malformed %s value %q", KeySelectedCategory, raw)
		}
	}

	s.mu.Lock()
	s.state = Reduce(s.state, LoadSnapshot(snapshot))
	s.addLog(LoadSnapshot(snapshot))
	s.publish()
	s.mu.Unlock()

	return errors.Join(errs...)
}

func decodeBookmarks(raw string) ([]types.Article, bool) {
	var bookmarks []types.Article
	if err := json.Unmarshal([]byte(raw), &bookmarks); err != nil {
		return nil, false
	}
	if bookmarks == nil {
		bookmarks = []types.Article{}
	}
	return bookmarks, true
}

// decodeCategory accepts a JSON string or a bare category name
func decodeCategory(raw string) (types.Category, bool) {
	var name string
	if err := json.Unmarshal([]byte(raw), &name); err != nil {
		name = strings.TrimSpace(raw)
	}
	category, err := types.ParseCategory(name)
	if err != nil {
		return "", false
	}
	return category, true
}

// Subscribe returns a channel receiving a snapshot after every change and a
// cancel func. A slow subscriber only ever sees the latest snapshot.
func (s *Store) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// publish hands the current state to every subscriber without blocking (must hold lock)
func (s *Store) publish() {
	if len(s.subs) == 0 {
		return
	}
	snapshot := s.state.Clone()
	for _, ch := range s.subs {
		select {
		case ch <- snapshot:
			continue
		default:
		}
		// Drop the stale snapshot and retry once
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
}
