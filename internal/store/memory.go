package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-lookup/internal/presenter"
)

var (
	// ErrNotFound is returned when a session id is unknown or was evicted.
	ErrNotFound = errors.New("session not found")
)

// State is what a widget client renders: the loading indicator, the error
// slot and the last successful view.
type State struct {
	Loading   bool            `json:"loading"`
	Error     string          `json:"error,omitempty"`
	Visible   bool            `json:"visible"`
	View      *presenter.View `json:"view,omitempty"`
	Seq       uint64          `json:"seq"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type session struct {
	state    State
	lastSeen time.Time
}

// SessionStore is a concurrency-safe in-memory set of widget sessions.
// Each session remembers only its latest search.
type SessionStore struct {
	mu sync.Mutex

	// key: session id
	data map[string]*session

	maxSessions int           // max number of live sessions (0 = unlimited)
	maxIdle     time.Duration // sessions untouched for longer are evicted

	now func() time.Time
}

// NewSessionStore creates a new SessionStore with optional limits.
// If maxSessions is <= 0, it is treated as unlimited.
func NewSessionStore(maxSessions int, maxIdle time.Duration) *SessionStore {
	return &SessionStore{
		data:        make(map[string]*session),
		maxSessions: maxSessions,
		maxIdle:     maxIdle,
		now:         time.Now,
	}
}

// Create registers an empty session and returns its id. When the store is
// full the least recently used session is dropped.
func (s *SessionStore) Create() string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSessions > 0 && len(s.data) >= s.maxSessions {
		s.dropOldestLocked(len(s.data) - s.maxSessions + 1)
	}

	now := s.now()
	s.data[id] = &session{state: State{UpdatedAt: now}, lastSeen: now}
	return id
}

// Begin starts a new search for the session and returns its sequence
// number. The loading flag is raised and the error slot and view are cleared.
func (s *SessionStore) Begin(id string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.data[id]
	if !ok {
		return 0, ErrNotFound
	}

	now := s.now()
	sess.state.Seq++
	sess.state.Loading = true
	sess.state.Error = ""
	sess.state.Visible = false
	sess.state.View = nil
	sess.state.UpdatedAt = now
	sess.lastSeen = now
	return sess.state.Seq, nil
}

// Finish records the outcome of search seq. It reports false and changes
// nothing when a newer search has started since. A non-empty message
// replaces the view.
func (s *SessionStore) Finish(id string, seq uint64, view *presenter.View, message string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.data[id]
	if !ok {
		return false, ErrNotFound
	}
	if seq != sess.state.Seq {
		return false, nil
	}

	sess.state.Loading = false
	sess.state.UpdatedAt = s.now()
	if message != "" {
		sess.state.Error = message
		sess.state.Visible = false
		sess.state.View = nil
		return true, nil
	}

	sess.state.Error = ""
	sess.state.View = view
	sess.state.Visible = view != nil
	return true, nil
}

// Get returns a copy of the session state.
func (s *SessionStore) Get(id string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.data[id]
	if !ok {
		return State{}, ErrNotFound
	}
	sess.lastSeen = s.now()
	return sess.state, nil
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// Evict removes sessions idle for longer than the configured max idle time
// and returns how many were removed. Sessions with a search in flight are kept.
func (s *SessionStore) Evict() int {
	if s.maxIdle <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.maxIdle)
	removed := 0
	for id, sess := range s.data {
		if sess.state.Loading {
			continue
		}
		if sess.lastSeen.Before(cutoff) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

func (s *SessionStore) dropOldestLocked(n int) {
	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return s.data[ids[i]].lastSeen.Before(s.data[ids[j]].lastSeen)
	})
	for i := 0; i < n && i < len(ids); i++ {
		delete(s.data, ids[i])
	}
}
