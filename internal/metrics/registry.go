// Package metrics exposes toolkit frame statistics to Prometheus, lists live
// sessions over HTTP and logs a periodic stats report.
package metrics

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stlalpha/simplekit/pkg/simplekit"
)

// StatsSource is anything that reports toolkit frame counters
type StatsSource interface {
	Stats() simplekit.Stats
}

// Session is a running toolkit
type Session struct {
	ID      uuid.UUID `json:"id"`
	Remote  string    `json:"remote"`
	Started time.Time `json:"started"`

	source StatsSource
}

// SessionInfo is a session and its current counters
type SessionInfo struct {
	Session
	Stats simplekit.Stats `json:"stats"`
}

// Registry tracks running sessions. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[uuid.UUID]*Session)}
}

// Add registers a session and returns its id
func (r *Registry) Add(remote string, src StatsSource) uuid.UUID {
	s := &Session{ID: uuid.New(), Remote: remote, Started: time.Now(), source: src}
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s.ID
}

// Remove unregisters a session
func (r *Registry) Remove(id uuid.UUID) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Len returns the number of running sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Get returns one session with its counters
func (r *Registry) Get(id uuid.UUID) (SessionInfo, bool) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return SessionInfo{}, false
	}
	return SessionInfo{Session: *s, Stats: s.source.Stats()}, true
}

// List returns every session, oldest first
func (r *Registry) List() []SessionInfo {
	r.mu.RLock()
	out := make([]SessionInfo, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, SessionInfo{Session: *s, Stats: s.source.Stats()})
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Started.Equal(out[j].Started) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].Started.Before(out[j].Started)
	})
	return out
}

// Total sums the counters of every session
func (r *Registry) Total() simplekit.Stats {
	var t simplekit.Stats
	for _, s := range r.List() {
		t.Frames += s.Stats.Frames
		t.NullFrames += s.Stats.NullFrames
		t.RawEvents += s.Stats.RawEvents
		t.Events += s.Stats.Events
		t.Calls += s.Stats.Calls
		t.Emitted += s.Stats.Emitted
	}
	return t
}
