// Package session identifies one compilation run: a UUID minted the way
// the teacher's server/dao/inmem repositories mint resource ids
// (uuid.NewRandom, surfaced as an error rather than panicking on a
// starved entropy source), attached to diagnostic JSON export metadata and
// to internal/langserver's request/response pair.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ID identifies one compile() invocation end to end: the compile's own
// diagnostics carry it in their JSON export, and internal/langserver
// echoes it back in its response so client tooling can correlate logs.
type ID struct {
	uuid.UUID
}

// New mints a fresh session ID.
func New() (ID, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return ID{}, fmt.Errorf("session: generate id: %w", err)
	}
	return ID{UUID: u}, nil
}

// Session is one tracked compile invocation: its id, when it started, and
// when (if ever) it finished.
type Session struct {
	ID        ID
	Started   time.Time
	Completed time.Time
}

// Registry tracks in-flight and recently completed sessions for
// internal/langserver's status reporting. It is the compiler-core
// equivalent of the teacher's SessionRepository, minus persistence: a
// compile's session is relevant only for the lifetime of the process
// that ran it, so an in-memory map (guarded the way
// server/dao/inmem.InMemorySessionsRepository guards its maps) is enough.
type Registry struct {
	mu       sync.Mutex
	sessions map[ID]*Session
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{sessions: map[ID]*Session{}}
}

// Start mints a new session, records it as started now, and returns it.
func (r *Registry) Start(now time.Time) (*Session, error) {
	id, err := New()
	if err != nil {
		return nil, err
	}
	s := &Session{ID: id, Started: now}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = s
	return s, nil
}

// Finish marks id as completed at now. A finish for an unknown id is a
// no-op: the registry is best-effort bookkeeping, not a source of truth a
// caller must synchronize against.
func (r *Registry) Finish(id ID, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.Completed = now
	}
}

// Get returns the tracked session for id, if any.
func (r *Registry) Get(id ID) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}
