package sheets

import (
	"sync"
	"time"

	"logidash/infrastructure/dashboard"
)

// State is what the status panel shows about the connection.
type State struct {
	Loading     bool
	Err         string
	SyncedAt    time.Time
	LastAttempt time.Time
}

// Connection renders the state the way the debug panel labels it.
func (s State) Connection() string {
	switch {
	case s.Err != "":
		return "Error: " + s.Err
	case s.Loading:
		return "Loading"
	default:
		return "Connected"
	}
}

// Store holds the latest snapshot. Snapshots are never mutated after Replace.
type Store struct {
	mu          sync.RWMutex
	snap        *dashboard.Snapshot
	err         string
	lastAttempt time.Time
}

func NewStore() *Store {
	return &Store{}
}

// Snapshot returns the current snapshot, or an empty one before the first poll.
func (s *Store) Snapshot() *dashboard.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return &dashboard.Snapshot{Occupancy: map[string][]dashboard.StockPallet{}}
	}
	return s.snap
}

// Replace swaps in a new snapshot. errMsg is empty for a healthy cycle.
func (s *Store) Replace(snap *dashboard.Snapshot, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	s.err = errMsg
	s.lastAttempt = snap.SyncedAt
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := State{Loading: s.snap == nil, Err: s.err, LastAttempt: s.lastAttempt}
	if s.snap != nil {
		st.SyncedAt = s.snap.SyncedAt
	}
	return st
}
