// Package modstore provides the session-scoped module cache and in-flight
// set that back a loader session.
//
// The cache is append-only: an identifier's value is stored exactly once,
// when its load first completes, and is never replaced or evicted for the
// remainder of the session. The in-flight set tracks identifiers whose
// load has started but not finished; concurrent requests for one of those
// identifiers coalesce onto the pending load instead of issuing a second
// fetch.
//
// The cache check, the in-flight check, and the in-flight insertion happen
// under a single mutex so that two concurrent requests for the same
// uncached identifier can never both decide to fetch.
package modstore

import "sync"

// Pending represents one in-flight load. Waiters block on Done; after Done
// is closed, Value and Err carry the outcome.
type Pending struct {
	done  chan struct{}
	value any
	err   error
}

// Done returns a channel that is closed when the load completes.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Result returns the outcome of the load. It must only be called after
// Done is closed.
func (p *Pending) Result() (any, error) {
	return p.value, p.err
}

// BeginState describes what Begin found for an identifier.
type BeginState int

const (
	// Cached means the identifier already has a module value.
	Cached BeginState = iota
	// Joined means another load for the identifier is in flight; the
	// caller should wait on the returned Pending.
	Joined
	// Started means the caller now owns the load and must call Finish
	// exactly once.
	Started
)

// Store holds the module cache and the in-flight set for one session.
type Store struct {
	mu       sync.Mutex
	modules  map[string]any
	inflight map[string]*Pending
}

// New creates an empty store.
func New() *Store {
	return &Store{
		modules:  make(map[string]any),
		inflight: make(map[string]*Pending),
	}
}

// Get returns the cached module value for id, if present.
func (s *Store) Get(id string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.modules[id]
	return v, ok
}

// Seed stores an already-available module value under id unless the id is
// already cached. Used to pre-seed inline values from the global name
// table.
func (s *Store) Seed(id string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.modules[id]; !ok {
		s.modules[id] = value
	}
}

// Begin atomically decides how a load for id should proceed: return the
// cached value, join an in-flight load, or start a new one. When it
// returns Started, the caller has exclusive ownership of the load and must
// settle it with Finish.
func (s *Store) Begin(id string) (BeginState, any, *Pending) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.modules[id]; ok {
		return Cached, v, nil
	}
	if p, ok := s.inflight[id]; ok {
		return Joined, nil, p
	}
	p := &Pending{done: make(chan struct{})}
	s.inflight[id] = p
	return Started, nil, p
}

// Finish settles the in-flight load for id. On success the value becomes
// the cached module value; on failure nothing is cached. The in-flight
// marker is removed unconditionally and all waiters are released.
func (s *Store) Finish(id string, value any, err error) {
	s.mu.Lock()
	p, ok := s.inflight[id]
	if ok {
		delete(s.inflight, id)
		if err == nil {
			s.modules[id] = value
		}
	}
	s.mu.Unlock()

	if ok {
		p.value = value
		p.err = err
		close(p.done)
	}
}

// Len reports the number of cached module values.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.modules)
}
