package diff

import (
	"context"
	"sync"
)

// Revisioned is a comparison source that reports a revision stamp which
// changes on every mutation. The edit buffer satisfies it.
type Revisioned interface {
	Source
	Revision() uint64
}

// Session owns a lazily recomputed comparison over a fixed set of buffers.
// Map returns a cached result until some buffer's revision moves.
type Session struct {
	mu      sync.Mutex
	sources []Revisioned
	opts    Options
	cached  *Map
	revs    []uint64
}

// NewSession creates a session comparing the given buffers. sources[0] is
// the reference.
func NewSession(sources []Revisioned, opts Options) *Session {
	return &Session{sources: sources, opts: opts.normalize()}
}

// Files returns the number of compared buffers.
func (s *Session) Files() int { return len(s.sources) }

// Map returns the comparison, recomputing only if some buffer changed
// since the last call.
func (s *Session) Map(ctx context.Context) (*Map, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && !s.stale() {
		return s.cached, nil
	}

	srcs := make([]Source, len(s.sources))
	revs := make([]uint64, len(s.sources))
	for i, src := range s.sources {
		srcs[i] = src
		revs[i] = src.Revision()
	}

	m, err := Compute(ctx, srcs, s.opts)
	if err != nil {
		// A cancelled computation keeps the previous cache invalid.
		return nil, err
	}
	s.cached = m
	s.revs = revs
	return m, nil
}

// Invalidate drops the cache so the next Map call recomputes.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
}

func (s *Session) stale() bool {
	if len(s.revs) != len(s.sources) {
		return true
	}
	for i, src := range s.sources {
		if src.Revision() != s.revs[i] {
			return true
		}
	}
	return false
}
