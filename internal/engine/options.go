package engine

import "github.com/dshills/hexstorm/internal/engine/history"

type config struct {
	maxUndo  int
	policy   history.Policy
	readOnly bool
}

func defaultConfig() config {
	return config{
		maxUndo: history.DefaultMaxEntries,
		policy:  history.PolicyAdjacent,
	}
}

// Option configures an engine at construction time.
type Option func(*config)

// WithMaxUndoEntries caps the undo journal. Zero or negative selects the
// default cap.
func WithMaxUndoEntries(n int) Option {
	return func(c *config) { c.maxUndo = n }
}

// WithCoalescing selects how consecutive single-byte edits group into undo
// steps.
func WithCoalescing(p history.Policy) Option {
	return func(c *config) { c.policy = p }
}

// WithReadOnly opens the document for viewing only; every mutation returns
// ErrReadOnly.
func WithReadOnly(ro bool) Option {
	return func(c *config) { c.readOnly = ro }
}
