package engine

import (
	"errors"

	"github.com/dshills/hexstorm/internal/engine/buffer"
	"github.com/dshills/hexstorm/internal/engine/history"
	"github.com/dshills/hexstorm/internal/engine/search"
)

// The engine surfaces its subsystems' sentinels under one roof so callers
// match against a single package.
var (
	ErrOutOfRange    = buffer.ErrOffsetOutOfRange
	ErrPatternEmpty  = buffer.ErrPatternEmpty
	ErrNothingToUndo = history.ErrNothingToUndo
	ErrNothingToRedo = history.ErrNothingToRedo
	ErrNotFound      = search.ErrNotFound
	ErrCancelled     = search.ErrCancelled

	// ErrReadOnly indicates a mutation on a document opened read-only.
	ErrReadOnly = errors.New("document is read-only")

	// ErrNoPath indicates Save on a document that has no file path yet.
	ErrNoPath = errors.New("no file path set")

	// ErrIO wraps operating system failures during save.
	ErrIO = errors.New("i/o failure")
)
