package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/hexstorm/internal/engine/buffer"
)

// Save writes the document back to its own path. See SaveAs.
func (e *Engine) Save() error {
	e.mu.Lock()
	path := e.path
	e.mu.Unlock()
	if path == "" {
		return ErrNoPath
	}
	return e.SaveAs(path)
}

// SaveAs writes the document to path and makes that file the document's
// new origin. The content is streamed to a temporary file in the target
// directory and renamed into place, so a failure at any point leaves both
// the buffer and any existing file untouched.
func (e *Engine) SaveAs(path string) error {
	if e.readOnly {
		return ErrReadOnly
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	tmpName := tmp.Name()

	if _, err := e.buf.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	// Preserve the original file's mode when overwriting it.
	if info, err := os.Stat(path); err == nil {
		os.Chmod(tmpName, info.Mode().Perm())
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	origin, err := buffer.OpenFile(path)
	if err != nil {
		// The file is written but cannot be reopened; keep the overlay so
		// no edits are lost.
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	e.buf.Collapse(origin)
	e.journal.MarkSaved()
	e.path = path
	e.snapshotDisk()
	return nil
}
