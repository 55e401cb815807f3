package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// maxFileStates caps the per-file position history.
const maxFileStates = 64

// State is the session state persisted between runs: dialog history and
// per-file cursor positions, most recently used first.
type State struct {
	// LastGoto is the last offset entered in the goto dialog.
	LastGoto int64 `toml:"lastGoto"`

	// LastSearch is the last search pattern as compact hex text.
	LastSearch string `toml:"lastSearch"`

	// LastSearchDir is "forward" or "backward".
	LastSearchDir string `toml:"lastSearchDir"`

	// Files holds per-file view state, most recent first.
	Files []FileState `toml:"files"`
}

// FileState remembers where the cursor was when a file was closed.
type FileState struct {
	Path   string `toml:"path"`
	Cursor int64  `toml:"cursor"`
}

// RememberFile records the cursor position for path, moving it to the
// front and evicting the oldest entry past the cap.
func (s *State) RememberFile(path string, cursor int64) {
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	out := make([]FileState, 0, len(s.Files)+1)
	out = append(out, FileState{Path: path, Cursor: cursor})
	for _, f := range s.Files {
		if f.Path != path {
			out = append(out, f)
		}
	}
	if len(out) > maxFileStates {
		out = out[:maxFileStates]
	}
	s.Files = out
}

// FilePosition returns the remembered cursor for path.
func (s *State) FilePosition(path string) (int64, bool) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	for _, f := range s.Files {
		if f.Path == path {
			return f.Cursor, true
		}
	}
	return 0, false
}

// StatePath returns the persisted state file location.
func StatePath() string {
	dir := DataDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "state.toml")
}

// LoadState reads the persisted state from path. A missing file yields the
// zero state.
func LoadState(path string) (State, error) {
	var st State
	if path == "" {
		return st, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return st, nil
	}
	if err != nil {
		return st, fmt.Errorf("reading state %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &st); err != nil {
		return st, fmt.Errorf("parsing state %s: %w", path, err)
	}
	return st, nil
}

// SaveState writes the state to path, creating the directory as needed.
func SaveState(path string, st State) error {
	if path == "" {
		return nil
	}
	data, err := toml.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing state %s: %w", path, err)
	}
	return nil
}
