package config

import (
	"fmt"
	"path/filepath"
	"testing"
)

func TestStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")

	st := State{LastGoto: 0x1000, LastSearch: "deadbeef", LastSearchDir: "forward"}
	st.RememberFile("/tmp/a.bin", 42)
	st.RememberFile("/tmp/b.bin", 7)

	if err := SaveState(path, st); err != nil {
		t.Fatal(err)
	}
	got, err := LoadState(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.LastGoto != 0x1000 || got.LastSearch != "deadbeef" {
		t.Errorf("state = %+v", got)
	}
	if pos, ok := got.FilePosition("/tmp/a.bin"); !ok || pos != 42 {
		t.Errorf("FilePosition = %d, %v", pos, ok)
	}
	// Most recent first.
	if got.Files[0].Path != "/tmp/b.bin" {
		t.Errorf("MRU order wrong: %+v", got.Files)
	}
}

func TestStateMissingFile(t *testing.T) {
	st, err := LoadState(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Files) != 0 || st.LastSearch != "" {
		t.Errorf("state = %+v, want zero", st)
	}
}

func TestRememberFileDedupesAndCaps(t *testing.T) {
	var st State
	st.RememberFile("/tmp/a.bin", 1)
	st.RememberFile("/tmp/a.bin", 9)
	if len(st.Files) != 1 || st.Files[0].Cursor != 9 {
		t.Errorf("dedupe failed: %+v", st.Files)
	}

	for i := 0; i < maxFileStates+10; i++ {
		st.RememberFile(fmt.Sprintf("/tmp/f%03d.bin", i), int64(i))
	}
	if len(st.Files) != maxFileStates {
		t.Errorf("history = %d entries, want capped at %d", len(st.Files), maxFileStates)
	}
}
