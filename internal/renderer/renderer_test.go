package renderer

import (
	"strings"
	"testing"

	"github.com/dshills/hexstorm/internal/config"
	"github.com/dshills/hexstorm/internal/renderer/backend"
	"github.com/dshills/hexstorm/internal/session"
)

func testRenderer() *Renderer {
	cfg := config.Default().View
	cfg.Columns = 16
	return New(cfg)
}

func TestDrawFrame(t *testing.T) {
	s, doc := testDoc(t, []byte("hello world"))
	doc.MoveCursor(1)

	b := backend.NewSim(80, 24)
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}

	r := testRenderer()
	r.Draw(b, View{Session: s, Pane: PaneHex})

	if !strings.Contains(b.Row(0), "untitled") {
		t.Errorf("status = %q, want document title", b.Row(0))
	}
	if !strings.Contains(b.Row(1), "68 65 6c 6c") {
		t.Errorf("data row = %q", b.Row(1))
	}
	if !strings.Contains(b.Row(23), "Quit") {
		t.Errorf("key bar = %q", b.Row(23))
	}

	lay := ComputeLayout(80, 22, doc.Engine().Size(), 16, true)
	x, y, shown := b.Cursor()
	if !shown || y != 1 || x != lay.HexCellX(1) {
		t.Errorf("cursor = (%d,%d,%v)", x, y, shown)
	}
}

func TestDrawNibbleShiftsCursor(t *testing.T) {
	s, _ := testDoc(t, []byte{0xAB})
	b := backend.NewSim(80, 24)
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}

	r := testRenderer()
	r.Draw(b, View{Session: s, Pane: PaneHex, NibbleLow: true})

	lay := ComputeLayout(80, 22, 1, 16, true)
	x, _, _ := b.Cursor()
	if x != lay.HexCellX(0)+1 {
		t.Errorf("cursor x = %d, want low nibble cell", x)
	}
}

func TestDrawPromptOwnsBottomRowAndCursor(t *testing.T) {
	s, _ := testDoc(t, []byte{1, 2, 3})
	b := backend.NewSim(80, 24)
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}

	p := NewPrompt("goto:", "1000")
	r := testRenderer()
	r.Draw(b, View{Session: s, Pane: PaneHex, Prompt: p})

	if !strings.Contains(b.Row(23), "goto: 1000") {
		t.Errorf("bottom row = %q", b.Row(23))
	}
	x, y, shown := b.Cursor()
	if !shown || y != 23 || x != len("goto: ")+4 {
		t.Errorf("cursor = (%d,%d,%v)", x, y, shown)
	}
}

func TestDrawMessageOverridesPosition(t *testing.T) {
	s, _ := testDoc(t, []byte{1})
	b := backend.NewSim(80, 24)
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}

	r := testRenderer()
	r.Draw(b, View{Session: s, Message: "sequence not found", IsError: true})

	if !strings.Contains(b.Row(0), "sequence not found") {
		t.Errorf("status = %q", b.Row(0))
	}
}

func TestDrawEmptySession(t *testing.T) {
	b := backend.NewSim(80, 24)
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}

	r := testRenderer()
	r.Draw(b, View{Session: session.New()})

	if !strings.Contains(b.Row(0), "no file") {
		t.Errorf("status = %q", b.Row(0))
	}
	if _, _, shown := b.Cursor(); shown {
		t.Error("cursor shown with no document")
	}
}

func TestPromptEditing(t *testing.T) {
	p := NewPrompt("find:", "")

	for _, r := range "dead" {
		p.HandleKey(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r})
	}
	p.HandleKey(backend.Event{Type: backend.EventKey, Key: backend.KeyBackspace})
	p.HandleKey(backend.Event{Type: backend.EventKey, Key: backend.KeyLeft})
	p.HandleKey(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'X'})
	if p.Value() != "deXa" {
		t.Errorf("value = %q, want deXa", p.Value())
	}

	done, cancelled := p.HandleKey(backend.Event{Type: backend.EventKey, Key: backend.KeyEnter})
	if !done || cancelled {
		t.Error("Enter should submit")
	}
	_, cancelled = p.HandleKey(backend.Event{Type: backend.EventKey, Key: backend.KeyEscape})
	if !cancelled {
		t.Error("Escape should cancel")
	}

	p.HandleKey(backend.Event{Type: backend.EventKey, Key: backend.KeyCtrlU})
	if p.Value() != "" {
		t.Errorf("value = %q after kill, want empty", p.Value())
	}
}
