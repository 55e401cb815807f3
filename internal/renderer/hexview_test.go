package renderer

import (
	"strings"
	"testing"

	"github.com/dshills/hexstorm/internal/renderer/backend"
	"github.com/dshills/hexstorm/internal/session"
)

func testDoc(t *testing.T, data []byte) (*session.Session, *session.Document) {
	t.Helper()
	s := session.New()
	doc := s.OpenUntitled()
	if len(data) > 0 {
		if err := doc.Engine().Insert(0, data); err != nil {
			t.Fatal(err)
		}
	}
	return s, doc
}

func TestComputeLayoutFitsWidth(t *testing.T) {
	// 80 columns: addr(8+2) + 16*3 + 3 gaps + 2 + 16 ascii = 79.
	lay := ComputeLayout(80, 20, 1024, 0, true)
	if lay.Columns != 16 {
		t.Errorf("columns = %d, want 16", lay.Columns)
	}
	if lay.AddrWidth != 8 {
		t.Errorf("addr width = %d, want 8", lay.AddrWidth)
	}
	if lay.AsciiX < 0 {
		t.Error("ascii panel missing")
	}
}

func TestComputeLayoutForcedColumns(t *testing.T) {
	lay := ComputeLayout(80, 20, 1024, 8, false)
	if lay.Columns != 8 {
		t.Errorf("columns = %d, want forced 8", lay.Columns)
	}
	if lay.AsciiX != -1 {
		t.Error("ascii panel should be hidden")
	}
}

func TestComputeLayoutWideFile(t *testing.T) {
	lay := ComputeLayout(120, 20, int64(1)<<36, 0, true)
	if lay.AddrWidth != 12 {
		t.Errorf("addr width = %d, want 12 for a 64 GiB file", lay.AddrWidth)
	}
}

func TestHexCellSpacing(t *testing.T) {
	lay := ComputeLayout(80, 20, 256, 16, true)
	// Three cells per byte plus one gap after each 4-byte group.
	if got := lay.HexCellX(0); got != lay.HexX {
		t.Errorf("cell 0 at %d, want %d", got, lay.HexX)
	}
	if got := lay.HexCellX(4) - lay.HexCellX(3); got != 4 {
		t.Errorf("group gap = %d, want 4", got)
	}
	if got := lay.HexCellX(5) - lay.HexCellX(4); got != 3 {
		t.Errorf("in-group step = %d, want 3", got)
	}
}

func TestRenderRow(t *testing.T) {
	_, doc := testDoc(t, []byte("Hi\x00\xff"))
	b := backend.NewSim(80, 10)
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}

	lay := ComputeLayout(80, 10, doc.Engine().Size(), 16, true)
	NewHexView(DarkTheme()).Render(b, doc, lay, 0, nil, 0)

	row := b.Row(0)
	if !strings.HasPrefix(row, "00000000:") {
		t.Errorf("row = %q, want address prefix", row)
	}
	if !strings.Contains(row, "48 69 00 ff") {
		t.Errorf("row = %q, want hex bytes", row)
	}
	// Control and high bytes render as dots in the text panel.
	if !strings.Contains(row, "Hi..") {
		t.Errorf("row = %q, want ascii panel", row)
	}
}

func TestRenderMarksChangedBytes(t *testing.T) {
	_, doc := testDoc(t, []byte{0, 1, 2, 3})

	b := backend.NewSim(80, 10)
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	theme := DarkTheme()
	lay := ComputeLayout(80, 10, doc.Engine().Size(), 16, true)
	NewHexView(theme).Render(b, doc, lay, 0, nil, 0)

	// Every byte came from the overlay, so all carry the changed style.
	cell := b.CellAt(lay.HexCellX(0), 0)
	if cell.Style.Fg != theme.Changed.Fg {
		t.Errorf("changed byte style = %+v, want accent fg", cell.Style)
	}
}

func TestEnsureVisibleScrolls(t *testing.T) {
	_, doc := testDoc(t, make([]byte, 1024))
	lay := ComputeLayout(80, 4, 1024, 16, true)

	doc.MoveCursor(900)
	EnsureVisible(doc, lay)
	top := doc.ViewTop()
	if top%16 != 0 {
		t.Errorf("view top %d not row aligned", top)
	}
	row := (900 - top) / 16
	if row < 0 || row >= 4 {
		t.Errorf("cursor row %d not visible with top %d", row, top)
	}

	doc.MoveCursor(0)
	EnsureVisible(doc, lay)
	if doc.ViewTop() != 0 {
		t.Errorf("view top = %d, want 0", doc.ViewTop())
	}
}

func TestCursorCell(t *testing.T) {
	lay := ComputeLayout(80, 4, 256, 16, true)

	x, y, ok := lay.CursorCell(0, 17, 1, PaneHex)
	if !ok || y != 2 || x != lay.HexCellX(1) {
		t.Errorf("hex cursor = (%d,%d,%v)", x, y, ok)
	}
	x, _, _ = lay.CursorCell(0, 17, 1, PaneAscii)
	if x != lay.AsciiCellX(1) {
		t.Errorf("ascii cursor x = %d, want %d", x, lay.AsciiCellX(1))
	}
	if _, _, ok := lay.CursorCell(0, 64*16, 1, PaneHex); ok {
		t.Error("offscreen cursor reported visible")
	}
}
