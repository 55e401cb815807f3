package renderer

import (
	"fmt"

	"github.com/dshills/hexstorm/internal/engine"
	"github.com/dshills/hexstorm/internal/engine/diff"
	"github.com/dshills/hexstorm/internal/renderer/backend"
	"github.com/dshills/hexstorm/internal/session"
)

// Pane identifies which panel owns the cursor.
type Pane uint8

const (
	PaneHex Pane = iota
	PaneAscii
)

// groupSize is the number of bytes between extra gaps in the hex panel.
const groupSize = 4

// Layout is the computed geometry of the data area.
type Layout struct {
	Columns   int // bytes per row
	AddrWidth int // offset column width in hex digits
	HexX      int // first hex byte cell
	AsciiX    int // first text cell, -1 when the text panel is hidden
	Rows      int // visible data rows
}

// ComputeLayout fits the panels into a width-by-rows area. wantCols forces
// the bytes-per-row when positive; otherwise the widest multiple of four
// that fits is used.
func ComputeLayout(width, rows int, size int64, wantCols int, ascii bool) Layout {
	addrWidth := 8
	for addrWidth < 16 && size > int64(1)<<(4*addrWidth) {
		addrWidth += 4
	}

	fits := func(cols int) bool {
		w := addrWidth + 2 + cols*3 + (cols/groupSize - 1)
		if ascii {
			w += 2 + cols
		}
		return w <= width
	}

	cols := wantCols
	if cols <= 0 {
		cols = groupSize
		for fits(cols + groupSize) {
			cols += groupSize
		}
	}

	lay := Layout{
		Columns:   cols,
		AddrWidth: addrWidth,
		HexX:      addrWidth + 2,
		AsciiX:    -1,
		Rows:      rows,
	}
	if ascii {
		lay.AsciiX = lay.HexX + cols*3 + (cols/groupSize - 1) + 2
	}
	return lay
}

// HexCellX returns the x of the byte at column idx in the hex panel.
func (l Layout) HexCellX(idx int) int {
	return l.HexX + idx*3 + idx/groupSize
}

// AsciiCellX returns the x of the byte at column idx in the text panel.
func (l Layout) AsciiCellX(idx int) int {
	return l.AsciiX + idx
}

// CursorCell returns the screen cell of the cursor offset, given the view
// top offset and the data area's first row.
func (l Layout) CursorCell(top, cursor int64, y0 int, pane Pane) (x, y int, ok bool) {
	if cursor < top {
		return 0, 0, false
	}
	rel := cursor - top
	row := int(rel / int64(l.Columns))
	if row >= l.Rows {
		return 0, 0, false
	}
	idx := int(rel % int64(l.Columns))
	if pane == PaneAscii && l.AsciiX >= 0 {
		return l.AsciiCellX(idx), y0 + row, true
	}
	return l.HexCellX(idx), y0 + row, true
}

// EnsureVisible scrolls the document's view top, row-aligned, so the
// cursor lands inside the data area.
func EnsureVisible(doc *session.Document, l Layout) {
	cols := int64(l.Columns)
	top := doc.ViewTop() - doc.ViewTop()%cols
	cursorRow := doc.Cursor() / cols
	topRow := top / cols

	switch {
	case cursorRow < topRow:
		topRow = cursorRow
	case cursorRow >= topRow+int64(l.Rows):
		topRow = cursorRow - int64(l.Rows) + 1
	}
	doc.SetViewTop(topRow * cols)
}

// HexView draws the data rows of one document.
type HexView struct {
	theme Theme
}

// NewHexView creates a view drawing with the given theme.
func NewHexView(theme Theme) *HexView {
	return &HexView{theme: theme}
}

// Render draws l.Rows rows starting at screen row y0, reading from the
// document's view top. dm and diffCol add diff-class backgrounds when dm
// is non-nil.
func (v *HexView) Render(b backend.Backend, doc *session.Document, l Layout, y0 int, dm *diff.Map, diffCol int) {
	eng := doc.Engine()
	size := eng.Size()
	top := doc.ViewTop()
	width, _ := b.Size()

	for row := 0; row < l.Rows; row++ {
		y := y0 + row
		backend.FillRow(b, 0, width, y, ' ', v.theme.Text)

		off := top + int64(row)*int64(l.Columns)
		if off > size {
			continue
		}

		addr := fmt.Sprintf("%0*x:", l.AddrWidth, off)
		backend.SetString(b, 0, y, addr, v.theme.Address)

		n := size - off
		if n > int64(l.Columns) {
			n = int64(l.Columns)
		}
		if n <= 0 {
			continue
		}
		data, changed, err := eng.ReadState(engine.ByteOffset(off), engine.ByteOffset(n))
		if err != nil {
			continue
		}

		for i, c := range data {
			byteOff := off + int64(i)
			style := v.theme.Text
			if changed[i] {
				style = v.theme.Changed
			}
			if dm != nil {
				switch dm.ClassAt(diffCol, byteOff) {
				case diff.Differ:
					style.Bg = v.theme.DiffDiffer.Bg
				case diff.Missing:
					style.Bg = v.theme.DiffMissing.Bg
				}
			}

			hex := fmt.Sprintf("%02x", c)
			backend.SetString(b, l.HexCellX(i), y, hex, style)

			if l.AsciiX >= 0 {
				r := rune(c)
				if c < 0x20 || c > 0x7E {
					r = '.'
				}
				b.SetCell(l.AsciiCellX(i), y, backend.Cell{Rune: r, Style: style})
			}
		}
	}
}
