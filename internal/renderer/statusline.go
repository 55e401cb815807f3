package renderer

import (
	"fmt"
	"strings"

	"github.com/dshills/hexstorm/internal/engine"
	"github.com/dshills/hexstorm/internal/renderer/backend"
	"github.com/dshills/hexstorm/internal/session"
)

// StatusLine draws the top row: document name and flags on the left,
// cursor position in the middle, the byte under the cursor on the right.
// A transient message replaces the position and value.
type StatusLine struct {
	theme Theme
}

// NewStatusLine creates a status line drawing with the given theme.
func NewStatusLine(theme Theme) *StatusLine {
	return &StatusLine{theme: theme}
}

// Render draws the status line on row y.
func (s *StatusLine) Render(b backend.Backend, sess *session.Session, y int, message string, isError bool) {
	width, _ := b.Size()
	backend.FillRow(b, 0, width, y, ' ', s.theme.Status)

	doc := sess.Active()
	if doc == nil {
		backend.SetString(b, 1, y, "hexstorm: no file", s.theme.Status)
		return
	}

	var left strings.Builder
	if sess.Count() > 1 {
		fmt.Fprintf(&left, "[%d/%d] ", sess.ActiveIndex()+1, sess.Count())
	}
	left.WriteString(doc.Title())
	if doc.Engine().ReadOnly() {
		left.WriteString(" [ro]")
	}
	if doc.Dirty() {
		left.WriteString(" *")
	}
	if sess.DiffEnabled() {
		left.WriteString(" [diff]")
	}
	x := backend.SetString(b, 1, y, left.String(), s.theme.Status)

	if message != "" {
		style := s.theme.Status
		if isError {
			style = s.theme.StatusWarn
		}
		backend.SetString(b, x+2, y, message, style)
		return
	}

	eng := doc.Engine()
	pos := fmt.Sprintf("0x%08x / 0x%x", doc.Cursor(), eng.Size())
	if size := eng.Size(); size > 0 {
		pct := doc.Cursor() * 100 / size
		pos += fmt.Sprintf(" (%d%%)", pct)
	}
	backend.SetString(b, x+2, y, pos, s.theme.Status)

	if c, ok := eng.ByteAt(engine.ByteOffset(doc.Cursor())); ok {
		val := fmt.Sprintf("0x%02x %3d 0%03o", c, c, c)
		if len(val) < width {
			backend.SetString(b, width-len(val)-1, y, val, s.theme.Status)
		}
	}
}
