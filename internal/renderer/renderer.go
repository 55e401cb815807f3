package renderer

import (
	"github.com/dshills/hexstorm/internal/config"
	"github.com/dshills/hexstorm/internal/engine/diff"
	"github.com/dshills/hexstorm/internal/renderer/backend"
	"github.com/dshills/hexstorm/internal/session"
)

// View is everything one frame needs.
type View struct {
	Session *session.Session
	Pane    Pane
	// NibbleLow is true while the low nibble of the cursor cell is
	// pending, shifting the hardware cursor one cell right.
	NibbleLow bool
	// Prompt replaces the key bar while active.
	Prompt  *Prompt
	Message string
	IsError bool
	// DiffMap adds diff-class backgrounds when non-nil.
	DiffMap *diff.Map
}

// Renderer draws full frames.
type Renderer struct {
	theme  Theme
	cfg    config.ViewConfig
	status *StatusLine
	hex    *HexView
	keybar *KeyBar
}

// New creates a renderer for the given view configuration.
func New(cfg config.ViewConfig) *Renderer {
	theme := ThemeByName(cfg.Theme)
	return &Renderer{
		theme:  theme,
		cfg:    cfg,
		status: NewStatusLine(theme),
		hex:    NewHexView(theme),
		keybar: NewKeyBar(theme),
	}
}

// Theme returns the active theme.
func (r *Renderer) Theme() Theme { return r.theme }

// Layout computes the data-area geometry for the current terminal size
// and active document.
func (r *Renderer) Layout(b backend.Backend) Layout {
	width, height := b.Size()
	rows := height
	if r.cfg.Statusline {
		rows--
	}
	if r.cfg.Keybar {
		rows--
	}
	if rows < 1 {
		rows = 1
	}
	var size int64
	return ComputeLayout(width, rows, size, r.cfg.Columns, r.cfg.Ascii)
}

// Draw renders one frame and positions the hardware cursor.
func (r *Renderer) Draw(b backend.Backend, v View) {
	width, height := b.Size()
	b.Clear()

	dataTop := 0
	if r.cfg.Statusline {
		r.status.Render(b, v.Session, 0, v.Message, v.IsError)
		dataTop = 1
	}

	bottomRows := 0
	if r.cfg.Keybar || v.Prompt != nil {
		bottomRows = 1
	}
	dataRows := height - dataTop - bottomRows
	if dataRows < 1 {
		dataRows = 1
	}

	doc := v.Session.Active()
	var lay Layout
	if doc != nil {
		lay = ComputeLayout(width, dataRows, doc.Engine().Size(), r.cfg.Columns, r.cfg.Ascii)
		EnsureVisible(doc, lay)
		diffCol := 0
		if v.DiffMap != nil {
			diffCol = v.Session.DiffIndex(doc)
		}
		r.hex.Render(b, doc, lay, dataTop, v.DiffMap, diffCol)
	}

	if v.Prompt != nil {
		cx := v.Prompt.Render(b, height-1, r.theme)
		b.ShowCursor(cx, height-1)
		b.Show()
		return
	}
	if r.cfg.Keybar {
		r.keybar.Render(b, height-1)
	}

	if doc != nil {
		if x, y, ok := lay.CursorCell(doc.ViewTop(), doc.Cursor(), dataTop, v.Pane); ok {
			if v.Pane == PaneHex && v.NibbleLow {
				x++
			}
			b.ShowCursor(x, y)
		} else {
			b.HideCursor()
		}
	} else {
		b.HideCursor()
	}
	b.Show()
}
