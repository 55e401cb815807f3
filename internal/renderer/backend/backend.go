// Package backend abstracts the terminal so the renderer and the tests
// never touch tcell directly.
package backend

// Color is a 24-bit color. The zero value is the terminal default.
type Color struct {
	R, G, B uint8
	Valid   bool
}

// RGB creates a concrete color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Valid: true}
}

// Attr is a bitmask of text attributes.
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrDim
	AttrUnderline
	AttrReverse
)

// Style is the visual state of one cell.
type Style struct {
	Fg   Color
	Bg   Color
	Attr Attr
}

// Bold returns the style with bold added.
func (s Style) Bold() Style { s.Attr |= AttrBold; return s }

// Dim returns the style with dim added.
func (s Style) Dim() Style { s.Attr |= AttrDim; return s }

// Reverse returns the style with reverse video added.
func (s Style) Reverse() Style { s.Attr |= AttrReverse; return s }

// Cell is one terminal cell.
type Cell struct {
	Rune  rune
	Style Style
}

// EventType identifies a terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
)

// Event is one terminal event. For EventKey either Key names a special
// key or Key is KeyRune and Rune holds the character.
type Event struct {
	Type          EventType
	Key           Key
	Rune          rune
	Mod           ModMask
	Width, Height int
}

// Key names a special key.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyCtrlA
	KeyCtrlC
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ
)

// ModMask is the modifier key state of an event.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
)

// Has reports whether the mask contains mod.
func (m ModMask) Has(mod ModMask) bool { return m&mod != 0 }

// Backend is the display surface. Terminal is the real implementation;
// Sim backs the tests.
type Backend interface {
	// Init prepares the surface. Must be called first.
	Init() error

	// Fini restores the terminal state.
	Fini()

	// Size returns the surface dimensions.
	Size() (width, height int)

	// SetCell writes one cell; out-of-bounds writes are ignored.
	SetCell(x, y int, cell Cell)

	// Clear erases the surface with the default style.
	Clear()

	// Show flushes pending writes to the display.
	Show()

	// ShowCursor places and shows the hardware cursor.
	ShowCursor(x, y int)

	// HideCursor hides the hardware cursor.
	HideCursor()

	// PollEvent blocks for the next event.
	PollEvent() Event

	// PostEvent injects a synthetic event into the queue.
	PostEvent(ev Event)

	// Beep rings the terminal bell.
	Beep()

	// Suspend hands the terminal back to the shell.
	Suspend() error

	// Resume reclaims the terminal after Suspend.
	Resume() error
}

// SetString writes a string left to right starting at (x, y), clipped by
// the backend.
func SetString(b Backend, x, y int, s string, style Style) int {
	for _, r := range s {
		b.SetCell(x, y, Cell{Rune: r, Style: style})
		x++
	}
	return x
}

// FillRow writes the same rune across [x0, x1).
func FillRow(b Backend, x0, x1, y int, r rune, style Style) {
	for x := x0; x < x1; x++ {
		b.SetCell(x, y, Cell{Rune: r, Style: style})
	}
}
