package backend

// Sim is an in-memory backend for tests. It records cells and cursor
// state and feeds events from a buffered queue.
type Sim struct {
	width, height int
	cells         [][]Cell
	cursorX       int
	cursorY       int
	cursorShown   bool
	events        chan Event
	beeps         int
}

// NewSim creates a simulated surface of the given size.
func NewSim(width, height int) *Sim {
	s := &Sim{
		width:  width,
		height: height,
		events: make(chan Event, 64),
	}
	s.alloc()
	return s
}

func (s *Sim) alloc() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{Rune: ' '}
		}
	}
}

func (s *Sim) Init() error { return nil }
func (s *Sim) Fini()       {}

func (s *Sim) Size() (int, int) { return s.width, s.height }

func (s *Sim) SetCell(x, y int, cell Cell) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.cells[y][x] = cell
	}
}

func (s *Sim) Clear() { s.alloc() }

func (s *Sim) Show() {}

func (s *Sim) ShowCursor(x, y int) {
	s.cursorX, s.cursorY = x, y
	s.cursorShown = true
}

func (s *Sim) HideCursor() { s.cursorShown = false }

func (s *Sim) PollEvent() Event { return <-s.events }

func (s *Sim) PostEvent(ev Event) {
	select {
	case s.events <- ev:
	default:
	}
}

func (s *Sim) Beep() { s.beeps++ }

func (s *Sim) Suspend() error { return nil }
func (s *Sim) Resume() error  { return nil }

// CellAt returns the cell at (x, y) for assertions.
func (s *Sim) CellAt(x, y int) Cell {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		return s.cells[y][x]
	}
	return Cell{}
}

// Row returns the runes of row y as a string, for assertions.
func (s *Sim) Row(y int) string {
	if y < 0 || y >= s.height {
		return ""
	}
	runes := make([]rune, s.width)
	for x, c := range s.cells[y] {
		r := c.Rune
		if r == 0 {
			r = ' '
		}
		runes[x] = r
	}
	return string(runes)
}

// Cursor returns the cursor position and visibility.
func (s *Sim) Cursor() (x, y int, shown bool) {
	return s.cursorX, s.cursorY, s.cursorShown
}

// Beeps returns how many times the bell rang.
func (s *Sim) Beeps() int { return s.beeps }

// Resize changes the simulated surface size and posts the resize event.
func (s *Sim) Resize(width, height int) {
	s.width, s.height = width, height
	s.alloc()
	s.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}
