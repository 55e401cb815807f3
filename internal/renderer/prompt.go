package renderer

import (
	"github.com/dshills/hexstorm/internal/renderer/backend"
)

// Prompt is the one-line input editor shown in place of the key bar for
// goto, find, fill, and save-as. It owns its text and cursor; the app
// decides what to do with the submitted value.
type Prompt struct {
	Label string
	value []rune
	pos   int
}

// NewPrompt creates a prompt with an initial value, cursor at the end.
// Seeding the previous answer lets Enter repeat it unchanged.
func NewPrompt(label, initial string) *Prompt {
	v := []rune(initial)
	return &Prompt{Label: label, value: v, pos: len(v)}
}

// Value returns the current text.
func (p *Prompt) Value() string { return string(p.value) }

// HandleKey edits the prompt. done is true on Enter, cancelled on Escape.
func (p *Prompt) HandleKey(ev backend.Event) (done, cancelled bool) {
	switch ev.Key {
	case backend.KeyEnter:
		return true, false
	case backend.KeyEscape:
		return false, true
	case backend.KeyLeft:
		if p.pos > 0 {
			p.pos--
		}
	case backend.KeyRight:
		if p.pos < len(p.value) {
			p.pos++
		}
	case backend.KeyHome:
		p.pos = 0
	case backend.KeyEnd:
		p.pos = len(p.value)
	case backend.KeyBackspace:
		if p.pos > 0 {
			p.value = append(p.value[:p.pos-1], p.value[p.pos:]...)
			p.pos--
		}
	case backend.KeyDelete:
		if p.pos < len(p.value) {
			p.value = append(p.value[:p.pos], p.value[p.pos+1:]...)
		}
	case backend.KeyCtrlU:
		p.value = p.value[:0]
		p.pos = 0
	case backend.KeyRune:
		if ev.Rune >= ' ' {
			p.value = append(p.value[:p.pos], append([]rune{ev.Rune}, p.value[p.pos:]...)...)
			p.pos++
		}
	}
	return false, false
}

// Render draws the prompt on row y and returns the cursor's screen x.
func (p *Prompt) Render(b backend.Backend, y int, theme Theme) int {
	width, _ := b.Size()
	backend.FillRow(b, 0, width, y, ' ', theme.Prompt)
	x := backend.SetString(b, 0, y, p.Label+" ", theme.Prompt)
	backend.SetString(b, x, y, string(p.value), theme.Prompt)
	return x + p.pos
}
