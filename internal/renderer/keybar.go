package renderer

import (
	"github.com/dshills/hexstorm/internal/renderer/backend"
)

// keyBarItems are the function key hints on the bottom row, in key order.
var keyBarItems = []struct {
	num   string
	label string
}{
	{"1", "Help"},
	{"2", "Save"},
	{"3", "Fill"},
	{"4", "Diff"},
	{"5", "Goto"},
	{"6", "File"},
	{"7", "Find"},
	{"8", "Ins"},
	{"9", "Cut"},
	{"10", "Quit"},
}

// KeyBar draws the function-key hint bar.
type KeyBar struct {
	theme Theme
}

// NewKeyBar creates a key bar drawing with the given theme.
func NewKeyBar(theme Theme) *KeyBar {
	return &KeyBar{theme: theme}
}

// Render draws the bar on row y, evenly spreading the hints.
func (k *KeyBar) Render(b backend.Backend, y int) {
	width, _ := b.Size()
	backend.FillRow(b, 0, width, y, ' ', backend.Style{})

	slot := width / len(keyBarItems)
	if slot < 4 {
		slot = 4
	}
	x := 0
	for _, item := range keyBarItems {
		if x+len(item.num)+len(item.label) > width {
			break
		}
		nx := backend.SetString(b, x, y, item.num, k.theme.KeyNumber)
		backend.SetString(b, nx, y, item.label, k.theme.KeyLabel)
		x += slot
	}
}
