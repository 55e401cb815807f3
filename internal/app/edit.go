package app

import (
	"github.com/dshills/hexstorm/internal/engine"
	"github.com/dshills/hexstorm/internal/renderer"
	"github.com/dshills/hexstorm/internal/session"
)

// typeRune handles raw text entry in the data area. In the hex pane the
// rune must be a hex digit; two digits build one byte, high nibble first.
// In the ascii pane each printable rune writes one byte.
func (a *App) typeRune(doc *session.Document, r rune) {
	if doc == nil {
		return
	}
	if a.pane == renderer.PaneAscii {
		if r < ' ' || r > '~' {
			a.backend.Beep()
			return
		}
		a.writeByte(doc, byte(r))
		return
	}

	val, ok := hexDigitVal(r)
	if !ok {
		a.backend.Beep()
		return
	}
	eng := doc.Engine()
	cur := engine.ByteOffset(doc.Cursor())

	if a.nibblePending {
		// Second digit fills the low nibble of the byte written by the
		// first digit.
		b, _ := eng.ByteAt(cur)
		if err := eng.Replace(cur, []byte{b&0xF0 | val}); err != nil {
			a.nibblePending = false
			a.setError("edit: %v", err)
			return
		}
		a.nibblePending = false
		doc.MoveCursor(doc.Cursor() + 1)
		return
	}

	// First digit becomes the high nibble. Overwrite keeps the old low
	// nibble visible until the second digit lands.
	var err error
	if a.insert || doc.Cursor() >= eng.Size() {
		err = eng.Insert(cur, []byte{val << 4})
	} else {
		old, _ := eng.ByteAt(cur)
		err = eng.Replace(cur, []byte{val<<4 | old&0x0F})
	}
	if err != nil {
		a.setError("edit: %v", err)
		return
	}
	a.nibblePending = true
}

// writeByte applies one ascii-pane byte at the cursor and advances.
func (a *App) writeByte(doc *session.Document, b byte) {
	eng := doc.Engine()
	cur := engine.ByteOffset(doc.Cursor())

	var err error
	if a.insert || doc.Cursor() >= eng.Size() {
		err = eng.Insert(cur, []byte{b})
	} else {
		err = eng.Replace(cur, []byte{b})
	}
	if err != nil {
		a.setError("edit: %v", err)
		return
	}
	doc.MoveCursor(doc.Cursor() + 1)
}

// commitNibble ends a half-typed byte. The high digit is already in the
// document, so only the pending flag clears.
func (a *App) commitNibble() {
	a.nibblePending = false
}

// deleteAt removes count bytes starting at the cursor. A count of zero
// means one byte.
func (a *App) deleteAt(doc *session.Document, count int64) {
	if doc == nil {
		return
	}
	a.commitNibble()
	if count <= 0 {
		count = 1
	}
	cur := doc.Cursor()
	size := doc.Engine().Size()
	if cur >= size {
		return
	}
	if cur+count > size {
		count = size - cur
	}
	if err := doc.Engine().Delete(engine.ByteOffset(cur), engine.ByteOffset(count)); err != nil {
		a.setError("delete: %v", err)
	}
}

// backspace removes the byte before the cursor in insert mode, or just
// steps left in overwrite mode.
func (a *App) backspace(doc *session.Document) {
	if doc == nil {
		return
	}
	if a.nibblePending {
		// Abandon the half-typed byte. In insert mode that byte only
		// exists because of the first digit, so take it back out.
		a.nibblePending = false
		if a.insert {
			a.deleteAt(doc, 1)
		}
		return
	}
	cur := doc.Cursor()
	if cur == 0 {
		return
	}
	if !a.insert {
		doc.MoveCursor(cur - 1)
		return
	}
	if err := doc.Engine().Delete(engine.ByteOffset(cur-1), 1); err != nil {
		a.setError("delete: %v", err)
		return
	}
	doc.MoveCursor(cur - 1)
}

func hexDigitVal(r rune) (byte, bool) {
	switch {
	case r >= '0' && r <= '9':
		return byte(r - '0'), true
	case r >= 'a' && r <= 'f':
		return byte(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return byte(r-'A') + 10, true
	}
	return 0, false
}
