package app

import (
	"context"
	"errors"

	"github.com/dshills/hexstorm/internal/engine"
	"github.com/dshills/hexstorm/internal/input"
	"github.com/dshills/hexstorm/internal/renderer"
	"github.com/dshills/hexstorm/internal/renderer/backend"
	"github.com/dshills/hexstorm/internal/session"
)

func (a *App) dispatch(ctx context.Context, cmd input.Command, ev backend.Event) error {
	doc := a.sess.Active()

	switch cmd {
	case input.CmdNone:
		return nil

	case input.CmdQuit:
		return a.requestQuit()

	case input.CmdHelp:
		a.setMessage("F2 save  F4 diff  F5 goto  F7 find  F8 insert  F9 cut  F10 quit")
		return nil

	case input.CmdSave:
		a.save()
		return nil

	case input.CmdSaveAs:
		if doc == nil {
			return nil
		}
		a.openPrompt(promptSaveAs, "save as:", doc.Path())
		return nil

	case input.CmdNextFile:
		a.commitNibble()
		a.sess.Next()
		return nil

	case input.CmdPrevFile:
		a.commitNibble()
		a.sess.Prev()
		return nil

	case input.CmdToggleDiff:
		a.toggleDiff()
		return nil

	case input.CmdGoto:
		initial := ""
		if off := a.sess.LastGoto(); off > 0 {
			initial = formatOffset(off)
		}
		a.openPrompt(promptGoto, "goto:", initial)
		return nil

	case input.CmdFind:
		pattern, _ := a.sess.LastSearch()
		a.openPrompt(promptFind, "find:", formatPattern(pattern))
		return nil

	case input.CmdFindNext:
		a.findAgain(ctx, false)
		return nil

	case input.CmdFindPrev:
		a.findAgain(ctx, true)
		return nil

	case input.CmdFill:
		if doc == nil {
			return nil
		}
		a.openPrompt(promptFillLen, "fill length:", "")
		return nil

	case input.CmdInsertBlock:
		if doc == nil {
			return nil
		}
		a.openPrompt(promptInsertLen, "insert bytes:", "")
		return nil

	case input.CmdCut:
		if doc == nil {
			return nil
		}
		a.openPrompt(promptCutLen, "cut bytes:", "")
		return nil

	case input.CmdUndo:
		a.undo()
		return nil

	case input.CmdRedo:
		a.redo()
		return nil

	case input.CmdDeleteByte:
		a.deleteAt(doc, 0)
		return nil

	case input.CmdBackspace:
		a.backspace(doc)
		return nil

	case input.CmdToggleInsert:
		a.commitNibble()
		a.insert = !a.insert
		if a.insert {
			a.setMessage("insert mode")
		} else {
			a.setMessage("overwrite mode")
		}
		return nil

	case input.CmdTogglePane:
		a.commitNibble()
		if a.pane == renderer.PaneHex {
			a.pane = renderer.PaneAscii
		} else {
			a.pane = renderer.PaneHex
		}
		return nil

	case input.CmdRune:
		a.typeRune(doc, ev.Rune)
		return nil

	default:
		a.move(doc, cmd)
		return nil
	}
}

// move applies a cursor movement command. Any movement commits a pending
// nibble first so a half-typed byte keeps its high digit.
func (a *App) move(doc *session.Document, cmd input.Command) {
	if doc == nil {
		return
	}
	a.commitNibble()

	lay := a.layout()
	cols := int64(lay.Columns)
	page := cols * int64(lay.Rows)
	cur := doc.Cursor()
	size := doc.Engine().Size()

	switch cmd {
	case input.CmdLeft:
		doc.MoveCursor(cur - 1)
	case input.CmdRight:
		doc.MoveCursor(cur + 1)
	case input.CmdUp:
		doc.MoveCursor(cur - cols)
	case input.CmdDown:
		doc.MoveCursor(cur + cols)
	case input.CmdPageUp:
		doc.MoveCursor(cur - page)
	case input.CmdPageDown:
		doc.MoveCursor(cur + page)
	case input.CmdLineStart:
		doc.MoveCursor(cur - cur%cols)
	case input.CmdLineEnd:
		end := cur - cur%cols + cols - 1
		if end > size {
			end = size
		}
		doc.MoveCursor(end)
	case input.CmdFileStart:
		doc.MoveCursor(0)
	case input.CmdFileEnd:
		doc.MoveCursor(size)
	}
}

func (a *App) save() {
	doc := a.sess.Active()
	if doc == nil {
		return
	}
	a.commitNibble()
	if doc.Engine().ExternalChange() && !a.saveArmed {
		a.saveArmed = true
		a.setError("file changed on disk, save again to overwrite")
		return
	}
	a.saveArmed = false
	if err := a.sess.SaveActive(); err != nil {
		if errors.Is(err, engine.ErrNoPath) {
			a.openPrompt(promptSaveAs, "save as:", "")
			return
		}
		a.setError("save: %v", err)
		return
	}
	a.log.Info("saved %s (%d bytes)", doc.Path(), doc.Engine().Size())
	a.setMessage("saved %s", doc.Title())
}

func (a *App) toggleDiff() {
	if a.sess.DiffEnabled() {
		a.sess.DisableDiff()
		a.setMessage("diff off")
		return
	}
	if err := a.sess.EnableDiff(); err != nil {
		a.setError("diff: %v", err)
		return
	}
	a.setMessage("diff on, %d files", a.sess.Count())
}

func (a *App) undo() {
	doc := a.sess.Active()
	if doc == nil {
		return
	}
	a.commitNibble()
	rng, err := doc.Engine().Undo()
	if err != nil {
		a.setError("nothing to undo")
		return
	}
	doc.MoveCursor(int64(rng.Start))
}

func (a *App) redo() {
	doc := a.sess.Active()
	if doc == nil {
		return
	}
	a.commitNibble()
	rng, err := doc.Engine().Redo()
	if err != nil {
		a.setError("nothing to redo")
		return
	}
	doc.MoveCursor(int64(rng.Start))
}

func (a *App) findAgain(ctx context.Context, reverse bool) {
	var (
		off int64
		err error
	)
	if reverse {
		off, err = a.sess.FindPrev(ctx)
	} else {
		off, err = a.sess.FindNext(ctx)
	}
	a.reportFind(off, err)
}

func (a *App) reportFind(off int64, err error) {
	switch {
	case err == nil:
		a.setMessage("found at %s", formatOffset(off))
	case errors.Is(err, engine.ErrNotFound):
		a.setError("sequence not found")
	case errors.Is(err, session.ErrNoSearch):
		a.setError("no previous search")
	default:
		a.setError("find: %v", err)
	}
}
