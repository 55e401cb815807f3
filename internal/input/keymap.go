package input

import (
	"github.com/dshills/hexstorm/internal/renderer/backend"
)

// chord is one bindable key plus its modifier state.
type chord struct {
	key backend.Key
	mod backend.ModMask
}

// Keymap resolves key events to commands.
type Keymap struct {
	bindings map[chord]Command
}

// NewKeymap returns the default bindings.
func NewKeymap() *Keymap {
	k := &Keymap{bindings: make(map[chord]Command)}

	bind := func(key backend.Key, mod backend.ModMask, cmd Command) {
		k.bindings[chord{key: key, mod: mod}] = cmd
	}

	bind(backend.KeyF1, backend.ModNone, CmdHelp)
	bind(backend.KeyF2, backend.ModNone, CmdSave)
	bind(backend.KeyF2, backend.ModShift, CmdSaveAs)
	bind(backend.KeyF3, backend.ModNone, CmdFill)
	bind(backend.KeyF4, backend.ModNone, CmdToggleDiff)
	bind(backend.KeyF5, backend.ModNone, CmdGoto)
	bind(backend.KeyF6, backend.ModNone, CmdNextFile)
	bind(backend.KeyF6, backend.ModShift, CmdPrevFile)
	bind(backend.KeyF7, backend.ModNone, CmdFind)
	bind(backend.KeyF7, backend.ModShift, CmdFindNext)
	bind(backend.KeyF7, backend.ModAlt, CmdFindPrev)
	bind(backend.KeyF8, backend.ModNone, CmdInsertBlock)
	bind(backend.KeyF9, backend.ModNone, CmdCut)
	bind(backend.KeyF10, backend.ModNone, CmdQuit)

	bind(backend.KeyCtrlQ, backend.ModCtrl, CmdQuit)
	bind(backend.KeyCtrlS, backend.ModCtrl, CmdSave)
	bind(backend.KeyCtrlZ, backend.ModCtrl, CmdUndo)
	bind(backend.KeyCtrlY, backend.ModCtrl, CmdRedo)
	bind(backend.KeyCtrlR, backend.ModCtrl, CmdRedo)
	bind(backend.KeyCtrlF, backend.ModCtrl, CmdFind)
	bind(backend.KeyCtrlG, backend.ModCtrl, CmdGoto)

	bind(backend.KeyTab, backend.ModNone, CmdTogglePane)
	bind(backend.KeyBacktab, backend.ModShift, CmdTogglePane)
	bind(backend.KeyInsert, backend.ModNone, CmdToggleInsert)
	bind(backend.KeyDelete, backend.ModNone, CmdDeleteByte)
	bind(backend.KeyBackspace, backend.ModNone, CmdBackspace)

	bind(backend.KeyLeft, backend.ModNone, CmdLeft)
	bind(backend.KeyRight, backend.ModNone, CmdRight)
	bind(backend.KeyUp, backend.ModNone, CmdUp)
	bind(backend.KeyDown, backend.ModNone, CmdDown)
	bind(backend.KeyPageUp, backend.ModNone, CmdPageUp)
	bind(backend.KeyPageDown, backend.ModNone, CmdPageDown)
	bind(backend.KeyHome, backend.ModNone, CmdLineStart)
	bind(backend.KeyEnd, backend.ModNone, CmdLineEnd)
	bind(backend.KeyHome, backend.ModCtrl, CmdFileStart)
	bind(backend.KeyEnd, backend.ModCtrl, CmdFileEnd)

	return k
}

// Translate maps a key event to a command. Unbound special keys map to
// CmdNone; plain runes map to CmdRune for the app's text entry.
func (k *Keymap) Translate(ev backend.Event) Command {
	if ev.Type != backend.EventKey {
		return CmdNone
	}
	if cmd, ok := k.bindings[chord{key: ev.Key, mod: ev.Mod}]; ok {
		return cmd
	}
	// Ctrl keys arrive with the Ctrl modifier set; retry without it so a
	// binding declared as {KeyCtrlZ, ModCtrl} and a terminal reporting
	// ModNone agree.
	if ev.Mod.Has(backend.ModCtrl) {
		if cmd, ok := k.bindings[chord{key: ev.Key, mod: ev.Mod &^ backend.ModCtrl}]; ok {
			return cmd
		}
	} else if cmd, ok := k.bindings[chord{key: ev.Key, mod: ev.Mod | backend.ModCtrl}]; ok {
		return cmd
	}
	if ev.Key == backend.KeyRune && ev.Mod&(backend.ModCtrl|backend.ModAlt) == 0 {
		return CmdRune
	}
	return CmdNone
}

// Bind overrides or adds a binding.
func (k *Keymap) Bind(key backend.Key, mod backend.ModMask, cmd Command) {
	k.bindings[chord{key: key, mod: mod}] = cmd
}
