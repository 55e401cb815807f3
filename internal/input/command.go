package input

// Command is one editor action.
type Command uint8

const (
	CmdNone Command = iota

	// Session
	CmdQuit
	CmdHelp
	CmdSave
	CmdSaveAs
	CmdNextFile
	CmdPrevFile
	CmdToggleDiff

	// Prompts
	CmdGoto
	CmdFind
	CmdFindNext
	CmdFindPrev
	CmdFill
	CmdInsertBlock

	// History
	CmdUndo
	CmdRedo

	// Editing
	CmdDeleteByte
	CmdBackspace
	CmdCut
	CmdToggleInsert
	CmdTogglePane

	// Movement
	CmdLeft
	CmdRight
	CmdUp
	CmdDown
	CmdPageUp
	CmdPageDown
	CmdLineStart
	CmdLineEnd
	CmdFileStart
	CmdFileEnd

	// CmdRune is raw text entry; the event's rune carries the payload.
	CmdRune
)

var commandNames = map[Command]string{
	CmdNone:         "none",
	CmdQuit:         "quit",
	CmdHelp:         "help",
	CmdSave:         "save",
	CmdSaveAs:       "save-as",
	CmdNextFile:     "next-file",
	CmdPrevFile:     "prev-file",
	CmdToggleDiff:   "toggle-diff",
	CmdGoto:         "goto",
	CmdFind:         "find",
	CmdFindNext:     "find-next",
	CmdFindPrev:     "find-prev",
	CmdFill:         "fill",
	CmdInsertBlock:  "insert-block",
	CmdUndo:         "undo",
	CmdRedo:         "redo",
	CmdDeleteByte:   "delete-byte",
	CmdBackspace:    "backspace",
	CmdCut:          "cut",
	CmdToggleInsert: "toggle-insert",
	CmdTogglePane:   "toggle-pane",
	CmdLeft:         "left",
	CmdRight:        "right",
	CmdUp:           "up",
	CmdDown:         "down",
	CmdPageUp:       "page-up",
	CmdPageDown:     "page-down",
	CmdLineStart:    "line-start",
	CmdLineEnd:      "line-end",
	CmdFileStart:    "file-start",
	CmdFileEnd:      "file-end",
	CmdRune:         "rune",
}

// String returns the command name.
func (c Command) String() string {
	if s, ok := commandNames[c]; ok {
		return s
	}
	return "unknown"
}
