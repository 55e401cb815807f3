// Package input translates terminal key events into editor commands.
// The bindings follow the classic function-key layout: F2 saves, F5 opens
// the goto prompt, F7 searches, Shift repeats in reverse, F10 quits.
// Anything the keymap does not claim falls through to the app as raw text
// entry for the focused panel.
package input
