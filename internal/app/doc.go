// Package app wires the session, renderer, and keymap into the running
// editor. It owns the event loop: poll a key, translate it to a command,
// apply it to the active document, draw a frame. Prompts for goto, find,
// fill, and save-as capture input on the bottom row until submitted or
// cancelled.
package app
