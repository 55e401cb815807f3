package app

import "errors"

// ErrQuit signals a clean exit from the event loop. Run swallows it and
// returns nil; anything else propagates.
var ErrQuit = errors.New("quit requested")
