// Package session coordinates the set of open documents: switching,
// cursor movement, saving, shared search state, and diff mode across two
// or more files. The UI layer calls the session; the session calls the
// per-document engines.
package session
