package session

import (
	"context"
	"errors"

	"github.com/dshills/hexstorm/internal/engine"
	"github.com/dshills/hexstorm/internal/engine/diff"
	"github.com/dshills/hexstorm/internal/engine/search"
)

// Errors returned by session operations.
var (
	// ErrNoDocument indicates an operation that needs an open document.
	ErrNoDocument = errors.New("no open document")

	// ErrNoSearch indicates find-next before any search was run.
	ErrNoSearch = errors.New("no previous search")

	// ErrDiffNeedsTwo indicates diff mode with fewer than two documents.
	ErrDiffNeedsTwo = errors.New("diff mode needs at least two files")
)

// Session is the set of open documents plus the state shared between
// them: the last search, the last goto target, and diff mode.
type Session struct {
	docs   []*Document
	active int

	engineOpts []engine.Option
	diffOpts   diff.Options

	lastSearch []byte
	lastDir    search.Direction
	lastGoto   int64

	diffSess  *diff.Session
	diffOrder []*Document
}

// Option configures a session at construction time.
type Option func(*Session)

// WithEngineOptions forwards options to every engine the session opens.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(s *Session) { s.engineOpts = opts }
}

// WithDiffOptions tunes diff mode.
func WithDiffOptions(o diff.Options) Option {
	return func(s *Session) { s.diffOpts = o }
}

// New creates an empty session.
func New(opts ...Option) *Session {
	s := &Session{}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Open loads the file at path, appends it, and makes it active.
func (s *Session) Open(path string) (*Document, error) {
	eng, err := engine.Open(path, s.engineOpts...)
	if err != nil {
		return nil, err
	}
	doc := newDocument(eng)
	s.docs = append(s.docs, doc)
	s.active = len(s.docs) - 1
	s.refreshDiff()
	return doc, nil
}

// OpenUntitled appends an empty unnamed document and makes it active.
func (s *Session) OpenUntitled() *Document {
	doc := newDocument(engine.NewEmpty(s.engineOpts...))
	s.docs = append(s.docs, doc)
	s.active = len(s.docs) - 1
	s.refreshDiff()
	return doc
}

// Count returns the number of open documents.
func (s *Session) Count() int { return len(s.docs) }

// Documents returns the open documents in tab order.
func (s *Session) Documents() []*Document { return s.docs }

// Active returns the focused document, nil when the session is empty.
func (s *Session) Active() *Document {
	if len(s.docs) == 0 {
		return nil
	}
	return s.docs[s.active]
}

// ActiveIndex returns the focused document's position in tab order.
func (s *Session) ActiveIndex() int { return s.active }

// Activate focuses the document at index i.
func (s *Session) Activate(i int) {
	if i >= 0 && i < len(s.docs) {
		s.active = i
	}
}

// Next focuses the following document, wrapping.
func (s *Session) Next() {
	if len(s.docs) > 0 {
		s.active = (s.active + 1) % len(s.docs)
	}
}

// Prev focuses the preceding document, wrapping.
func (s *Session) Prev() {
	if len(s.docs) > 0 {
		s.active = (s.active + len(s.docs) - 1) % len(s.docs)
	}
}

// CloseActive closes the focused document and releases its file handle.
func (s *Session) CloseActive() error {
	if len(s.docs) == 0 {
		return ErrNoDocument
	}
	err := s.docs[s.active].eng.Close()
	s.docs = append(s.docs[:s.active], s.docs[s.active+1:]...)
	if s.active >= len(s.docs) && s.active > 0 {
		s.active--
	}
	s.refreshDiff()
	return err
}

// CloseAll closes every document, returning the first error.
func (s *Session) CloseAll() error {
	var first error
	for _, d := range s.docs {
		if err := d.eng.Close(); err != nil && first == nil {
			first = err
		}
	}
	s.docs = nil
	s.active = 0
	s.diffSess = nil
	s.diffOrder = nil
	return first
}

// SaveActive writes the focused document to its own path.
func (s *Session) SaveActive() error {
	if len(s.docs) == 0 {
		return ErrNoDocument
	}
	return s.docs[s.active].eng.Save()
}

// SaveActiveAs writes the focused document to path.
func (s *Session) SaveActiveAs(path string) error {
	if len(s.docs) == 0 {
		return ErrNoDocument
	}
	return s.docs[s.active].eng.SaveAs(path)
}

// SaveAll writes every dirty document, returning the first error but
// attempting the rest regardless.
func (s *Session) SaveAll() error {
	var first error
	for _, d := range s.docs {
		if !d.Dirty() {
			continue
		}
		if err := d.eng.Save(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Goto moves the focused document's cursor and remembers the target for
// the goto dialog's history.
func (s *Session) Goto(offset int64) (int64, error) {
	doc := s.Active()
	if doc == nil {
		return 0, ErrNoDocument
	}
	doc.MoveCursor(offset)
	s.lastGoto = offset
	return doc.Cursor(), nil
}

// LastGoto returns the most recent goto target.
func (s *Session) LastGoto() int64 { return s.lastGoto }

// SetLastGoto seeds the goto history, typically from the persisted state.
func (s *Session) SetLastGoto(off int64) { s.lastGoto = off }

// Find searches the focused document from the byte after the cursor
// (before it for Backward), wrapping around. On a hit the cursor moves to
// the match and the pattern is remembered for FindNext.
func (s *Session) Find(ctx context.Context, pattern []byte, dir search.Direction) (int64, error) {
	doc := s.Active()
	if doc == nil {
		return 0, ErrNoDocument
	}
	if len(pattern) == 0 {
		return 0, engine.ErrPatternEmpty
	}

	start := doc.Cursor() + 1
	if dir == search.Backward {
		start = doc.Cursor() - 1
	}
	off, err := doc.eng.Find(ctx, pattern, start, dir, true)
	if err != nil {
		return 0, err
	}

	s.lastSearch = append([]byte(nil), pattern...)
	s.lastDir = dir
	doc.MoveCursor(off)
	return off, nil
}

// FindNext repeats the previous search in its original direction.
func (s *Session) FindNext(ctx context.Context) (int64, error) {
	if len(s.lastSearch) == 0 {
		return 0, ErrNoSearch
	}
	return s.Find(ctx, s.lastSearch, s.lastDir)
}

// FindPrev repeats the previous search in the opposite direction.
func (s *Session) FindPrev(ctx context.Context) (int64, error) {
	if len(s.lastSearch) == 0 {
		return 0, ErrNoSearch
	}
	dir := search.Backward
	if s.lastDir == search.Backward {
		dir = search.Forward
	}
	return s.Find(ctx, s.lastSearch, dir)
}

// LastSearch returns the remembered pattern and direction.
func (s *Session) LastSearch() ([]byte, search.Direction) {
	return s.lastSearch, s.lastDir
}

// SetLastSearch seeds the search history, typically from the persisted
// state.
func (s *Session) SetLastSearch(pattern []byte, dir search.Direction) {
	s.lastSearch = append([]byte(nil), pattern...)
	s.lastDir = dir
}

// EnableDiff turns on diff mode over every open document, with the
// focused document as the reference.
func (s *Session) EnableDiff() error {
	if len(s.docs) < 2 {
		return ErrDiffNeedsTwo
	}
	s.diffSess = s.newDiffSession()
	return nil
}

// DisableDiff turns diff mode off.
func (s *Session) DisableDiff() {
	s.diffSess = nil
	s.diffOrder = nil
}

// DiffEnabled reports whether diff mode is on.
func (s *Session) DiffEnabled() bool { return s.diffSess != nil }

// DiffMap returns the current comparison, recomputed only when some
// document changed.
func (s *Session) DiffMap(ctx context.Context) (*diff.Map, error) {
	if s.diffSess == nil {
		return nil, ErrDiffNeedsTwo
	}
	return s.diffSess.Map(ctx)
}

// DiffIndex maps a document to its column in the diff map. The reference
// (the document focused when diff mode was enabled) is column zero.
// Returns -1 when the document is not part of the comparison.
func (s *Session) DiffIndex(doc *Document) int {
	for i, d := range s.diffOrder {
		if d == doc {
			return i
		}
	}
	return -1
}

func (s *Session) newDiffSession() *diff.Session {
	s.diffOrder = s.diffDocs()
	sources := make([]diff.Revisioned, 0, len(s.diffOrder))
	for _, d := range s.diffOrder {
		sources = append(sources, d.eng.Buffer())
	}
	return diff.NewSession(sources, s.diffOpts)
}

// diffDocs returns the documents in diff order: active first, then the
// rest in tab order.
func (s *Session) diffDocs() []*Document {
	if len(s.docs) == 0 {
		return nil
	}
	out := make([]*Document, 0, len(s.docs))
	out = append(out, s.docs[s.active])
	for i, d := range s.docs {
		if i != s.active {
			out = append(out, d)
		}
	}
	return out
}

// refreshDiff rebuilds or drops the diff session after the document set
// changes.
func (s *Session) refreshDiff() {
	if s.diffSess == nil {
		return
	}
	if len(s.docs) < 2 {
		s.diffSess = nil
		s.diffOrder = nil
		return
	}
	s.diffSess = s.newDiffSession()
}
