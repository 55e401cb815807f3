package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/hexstorm/internal/engine"
	"github.com/dshills/hexstorm/internal/engine/search"
	"github.com/dshills/hexstorm/internal/renderer"
	"github.com/dshills/hexstorm/internal/renderer/backend"
)

type promptKind int

const (
	promptGoto promptKind = iota
	promptFind
	promptFillLen
	promptFillPat
	promptSaveAs
	promptInsertLen
	promptInsertPat
	promptCutLen
)

// promptState is one active bottom-row prompt. Fill and insert run as two
// chained prompts; count carries the answer of the first into the second.
type promptState struct {
	kind  promptKind
	ed    *renderer.Prompt
	count int64
}

func (a *App) openPrompt(kind promptKind, label, initial string) {
	a.commitNibble()
	a.prompt = &promptState{kind: kind, ed: renderer.NewPrompt(label, initial)}
}

func (a *App) handlePromptKey(ctx context.Context, ev backend.Event) {
	p := a.prompt
	done, cancelled := p.ed.HandleKey(ev)
	if cancelled {
		a.prompt = nil
		return
	}
	if !done {
		return
	}
	a.prompt = nil
	a.clearMessage()
	a.submitPrompt(ctx, p)
}

func (a *App) submitPrompt(ctx context.Context, p *promptState) {
	value := strings.TrimSpace(p.ed.Value())
	doc := a.sess.Active()

	switch p.kind {
	case promptGoto:
		// A signed address is relative to the cursor.
		relative := int64(0)
		if rest, ok := strings.CutPrefix(value, "+"); ok {
			value, relative = rest, 1
		} else if rest, ok := strings.CutPrefix(value, "-"); ok {
			value, relative = rest, -1
		}
		off, err := parseOffset(value)
		if err != nil {
			a.setError("goto: %v", err)
			return
		}
		if relative != 0 && doc != nil {
			off = doc.Cursor() + relative*off
			if off < 0 {
				off = 0
			}
		}
		if _, err := a.sess.Goto(off); err != nil {
			a.setError("goto: %v", err)
		}

	case promptFind:
		pattern, err := parsePattern(value)
		if err != nil {
			a.setError("find: %v", err)
			return
		}
		off, err := a.sess.Find(ctx, pattern, search.Forward)
		a.reportFind(off, err)

	case promptFillLen:
		n, err := parseCount(value)
		if err != nil || n <= 0 {
			a.setError("fill: bad length %q", value)
			return
		}
		a.prompt = &promptState{
			kind:  promptFillPat,
			ed:    renderer.NewPrompt("fill pattern:", ""),
			count: n,
		}

	case promptFillPat:
		if doc == nil {
			return
		}
		pattern, err := search.ParseHex(value)
		if err != nil {
			a.setError("fill: %v", err)
			return
		}
		cur := engine.ByteOffset(doc.Cursor())
		if err := doc.Engine().Fill(cur, engine.ByteOffset(p.count), pattern); err != nil {
			a.setError("fill: %v", err)
			return
		}
		a.setMessage("filled %d bytes", p.count)

	case promptSaveAs:
		if value == "" {
			a.setError("save: no file name")
			return
		}
		if err := a.sess.SaveActiveAs(value); err != nil {
			a.setError("save: %v", err)
			return
		}
		a.log.Info("saved %s", value)
		a.setMessage("saved %s", value)

	case promptInsertLen:
		n, err := parseCount(value)
		if err != nil || n <= 0 {
			a.setError("insert: bad count %q", value)
			return
		}
		a.prompt = &promptState{
			kind:  promptInsertPat,
			ed:    renderer.NewPrompt("insert pattern:", ""),
			count: n,
		}

	case promptInsertPat:
		if doc == nil {
			return
		}
		// An empty pattern inserts zero bytes.
		var pattern []byte
		if value != "" {
			var err error
			if pattern, err = search.ParseHex(value); err != nil {
				a.setError("insert: %v", err)
				return
			}
		}
		data := make([]byte, p.count)
		for i := range data {
			if len(pattern) > 0 {
				data[i] = pattern[i%len(pattern)]
			}
		}
		cur := engine.ByteOffset(doc.Cursor())
		if err := doc.Engine().Insert(cur, data); err != nil {
			a.setError("insert: %v", err)
			return
		}
		a.setMessage("inserted %d bytes", p.count)

	case promptCutLen:
		n, err := parseCount(value)
		if err != nil || n <= 0 {
			a.setError("cut: bad count %q", value)
			return
		}
		a.deleteAt(doc, n)
	}
}

// parseOffset reads a byte address. Addresses are hex; a 0x prefix is
// accepted, a trailing dot forces decimal.
func parseOffset(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty address")
	}
	base := 16
	if rest, ok := strings.CutSuffix(s, "."); ok {
		s, base = rest, 10
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	n, err := strconv.ParseUint(s, base, 63)
	if err != nil {
		return 0, fmt.Errorf("bad address %q", s)
	}
	return int64(n), nil
}

// parseCount reads a byte count: decimal by default, hex with 0x.
func parseCount(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 0, 63)
}

// parsePattern reads a search pattern: hex digits, or text when quoted.
func parsePattern(s string) ([]byte, error) {
	if rest, ok := strings.CutPrefix(s, `"`); ok {
		rest = strings.TrimSuffix(rest, `"`)
		if rest == "" {
			return nil, search.ErrPatternEmpty
		}
		return search.FromASCII(rest), nil
	}
	return search.ParseHex(s)
}

func formatOffset(off int64) string {
	return fmt.Sprintf("0x%x", off)
}

func formatPattern(pattern []byte) string {
	return search.FormatHex(pattern)
}
