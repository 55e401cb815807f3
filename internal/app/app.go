package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/hexstorm/internal/config"
	"github.com/dshills/hexstorm/internal/engine/diff"
	"github.com/dshills/hexstorm/internal/input"
	"github.com/dshills/hexstorm/internal/renderer"
	"github.com/dshills/hexstorm/internal/renderer/backend"
	"github.com/dshills/hexstorm/internal/session"
)

// App is the running editor.
type App struct {
	backend backend.Backend
	sess    *session.Session
	rend    *renderer.Renderer
	keymap  *input.Keymap
	log     *Logger
	cfg     config.Config

	pane renderer.Pane
	// insert shifts typed bytes into the stream instead of overwriting.
	insert bool
	// nibblePending is true after the first hex digit of a byte; the typed
	// high nibble already sits in the document.
	nibblePending bool

	prompt   *promptState
	message  string
	msgError bool

	// quitArmed is set after a quit attempt hit unsaved changes; the next
	// quit discards them.
	quitArmed bool

	// saveArmed is set after a save attempt found the file changed on disk
	// behind the editor; the next save overwrites it.
	saveArmed bool
}

// Option configures an App at construction time.
type Option func(*App)

// WithLogger replaces the default null logger.
func WithLogger(l *Logger) Option {
	return func(a *App) { a.log = l }
}

// WithKeymap replaces the default bindings.
func WithKeymap(km *input.Keymap) Option {
	return func(a *App) { a.keymap = km }
}

// New assembles an editor over an initialized backend and session.
func New(b backend.Backend, sess *session.Session, cfg config.Config, opts ...Option) *App {
	a := &App{
		backend: b,
		sess:    sess,
		rend:    renderer.New(cfg.View),
		keymap:  input.NewKeymap(),
		log:     NullLogger,
		cfg:     cfg,
		pane:    renderer.PaneHex,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Session returns the underlying session, for state persistence on exit.
func (a *App) Session() *session.Session { return a.sess }

// Run drives the event loop until quit. The backend must be initialized;
// the caller owns Init and Fini so a failed startup never leaves the
// terminal in raw mode.
func (a *App) Run(ctx context.Context) error {
	a.log.Info("event loop started, %d document(s)", a.sess.Count())
	for {
		a.draw(ctx)
		ev := a.backend.PollEvent()
		if err := a.handleEvent(ctx, ev); err != nil {
			if errors.Is(err, ErrQuit) {
				a.log.Info("event loop stopped")
				return nil
			}
			return err
		}
	}
}

func (a *App) handleEvent(ctx context.Context, ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		// The next draw picks up the new size.
		return nil
	case backend.EventInterrupt:
		return a.requestQuit()
	case backend.EventKey:
		if a.prompt != nil {
			a.handlePromptKey(ctx, ev)
			return nil
		}
		return a.handleKey(ctx, ev)
	default:
		return nil
	}
}

func (a *App) handleKey(ctx context.Context, ev backend.Event) error {
	cmd := a.keymap.Translate(ev)
	a.clearMessage()
	if cmd != input.CmdQuit {
		a.quitArmed = false
	}
	if cmd != input.CmdSave {
		a.saveArmed = false
	}
	a.log.Debug("command %s", cmd)
	return a.dispatch(ctx, cmd, ev)
}

func (a *App) draw(ctx context.Context) {
	var dm *diff.Map
	if a.sess.DiffEnabled() {
		m, err := a.sess.DiffMap(ctx)
		if err != nil {
			a.setError("diff: %v", err)
		} else {
			dm = m
		}
	}
	var p *renderer.Prompt
	if a.prompt != nil {
		p = a.prompt.ed
	}
	a.rend.Draw(a.backend, renderer.View{
		Session:   a.sess,
		Pane:      a.pane,
		NibbleLow: a.nibblePending,
		Prompt:    p,
		Message:   a.message,
		IsError:   a.msgError,
		DiffMap:   dm,
	})
}

// layout returns the data-area geometry for the current terminal size and
// active document, for cursor movement.
func (a *App) layout() renderer.Layout {
	width, height := a.backend.Size()
	rows := height
	if a.cfg.View.Statusline {
		rows--
	}
	if a.cfg.View.Keybar {
		rows--
	}
	if rows < 1 {
		rows = 1
	}
	var size int64
	if doc := a.sess.Active(); doc != nil {
		size = doc.Engine().Size()
	}
	return renderer.ComputeLayout(width, rows, size, a.cfg.View.Columns, a.cfg.View.Ascii)
}

func (a *App) setMessage(format string, args ...any) {
	a.message = fmt.Sprintf(format, args...)
	a.msgError = false
}

func (a *App) setError(format string, args ...any) {
	a.message = fmt.Sprintf(format, args...)
	a.msgError = true
	a.log.Warn("%s", a.message)
}

func (a *App) clearMessage() {
	a.message = ""
	a.msgError = false
}

func (a *App) requestQuit() error {
	dirty := 0
	for _, doc := range a.sess.Documents() {
		if doc.Dirty() {
			dirty++
		}
	}
	if dirty > 0 && !a.quitArmed {
		a.quitArmed = true
		a.setError("%d unsaved document(s), quit again to discard", dirty)
		return nil
	}
	return ErrQuit
}
