// Package main is the entry point for the hexstorm editor.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/dshills/hexstorm/internal/app"
	"github.com/dshills/hexstorm/internal/config"
	"github.com/dshills/hexstorm/internal/engine"
	"github.com/dshills/hexstorm/internal/engine/diff"
	"github.com/dshills/hexstorm/internal/engine/history"
	"github.com/dshills/hexstorm/internal/engine/search"
	"github.com/dshills/hexstorm/internal/renderer/backend"
	"github.com/dshills/hexstorm/internal/session"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type cliOptions struct {
	configPath string
	logLevel   string
	readOnly   bool
	offset     string
	files      []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfgPath := opts.configPath
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}

	logger, logCloser, err := app.OpenLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if logCloser != nil {
		defer logCloser.Close()
	}
	logger.Info("hexstorm %s starting", version)

	statePath := config.StatePath()
	state, err := config.LoadState(statePath)
	if err != nil {
		logger.Warn("loading state: %v", err)
	}

	sess, err := buildSession(cfg, state, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer sess.CloseAll()

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer term.Fini()

	// SIGINT and SIGTERM land in the event loop as an interrupt event so
	// the dirty-document check still applies.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		for range signals {
			term.PostEvent(backend.Event{Type: backend.EventInterrupt})
		}
	}()

	a := app.New(term, sess, cfg, app.WithLogger(logger))
	if err := a.Run(context.Background()); err != nil {
		term.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	saveState(statePath, &state, sess, logger)
	logger.Info("hexstorm stopped")
	return 0
}

// buildSession opens the command-line files, restoring each file's last
// cursor position and the initial goto offset when given.
func buildSession(cfg config.Config, state config.State, opts cliOptions) (*session.Session, error) {
	engOpts := []engine.Option{
		engine.WithMaxUndoEntries(cfg.Editor.MaxUndo),
		engine.WithCoalescing(history.ParsePolicy(cfg.Editor.Coalesce)),
	}
	if opts.readOnly {
		engOpts = append(engOpts, engine.WithReadOnly(true))
	}

	diffOpts := diffOptions(cfg.Diff)
	sess := session.New(
		session.WithEngineOptions(engOpts...),
		session.WithDiffOptions(diffOpts),
	)

	for _, path := range opts.files {
		doc, err := sess.Open(path)
		if err != nil {
			sess.CloseAll()
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		if cur, ok := state.FilePosition(path); ok {
			doc.MoveCursor(cur)
		}
	}
	if sess.Count() == 0 {
		sess.OpenUntitled()
	}
	sess.Activate(0)

	sess.SetLastGoto(state.LastGoto)
	if state.LastSearch != "" {
		if pattern, err := search.ParseHex(state.LastSearch); err == nil && len(pattern) > 0 {
			dir := search.Forward
			if state.LastSearchDir == "backward" {
				dir = search.Backward
			}
			sess.SetLastSearch(pattern, dir)
		}
	}

	if opts.offset != "" {
		off, err := parseStartOffset(opts.offset)
		if err != nil {
			sess.CloseAll()
			return nil, err
		}
		if doc := sess.Active(); doc != nil {
			doc.MoveCursor(off)
			sess.SetLastGoto(off)
		}
	}

	return sess, nil
}

// diffOptions maps the diff configuration onto the engine's defaults.
func diffOptions(cfg config.DiffConfig) diff.Options {
	opts := diff.DefaultOptions()
	opts.Strategy = diff.ParseStrategy(cfg.Strategy)
	if cfg.Lookahead > 0 {
		opts.Lookahead = cfg.Lookahead
	}
	if cfg.SyncLen > 0 {
		opts.SyncLen = cfg.SyncLen
	}
	return opts
}

// parseStartOffset reads the -offset flag: hex by default, decimal with
// a trailing dot.
func parseStartOffset(s string) (int64, error) {
	base := 16
	if rest, ok := strings.CutSuffix(s, "."); ok {
		s, base = rest, 10
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	n, err := strconv.ParseUint(s, base, 63)
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q", s)
	}
	return int64(n), nil
}

func saveState(path string, state *config.State, sess *session.Session, logger *app.Logger) {
	if path == "" {
		return
	}
	for _, doc := range sess.Documents() {
		if doc.Path() != "" {
			state.RememberFile(doc.Path(), doc.Cursor())
		}
	}
	state.LastGoto = sess.LastGoto()
	pattern, dir := sess.LastSearch()
	state.LastSearch = search.FormatHex(pattern)
	if dir == search.Backward {
		state.LastSearchDir = "backward"
	} else {
		state.LastSearchDir = "forward"
	}
	if err := config.SaveState(path, *state); err != nil {
		logger.Warn("saving state: %v", err)
	}
}

func parseFlags() cliOptions {
	var opts cliOptions
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.readOnly, "readonly", false, "Open files in read-only mode")
	flag.BoolVar(&opts.readOnly, "R", false, "Open files in read-only mode (shorthand)")
	flag.StringVar(&opts.offset, "offset", "", "Initial cursor offset (hex, or decimal with a trailing dot)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Hexstorm - terminal hex editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: hexstorm [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  hexstorm                    Open an empty buffer\n")
		fmt.Fprintf(os.Stderr, "  hexstorm disk.img           Open a file\n")
		fmt.Fprintf(os.Stderr, "  hexstorm -offset 1f0 a.bin  Open at offset 0x1f0\n")
		fmt.Fprintf(os.Stderr, "  hexstorm a.bin b.bin        Open two files (F4 diffs them)\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Hexstorm %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.logLevel != "" {
		switch opts.logLevel {
		case "debug", "info", "warn", "error", "off":
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q\n", opts.logLevel)
			os.Exit(1)
		}
	}

	opts.files = flag.Args()
	return opts
}
