// Package config loads editor settings and the persisted session state.
//
// Settings live in a TOML file under the user config directory and are
// overridden by HEXSTORM_-prefixed environment variables, so a missing or
// partial file always yields a usable configuration:
//
//	# ~/.config/hexstorm/config.toml
//	[editor]
//	maxUndo = 1000
//	coalesce = "adjacent"
//
//	[view]
//	columns = 16
//	theme = "dark"
//
//	[diff]
//	strategy = "resync"
//
// The session state (last goto target, last search, per-file cursor
// positions) is a separate TOML file under the user data directory,
// written on exit and read on start.
package config
