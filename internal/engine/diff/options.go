package diff

// Strategy selects the pairwise alignment algorithm.
type Strategy uint8

const (
	// StrategyResync is streaming lockstep comparison with bounded
	// lookahead resynchronization. Works at any file size.
	StrategyResync Strategy = iota

	// StrategyMyers computes a minimal edit script. Used when both inputs
	// fit in memory and the edit distance stays under the cap; otherwise
	// the engine silently falls back to StrategyResync.
	StrategyMyers
)

// String returns the strategy name.
func (s Strategy) String() string {
	if s == StrategyMyers {
		return "myers"
	}
	return "resync"
}

// ParseStrategy maps a config string to a Strategy. Unknown values select
// StrategyResync, the default.
func ParseStrategy(s string) Strategy {
	if s == "myers" {
		return StrategyMyers
	}
	return StrategyResync
}

// Options tunes a comparison.
type Options struct {
	// Lookahead bounds how far past a mismatch the aligner searches for a
	// resynchronization point, per side, in bytes.
	Lookahead int64

	// SyncLen is the length of the identical run required to declare the
	// streams resynchronized.
	SyncLen int

	// Strategy selects the alignment algorithm.
	Strategy Strategy

	// MaxEditDistance caps the Myers search. Zero means the default.
	MaxEditDistance int

	// MyersSizeLimit is the largest input StrategyMyers will load into
	// memory, per side. Zero means the default.
	MyersSizeLimit int64
}

// DefaultOptions returns the tuning used when the caller passes the zero
// Options value.
func DefaultOptions() Options {
	return Options{
		Lookahead:       1024,
		SyncLen:         8,
		Strategy:        StrategyResync,
		MaxEditDistance: 1024,
		MyersSizeLimit:  1 << 20,
	}
}

// normalize fills zero fields with defaults.
func (o Options) normalize() Options {
	def := DefaultOptions()
	if o.Lookahead <= 0 {
		o.Lookahead = def.Lookahead
	}
	if o.SyncLen <= 0 {
		o.SyncLen = def.SyncLen
	}
	if o.MaxEditDistance <= 0 {
		o.MaxEditDistance = def.MaxEditDistance
	}
	if o.MyersSizeLimit <= 0 {
		o.MyersSizeLimit = def.MyersSizeLimit
	}
	return o
}
