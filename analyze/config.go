package analyze

import "log/slog"

// AnalyzerVersion identifies the engine's algorithm version. Downstream
// caches compare it against stored results: a bump invalidates every
// cached analysis even when the source content hash is unchanged.
// Bump it whenever classification, scoring, or extraction logic changes.
const AnalyzerVersion = "1.2.0"

// Config configures an Analyzer.
type Config struct {
	// HeadFraction is the leading share of the linear block sequence
	// treated as header when no semantic region marker exists
	// (default: 0.15). An approximation tuned for common page
	// templates; adjust per site convention if needed.
	HeadFraction float64 `json:"head_fraction" yaml:"head_fraction"`

	// TailFraction is the trailing share treated as footer
	// (default: 0.15).
	TailFraction float64 `json:"tail_fraction" yaml:"tail_fraction"`

	// Logger for debug messages.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.HeadFraction <= 0 || c.HeadFraction >= 1 {
		c.HeadFraction = 0.15
	}
	if c.TailFraction <= 0 || c.TailFraction >= 1 {
		c.TailFraction = 0.15
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
