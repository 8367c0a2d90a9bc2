package circuit

import "log/slog"

// Default grid dimensions.
const (
	DefaultWidth  = 64
	DefaultHeight = 48
)

// Config holds the tunable parameters for a Simulator. The zero value is
// usable; sensible defaults are applied by withDefaults.
type Config struct {
	// Width and Height size the grid. Zero means DefaultWidth/DefaultHeight.
	Width, Height int
	// MaxNeighborDispatch bounds the number of onNeighborUpdate calls a
	// single external edit or scheduled tick may trigger before the
	// recursive notification chain aborts — the safety net for a
	// pathological, non-converging construction (e.g. a one-tick-delay
	// feedback loop). Zero means a built-in default.
	MaxNeighborDispatch int
	// Log receives diagnostic messages for conditions treated as design
	// errors rather than expected input (dispatch-budget overflow).
	// Expected conditions (OutOfBounds, Occupied, ...) are never logged.
	// Nil defaults to slog.Default().
	Log *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.MaxNeighborDispatch <= 0 {
		c.MaxNeighborDispatch = 10_000
	}
	if c.Log == nil {
		c.Log = slog.Default()
	}
	return c
}
