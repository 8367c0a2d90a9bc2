package circuit

import "errors"

// Sentinel errors surfaced by the Engine API. Each is an expected,
// silently-handled condition rather than an exceptional one; the grid state
// after a rejected edit is unchanged regardless of whether the caller
// inspects the returned error.
var (
	// ErrOutOfBounds is returned when an edit targets a coordinate outside
	// the grid.
	ErrOutOfBounds = errors.New("circuit: coordinate out of bounds")
	// ErrOccupied is returned when CreateBlock targets a non-empty cell.
	ErrOccupied = errors.New("circuit: cell already occupied")
	// ErrEmptyCell is returned when an edit that requires an existing block
	// (RemoveBlock, RotateBlock, Interact, the configure calls) targets an
	// empty cell.
	ErrEmptyCell = errors.New("circuit: cell is empty")
	// ErrPushOverflow names a piston extension rejected because the push
	// chain exceeds the movable-block limit or meets an immovable block.
	// Extensions run inside Tick, which returns no error, so no Engine API
	// call returns this value; a rejected push is counted in
	// Metrics.PistonOverflows instead.
	ErrPushOverflow = errors.New("circuit: piston push chain overflowed or blocked")
)
