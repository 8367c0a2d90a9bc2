package circuit

import "github.com/go-gl/mathgl/mgl64"

// Coordinate is a position on the circuit grid. The origin is the top-left
// cell; X grows east, Y grows south.
type Coordinate struct {
	X, Y int
}

// Side returns the coordinate one cell away from c in the direction dir.
func (c Coordinate) Side(dir Direction) Coordinate {
	v := dir.vector()
	return Coordinate{X: c.X + int(v[0]), Y: c.Y + int(v[1])}
}

// In reports whether c lies within a grid of the given width and height.
func (c Coordinate) In(width, height int) bool {
	return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
}

// Direction is one of the four cardinal directions used by the core engine.
// The numeric value doubles as the rotation index (0..3) stored on
// directional blocks.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// directions lists the cardinals in the notification fan-out order: sibling
// neighbors see changes in cardinal order (N, E, S, W).
var directions = [4]Direction{North, East, South, West}

// vector returns the unit displacement of the direction as a mgl64.Vec2. The
// engine's grid coordinates are integers; the result is rounded back to an
// integer offset by Side.
func (d Direction) vector() mgl64.Vec2 {
	switch d {
	case North:
		return mgl64.Vec2{0, -1}
	case East:
		return mgl64.Vec2{1, 0}
	case South:
		return mgl64.Vec2{0, 1}
	case West:
		return mgl64.Vec2{-1, 0}
	default:
		return mgl64.Vec2{0, 0}
	}
}

// Opposite returns the reverse cardinal (N↔S, E↔W).
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Left returns the direction −90° from d (counter-clockwise).
func (d Direction) Left() Direction {
	return (d + 3) % 4
}

// Right returns the direction +90° from d (clockwise).
func (d Direction) Right() Direction {
	return (d + 1) % 4
}

// Rotate returns the direction advanced by one rotation step, used by
// RotateBlock's "rotation = (rotation+1) mod 4" rule.
func (d Direction) Rotate() Direction {
	return (d + 1) % 4
}

// String returns a short lowercase name, used for snapshot output.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}
