// Package core provides fundamental types shared by the runner engine,
// the game-flow machine and the terminal host. It has no external
// dependencies so game logic stays pure and testable.
package core

import "math"

// Vec is a point on the 128x64 playfield.
type Vec struct {
	X, Y float64
}

// Reach describes an axis-aligned reach around a center point.
// A point is inside when both distances are strictly below the half extents.
type Reach struct {
	HalfW, HalfH float64
}

// Touches reports whether b lies within the reach around a.
func (r Reach) Touches(a, b Vec) bool {
	return math.Abs(b.X-a.X) < r.HalfW && math.Abs(b.Y-a.Y) < r.HalfH
}

// Rect represents an axis-aligned box in screen cells, used for drawing.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Mod returns a modulo b in [0, b), for wrapping cursors in both directions.
func Mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
