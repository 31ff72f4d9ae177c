// Package sensor maps accelerometer samples to runner controls.
//
// The lateral axis (Y) picks one of three lanes through a symmetric
// threshold; the forward/back axis (X) nudges the runner horizontally once
// it leaves the deadzone. A missing or failing sensor yields a neutral
// reading so the game keeps running in the center lane.
package sensor

import (
	"math"

	"github.com/vovakirdan/pocket-runner/internal/config"
)

// StandardGravity is the Z reading of a device lying flat at rest.
const StandardGravity = 9.8

// Lane indices produced by Map.
const (
	LaneUp     = 0
	LaneCenter = 1
	LaneDown   = 2
)

// TiltSensor is a 3-axis accelerometer.
type TiltSensor interface {
	Acceleration() (x, y, z float64, err error)
}

// TapDetector is implemented by sensors that report double taps.
type TapDetector interface {
	DoubleTap() bool
}

// Reading is one accelerometer sample.
type Reading struct {
	X, Y, Z float64
}

// Neutral is the reading reported when no sensor is available.
var Neutral = Reading{X: 0, Y: 0, Z: StandardGravity}

// Control is the mapped input the engine consumes each tick.
type Control struct {
	Lane   int     // 0 (up), 1 (center) or 2 (down)
	DeltaX float64 // Added to player x this tick
}

// Mapper converts tilt samples to Control values.
type Mapper struct {
	sensor TiltSensor
	cfg    config.SensorConfig
}

// NewMapper creates a mapper for the given sensor. sensor may be nil.
func NewMapper(sensor TiltSensor, cfg config.SensorConfig) *Mapper {
	return &Mapper{sensor: sensor, cfg: cfg}
}

// Available reports whether a sensor is attached.
func (m *Mapper) Available() bool {
	return m.sensor != nil
}

// Read samples the sensor. Errors and a missing sensor produce Neutral.
func (m *Mapper) Read() Reading {
	if m.sensor == nil {
		return Neutral
	}
	x, y, z, err := m.sensor.Acceleration()
	if err != nil {
		return Neutral
	}
	return Reading{X: x, Y: y, Z: z}
}

// DoubleTap reports a double tap when the sensor supports it.
func (m *Mapper) DoubleTap() bool {
	if td, ok := m.sensor.(TapDetector); ok {
		return td.DoubleTap()
	}
	return false
}

// Map converts a reading to a control.
//
// There is no hysteresis around the lane threshold: a sample hovering at
// exactly ±threshold can alternate lanes between frames under noise.
func (m *Mapper) Map(r Reading) Control {
	c := Control{Lane: LaneCenter}

	switch {
	case r.Y < -m.cfg.LaneThreshold:
		c.Lane = LaneUp
	case r.Y > m.cfg.LaneThreshold:
		c.Lane = LaneDown
	}

	if math.Abs(r.X) > m.cfg.Deadzone {
		c.DeltaX = -r.X * m.cfg.Sensitivity
	}
	return c
}

// Poll reads the sensor and maps the sample in one step.
func (m *Mapper) Poll() Control {
	return m.Map(m.Read())
}
