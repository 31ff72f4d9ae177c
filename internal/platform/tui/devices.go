package tui

import (
	"github.com/vovakirdan/pocket-runner/internal/core"
	"github.com/vovakirdan/pocket-runner/internal/flow"
	"github.com/vovakirdan/pocket-runner/internal/sensor"
)

// Keyboard device tuning.
const (
	tiltMagnitude = 5.0 // Beyond the default lane threshold and deadzone
	leanFrames    = 3   // Frames one lean key press keeps the device tilted
	pressFrames   = 2   // Frames one button key press keeps the button down
)

// KeyEncoder emulates the rotary encoder with two keys.
type KeyEncoder struct {
	pos   int
	moved bool
}

// Rotate turns the knob one detent in dir (+1 or -1).
func (e *KeyEncoder) Rotate(dir int) {
	e.pos += dir
	e.moved = true
}

// Update reports whether the knob turned since the last Update.
func (e *KeyEncoder) Update() bool {
	moved := e.moved
	e.moved = false
	return moved
}

// Position returns the detent count.
func (e *KeyEncoder) Position() int {
	return e.pos
}

// KeyButton emulates the active-low push button. Terminals deliver key
// presses but no releases, so a press holds the button down for a few
// frames; key repeat keeps extending the hold.
type KeyButton struct {
	hold int
}

// Press pushes the button down.
func (b *KeyButton) Press() {
	b.hold = pressFrames
}

// Value returns false while the button is down.
func (b *KeyButton) Value() bool {
	return b.hold == 0
}

// Tick releases the button once the hold runs out.
func (b *KeyButton) Tick() {
	if b.hold > 0 {
		b.hold--
	}
}

// KeyTilt emulates the accelerometer. The lateral axis steps between
// three resting positions so each key press moves one lane; the lean axis
// springs back to level after a few frames.
type KeyTilt struct {
	x, y float64
	lean int
}

// Apply changes the simulated tilt for one action.
func (t *KeyTilt) Apply(a core.Action) {
	switch a {
	case core.ActionTiltUp:
		t.y = core.ClampF(t.y-tiltMagnitude, -tiltMagnitude, tiltMagnitude)
	case core.ActionTiltDown:
		t.y = core.ClampF(t.y+tiltMagnitude, -tiltMagnitude, tiltMagnitude)
	case core.ActionTiltLeft:
		// The mapper subtracts X from the player position
		t.x = tiltMagnitude
		t.lean = leanFrames
	case core.ActionTiltRight:
		t.x = -tiltMagnitude
		t.lean = leanFrames
	case core.ActionLevel:
		t.x, t.y, t.lean = 0, 0, 0
	}
}

// Tick lets the lean axis return to level.
func (t *KeyTilt) Tick() {
	if t.lean > 0 {
		t.lean--
		if t.lean == 0 {
			t.x = 0
		}
	}
}

// Acceleration implements sensor.TiltSensor.
func (t *KeyTilt) Acceleration() (x, y, z float64, err error) {
	return t.x, t.y, sensor.StandardGravity, nil
}

// LED records the indicator color for the status line.
type LED struct {
	color core.Color
}

// Fill implements flow.Indicator.
func (l *LED) Fill(c core.Color) {
	l.color = c
}

// Color returns the current color.
func (l *LED) Color() core.Color {
	return l.color
}

// Host bundles the keyboard devices and the screen the game flow drives.
type Host struct {
	Encoder *KeyEncoder
	Button  *KeyButton
	Tilt    *KeyTilt
	LED     *LED
	Display *Display
}

// NewHost creates a host with idle devices.
func NewHost() *Host {
	return &Host{
		Encoder: &KeyEncoder{},
		Button:  &KeyButton{},
		Tilt:    &KeyTilt{},
		LED:     &LED{},
		Display: NewDisplay(),
	}
}

// Devices returns the host devices as flow collaborators.
func (h *Host) Devices() flow.Devices {
	return flow.Devices{
		Encoder:   h.Encoder,
		Button:    h.Button,
		Tilt:      h.Tilt,
		Renderer:  h.Display,
		Indicator: h.LED,
	}
}

// deviceActions lists the actions Apply handles, in the order applied.
var deviceActions = []core.Action{
	core.ActionLevel,
	core.ActionTiltUp,
	core.ActionTiltDown,
	core.ActionTiltLeft,
	core.ActionTiltRight,
	core.ActionRotateCW,
	core.ActionRotateCCW,
	core.ActionPress,
}

// Apply feeds one frame of keyboard actions into the devices.
func (h *Host) Apply(frame core.InputFrame) {
	for _, a := range deviceActions {
		if !frame.Has(a) {
			continue
		}
		switch a {
		case core.ActionRotateCW:
			h.Encoder.Rotate(1)
		case core.ActionRotateCCW:
			h.Encoder.Rotate(-1)
		case core.ActionPress:
			h.Button.Press()
		default:
			h.Tilt.Apply(a)
		}
	}
}

// Tick advances the device timers after the frame was polled.
func (h *Host) Tick() {
	h.Button.Tick()
	h.Tilt.Tick()
}
