package core

// Action is a device-level intent produced by the host from physical input.
// Keyboard hosts emulate the tilt sensor, rotary encoder and push button
// with these actions.
type Action int

const (
	ActionNone      Action = iota
	ActionTiltUp           // Tilt toward lane 0
	ActionTiltDown         // Tilt toward lane 2
	ActionTiltLeft         // Tilt toward the left edge, player moves left
	ActionTiltRight        // Tilt toward the right edge, player moves right
	ActionLevel            // Return the sensor to rest
	ActionRotateCW         // Encoder one detent clockwise
	ActionRotateCCW        // Encoder one detent counter-clockwise
	ActionPress            // Push button
	ActionQuit             // Leave the host
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionTiltUp:
		return "TiltUp"
	case ActionTiltDown:
		return "TiltDown"
	case ActionTiltLeft:
		return "TiltLeft"
	case ActionTiltRight:
		return "TiltRight"
	case ActionLevel:
		return "Level"
	case ActionRotateCW:
		return "RotateCW"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionPress:
		return "Press"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered during one frame.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
