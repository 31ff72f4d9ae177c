package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pocket-runner/internal/core"
)

// KeyMap defines the keyboard stand-ins for the device controls.
type KeyMap struct {
	TiltUp     key.Binding
	TiltDown   key.Binding
	TiltLeft   key.Binding
	TiltRight  key.Binding
	Level      key.Binding
	RotateCW   key.Binding
	RotateCCW  key.Binding
	Press      key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.TiltUp, k.TiltDown, k.TiltLeft, k.TiltRight, k.RotateCCW, k.RotateCW, k.Press, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.TiltUp, k.TiltDown, k.TiltLeft, k.TiltRight, k.Level},
		{k.RotateCCW, k.RotateCW, k.Press},
		{k.Screenshot, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		TiltUp: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "tilt up"),
		),
		TiltDown: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "tilt down"),
		),
		TiltLeft: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "lean left"),
		),
		TiltRight: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "lean right"),
		),
		Level: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "level"),
		),
		RotateCW: key.NewBinding(
			key.WithKeys("]", "."),
			key.WithHelp("]", "knob +"),
		),
		RotateCCW: key.NewBinding(
			key.WithKeys("[", ","),
			key.WithHelp("[", "knob -"),
		),
		Press: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "button"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to device actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a key mapper with the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	return &KeyMapper{keys: keys}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.TiltUp):
		return core.ActionTiltUp, false
	case key.Matches(msg, k.TiltDown):
		return core.ActionTiltDown, false
	case key.Matches(msg, k.TiltLeft):
		return core.ActionTiltLeft, false
	case key.Matches(msg, k.TiltRight):
		return core.ActionTiltRight, false
	case key.Matches(msg, k.Level):
		return core.ActionLevel, false
	case key.Matches(msg, k.RotateCW):
		return core.ActionRotateCW, false
	case key.Matches(msg, k.RotateCCW):
		return core.ActionRotateCCW, false
	case key.Matches(msg, k.Press):
		return core.ActionPress, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}
