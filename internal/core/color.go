package core

// Color is a solid color for screen cells and the status indicator.
type Color uint8

// Colors used by the runner. ColorOff doubles as the default cell color.
const (
	ColorOff Color = iota
	ColorWhite
	ColorRed
	ColorGreen
	ColorYellow
	ColorPurple
	ColorGray
)

// String returns a human-readable color name.
func (c Color) String() string {
	switch c {
	case ColorOff:
		return "off"
	case ColorWhite:
		return "white"
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorPurple:
		return "purple"
	case ColorGray:
		return "gray"
	default:
		return "unknown"
	}
}

// RGB returns the 8-bit channels the indicator pixel is driven with.
func (c Color) RGB() (r, g, b uint8) {
	switch c {
	case ColorWhite:
		return 255, 255, 255
	case ColorRed:
		return 255, 0, 0
	case ColorGreen:
		return 0, 255, 0
	case ColorYellow:
		return 255, 255, 0
	case ColorPurple:
		return 180, 0, 255
	case ColorGray:
		return 128, 128, 128
	default:
		return 0, 0, 0
	}
}
