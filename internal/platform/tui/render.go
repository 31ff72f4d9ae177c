package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pocket-runner/internal/core"
	"github.com/vovakirdan/pocket-runner/internal/flow"
	"github.com/vovakirdan/pocket-runner/internal/games/runner"
)

// The 128x64 pixel display maps onto a bordered grid of terminal cells,
// two pixels per column and four per row. The HUD sits on the first
// inner row, the playfield below it.
const (
	pixelsPerCol = 2
	pixelsPerRow = 4
	fieldTop     = 2
	DisplayW     = 128/pixelsPerCol + 2
	DisplayH     = 64/pixelsPerRow + fieldTop + 1
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorOff:    lipgloss.NewStyle(),
	core.ColorWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorPurple: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorGray:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorOff]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// RenderLED draws the indicator pixel as a colored swatch.
func RenderLED(c core.Color) string {
	if c == core.ColorOff {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("○ LED")
	}
	r, g, b := c.RGB()
	hex := fmt.Sprintf("#%02x%02x%02x", r, g, b)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Bold(true).Render("● LED")
}

// Display is the emulated screen. It implements flow.Renderer.
type Display struct {
	screen *core.Screen
	last   flow.View
}

// NewDisplay creates a blank display.
func NewDisplay() *Display {
	return &Display{screen: core.NewScreen(DisplayW, DisplayH)}
}

// Screen returns the cell buffer of the last frame.
func (d *Display) Screen() *core.Screen {
	return d.screen
}

// Last returns the most recent view.
func (d *Display) Last() flow.View {
	return d.last
}

// Render implements flow.Renderer.
func (d *Display) Render(v flow.View) {
	d.last = v
	s := d.screen
	s.Clear()
	s.DrawBox(core.NewRect(0, 0, DisplayW, DisplayH))

	switch v.State {
	case flow.StateTitle:
		drawTitle(s)
	case flow.StateMenu:
		drawMenu(s, v)
	case flow.StatePlay:
		drawPlay(s, v.Play)
	case flow.StateGameOver, flow.StateWin:
		drawEnd(s, v)
	case flow.StateInputName:
		drawNameEntry(s, v)
	case flow.StateShowHighScore:
		drawBoard(s, v)
	}
}

func drawTitle(s *core.Screen) {
	s.DrawTextCentered(5, "POCKET RUNNER")
	s.DrawTextCentered(11, ">>> PLAY <<<")
}

func drawMenu(s *core.Screen, v flow.View) {
	s.DrawTextCentered(3, "DIFFICULTY")
	for i, d := range v.Options {
		prefix := "  "
		c := core.ColorGray
		if i == v.Cursor {
			prefix = "> "
			c = core.ColorWhite
		}
		s.DrawTextColored(DisplayW/2-5, 7+i*3, prefix+d.Title(), c)
	}
}

// cell converts playfield pixels to a screen cell.
func cell(px, py float64) (int, int) {
	return 1 + int(px)/pixelsPerCol, fieldTop + int(py)/pixelsPerRow
}

func drawPlay(s *core.Screen, snap runner.Snapshot) {
	s.DrawText(2, 1, fmt.Sprintf("Score:%d", snap.Score))
	s.DrawText(DisplayW/2-3, 1, fmt.Sprintf("Lv:%d", snap.Level))
	s.DrawText(DisplayW-8, 1, fmt.Sprintf("T:%d", snap.TimeLeft))

	inside := func(x, y int) bool {
		return x > 0 && x < DisplayW-1 && y >= fieldTop && y < DisplayH-1
	}

	for _, e := range snap.Entities {
		if e.Lane < 0 || e.Lane >= len(snap.Lanes) {
			continue
		}
		x, y := cell(e.X, float64(snap.Lanes[e.Lane]))
		if e.Kind == runner.KindCoin {
			if inside(x, y) {
				s.SetColored(x, y, '●', core.ColorYellow)
			}
			continue
		}
		// Obstacles are 10 pixels wide from their left edge
		for i := 0; i < 10/pixelsPerCol; i++ {
			if inside(x+i, y) {
				s.SetColored(x+i, y, '▓', core.ColorRed)
			}
		}
	}

	px, py := cell(snap.Player.X, float64(snap.Lanes[snap.Player.Lane]))
	for i := 0; i < 4; i++ {
		if inside(px+i, py) {
			s.SetColored(px+i, py, '█', core.ColorWhite)
		}
	}
}

func drawEnd(s *core.Screen, v flow.View) {
	c := core.ColorRed
	if v.State == flow.StateWin {
		c = core.ColorPurple
	}
	title := v.EndTitle()
	s.DrawTextColored((DisplayW-len(title))/2, 5, title, c)
	s.DrawTextCentered(10, fmt.Sprintf("Score: %d", v.Score))
	s.DrawTextCentered(14, "CONTINUE")
}

func drawNameEntry(s *core.Screen, v flow.View) {
	s.DrawTextCentered(3, "NEW HIGH SCORE!")
	var b strings.Builder
	for i, ch := range v.Name {
		if i == v.Slot {
			fmt.Fprintf(&b, "[%c] ", ch)
		} else {
			fmt.Fprintf(&b, " %c  ", ch)
		}
	}
	s.DrawTextCentered(9, strings.TrimRight(b.String(), " "))
	s.DrawTextCentered(14, fmt.Sprintf("Score: %d", v.Score))
}

func drawBoard(s *core.Screen, v flow.View) {
	s.DrawTextCentered(2, "TOP SCORES")
	for i, e := range v.Board {
		s.DrawText(DisplayW/2-9, 6+i*3, fmt.Sprintf("%d. %s   %d", i+1, e.Name, e.Score))
	}
	if v.SaveErr != nil {
		msg := "SAVE FAILED"
		s.DrawTextColored((DisplayW-len(msg))/2, DisplayH-3, msg, core.ColorRed)
	}
}

// drawBoot draws one frame of the power-on animation: the runner slides
// across the middle lane under the boot message.
func drawBoot(s *core.Screen, frame, frames int) {
	s.Clear()
	s.DrawBox(core.NewRect(0, 0, DisplayW, DisplayH))
	s.DrawTextCentered(5, "SYSTEM BOOT...")
	if frames <= 0 {
		return
	}
	span := DisplayW - 6
	x := 1 + frame*span/frames
	for i := 0; i < 4; i++ {
		s.SetColored(x+i, 10, '█', core.ColorWhite)
	}
}
