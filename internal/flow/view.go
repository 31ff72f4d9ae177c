package flow

import (
	"github.com/vovakirdan/pocket-runner/internal/config"
	"github.com/vovakirdan/pocket-runner/internal/core"
	"github.com/vovakirdan/pocket-runner/internal/games/runner"
	"github.com/vovakirdan/pocket-runner/internal/highscore"
)

// View describes what the display should show. Only the fields relevant
// to State are populated.
type View struct {
	State State
	LED   core.Color

	// MENU
	Options []config.Difficulty
	Cursor  int

	// PLAY, GAMEOVER, WIN
	Play runner.Snapshot

	// GAMEOVER, WIN, INPUT_NAME
	Score int

	// INPUT_NAME
	Name string
	Slot int

	// SHOW_HIGHSCORE
	Board   []highscore.Entry
	SaveErr error // Set when the last name commit could not be saved
}

// EndTitle returns the headline of an end screen.
func (v View) EndTitle() string {
	if v.State == StateWin {
		return "YOU WIN!"
	}
	return "GAME OVER"
}
