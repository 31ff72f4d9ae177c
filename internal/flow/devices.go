package flow

import (
	"github.com/vovakirdan/pocket-runner/internal/core"
	"github.com/vovakirdan/pocket-runner/internal/highscore"
	"github.com/vovakirdan/pocket-runner/internal/sensor"
	"github.com/vovakirdan/pocket-runner/internal/storage"
)

// Encoder is a rotary encoder. Update refreshes the reading and reports
// whether the position moved since the previous Update.
type Encoder interface {
	Update() bool
	Position() int
}

// Button is a push button wired active-low: Value is false while pressed.
type Button interface {
	Value() bool
}

// Renderer draws a screen description.
type Renderer interface {
	Render(View)
}

// Indicator is the single status LED.
type Indicator interface {
	Fill(core.Color)
}

// Scoreboard is the persistent high-score board.
type Scoreboard interface {
	Scores() []highscore.Entry
	IsHighScore(score int) bool
	Save(score int, name string) error
}

// Recorder keeps the history of finished runs.
type Recorder interface {
	RecordRun(run storage.Run) (int64, error)
	NameRun(id int64, name string) error
}

// Devices groups the hardware collaborators. Any of them may be nil:
// a missing input never fires and a missing output is skipped.
type Devices struct {
	Encoder   Encoder
	Button    Button
	Tilt      sensor.TiltSensor
	Renderer  Renderer
	Indicator Indicator
}

var (
	_ Scoreboard = (*highscore.Store)(nil)
	_ Recorder   = (*storage.Store)(nil)
)
