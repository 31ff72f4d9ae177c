// Package flow drives Pocket Runner from power-on to the leaderboard.
//
// The Machine is polled once per frame. Each poll reads the encoder, the
// tilt sensor and the button in that order, advances the current state
// and pushes the LED color and a screen description to the outputs.
// Nothing here sleeps: button debounce is a frame countdown.
package flow

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pocket-runner/internal/config"
	"github.com/vovakirdan/pocket-runner/internal/core"
	"github.com/vovakirdan/pocket-runner/internal/games/runner"
	"github.com/vovakirdan/pocket-runner/internal/highscore"
	"github.com/vovakirdan/pocket-runner/internal/sensor"
	"github.com/vovakirdan/pocket-runner/internal/storage"
)

// State is a screen of the game flow.
type State uint8

const (
	StateTitle State = iota
	StateMenu
	StatePlay
	StateGameOver
	StateWin
	StateInputName
	StateShowHighScore
)

var stateNames = [...]string{
	StateTitle:         "TITLE",
	StateMenu:          "MENU",
	StatePlay:          "PLAY",
	StateGameOver:      "GAMEOVER",
	StateWin:           "WIN",
	StateInputName:     "INPUT_NAME",
	StateShowHighScore: "SHOW_HIGHSCORE",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "UNKNOWN"
}

const (
	alphabetSize = 26
	nameSlots    = highscore.NameLen
)

// ErrNoScoreboard is returned by New when no board is supplied.
var ErrNoScoreboard = errors.New("flow: scoreboard is required")

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(m *Machine) { m.logger = l }
}

// WithRecorder sets the run history recorder.
func WithRecorder(r Recorder) Option {
	return func(m *Machine) { m.recorder = r }
}

// WithSeed sets the base seed. Session n is seeded with seed+n so replays
// differ from each other but a whole power cycle is reproducible.
func WithSeed(seed int64) Option {
	return func(m *Machine) { m.seed = seed }
}

// WithDifficulty skips the title screen and opens the menu with d
// highlighted.
func WithDifficulty(d config.Difficulty) Option {
	return func(m *Machine) {
		m.state = StateMenu
		m.cursor = max(d.Index(), 0)
	}
}

// Machine is the top-level game flow controller.
type Machine struct {
	cfg      config.RunnerConfig
	dev      Devices
	mapper   *sensor.Mapper
	engine   *runner.Engine
	board    Scoreboard
	recorder Recorder
	logger   *log.Logger

	state    State
	cursor   int
	seed     int64
	sessions int64
	led      core.Color

	lastPos  int
	pressed  bool // Button level seen on the previous poll
	cooldown int

	chars [nameSlots]byte
	slot  int
	alpha int

	runID   int64 // History row of the last finished run, 0 if none
	lastErr error
}

// New creates a machine in the TITLE state.
func New(cfg config.RunnerConfig, dev Devices, board Scoreboard, opts ...Option) (*Machine, error) {
	if board == nil {
		return nil, ErrNoScoreboard
	}
	m := &Machine{
		cfg:    cfg,
		dev:    dev,
		mapper: sensor.NewMapper(dev.Tilt, cfg.Sensor),
		engine: runner.New(cfg),
		board:  board,
		logger: log.New(io.Discard),
		state:  StateTitle,
	}
	for _, opt := range opts {
		opt(m)
	}

	if dev.Encoder != nil {
		m.lastPos = dev.Encoder.Position()
	}
	if dev.Button != nil {
		m.pressed = !dev.Button.Value()
	}
	if !m.mapper.Available() {
		m.logger.Debug("tilt sensor unavailable, using neutral reading")
	}
	return m, nil
}

// Poll runs one frame.
func (m *Machine) Poll() {
	dir := m.readEncoder()
	ctrl := m.mapper.Poll()
	press := m.readButton()

	switch m.state {
	case StateTitle:
		m.led = core.ColorOff
		if press {
			m.cursor = 0
			m.enter(StateMenu)
		}

	case StateMenu:
		m.led = core.ColorOff
		if dir != 0 {
			m.cursor = core.Mod(m.cursor+dir, len(config.Difficulties()))
		}
		if press {
			m.startSession()
		}

	case StatePlay:
		m.play(ctrl)

	case StateGameOver, StateWin:
		m.led = core.ColorRed
		if m.state == StateWin {
			m.led = core.ColorPurple
		}
		if press {
			m.led = core.ColorOff
			m.leaveEndScreen()
		}

	case StateInputName:
		if dir != 0 {
			m.alpha = core.Mod(m.alpha+dir, alphabetSize)
			m.chars[m.slot] = byte('A' + m.alpha)
		}
		if press {
			m.confirmSlot()
		}

	case StateShowHighScore:
		if press {
			m.enter(StateTitle)
		}
	}

	if m.dev.Indicator != nil {
		m.dev.Indicator.Fill(m.led)
	}
	if m.dev.Renderer != nil {
		m.dev.Renderer.Render(m.View())
	}
}

// readEncoder returns -1, 0 or +1. The last position is tracked on every
// poll so a rotation made on another screen is not replayed later.
func (m *Machine) readEncoder() int {
	if m.dev.Encoder == nil {
		return 0
	}
	changed := m.dev.Encoder.Update()
	pos := m.dev.Encoder.Position()
	dir := 0
	if changed {
		switch {
		case pos > m.lastPos:
			dir = 1
		case pos < m.lastPos:
			dir = -1
		}
	}
	m.lastPos = pos
	return dir
}

// readButton reports an accepted press: a released-to-pressed edge seen
// while no cooldown is running.
func (m *Machine) readButton() bool {
	if m.dev.Button == nil {
		return false
	}
	level := !m.dev.Button.Value()
	edge := level && !m.pressed
	m.pressed = level

	if m.cooldown > 0 {
		m.cooldown--
		return false
	}
	return edge
}

// enter switches screens and arms the press cooldown.
func (m *Machine) enter(s State) {
	m.logger.Debug("state change", "from", m.state, "to", s)
	m.state = s
	m.cooldown = m.cfg.Input.PressCooldown
}

func (m *Machine) startSession() {
	d := config.Difficulties()[m.cursor]
	seed := m.seed + m.sessions
	m.sessions++
	m.engine.Reset(d, seed)
	m.runID = 0
	m.lastErr = nil
	m.logger.Info("session started", "difficulty", d, "seed", seed)
	m.enter(StatePlay)
}

func (m *Machine) play(ctrl sensor.Control) {
	r := m.engine.Step(ctrl)
	m.led = r.Indicator
	if r.LevelUp {
		m.logger.Debug("level up", "level", r.Level, "gaps", m.engine.Spawner().Gaps())
	}
	if !r.Outcome.Terminal() {
		return
	}

	m.logger.Info("session ended",
		"outcome", r.Outcome,
		"score", r.Score,
		"level", r.Level,
		"ticks", m.engine.Ticks(),
	)
	m.record(r)

	if r.Outcome.Won() {
		m.led = core.ColorPurple
		m.enter(StateWin)
	} else {
		m.led = core.ColorRed
		m.enter(StateGameOver)
	}
}

func (m *Machine) record(r runner.StepResult) {
	if m.recorder == nil {
		return
	}
	id, err := m.recorder.RecordRun(storage.Run{
		Difficulty: string(m.engine.Difficulty()),
		Score:      r.Score,
		Level:      r.Level,
		Outcome:    r.Outcome.String(),
		Ticks:      m.engine.Ticks(),
	})
	if err != nil {
		m.logger.Warn("cannot record run", "error", err)
		return
	}
	m.runID = id
}

func (m *Machine) leaveEndScreen() {
	score := m.engine.Score()
	if m.board.IsHighScore(score) {
		m.chars = [nameSlots]byte{'A', 'A', 'A'}
		m.slot = 0
		m.alpha = 0
		m.enter(StateInputName)
		return
	}
	m.enter(StateShowHighScore)
}

func (m *Machine) confirmSlot() {
	m.slot++
	if m.slot < nameSlots {
		m.alpha = 0
		m.cooldown = m.cfg.Input.SlotCooldown
		return
	}

	name := string(m.chars[:])
	score := m.engine.Score()
	m.lastErr = m.board.Save(score, name)
	if m.lastErr != nil {
		m.logger.Error("cannot save high score", "name", name, "score", score, "error", m.lastErr)
	} else {
		m.logger.Info("high score saved", "name", name, "score", score)
		m.nameRun(name)
	}
	m.enter(StateShowHighScore)
}

func (m *Machine) nameRun(name string) {
	if m.recorder == nil || m.runID == 0 {
		return
	}
	if err := m.recorder.NameRun(m.runID, name); err != nil {
		m.logger.Warn("cannot name run", "id", m.runID, "error", err)
	}
}

// State returns the current screen.
func (m *Machine) State() State {
	return m.state
}

// Engine returns the simulation driven during PLAY.
func (m *Machine) Engine() *runner.Engine {
	return m.engine
}

// LED returns the color last sent to the indicator.
func (m *Machine) LED() core.Color {
	return m.led
}

// LastError returns the error of the most recent high-score save, or nil.
func (m *Machine) LastError() error {
	return m.lastErr
}

// View describes the current screen.
func (m *Machine) View() View {
	v := View{State: m.state, LED: m.led}
	switch m.state {
	case StateMenu:
		v.Options = config.Difficulties()
		v.Cursor = m.cursor
	case StatePlay, StateGameOver, StateWin:
		v.Play = m.engine.Snapshot()
		v.Score = v.Play.Score
	case StateInputName:
		v.Score = m.engine.Score()
		v.Name = string(m.chars[:])
		v.Slot = m.slot
	case StateShowHighScore:
		v.Board = m.board.Scores()
		v.SaveErr = m.lastErr
	}
	return v
}
