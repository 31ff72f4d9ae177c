package flow

import (
	"errors"
	"testing"

	"github.com/vovakirdan/pocket-runner/internal/config"
	"github.com/vovakirdan/pocket-runner/internal/core"
	"github.com/vovakirdan/pocket-runner/internal/highscore"
	"github.com/vovakirdan/pocket-runner/internal/storage"
)

type fakeEncoder struct {
	pos     int
	pending bool
}

func (e *fakeEncoder) Update() bool {
	changed := e.pending
	e.pending = false
	return changed
}

func (e *fakeEncoder) Position() int { return e.pos }

func (e *fakeEncoder) turn(n int) {
	e.pos += n
	e.pending = true
}

type fakeButton struct{ down bool }

func (b *fakeButton) Value() bool { return !b.down }

type fakeTilt struct{ x, y float64 }

func (t *fakeTilt) Acceleration() (float64, float64, float64, error) {
	return t.x, t.y, 9.8, nil
}

type fakeIndicator struct{ colors []core.Color }

func (i *fakeIndicator) Fill(c core.Color) { i.colors = append(i.colors, c) }

type fakeRenderer struct{ last View }

func (r *fakeRenderer) Render(v View) { r.last = v }

type fakeRecorder struct {
	runs  []storage.Run
	names map[int64]string
	err   error
}

func (r *fakeRecorder) RecordRun(run storage.Run) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.runs = append(r.runs, run)
	return int64(len(r.runs)), nil
}

func (r *fakeRecorder) NameRun(id int64, name string) error {
	if r.names == nil {
		r.names = make(map[int64]string)
	}
	r.names[id] = name
	return nil
}

type rig struct {
	m      *Machine
	enc    *fakeEncoder
	btn    *fakeButton
	tilt   *fakeTilt
	led    *fakeIndicator
	screen *fakeRenderer
	rec    *fakeRecorder
	region *highscore.MemoryRegion
	board  *highscore.Store
}

// crashConfig ends every session on its first tick after one pickup.
func crashConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Collision.CoinX, cfg.Collision.CoinY = 1000, 1000
	cfg.Collision.ObstacleX, cfg.Collision.ObstacleY = 1000, 1000
	return cfg
}

// winConfig ends every session on its first tick with a time-up win.
func winConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Timing.TotalTime = 1
	cfg.Collision.ObstacleX = 0
	return cfg
}

func newRig(t *testing.T, cfg config.RunnerConfig, opts ...Option) *rig {
	t.Helper()
	r := &rig{
		enc:    &fakeEncoder{},
		btn:    &fakeButton{},
		tilt:   &fakeTilt{},
		led:    &fakeIndicator{},
		screen: &fakeRenderer{},
		rec:    &fakeRecorder{},
		region: highscore.NewMemoryRegion(highscore.DefaultRegionSize),
	}
	board, err := highscore.Open(r.region, highscore.DefaultEntries)
	if err != nil {
		t.Fatalf("highscore.Open() failed: %v", err)
	}
	r.board = board

	dev := Devices{Encoder: r.enc, Button: r.btn, Tilt: r.tilt, Renderer: r.screen, Indicator: r.led}
	opts = append([]Option{WithRecorder(r.rec), WithSeed(1)}, opts...)
	m, err := New(cfg, dev, board, opts...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	r.m = m
	return r
}

// click presses and releases the button, then waits out the cooldown.
func (r *rig) click() {
	r.btn.down = true
	r.m.Poll()
	r.btn.down = false
	r.m.Poll()
	r.idle(r.m.cfg.Input.PressCooldown)
}

func (r *rig) idle(n int) {
	for i := 0; i < n; i++ {
		r.m.Poll()
	}
}

func (r *rig) rotate(steps int) {
	dir := 1
	if steps < 0 {
		dir, steps = -1, -steps
	}
	for i := 0; i < steps; i++ {
		r.enc.turn(dir)
		r.m.Poll()
	}
}

func (r *rig) expect(t *testing.T, want State) {
	t.Helper()
	if got := r.m.State(); got != want {
		t.Fatalf("state = %v, want %v", got, want)
	}
}

func TestFullCycleWithNameEntry(t *testing.T) {
	r := newRig(t, crashConfig())
	r.expect(t, StateTitle)

	r.click()
	r.expect(t, StateMenu)

	r.rotate(1)
	if v := r.m.View(); v.Cursor != 1 {
		t.Fatalf("cursor = %d, want 1", v.Cursor)
	}

	r.click()
	r.expect(t, StateGameOver)
	if r.m.LED() != core.ColorRed {
		t.Errorf("LED = %v, want red", r.m.LED())
	}
	if len(r.rec.runs) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(r.rec.runs))
	}
	run := r.rec.runs[0]
	if run.Difficulty != "medium" || run.Outcome != "crash" || run.Score != 1 {
		t.Errorf("unexpected run record: %+v", run)
	}

	r.click()
	r.expect(t, StateInputName)
	if v := r.m.View(); v.Name != "AAA" || v.Slot != 0 || v.Score != 1 {
		t.Fatalf("unexpected name entry view: %+v", v)
	}

	r.rotate(-1) // A wraps back to Z
	r.click()
	r.rotate(14) // O
	r.click()
	r.rotate(4) // E
	if v := r.m.View(); v.Name != "ZOE" || v.Slot != 2 {
		t.Fatalf("name = %q slot %d, want ZOE slot 2", v.Name, v.Slot)
	}
	r.click()
	r.expect(t, StateShowHighScore)

	v := r.m.View()
	if v.Board[0].Name != "ZOE" || v.Board[0].Score != 1 {
		t.Errorf("top entry = %+v, want ZOE 1", v.Board[0])
	}
	if v.SaveErr != nil || r.m.LastError() != nil {
		t.Errorf("unexpected save error: %v", r.m.LastError())
	}
	if r.rec.names[1] != "ZOE" {
		t.Errorf("history run not named: %v", r.rec.names)
	}

	r.click()
	r.expect(t, StateTitle)
}

func TestNameSlotResetsAlphabet(t *testing.T) {
	r := newRig(t, crashConfig())
	r.click()
	r.click()
	r.click()
	r.expect(t, StateInputName)

	r.rotate(3) // D
	r.click()
	r.rotate(1) // B, counted from A again
	if v := r.m.View(); v.Name != "DBA" {
		t.Errorf("name = %q, want DBA", v.Name)
	}
}

func TestMenuWrapAround(t *testing.T) {
	tests := []struct {
		name  string
		steps int
		want  int
	}{
		{"down from easy wraps to hard", -1, 2},
		{"full turn", 3, 0},
		{"two back", -2, 1},
		{"forward", 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t, crashConfig())
			r.click()
			r.rotate(tt.steps)
			if got := r.m.View().Cursor; got != tt.want {
				t.Errorf("cursor = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMenuStartsSelectedDifficulty(t *testing.T) {
	r := newRig(t, config.DefaultRunnerConfig())
	r.click()
	r.rotate(-1)
	r.click()
	r.expect(t, StatePlay)

	if d := r.m.Engine().Difficulty(); d != config.DifficultyHard {
		t.Errorf("difficulty = %v, want hard", d)
	}
}

func TestButtonDebounce(t *testing.T) {
	r := newRig(t, config.DefaultRunnerConfig())

	r.btn.down = true
	r.m.Poll()
	r.expect(t, StateMenu)

	// A fresh press right after a screen change is swallowed
	r.btn.down = false
	r.m.Poll()
	r.btn.down = true
	r.m.Poll()
	r.expect(t, StateMenu)

	// Holding the button does not repeat
	r.idle(30)
	r.expect(t, StateMenu)

	// Release and press again once the cooldown ran out
	r.btn.down = false
	r.m.Poll()
	r.btn.down = true
	r.m.Poll()
	r.expect(t, StatePlay)
}

func TestButtonHeldAtPowerOn(t *testing.T) {
	btn := &fakeButton{down: true}
	board, _ := highscore.Open(highscore.NewMemoryRegion(highscore.DefaultRegionSize), 3)
	m, err := New(config.DefaultRunnerConfig(), Devices{Button: btn}, board)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	m.Poll()
	if m.State() != StateTitle {
		t.Errorf("a button held since power-on should not count as a press")
	}
}

func TestEncoderPositionTrackedAcrossScreens(t *testing.T) {
	r := newRig(t, crashConfig())
	r.rotate(-5) // Ignored on the title screen
	r.click()
	r.rotate(1)

	if got := r.m.View().Cursor; got != 1 {
		t.Errorf("cursor = %d, want 1", got)
	}
}

func TestLowScoreSkipsNameEntry(t *testing.T) {
	r := newRig(t, crashConfig())
	for _, e := range []struct {
		name  string
		score int
	}{{"BOB", 300}, {"CAT", 200}, {"DAN", 100}} {
		if err := r.board.Save(e.score, e.name); err != nil {
			t.Fatalf("Save() failed: %v", err)
		}
	}

	r.click()
	r.click()
	r.expect(t, StateGameOver)
	r.click()
	r.expect(t, StateShowHighScore)

	if v := r.m.View(); len(v.Board) != 3 || v.Board[2].Score != 100 {
		t.Errorf("unexpected board: %+v", v.Board)
	}
}

func TestWinScreen(t *testing.T) {
	r := newRig(t, winConfig())
	r.click()
	r.click()
	r.expect(t, StateWin)

	if r.m.LED() != core.ColorPurple {
		t.Errorf("LED = %v, want purple", r.m.LED())
	}
	if v := r.m.View(); v.EndTitle() != "YOU WIN!" {
		t.Errorf("end title = %q", v.EndTitle())
	}
	if r.rec.runs[0].Outcome != "time_up" {
		t.Errorf("outcome = %q, want time_up", r.rec.runs[0].Outcome)
	}

	r.click()
	if r.m.LED() != core.ColorOff {
		t.Errorf("LED should be off after leaving the end screen, got %v", r.m.LED())
	}
}

func TestSaveFailureStillShowsBoard(t *testing.T) {
	r := newRig(t, crashConfig())
	r.region.FailWrites(errors.New("flash worn out"))

	r.click()
	r.click()
	r.click()
	r.expect(t, StateInputName)
	r.click()
	r.click()
	r.click()
	r.expect(t, StateShowHighScore)

	err := r.m.LastError()
	if !errors.Is(err, highscore.ErrWrite) {
		t.Fatalf("LastError() = %v, want ErrWrite", err)
	}
	v := r.m.View()
	if v.SaveErr == nil {
		t.Error("board view should carry the save error")
	}
	if v.Board[0].Score != 0 {
		t.Errorf("board changed despite failed save: %+v", v.Board)
	}
	if len(r.rec.names) != 0 {
		t.Error("run should not be named when the save failed")
	}

	// The error is cleared by the next session
	r.region.FailWrites(nil)
	r.click()
	r.click()
	r.click()
	if r.m.LastError() != nil {
		t.Errorf("LastError() = %v after a new session", r.m.LastError())
	}
}

func TestRecorderFailureIsNotFatal(t *testing.T) {
	r := newRig(t, crashConfig())
	r.rec.err = errors.New("disk full")

	r.click()
	r.click()
	r.expect(t, StateGameOver)
	r.click()
	r.expect(t, StateInputName)
}

func TestPlayFollowsTilt(t *testing.T) {
	r := newRig(t, config.DefaultRunnerConfig())
	r.tilt.y = -5
	r.click()
	r.click()
	r.expect(t, StatePlay)

	if lane := r.m.Engine().Player().Lane; lane != 0 {
		t.Errorf("lane = %d, want 0", lane)
	}
	if r.screen.last.State != StatePlay || r.screen.last.Play.Ticks == 0 {
		t.Errorf("renderer did not receive play frames: %+v", r.screen.last.State)
	}
}

func TestMissingSensorRunsCenterLane(t *testing.T) {
	btn := &fakeButton{}
	board, _ := highscore.Open(highscore.NewMemoryRegion(highscore.DefaultRegionSize), 3)
	m, err := New(config.DefaultRunnerConfig(), Devices{Button: btn}, board)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		btn.down = true
		m.Poll()
		btn.down = false
		for j := 0; j < 13; j++ {
			m.Poll()
		}
	}
	if m.State() != StatePlay {
		t.Fatalf("state = %v, want PLAY", m.State())
	}
	if p := m.Engine().Player(); p.Lane != 1 || p.X != 10 {
		t.Errorf("player drifted without a sensor: %+v", p)
	}
}

func TestWithDifficultyOpensMenu(t *testing.T) {
	r := newRig(t, config.DefaultRunnerConfig(), WithDifficulty(config.DifficultyHard))
	r.expect(t, StateMenu)
	if got := r.m.View().Cursor; got != 2 {
		t.Errorf("cursor = %d, want 2", got)
	}
}

func TestNewRequiresScoreboard(t *testing.T) {
	if _, err := New(config.DefaultRunnerConfig(), Devices{}, nil); !errors.Is(err, ErrNoScoreboard) {
		t.Errorf("New() error = %v, want ErrNoScoreboard", err)
	}
}

func TestIndicatorFollowsScreens(t *testing.T) {
	r := newRig(t, crashConfig())
	r.m.Poll()
	if got := r.led.colors[len(r.led.colors)-1]; got != core.ColorOff {
		t.Errorf("title LED = %v, want off", got)
	}

	r.click()
	r.click()
	if got := r.led.colors[len(r.led.colors)-1]; got != core.ColorRed {
		t.Errorf("game over LED = %v, want red", got)
	}
}

func TestStateString(t *testing.T) {
	if StateShowHighScore.String() != "SHOW_HIGHSCORE" || State(99).String() != "UNKNOWN" {
		t.Error("unexpected state names")
	}
}
