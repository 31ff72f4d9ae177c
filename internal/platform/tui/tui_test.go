package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pocket-runner/internal/config"
	"github.com/vovakirdan/pocket-runner/internal/core"
	"github.com/vovakirdan/pocket-runner/internal/flow"
	"github.com/vovakirdan/pocket-runner/internal/games/runner"
	"github.com/vovakirdan/pocket-runner/internal/highscore"
	"github.com/vovakirdan/pocket-runner/internal/sensor"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap())

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		want   core.Action
		isQuit bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionTiltUp, false},
		{"s", runeKey('s'), core.ActionTiltDown, false},
		{"a", runeKey('a'), core.ActionTiltLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionTiltRight, false},
		{"x", runeKey('x'), core.ActionLevel, false},
		{"]", runeKey(']'), core.ActionRotateCW, false},
		{"[", runeKey('['), core.ActionRotateCCW, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionPress, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionPress, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, quit := km.MapKey(tt.msg)
			if got != tt.want || quit != tt.isQuit {
				t.Errorf("MapKey() = %v, %v; want %v, %v", got, quit, tt.want, tt.isQuit)
			}
		})
	}
}

func TestKeyButtonIsActiveLow(t *testing.T) {
	var b KeyButton
	if !b.Value() {
		t.Fatal("idle button should read high")
	}
	b.Press()
	for i := 0; i < pressFrames; i++ {
		if b.Value() {
			t.Fatalf("frame %d: pressed button should read low", i)
		}
		b.Tick()
	}
	if !b.Value() {
		t.Error("button should be released after the hold")
	}
}

func TestKeyEncoder(t *testing.T) {
	var e KeyEncoder
	if e.Update() {
		t.Error("idle encoder reported movement")
	}
	e.Rotate(1)
	e.Rotate(1)
	if !e.Update() || e.Position() != 2 {
		t.Errorf("expected movement to position 2, got %d", e.Position())
	}
	if e.Update() {
		t.Error("movement reported twice")
	}
}

func TestKeyTiltMapsToLanes(t *testing.T) {
	tilt := &KeyTilt{}
	mapper := sensor.NewMapper(tilt, config.DefaultRunnerConfig().Sensor)

	if c := mapper.Poll(); c.Lane != sensor.LaneCenter || c.DeltaX != 0 {
		t.Fatalf("level device should map to center, got %+v", c)
	}

	tilt.Apply(core.ActionTiltUp)
	if c := mapper.Poll(); c.Lane != sensor.LaneUp {
		t.Errorf("expected lane up, got %d", c.Lane)
	}
	tilt.Apply(core.ActionTiltUp)
	tilt.Apply(core.ActionTiltDown)
	if c := mapper.Poll(); c.Lane != sensor.LaneCenter {
		t.Errorf("one step down from up should be center, got %d", c.Lane)
	}

	tilt.Apply(core.ActionTiltRight)
	if c := mapper.Poll(); c.DeltaX <= 0 {
		t.Errorf("leaning right should move the player right, got %v", c.DeltaX)
	}
	for i := 0; i < leanFrames; i++ {
		tilt.Tick()
	}
	if c := mapper.Poll(); c.DeltaX != 0 {
		t.Errorf("lean should spring back, got %v", c.DeltaX)
	}

	tilt.Apply(core.ActionTiltLeft)
	if c := mapper.Poll(); c.DeltaX >= 0 {
		t.Errorf("leaning left should move the player left, got %v", c.DeltaX)
	}
	tilt.Apply(core.ActionLevel)
	if c := mapper.Poll(); c != (sensor.Control{Lane: sensor.LaneCenter}) {
		t.Errorf("level should reset the tilt, got %+v", c)
	}
}

func newTestMachine(t *testing.T, host *Host) *flow.Machine {
	t.Helper()
	board, err := highscore.Open(highscore.NewMemoryRegion(highscore.DefaultRegionSize), highscore.DefaultEntries)
	if err != nil {
		t.Fatalf("highscore.Open() failed: %v", err)
	}
	m, err := flow.New(config.DefaultRunnerConfig(), host.Devices(), board)
	if err != nil {
		t.Fatalf("flow.New() failed: %v", err)
	}
	return m
}

func TestModelDrivesMachine(t *testing.T) {
	host := NewHost()
	machine := newTestMachine(t, host)
	var model tea.Model = NewModel(machine, host, Options{TickRate: 25})

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	model, _ = model.Update(TickMsg{})
	if machine.State() != flow.StateMenu {
		t.Fatalf("state = %v, want MENU", machine.State())
	}
	if host.Display.Last().State != flow.StateMenu {
		t.Error("display did not receive the menu view")
	}
	if !strings.Contains(host.Display.Screen().String(), "DIFFICULTY") {
		t.Error("menu not drawn")
	}

	_, cmd := model.Update(runeKey('q'))
	if cmd == nil {
		t.Error("quit key should return a command")
	}
}

func TestBootIsSkippable(t *testing.T) {
	host := NewHost()
	machine := newTestMachine(t, host)
	var model tea.Model = NewModel(machine, host, Options{TickRate: 25, Boot: 2e9})

	if !strings.Contains(model.View(), "SYSTEM BOOT") {
		t.Fatal("boot screen not shown")
	}
	model, _ = model.Update(runeKey(' '))
	model, _ = model.Update(TickMsg{})
	if machine.State() != flow.StateTitle {
		t.Errorf("the key that skips the boot should not press the button, state %v", machine.State())
	}
	if strings.Contains(model.View(), "SYSTEM BOOT") {
		t.Error("boot screen still shown")
	}
}

func TestNewModelDefaultsToConfiguredTickRate(t *testing.T) {
	host := NewHost()
	model := NewModel(newTestMachine(t, host), host, Options{Boot: 2e9})

	want := config.DefaultRunnerConfig().Timing.TickRate
	if model.opts.TickRate != want {
		t.Errorf("TickRate = %d, expected %d", model.opts.TickRate, want)
	}
	if model.bootFrames != 2*want {
		t.Errorf("bootFrames = %d, expected %d", model.bootFrames, 2*want)
	}
}

func TestDrawPlay(t *testing.T) {
	d := NewDisplay()
	d.Render(flow.View{
		State: flow.StatePlay,
		Play: runner.Snapshot{
			Player:   runner.Player{X: 10, Lane: 1},
			Lanes:    []int{12, 32, 52},
			Entities: []runner.Entity{{Kind: runner.KindCoin, Lane: 0, X: 60}, {Kind: runner.KindObstacle, Lane: 2, X: 200}},
			Score:    3,
			Level:    2,
			TimeLeft: 41,
		},
	})

	s := d.Screen()
	if !strings.Contains(s.Row(1), "Score:3") || !strings.Contains(s.Row(1), "Lv:2") || !strings.Contains(s.Row(1), "T:41") {
		t.Errorf("HUD row = %q", s.Row(1))
	}
	x, y := cell(60, 12)
	if c := s.GetCell(x, y); c.Rune != '●' || c.Color != core.ColorYellow {
		t.Errorf("coin cell = %+v", c)
	}
	px, py := cell(10, 32)
	if s.Get(px, py) != '█' {
		t.Errorf("player not drawn at %d,%d", px, py)
	}
	if strings.Contains(s.String(), "▓") {
		t.Error("off-screen obstacle was drawn")
	}
}

func TestDrawBoardShowsSaveError(t *testing.T) {
	d := NewDisplay()
	d.Render(flow.View{
		State:   flow.StateShowHighScore,
		Board:   []highscore.Entry{{Name: "ZOE", Score: 500}, {Name: "BOB", Score: 300}, {Name: "CAT", Score: 200}},
		SaveErr: highscore.ErrWrite,
	})
	out := d.Screen().String()
	for _, want := range []string{"TOP SCORES", "1. ZOE   500", "3. CAT   200", "SAVE FAILED"} {
		if !strings.Contains(out, want) {
			t.Errorf("board missing %q", want)
		}
	}
}

func TestDrawNameEntry(t *testing.T) {
	d := NewDisplay()
	d.Render(flow.View{State: flow.StateInputName, Name: "ZOA", Slot: 1, Score: 7})
	out := d.Screen().String()
	if !strings.Contains(out, "Z  [O]  A") {
		t.Errorf("name entry not drawn:\n%s", out)
	}
}
