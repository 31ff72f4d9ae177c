// Package runner implements the Pocket Runner simulation: a runner in one
// of three lanes dodges obstacles and collects coins that scroll in from
// the right, under a fixed time budget split into levels.
//
// The engine is pure logic. It consumes mapped sensor controls once per
// tick and reports score, level, time left, the indicator color and a
// terminal outcome; rendering is a projection of Snapshot.
package runner

import (
	"math"
	"slices"

	"github.com/vovakirdan/pocket-runner/internal/config"
	"github.com/vovakirdan/pocket-runner/internal/core"
	"github.com/vovakirdan/pocket-runner/internal/sensor"
)

// Outcome is the terminal signal of a session.
type Outcome uint8

const (
	OutcomeNone     Outcome = iota
	OutcomeCrash            // Hit an obstacle
	OutcomeTimeUp           // Survived the whole time budget
	OutcomeLevelCap         // Progressed past the last level
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeCrash:
		return "crash"
	case OutcomeTimeUp:
		return "time_up"
	case OutcomeLevelCap:
		return "level_cap"
	default:
		return "none"
	}
}

// Terminal reports whether the session has ended.
func (o Outcome) Terminal() bool {
	return o != OutcomeNone
}

// Won reports whether the session ended in a win.
func (o Outcome) Won() bool {
	return o == OutcomeTimeUp || o == OutcomeLevelCap
}

// StepResult is returned by Step after each tick.
type StepResult struct {
	Score     int
	Level     int
	TimeLeft  int
	Indicator core.Color
	Outcome   Outcome
	LevelUp   bool // A level-up happened this tick
	Pickups   int  // Coins collected this tick
}

// Engine owns the authoritative session state.
type Engine struct {
	cfg        config.RunnerConfig
	difficulty config.Difficulty
	speed      float64
	spawner    *Spawner
	coinReach  core.Reach
	obstReach  core.Reach

	player   Player
	entities []Entity
	nextID   uint32

	score      int
	level      int
	ticks      int
	timeLeft   int
	coinFlash  int
	levelFlash int
	indicator  core.Color
	outcome    Outcome
}

// New creates an engine. Call Reset before the first Step.
func New(cfg config.RunnerConfig) *Engine {
	e := &Engine{
		cfg:       cfg,
		coinReach: core.Reach{HalfW: cfg.Collision.CoinX, HalfH: cfg.Collision.CoinY},
		obstReach: core.Reach{HalfW: cfg.Collision.ObstacleX, HalfH: cfg.Collision.ObstacleY},
	}
	e.Reset(config.DifficultyEasy, 0)
	return e
}

// Reset starts a new session at the given difficulty.
func (e *Engine) Reset(d config.Difficulty, seed int64) {
	settings := e.cfg.Difficulties.For(d)

	e.difficulty = d
	e.speed = settings.Speed
	if e.spawner == nil {
		e.spawner = NewSpawner(e.cfg.Spawn, settings.Gaps(), seed)
	} else {
		e.spawner.Reset(settings.Gaps(), seed)
	}

	e.player = Player{X: e.cfg.Player.StartX, Lane: e.cfg.Player.StartLane}
	e.entities = e.entities[:0]
	e.nextID = 0

	e.score = 0
	e.level = 1
	e.ticks = 0
	e.timeLeft = e.cfg.Timing.TotalTime
	e.coinFlash = 0
	e.levelFlash = 0
	e.indicator = core.ColorOff
	e.outcome = OutcomeNone
}

// Step advances the session by one tick. After a terminal outcome it
// only reports the final state.
func (e *Engine) Step(in sensor.Control) StepResult {
	if e.outcome.Terminal() {
		return e.result()
	}

	// 1. Input
	e.applyControl(in)

	// 2. Clock
	e.ticks++
	rate := e.cfg.Timing.TickRate
	e.timeLeft = e.cfg.Timing.TotalTime - (e.ticks+rate-1)/rate

	// 3. Levels
	res := StepResult{}
	levelCap := false
	stage := e.ticks/(e.cfg.Timing.LevelDuration*rate) + 1
	for stage > e.level {
		e.level++
		e.spawner.LevelUp()
		e.levelFlash = e.cfg.Timing.LevelFlashTicks
		res.LevelUp = true
		if e.level > e.cfg.Timing.MaxLevel {
			levelCap = true
		}
	}

	// 4. Indicator, coin flash first
	switch {
	case e.coinFlash > 0:
		e.indicator = core.ColorGreen
		e.coinFlash--
	case e.levelFlash > 0:
		e.indicator = core.ColorYellow
		e.levelFlash--
	default:
		e.indicator = core.ColorOff
	}

	// 5. Spawn
	for _, s := range e.spawner.Tick(e.entities) {
		e.nextID++
		e.entities = append(e.entities, Entity{ID: e.nextID, Kind: s.Kind, Lane: s.Lane, X: e.cfg.Field.SpawnX})
	}

	// 6. Move and cull
	for i := range e.entities {
		e.entities[i].X -= e.speed
	}
	e.entities = slices.DeleteFunc(e.entities, func(ent Entity) bool {
		return ent.X < e.cfg.Field.CullX
	})

	// 7. Pickups and crashes
	center := e.PlayerCenter()
	crashed := false
	e.entities = slices.DeleteFunc(e.entities, func(ent Entity) bool {
		if ent.Kind != KindCoin || !e.coinReach.Touches(center, e.entityPos(ent)) {
			return false
		}
		e.score++
		e.coinFlash = e.cfg.Timing.CoinFlashTicks
		res.Pickups++
		return true
	})
	for _, ent := range e.entities {
		if ent.Kind == KindObstacle && e.obstReach.Touches(center, e.entityPos(ent)) {
			crashed = true
			break
		}
	}

	// 8. Outcome. Running out of time wins even on a crash tick.
	switch {
	case e.timeLeft <= 0:
		e.outcome = OutcomeTimeUp
	case crashed:
		e.outcome = OutcomeCrash
	case levelCap:
		e.outcome = OutcomeLevelCap
	}

	r := e.result()
	r.LevelUp = res.LevelUp
	r.Pickups = res.Pickups
	return r
}

func (e *Engine) applyControl(in sensor.Control) {
	e.player.Lane = core.Clamp(in.Lane, 0, len(e.cfg.Field.Lanes)-1)
	if !math.IsNaN(in.DeltaX) && !math.IsInf(in.DeltaX, 0) {
		e.player.X += in.DeltaX
	}
	e.player.X = core.ClampF(e.player.X, 0, e.cfg.Player.MaxX)
}

func (e *Engine) result() StepResult {
	return StepResult{
		Score:     e.score,
		Level:     e.level,
		TimeLeft:  e.timeLeft,
		Indicator: e.indicator,
		Outcome:   e.outcome,
	}
}

// LaneY returns the vertical center of a lane.
func (e *Engine) LaneY(lane int) int {
	return e.cfg.Field.Lanes[core.Clamp(lane, 0, len(e.cfg.Field.Lanes)-1)]
}

// PlayerCenter returns the collision center of the runner. The sprite is
// drawn at whole pixels, so the fractional part of X does not count.
func (e *Engine) PlayerCenter() core.Vec {
	return core.Vec{
		X: math.Trunc(e.player.X) + float64(e.cfg.Player.CenterDX),
		Y: float64(e.LaneY(e.player.Lane)),
	}
}

func (e *Engine) entityPos(ent Entity) core.Vec {
	return core.Vec{X: ent.X, Y: float64(e.LaneY(ent.Lane))}
}

// State returns the current result without advancing.
func (e *Engine) State() StepResult {
	return e.result()
}

// Difficulty returns the preset of the current session.
func (e *Engine) Difficulty() config.Difficulty {
	return e.difficulty
}

// Speed returns how far entities move per tick.
func (e *Engine) Speed() float64 {
	return e.speed
}

// Ticks returns the ticks elapsed in the session.
func (e *Engine) Ticks() int {
	return e.ticks
}

// Score returns the coins collected so far.
func (e *Engine) Score() int {
	return e.score
}

// Player returns the runner position.
func (e *Engine) Player() Player {
	return e.player
}

// Entities returns a copy of the live entities in spawn order.
func (e *Engine) Entities() []Entity {
	return slices.Clone(e.entities)
}

// Spawner exposes the spawn rhythm for inspection.
func (e *Engine) Spawner() *Spawner {
	return e.spawner
}

// Snapshot is a read-only projection of the session for rendering.
type Snapshot struct {
	Difficulty config.Difficulty
	Player     Player
	Center     core.Vec
	Lanes      []int
	Entities   []Entity
	Score      int
	Level      int
	TimeLeft   int
	Ticks      int
	Indicator  core.Color
	Outcome    Outcome
}

// Snapshot returns the current session state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Difficulty: e.difficulty,
		Player:     e.player,
		Center:     e.PlayerCenter(),
		Lanes:      slices.Clone(e.cfg.Field.Lanes),
		Entities:   e.Entities(),
		Score:      e.score,
		Level:      e.level,
		TimeLeft:   e.timeLeft,
		Ticks:      e.ticks,
		Indicator:  e.indicator,
		Outcome:    e.outcome,
	}
}
