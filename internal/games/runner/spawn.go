package runner

import (
	"math/rand"

	"github.com/vovakirdan/pocket-runner/internal/config"
)

// laneCount is the number of lanes entities spawn into.
const laneCount = 3

// Spawn is a request to create one entity at the spawn line.
type Spawn struct {
	Kind Kind
	Lane int
}

// Spawner decides when and where obstacles and coins enter the field.
// It counts down a gap drawn from the current bounds, holds back while
// the right side is crowded, and limits coins per level.
type Spawner struct {
	cfg       config.SpawnConfig
	rng       *rand.Rand
	gaps      config.GapBounds
	countdown int
	coins     int // Coins spawned since the last level-up
}

// NewSpawner creates a spawner with the given initial gap bounds and seed.
func NewSpawner(cfg config.SpawnConfig, gaps config.GapBounds, seed int64) *Spawner {
	s := &Spawner{cfg: cfg}
	s.Reset(gaps, seed)
	return s
}

// Reset restarts the rhythm for a new session. The first attempt happens
// on the next tick.
func (s *Spawner) Reset(gaps config.GapBounds, seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
	s.gaps = gaps
	s.countdown = 0
	s.coins = 0
}

// LevelUp shortens the gap bounds and resets the coin allowance.
func (s *Spawner) LevelUp() {
	s.gaps = s.gaps.Tighten(s.cfg.Tighten)
	s.coins = 0
}

// Gaps returns the current gap bounds.
func (s *Spawner) Gaps() config.GapBounds {
	return s.gaps
}

// Countdown returns the ticks left before the next spawn attempt.
func (s *Spawner) Countdown() int {
	return s.countdown
}

// CoinsThisLevel returns the number of coins spawned in the current level.
func (s *Spawner) CoinsThisLevel() int {
	return s.coins
}

// Tick runs one spawn step against the live entities and returns what
// should be created, obstacle first.
func (s *Spawner) Tick(live []Entity) []Spawn {
	if s.countdown > 0 {
		s.countdown--
		return nil
	}

	crowded := 0
	for _, e := range live {
		if e.Kind == KindObstacle && e.X > s.cfg.AntiClogX {
			crowded++
		}
	}
	if crowded >= s.cfg.AntiClogCount {
		s.countdown = s.cfg.AntiClogDelay
		return nil
	}

	obstacleLane := s.rng.Intn(laneCount)
	out := []Spawn{{Kind: KindObstacle, Lane: obstacleLane}}

	if s.coins < s.cfg.CoinsPerLevel {
		// Pick one of the two other lanes
		coinLane := (obstacleLane + 1 + s.rng.Intn(laneCount-1)) % laneCount
		out = append(out, Spawn{Kind: KindCoin, Lane: coinLane})
		s.coins++
	}

	s.countdown = s.gaps.Min
	if s.gaps.Max > s.gaps.Min {
		s.countdown += s.rng.Intn(s.gaps.Max - s.gaps.Min + 1)
	}
	return out
}
