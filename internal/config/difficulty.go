package config

import (
	"fmt"
	"strings"
)

// Difficulty is one of the three selectable presets.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties returns the presets in menu order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// Title returns the menu label for the preset.
func (d Difficulty) Title() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return string(d)
	}
}

// Index returns the menu position of the preset, or -1.
func (d Difficulty) Index() int {
	for i, v := range Difficulties() {
		if v == d {
			return i
		}
	}
	return -1
}

// ParseDifficulty accepts a preset name in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if d.Index() < 0 {
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, medium or hard)", s)
	}
	return d, nil
}

// DifficultySettings are the per-preset speed and spawn gap bounds.
type DifficultySettings struct {
	Speed  float64 `yaml:"speed"`
	MinGap int     `yaml:"min_gap"`
	MaxGap int     `yaml:"max_gap"`
}

// Gaps returns the initial spawn gap bounds for the preset.
func (s DifficultySettings) Gaps() GapBounds {
	return GapBounds{Min: s.MinGap, Max: s.MaxGap}
}

// DifficultyTable holds the settings for each preset.
type DifficultyTable struct {
	Easy   DifficultySettings `yaml:"easy"`
	Medium DifficultySettings `yaml:"medium"`
	Hard   DifficultySettings `yaml:"hard"`
}

// For returns the settings of a preset. Unknown presets get Easy.
func (t DifficultyTable) For(d Difficulty) DifficultySettings {
	switch d {
	case DifficultyMedium:
		return t.Medium
	case DifficultyHard:
		return t.Hard
	default:
		return t.Easy
	}
}

// GapRule defines how much a level-up shortens the spawn gap, and the floors.
type GapRule struct {
	MinStep  int `yaml:"min_step"`
	MaxStep  int `yaml:"max_step"`
	MinFloor int `yaml:"min_floor"`
	MaxFloor int `yaml:"max_floor"`
}

// GapBounds is the inclusive range the spawn countdown is drawn from.
type GapBounds struct {
	Min int
	Max int
}

// Tighten returns the bounds after one level-up. A bound shrinks by its
// step but never below its floor; a bound already at or under the floor
// is left alone. Max never drops below Min.
func (g GapBounds) Tighten(r GapRule) GapBounds {
	next := g
	if g.Min > r.MinFloor {
		next.Min = max(g.Min-r.MinStep, r.MinFloor)
	}
	if g.Max > r.MaxFloor {
		next.Max = max(g.Max-r.MaxStep, r.MaxFloor)
	}
	if next.Max < next.Min {
		next.Max = next.Min
	}
	return next
}
