package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in configuration. It mirrors the
// embedded defaults/runner.yaml and is the last fallback of LoadRunner.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Field: FieldConfig{
			Width:  128,
			Height: 64,
			Lanes:  []int{12, 32, 52},
			SpawnX: 130,
			CullX:  -10,
		},
		Player: PlayerConfig{
			StartX:    10,
			MaxX:      115,
			StartLane: 1,
			CenterDX:  4,
		},
		Timing: TimingConfig{
			TickRate:        25,
			TotalTime:       50,
			LevelDuration:   5,
			MaxLevel:        10,
			CoinFlashTicks:  10,
			LevelFlashTicks: 20,
		},
		Spawn: SpawnConfig{
			AntiClogX:     100,
			AntiClogCount: 2,
			AntiClogDelay: 5,
			CoinsPerLevel: 2,
			Tighten: GapRule{
				MinStep:  2,
				MaxStep:  4,
				MinFloor: 10,
				MaxFloor: 15,
			},
		},
		Collision: CollisionConfig{
			CoinX:     15,
			CoinY:     10,
			ObstacleX: 12,
			ObstacleY: 10,
		},
		Sensor: SensorConfig{
			LaneThreshold: 3.0,
			Deadzone:      3.0,
			Sensitivity:   1.0,
		},
		Input: InputConfig{
			PressCooldown: 12, // ~0.5 time units at 25 ticks
			SlotCooldown:  8,  // ~0.3 time units
		},
		Storage: StorageConfig{
			NVMPath:     "~/.pocket-runner/nvm.bin",
			HistoryPath: "~/.pocket-runner/history.db",
		},
		Difficulties: DifficultyTable{
			Easy:   DifficultySettings{Speed: 2, MinGap: 40, MaxGap: 70},
			Medium: DifficultySettings{Speed: 3, MinGap: 25, MaxGap: 50},
			Hard:   DifficultySettings{Speed: 5, MinGap: 15, MaxGap: 30},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
