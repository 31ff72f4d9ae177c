// Package config provides YAML-based tuning for the runner: playfield
// geometry, timing, spawn rhythm, collision reach, sensor thresholds and
// the difficulty table.
package config

// RunnerConfig contains all configuration for Pocket Runner.
type RunnerConfig struct {
	Field        FieldConfig     `yaml:"field"`
	Player       PlayerConfig    `yaml:"player"`
	Timing       TimingConfig    `yaml:"timing"`
	Spawn        SpawnConfig     `yaml:"spawn"`
	Collision    CollisionConfig `yaml:"collision"`
	Sensor       SensorConfig    `yaml:"sensor"`
	Input        InputConfig     `yaml:"input"`
	Storage      StorageConfig   `yaml:"storage"`
	Difficulties DifficultyTable `yaml:"difficulties"`
}

// FieldConfig describes the playfield in display pixels.
type FieldConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Lanes  []int   `yaml:"lanes"`   // Y coordinate of each lane center
	SpawnX float64 `yaml:"spawn_x"` // Where new entities appear
	CullX  float64 `yaml:"cull_x"`  // Entities left of this are removed
}

// PlayerConfig defines the runner's start position and horizontal bounds.
type PlayerConfig struct {
	StartX    float64 `yaml:"start_x"`
	MaxX      float64 `yaml:"max_x"`
	StartLane int     `yaml:"start_lane"`
	CenterDX  int     `yaml:"center_dx"` // Offset from sprite origin to collision center
}

// TimingConfig defines the session clock. Durations are in time units
// (seconds on the device), ticks are frames.
type TimingConfig struct {
	TickRate        int `yaml:"tick_rate"`
	TotalTime       int `yaml:"total_time"`
	LevelDuration   int `yaml:"level_duration"`
	MaxLevel        int `yaml:"max_level"`
	CoinFlashTicks  int `yaml:"coin_flash_ticks"`
	LevelFlashTicks int `yaml:"level_flash_ticks"`
}

// SpawnConfig defines the spawn rhythm rules.
type SpawnConfig struct {
	AntiClogX     float64 `yaml:"anti_clog_x"`
	AntiClogCount int     `yaml:"anti_clog_count"`
	AntiClogDelay int     `yaml:"anti_clog_delay"`
	CoinsPerLevel int     `yaml:"coins_per_level"`
	Tighten       GapRule `yaml:"tighten"`
}

// CollisionConfig holds the half extents used for pickup and crash tests.
type CollisionConfig struct {
	CoinX     float64 `yaml:"coin_x"`
	CoinY     float64 `yaml:"coin_y"`
	ObstacleX float64 `yaml:"obstacle_x"`
	ObstacleY float64 `yaml:"obstacle_y"`
}

// SensorConfig defines how tilt samples map to controls.
type SensorConfig struct {
	LaneThreshold float64 `yaml:"lane_threshold"`
	Deadzone      float64 `yaml:"deadzone"`
	Sensitivity   float64 `yaml:"sensitivity"`
}

// InputConfig defines button debounce cooldowns in ticks.
type InputConfig struct {
	PressCooldown int `yaml:"press_cooldown"`
	SlotCooldown  int `yaml:"slot_cooldown"`
}

// StorageConfig locates the high-score image and the run history.
type StorageConfig struct {
	NVMPath     string `yaml:"nvm_path"`
	HistoryPath string `yaml:"history_path"`
}
