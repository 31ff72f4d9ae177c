package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadRunner loads the runner configuration.
// Search order: customPath -> ~/.pocket-runner/configs/runner.yaml ->
// ./configs/runner.yaml -> embedded default.
// A custom path that cannot be read, parsed or validated is an error;
// the other locations are skipped when unusable.
func LoadRunner(customPath string) (RunnerConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RunnerConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return RunnerConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("runner.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "runner.yaml")); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := Parse(defaultRunnerYAML); err == nil {
		return cfg, nil
	}
	return DefaultRunnerConfig(), nil
}

// Parse decodes YAML on top of the built-in defaults, so a file only
// needs the keys it overrides, then validates the result.
func Parse(data []byte) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunnerConfig{}, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return RunnerConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func Marshal(cfg RunnerConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

// Validate reports every value the engine cannot run with.
func (c RunnerConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("config: "+format, args...))
		}
	}

	check(len(c.Field.Lanes) == 3, "field.lanes must list 3 lanes, got %d", len(c.Field.Lanes))
	check(c.Field.CullX < c.Field.SpawnX, "field.cull_x must be left of spawn_x")
	check(c.Player.MaxX > 0, "player.max_x must be positive")
	check(c.Player.StartX >= 0 && c.Player.StartX <= c.Player.MaxX, "player.start_x must be within [0, max_x]")
	check(c.Player.StartLane >= 0 && c.Player.StartLane < len(c.Field.Lanes), "player.start_lane out of range")
	check(c.Timing.TickRate > 0, "timing.tick_rate must be positive")
	check(c.Timing.TotalTime > 0, "timing.total_time must be positive")
	check(c.Timing.LevelDuration > 0, "timing.level_duration must be positive")
	check(c.Timing.MaxLevel > 0, "timing.max_level must be positive")
	check(c.Spawn.CoinsPerLevel >= 0, "spawn.coins_per_level must not be negative")
	check(c.Spawn.AntiClogCount > 0, "spawn.anti_clog_count must be positive")
	check(c.Spawn.AntiClogDelay >= 0, "spawn.anti_clog_delay must not be negative")
	check(c.Spawn.Tighten.MinFloor <= c.Spawn.Tighten.MaxFloor, "spawn.tighten floors must satisfy min_floor <= max_floor")
	check(c.Input.PressCooldown >= 0 && c.Input.SlotCooldown >= 0, "input cooldowns must not be negative")

	for _, d := range Difficulties() {
		s := c.Difficulties.For(d)
		check(s.Speed > 0, "difficulties.%s.speed must be positive", d)
		check(s.MinGap >= 0 && s.MinGap <= s.MaxGap, "difficulties.%s gaps must satisfy 0 <= min_gap <= max_gap", d)
	}

	return errors.Join(errs...)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/")), nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pocket-runner", "configs", filename)
}
