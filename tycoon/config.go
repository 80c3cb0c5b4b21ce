// Package tycoon wires the simulation packages into one playable game:
// configuration, the root Game orchestrator, and the tick loop contract.
package tycoon

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/kirari-dev/streamtycoon/tycoon/economy"
	"github.com/kirari-dev/streamtycoon/tycoon/stream"
)

// LogConfig controls the slog handler.
type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"` // "text" or "json"
	AddSource bool       `toml:"add_source"`
	NoColor   bool       `toml:"no_color"`
}

// GameConfig holds the pacing knobs that belong to the outer game rather
// than any one subsystem.
type GameConfig struct {
	IdleRecoveryPerSecond float64 `toml:"idle_recovery_per_second"`
	RestMultiplier        float64 `toml:"rest_multiplier"`
	AutosaveInterval      float64 `toml:"autosave_interval"` // seconds, 0 disables
}

// DBConfig locates the save database.
type DBConfig struct {
	Path string `toml:"path"`
}

// WebConfig configures the browser-facing shell.
type WebConfig struct {
	Addr      string `toml:"addr"`
	StaticDir string `toml:"static_dir"`
}

// Config is the full game configuration. Subsystem sections live with
// their owning packages; this struct only composes them.
type Config struct {
	Log    LogConfig      `toml:"log"`
	Game   GameConfig     `toml:"game"`
	Player economy.Config `toml:"player"`
	Stream stream.Config  `toml:"stream"`
	DB     DBConfig       `toml:"db"`
	Web    WebConfig      `toml:"web"`
}

func (c Config) String() string {
	return fmt.Sprintf("Config{Log: %+v, Game: %+v, DB: %+v, Web: %+v}", c.Log, c.Game, c.DB, c.Web)
}

// DefaultConfig returns the tuned baseline for every section.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:  slog.LevelInfo,
			Format: "text",
		},
		Game: GameConfig{
			IdleRecoveryPerSecond: 0.05,
			RestMultiplier:        4,
			AutosaveInterval:      30,
		},
		Player: economy.DefaultConfig(),
		Stream: stream.DefaultConfig(),
		DB: DBConfig{
			Path: "streamtycoon.db",
		},
		Web: WebConfig{
			Addr:      ":8090",
			StaticDir: "web/static",
		},
	}
}

// LoadConfig reads a toml file over the defaults, so partial files only
// override what they mention.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	cfg := DefaultConfig()
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}
