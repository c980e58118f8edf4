// Package engineconfig holds engine-tunable configuration: debug
// assertion toggles, move-cache capacity, and log verbosity. It has no
// opinion on UI display settings or persisted game saves — those are
// explicitly out of scope for the core engine (see SPEC_FULL.md §1).
//
// Config files use TOML and are optional: LoadConfig never fails, it
// falls back to DefaultConfig on any read or parse error, matching the
// teacher's "config loading never blocks startup" convention.
package engineconfig

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds runtime tunables for a *engine.Game.
type Config struct {
	// AssertInvariants is stored and round-tripped through the config
	// file. No engine code reads it: the §3/§8 invariant checks run
	// exactly when the binary is built with -tags debug.
	AssertInvariants bool
	// MoveCacheCapacity bounds the legal-move LRU (see cache.go). A
	// value of zero or less does not disable caching: newMoveCache
	// raises it to 1, and LoadConfig keeps the default instead.
	MoveCacheCapacity int
	// LogLevel controls the Game Controller's logger verbosity.
	// One of "error", "warning", "info", "debug".
	LogLevel string
}

// DefaultConfig returns sane defaults usable with no config file.
func DefaultConfig() Config {
	return Config{
		AssertInvariants:  true,
		MoveCacheCapacity: 4096,
		LogLevel:          "warning",
	}
}

// configFile is the on-disk TOML shape.
type configFile struct {
	Engine struct {
		AssertInvariants  bool   `toml:"assert_invariants"`
		MoveCacheCapacity int    `toml:"move_cache_capacity"`
		LogLevel          string `toml:"log_level"`
	} `toml:"engine"`
}

// LoadConfig reads path as TOML and returns the resulting Config. If
// path cannot be read or parsed, it returns DefaultConfig(); this
// function never returns an error.
func LoadConfig(path string) Config {
	if _, err := os.Stat(path); err != nil {
		return DefaultConfig()
	}

	var cf configFile
	if _, err := toml.DecodeFile(path, &cf); err != nil {
		return DefaultConfig()
	}

	cfg := DefaultConfig()
	cfg.AssertInvariants = cf.Engine.AssertInvariants
	if cf.Engine.MoveCacheCapacity > 0 {
		cfg.MoveCacheCapacity = cf.Engine.MoveCacheCapacity
	}
	if cf.Engine.LogLevel != "" {
		cfg.LogLevel = cf.Engine.LogLevel
	}
	return cfg
}

// SaveConfig writes cfg to path as TOML. It does not create parent
// directories. Returns an error if the file cannot be written.
func SaveConfig(cfg Config, path string) error {
	var cf configFile
	cf.Engine.AssertInvariants = cfg.AssertInvariants
	cf.Engine.MoveCacheCapacity = cfg.MoveCacheCapacity
	cf.Engine.LogLevel = cfg.LogLevel

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cf); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
