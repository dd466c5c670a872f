// Package config loads daemon configuration from an optional TOML file with
// environment variable overrides, so main stays lean.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration wraps time.Duration so TOML values can be written as "15m".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string   `toml:"addr"`
	JWTSigningKey   string   `toml:"jwt_signing_key"`
	SessionTokenTTL Duration `toml:"session_token_ttl"`
}

// Store selects the lockout persistence backend.
type Store struct {
	Backend    string `toml:"backend"` // "memory" or "sqlite"
	SQLitePath string `toml:"sqlite_path"`
}

// Credential holds the enrolled gesture credential.
type Credential struct {
	GestureHash string `toml:"gesture_hash"` // bcrypt hash of the canonical pattern string
}

// Lockout tunes the attempt state machine.
type Lockout struct {
	FailureThreshold int      `toml:"failure_threshold"`
	TickInterval     Duration `toml:"tick_interval"`
	WrongClearDelay  Duration `toml:"wrong_clear_delay"`
	WakeInterval     Duration `toml:"wake_interval"`
}

type Config struct {
	Server     Server     `toml:"server"`
	Store      Store      `toml:"store"`
	Credential Credential `toml:"credential"`
	Lockout    Lockout    `toml:"lockout"`
	Debug      bool       `toml:"debug"`
}

// Default returns the configuration used when no file or env overrides exist.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":7070",
			SessionTokenTTL: Duration{15 * time.Minute},
		},
		Store: Store{
			Backend:    "memory",
			SQLitePath: "keygate.db",
		},
		Lockout: Lockout{
			FailureThreshold: 5,
			TickInterval:     Duration{time.Second},
			WrongClearDelay:  Duration{2 * time.Second},
			WakeInterval:     Duration{5 * time.Second},
		},
	}
}

// Load reads the TOML file at path (when it exists), then applies environment
// overrides. A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return cfg, fmt.Errorf("decode config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if cfg.Store.Backend != "memory" && cfg.Store.Backend != "sqlite" {
		return cfg, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	if cfg.Lockout.FailureThreshold <= 0 {
		return cfg, fmt.Errorf("failure_threshold must be positive, got %d", cfg.Lockout.FailureThreshold)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("KEYGATE_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("KEYGATE_JWT_SIGNING_KEY"); v != "" {
		cfg.Server.JWTSigningKey = v
	}
	if v := os.Getenv("KEYGATE_STORE_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("KEYGATE_SQLITE_PATH"); v != "" {
		cfg.Store.SQLitePath = v
	}
	if v := os.Getenv("KEYGATE_GESTURE_HASH"); v != "" {
		cfg.Credential.GestureHash = v
	}
	if v := os.Getenv("KEYGATE_SESSION_TOKEN_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Server.SessionTokenTTL = Duration{parsed}
		}
	}
	if os.Getenv("KEYGATE_DEBUG") == "true" {
		cfg.Debug = true
	}
}
