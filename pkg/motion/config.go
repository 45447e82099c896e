// Package motion holds the configurable motion-detection thresholds used by
// the input classifier. Thresholds are stored in physical units (g-force,
// deg/s) and persisted through viper so they survive restarts; the
// classifier reads the live values on every tick, so changes take effect on
// the next update.
package motion

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"

	"github.com/teslashibe/go-mochi/internal/log"
)

// Default thresholds.
const (
	DefaultMovingG     = 0.3   // Deviation from 1g for moving detection
	DefaultShakingG    = 2.0   // Total magnitude for shaking detection
	DefaultRotatingDPS = 30.0  // Gyro magnitude for rotating detection (deg/s)
	DefaultSpinningDPS = 100.0 // Gyro magnitude for spinning detection (deg/s)
	DefaultBrakingGPS  = 3.0   // Deceleration rate (g/s), reserved
)

// Keys used in the persisted config file.
const (
	keyMoving   = "thresholds.moving_g"
	keyShaking  = "thresholds.shaking_g"
	keyRotating = "thresholds.rotating_dps"
	keySpinning = "thresholds.spinning_dps"
	keyBraking  = "thresholds.braking_gps"
)

// Config is a snapshot of all motion thresholds.
type Config struct {
	MovingG     float64 `json:"moving_g"`
	ShakingG    float64 `json:"shaking_g"`
	RotatingDPS float64 `json:"rotating_dps"`
	SpinningDPS float64 `json:"spinning_dps"`

	// BrakingGPS is persisted and exposed for compatibility but not yet
	// consumed by any derivation (reserved for deceleration detection).
	BrakingGPS float64 `json:"braking_gps"`
}

// Defaults returns a Config with all thresholds at their default values.
func Defaults() Config {
	return Config{
		MovingG:     DefaultMovingG,
		ShakingG:    DefaultShakingG,
		RotatingDPS: DefaultRotatingDPS,
		SpinningDPS: DefaultSpinningDPS,
		BrakingGPS:  DefaultBrakingGPS,
	}
}

// Store holds the live thresholds and persists changes immediately.
type Store struct {
	mu  sync.RWMutex
	cfg Config
	v   *viper.Viper

	persist bool
}

// NewStore creates an in-memory store with defaults. Use Load to attach
// persistence.
func NewStore() *Store {
	return &Store{cfg: Defaults()}
}

// Load creates a store backed by a config file in dir, creating the file
// with defaults if it does not exist.
func Load(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigName("motion")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	d := Defaults()
	v.SetDefault(keyMoving, d.MovingG)
	v.SetDefault(keyShaking, d.ShakingG)
	v.SetDefault(keyRotating, d.RotatingDPS)
	v.SetDefault(keySpinning, d.SpinningDPS)
	v.SetDefault(keyBraking, d.BrakingGPS)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read motion config: %w", err)
		}
		// First run: write the defaults
		if err := v.SafeWriteConfigAs(filepath.Join(dir, "motion.yaml")); err != nil {
			log.Warn("could not persist default motion config", "error", err)
		}
	}

	s := &Store{
		cfg: Config{
			MovingG:     v.GetFloat64(keyMoving),
			ShakingG:    v.GetFloat64(keyShaking),
			RotatingDPS: v.GetFloat64(keyRotating),
			SpinningDPS: v.GetFloat64(keySpinning),
			BrakingGPS:  v.GetFloat64(keyBraking),
		},
		v:       v,
		persist: true,
	}

	log.Info("motion thresholds loaded",
		"moving_g", s.cfg.MovingG,
		"shaking_g", s.cfg.ShakingG,
		"rotating_dps", s.cfg.RotatingDPS,
		"spinning_dps", s.cfg.SpinningDPS)
	return s, nil
}

// Get returns a copy of the current configuration.
func (s *Store) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// MovingG returns the live moving threshold.
func (s *Store) MovingG() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.MovingG
}

// ShakingG returns the live shaking threshold.
func (s *Store) ShakingG() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.ShakingG
}

// RotatingDPS returns the live rotating threshold.
func (s *Store) RotatingDPS() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.RotatingDPS
}

// SpinningDPS returns the live spinning threshold.
func (s *Store) SpinningDPS() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.SpinningDPS
}

// BrakingGPS returns the live braking threshold.
func (s *Store) BrakingGPS() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.BrakingGPS
}

// SetMovingG sets and persists the moving threshold.
func (s *Store) SetMovingG(g float64) error {
	return s.set(keyMoving, g, func(c *Config) { c.MovingG = g })
}

// SetShakingG sets and persists the shaking threshold.
func (s *Store) SetShakingG(g float64) error {
	return s.set(keyShaking, g, func(c *Config) { c.ShakingG = g })
}

// SetRotatingDPS sets and persists the rotating threshold.
func (s *Store) SetRotatingDPS(dps float64) error {
	return s.set(keyRotating, dps, func(c *Config) { c.RotatingDPS = dps })
}

// SetSpinningDPS sets and persists the spinning threshold.
func (s *Store) SetSpinningDPS(dps float64) error {
	return s.set(keySpinning, dps, func(c *Config) { c.SpinningDPS = dps })
}

// SetBrakingGPS sets and persists the braking threshold.
func (s *Store) SetBrakingGPS(gps float64) error {
	return s.set(keyBraking, gps, func(c *Config) { c.BrakingGPS = gps })
}

// Set applies a full configuration at once.
func (s *Store) Set(cfg Config) error {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()

	if !s.persist {
		return nil
	}
	s.v.Set(keyMoving, cfg.MovingG)
	s.v.Set(keyShaking, cfg.ShakingG)
	s.v.Set(keyRotating, cfg.RotatingDPS)
	s.v.Set(keySpinning, cfg.SpinningDPS)
	s.v.Set(keyBraking, cfg.BrakingGPS)
	return s.write()
}

// Reset restores all thresholds to defaults and persists them.
func (s *Store) Reset() error {
	log.Info("resetting motion thresholds to defaults")
	return s.Set(Defaults())
}

func (s *Store) set(key string, value float64, apply func(*Config)) error {
	s.mu.Lock()
	apply(&s.cfg)
	s.mu.Unlock()

	log.Debug("motion threshold updated", "key", key, "value", value)

	if !s.persist {
		return nil
	}
	s.v.Set(key, value)
	return s.write()
}

func (s *Store) write() error {
	if err := s.v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to persist motion config: %w", err)
	}
	return nil
}
