// Package config loads the engine's host-runtime configuration record: the
// default boxed-scratch capacity and the capacity-growth factor. Shaped
// after a project-manifest TOML loader pattern
// (cmd/surge/project_manifest.go), decoding into a typed struct and
// validating the decoded keys via the toml package's metadata rather than
// trusting zero values.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"arrayrt/internal/store"
)

// ArrayConfig is the configuration record the engine consumes: at least
// ARRAY_UNINITIALIZED_SIZE and a capacity-growth function, expressed here as
// an exact growth-factor fraction matching store.GrowCapacity's signature.
type ArrayConfig struct {
	UninitializedSize int `toml:"uninitialized_size"`
	GrowthNumerator   int `toml:"growth_numerator"`
	GrowthDenominator int `toml:"growth_denominator"`
}

// fileConfig is the on-disk shape, namespaced under [store] so an
// arrayrt.toml can carry unrelated sections without collision.
type fileConfig struct {
	Array ArrayConfig `toml:"store"`
}

// Default returns the engine's built-in defaults: ARRAY_UNINITIALIZED_SIZE
// 16 and growth factor 3/2.
func Default() ArrayConfig {
	return ArrayConfig{
		UninitializedSize: 16,
		GrowthNumerator:   3,
		GrowthDenominator: 2,
	}
}

// Load reads an arrayrt.toml from path, falling back to Default for any key
// the file leaves unset. A malformed [store] section (present but with a
// non-positive size, or a growth factor below 1.5) is an error rather than a
// silently ignored default, so bad configuration surfaces at startup.
func Load(path string) (ArrayConfig, error) {
	cfg := fileConfig{Array: Default()}
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return ArrayConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if !meta.IsDefined("store") {
		return cfg.Array, nil
	}
	if err := validate(cfg.Array); err != nil {
		return ArrayConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg.Array, nil
}

func validate(c ArrayConfig) error {
	var problems []string
	if c.UninitializedSize <= 0 {
		problems = append(problems, "store.uninitialized_size must be positive")
	}
	if c.GrowthDenominator <= 0 || 2*c.GrowthNumerator < 3*c.GrowthDenominator {
		problems = append(problems, "store.growth_numerator/growth_denominator must express a factor >= 1.5")
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("invalid [store] config: %s", strings.Join(problems, "; "))
}

// Capacity implements the host-runtime's capacity-growth function
// (`capacity(currentSize, requiredSize)`) using this config's factor.
func (c ArrayConfig) Capacity(currentSize, requiredSize int) int {
	return store.GrowCapacity(currentSize, requiredSize, c.GrowthNumerator, c.GrowthDenominator)
}
