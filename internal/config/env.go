package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every environment variable read by ApplyEnv,
// e.g. ICEBREAKER_API_URL or ICEBREAKER_LOG_LEVEL.
const EnvPrefix = "ICEBREAKER_"

// ApplyEnv overrides cfg with any ICEBREAKER_* environment variables that are set.
// Unset variables leave the corresponding field untouched.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	return nil
}
