package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

func parseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error parsing environment: %w", err)
	}
	return nil
}
