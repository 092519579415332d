// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables into target.
//
// Prefix is applied to every `env` tag, which lets tests parse a config struct
// in isolation from the real process environment.
func ParseEnv(target any) error {
	return ParseEnvWithPrefix(target, "")
}

// ParseEnvWithPrefix loads configuration from environment variables whose
// names start with prefix.
func ParseEnvWithPrefix(target any, prefix string) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: prefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
