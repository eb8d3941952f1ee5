// Package config loads process configuration shared by skillbar binaries.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from the process environment.
func ParseEnv(target any) error {
	return ParseEnvWithOptions(target, env.Options{})
}

// ParseEnvWithOptions loads configuration using explicit env options, such as
// an injected environment map or a key prefix.
func ParseEnvWithOptions(target any, opts env.Options) error {
	if target == nil {
		return fmt.Errorf("parse env: target is required")
	}
	if err := env.ParseWithOptions(target, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
