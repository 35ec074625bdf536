// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv reads a StructuredConfig from environ, keyed by the env and
// envPrefix tags. A nil environ means the process environment.
func parseEnv(environ map[string]string) (*StructuredConfig, error) {
	cfg := new(StructuredConfig)
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
