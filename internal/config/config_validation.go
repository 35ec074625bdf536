// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Only values that are wrong regardless of the running role are rejected
// here; role-specific requirements live in [ClientConfig.validate] and
// [StructuredConfig.ValidateServer].
func (cfg *StructuredConfig) validate() error {
	s := cfg.Sync
	if s.GraceWindow < 0 || s.RecentWindow < 0 || s.EventTTL < 0 || s.PendingTimeout < 0 || s.KeyShareInterval < 0 {
		return ErrInvalidSyncConfigs
	}

	if cfg.Adapter.PollInterval < 0 || cfg.Adapter.RequestTimeout < 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}

// ValidateServer checks the settings the server cannot start without.
func (cfg *StructuredConfig) ValidateServer() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	app := cfg.App
	if app.TokenSignKey == "" || app.PasswordHashKey == "" || app.TokenIssuer == "" || app.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.KeysDSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Adapter.PollInterval <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
