// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is everything either binary can be configured with. The
// env names are the envPrefix chain plus the field tag, e.g. SYNC_EVENT_TTL.
type StructuredConfig struct {
	App     App     `envPrefix:"APP_"`
	Storage Storage `envPrefix:"STORAGE_"`
	Server  Server  `envPrefix:"SERVER_"`
	Adapter Adapter `envPrefix:"ADAPTER_"`
	Sync    Sync    `envPrefix:"SYNC_"`

	// JSONFilePath comes from CONFIG or -c/-config.
	JSONFilePath string `env:"CONFIG"`
}

type App struct {
	PasswordHashKey string        `env:"PASSWORD_HASH_KEY"`
	TokenSignKey    string        `env:"TOKEN_SIGN_KEY"`
	TokenIssuer     string        `env:"TOKEN_ISSUER"`
	TokenDuration   time.Duration `env:"TOKEN_DURATION"`
	Version         string        `env:"VERSION"`
}

type Storage struct {
	DB   DB   `envPrefix:"DB_"`
	Keys Keys `envPrefix:"KEYS_"`
}

// DB is the server's Postgres connection.
type DB struct {
	DSN string `env:"DATABASE_URI"`
}

// Keys is the client SQLite file holding raw master and trip keys. It never
// leaves the device.
type Keys struct {
	DSN string `env:"DSN"`
}

// Server is the listening side. GRPCAddress serves only the health service.
type Server struct {
	HTTPAddress    string        `env:"ADDRESS"`
	GRPCAddress    string        `env:"GRPC_ADDRESS"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter is the client's connection to the server. PollInterval drives
// collection subscriptions.
type Adapter struct {
	HTTPAddress    string        `env:"ADDRESS"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	PollInterval   time.Duration `env:"POLL_INTERVAL"`
}

// Sync tunes itinerary reconciliation.
type Sync struct {
	// GraceWindow is how far apart a pending stop and its confirmed copy may
	// be created and still be paired first.
	GraceWindow time.Duration `env:"GRACE_WINDOW"`
	// RecentWindow hides "added" events for the local user's own fresh stops.
	RecentWindow time.Duration `env:"RECENT_WINDOW"`
	EventTTL     time.Duration `env:"EVENT_TTL"`
	// PendingTimeout of zero keeps unconfirmed stops forever.
	PendingTimeout   time.Duration `env:"PENDING_TIMEOUT"`
	KeyShareInterval time.Duration `env:"KEY_SHARE_INTERVAL"`
}

// GetStructuredConfig loads env, then flags, then the JSON file. Later
// sources win.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newLoader(nil, os.Args[1:]).load()
}
