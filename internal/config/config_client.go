package config

import (
	"fmt"
	"time"
)

// Default sync timings applied when no source sets them.
const (
	DefaultGraceWindow      = 5 * time.Second
	DefaultRecentWindow     = 10 * time.Second
	DefaultEventTTL         = 3 * time.Second
	DefaultPollInterval     = time.Second
	DefaultKeyShareInterval = time.Minute
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the HTTP endpoint address used by the client.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// PollInterval defines how often a subscription re-reads its collection.
	PollInterval time.Duration
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// KeysDSN is the SQLite file holding raw key material of this device.
	KeysDSN string
}

// ClientSync holds reconciliation timings.
type ClientSync struct {
	GraceWindow    time.Duration
	RecentWindow   time.Duration
	EventTTL       time.Duration
	PendingTimeout time.Duration
	// KeyShareInterval drives the background retry of pending key shares.
	KeyShareInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains client transport address and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Sync contains reconciliation timings.
	Sync ClientSync
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, fills sync defaults and validates the
// resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	if err := clientCfg.validate(); err != nil {
		return nil, err
	}

	return clientCfg, nil
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			PollInterval:   cfg.Adapter.PollInterval,
		},
		Storage: ClientStorage{
			KeysDSN: cfg.Storage.Keys.DSN,
		},
		Sync: ClientSync{
			GraceWindow:      cfg.Sync.GraceWindow,
			RecentWindow:     cfg.Sync.RecentWindow,
			EventTTL:         cfg.Sync.EventTTL,
			PendingTimeout:   cfg.Sync.PendingTimeout,
			KeyShareInterval: cfg.Sync.KeyShareInterval,
		},
	}

	if clientCfg.Adapter.PollInterval == 0 {
		clientCfg.Adapter.PollInterval = DefaultPollInterval
	}
	if clientCfg.Sync.GraceWindow == 0 {
		clientCfg.Sync.GraceWindow = DefaultGraceWindow
	}
	if clientCfg.Sync.RecentWindow == 0 {
		clientCfg.Sync.RecentWindow = DefaultRecentWindow
	}
	if clientCfg.Sync.EventTTL == 0 {
		clientCfg.Sync.EventTTL = DefaultEventTTL
	}
	if clientCfg.Sync.KeyShareInterval == 0 {
		clientCfg.Sync.KeyShareInterval = DefaultKeyShareInterval
	}

	return clientCfg
}
