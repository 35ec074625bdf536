package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "trip-keeper.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestMerge_Empty(t *testing.T) {
	cfg, err := merge()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestMerge_LaterSourceWins(t *testing.T) {
	cfg, err := merge(
		&StructuredConfig{App: App{Version: "1.0.0", TokenIssuer: "env"}},
		&StructuredConfig{App: App{TokenIssuer: "json"}},
	)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "json", cfg.App.TokenIssuer)
}

func TestMerge_RejectsNegativeSyncTimings(t *testing.T) {
	cfg, err := merge(&StructuredConfig{Sync: Sync{GraceWindow: -time.Second}})
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidSyncConfigs)
}

func TestJSONPath_LastNonEmpty(t *testing.T) {
	assert.Empty(t, jsonPath(nil))
	assert.Equal(t, "b.json", jsonPath([]*StructuredConfig{
		{JSONFilePath: "a.json"},
		{JSONFilePath: "b.json"},
		{},
	}))
}

func TestLoader_Load(t *testing.T) {
	payload := fileConfig{}
	payload.App.Version = "json-version"
	payload.Sync.EventTTL = Duration(2 * time.Second)
	path := writeTempJSONConfig(t, payload)

	environ := map[string]string{
		"APP_VERSION":       "env-version",
		"SYNC_GRACE_WINDOW": "7s",
		"SYNC_EVENT_TTL":    "9s",
		"CONFIG":            "/nonexistent/env.json",
	}
	args := []string{"-grace-window", "8s", "-c", path}

	cfg, err := newLoader(environ, args).load()
	require.NoError(t, err)

	// env < flags < json
	assert.Equal(t, "json-version", cfg.App.Version)
	assert.Equal(t, 8*time.Second, cfg.Sync.GraceWindow)
	assert.Equal(t, 2*time.Second, cfg.Sync.EventTTL)
	assert.Equal(t, path, cfg.JSONFilePath)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		environ map[string]string
		args    []string
	}{
		{name: "bad env duration", environ: map[string]string{"SYNC_EVENT_TTL": "soon"}},
		{name: "bad flag", environ: map[string]string{}, args: []string{"-grace-window", "x"}},
		{name: "missing json file", environ: map[string]string{"CONFIG": "/nonexistent/config.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := newLoader(tt.environ, tt.args).load()
			assert.Nil(t, cfg)
			assert.Error(t, err)
		})
	}
}

func TestLoader_Load_NoJSON(t *testing.T) {
	cfg, err := newLoader(map[string]string{"ADAPTER_ADDRESS": "http://localhost:8080"}, nil).load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.Adapter.HTTPAddress)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestNewClientConfig_FillsDefaults(t *testing.T) {
	cfg := newClientConfig(&StructuredConfig{
		Adapter: Adapter{HTTPAddress: "localhost:8080", RequestTimeout: time.Second},
		Storage: Storage{Keys: Keys{DSN: "keys.db"}},
	})

	require.NoError(t, cfg.validate())
	assert.Equal(t, DefaultGraceWindow, cfg.Sync.GraceWindow)
	assert.Equal(t, DefaultRecentWindow, cfg.Sync.RecentWindow)
	assert.Equal(t, DefaultEventTTL, cfg.Sync.EventTTL)
	assert.Equal(t, DefaultPollInterval, cfg.Adapter.PollInterval)
	assert.Equal(t, DefaultKeyShareInterval, cfg.Sync.KeyShareInterval)
	assert.Zero(t, cfg.Sync.PendingTimeout)
}

func TestClientConfig_Validate(t *testing.T) {
	valid := ClientConfig{
		Storage: ClientStorage{KeysDSN: "k.db"},
		Adapter: ClientAdapter{HTTPAddress: "localhost:1", RequestTimeout: time.Second, PollInterval: time.Second},
	}

	tests := []struct {
		name    string
		mutate  func(c *ClientConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*ClientConfig) {}},
		{name: "missing keys dsn", mutate: func(c *ClientConfig) { c.Storage.KeysDSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "missing address", mutate: func(c *ClientConfig) { c.Adapter.HTTPAddress = "" }, wantErr: ErrInvalidAdapterConfigs},
		{name: "zero request timeout", mutate: func(c *ClientConfig) { c.Adapter.RequestTimeout = 0 }, wantErr: ErrInvalidAdapterConfigs},
		{name: "zero poll interval", mutate: func(c *ClientConfig) { c.Adapter.PollInterval = 0 }, wantErr: ErrInvalidAdapterConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestStructuredConfig_ValidateServer(t *testing.T) {
	cfg := &StructuredConfig{}
	assert.ErrorIs(t, cfg.ValidateServer(), ErrInvalidStorageConfigs)

	cfg.Storage.DB.DSN = "postgres://localhost/trips"
	assert.ErrorIs(t, cfg.ValidateServer(), ErrInvalidAppConfigs)

	cfg.App.TokenSignKey = "sign"
	cfg.App.PasswordHashKey = "hash"
	assert.ErrorIs(t, cfg.ValidateServer(), ErrInvalidAppConfigs)

	cfg.App.TokenIssuer = "trip-keeper"
	cfg.App.TokenDuration = time.Hour
	assert.ErrorIs(t, cfg.ValidateServer(), ErrInvalidServerConfigs)

	cfg.Server.HTTPAddress = "localhost:8080"
	assert.NoError(t, cfg.ValidateServer())
}
