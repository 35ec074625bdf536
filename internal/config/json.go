package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// fileConfig is the JSON file layout. Durations are written as Go duration
// strings ("30s") or as integer nanoseconds.
type fileConfig struct {
	App     fileApp     `json:"app"`
	Storage fileStorage `json:"storage"`
	Server  fileServer  `json:"server"`
	Adapter fileAdapter `json:"adapter"`
	Sync    fileSync    `json:"sync"`
}

type fileApp struct {
	PasswordHashKey string   `json:"password_hash_key"`
	TokenSignKey    string   `json:"token_sign_key"`
	TokenIssuer     string   `json:"token_issuer"`
	TokenDuration   Duration `json:"token_duration"`
	Version         string   `json:"version"`
}

type fileDSN struct {
	DSN string `json:"dsn"`
}

type fileStorage struct {
	DB   fileDSN `json:"db"`
	Keys fileDSN `json:"keys"`
}

type fileServer struct {
	HTTPAddress    string   `json:"http_address"`
	GRPCAddress    string   `json:"grpc_address"`
	RequestTimeout Duration `json:"request_timeout"`
}

type fileAdapter struct {
	HTTPAddress    string   `json:"http_address"`
	RequestTimeout Duration `json:"request_timeout"`
	PollInterval   Duration `json:"poll_interval"`
}

type fileSync struct {
	GraceWindow      Duration `json:"grace_window"`
	RecentWindow     Duration `json:"recent_window"`
	EventTTL         Duration `json:"event_ttl"`
	PendingTimeout   Duration `json:"pending_timeout"`
	KeyShareInterval Duration `json:"key_share_interval"`
}

func (f fileConfig) structured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			PasswordHashKey: f.App.PasswordHashKey,
			TokenSignKey:    f.App.TokenSignKey,
			TokenIssuer:     f.App.TokenIssuer,
			TokenDuration:   f.App.TokenDuration.std(),
			Version:         f.App.Version,
		},
		Storage: Storage{
			DB:   DB{DSN: f.Storage.DB.DSN},
			Keys: Keys{DSN: f.Storage.Keys.DSN},
		},
		Server: Server{
			HTTPAddress:    f.Server.HTTPAddress,
			GRPCAddress:    f.Server.GRPCAddress,
			RequestTimeout: f.Server.RequestTimeout.std(),
		},
		Adapter: Adapter{
			HTTPAddress:    f.Adapter.HTTPAddress,
			RequestTimeout: f.Adapter.RequestTimeout.std(),
			PollInterval:   f.Adapter.PollInterval.std(),
		},
		Sync: Sync{
			GraceWindow:      f.Sync.GraceWindow.std(),
			RecentWindow:     f.Sync.RecentWindow.std(),
			EventTTL:         f.Sync.EventTTL.std(),
			PendingTimeout:   f.Sync.PendingTimeout.std(),
			KeyShareInterval: f.Sync.KeyShareInterval.std(),
		},
	}
}

// readConfigFile loads the JSON file at path. Unknown keys are an error so a
// typo does not silently fall back to a default.
func readConfigFile(path string) (*StructuredConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer file.Close()

	dec := json.NewDecoder(file)
	dec.DisallowUnknownFields()

	var f fileConfig
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return f.structured(), nil
}

// Duration accepts "1h30m" as well as a bare number of nanoseconds.
type Duration time.Duration

func (d Duration) std() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var n int64
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("invalid duration %s", b)
		}
		*d = Duration(n)
		return nil
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.std().String())
}
