package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/trip-keeper/internal/config"
	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppInfoService(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr error
	}{
		{name: "release", version: "1.0.0"},
		{name: "pre-release with build", version: "v1.2.3-beta+build.42"},
		{name: "no version", version: "", wantErr: ErrVersionIsNotSpecified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewAppInfoService(config.App{Version: tt.version}, logger.Nop())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.version, svc.GetAppInfo(context.Background()).Version)
		})
	}
}

func TestGetAppInfo_StartTimeIsFixed(t *testing.T) {
	before := time.Now().UTC().Add(-time.Second)
	svc, err := NewAppInfoService(config.App{Version: "0.3.0"}, logger.Nop())
	require.NoError(t, err)

	first := svc.GetAppInfo(context.Background())
	second := svc.GetAppInfo(context.Background())

	assert.Equal(t, first, second)
	assert.True(t, first.StartedAt.After(before))
	assert.Equal(t, time.UTC, first.StartedAt.Location())
}
