package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr error
	}{
		{header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{header: "bearer abc", want: "abc"},
		{header: "Bearer  abc ", want: "abc"},
		{header: "Basic abc", wantErr: ErrInvalidAuthorizationHeader},
		{header: "Token abc", wantErr: ErrInvalidAuthorizationHeader},
		{header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{header: "Bearer ", wantErr: ErrInvalidAuthorizationHeader},
		{header: "", wantErr: ErrEmptyAuthorizationHeader},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
