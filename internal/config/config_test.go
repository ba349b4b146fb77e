package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSessionSecret(t *testing.T) {
	logger := zap.NewNop()
	longSecret := strings.Repeat("s", 32)

	tests := []struct {
		name    string
		env     Environment
		secret  string
		want    string
		wantErr bool
	}{
		{
			name:   "production with strong secret",
			env:    EnvProduction,
			secret: longSecret,
			want:   longSecret,
		},
		{
			name:    "production with missing secret fails",
			env:     EnvProduction,
			secret:  "",
			wantErr: true,
		},
		{
			name:    "production with short secret fails",
			env:     EnvProduction,
			secret:  "short",
			wantErr: true,
		},
		{
			name:   "development with strong secret uses it",
			env:    EnvDevelopment,
			secret: longSecret,
			want:   longSecret,
		},
		{
			name:   "development with missing secret falls back",
			env:    EnvDevelopment,
			secret: "",
			want:   devFallbackSecret,
		},
		{
			name:   "development with short secret falls back",
			env:    EnvDevelopment,
			secret: "short",
			want:   devFallbackSecret,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := AuthConfig{Environment: tt.env, Secret: tt.secret}
			got, err := cfg.SessionSecret(logger)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEnvironment(t *testing.T) {
	assert.Equal(t, EnvProduction, parseEnvironment("production"))
	assert.Equal(t, EnvProduction, parseEnvironment("PROD"))
	assert.Equal(t, EnvDevelopment, parseEnvironment("development"))
	assert.Equal(t, EnvDevelopment, parseEnvironment(""))
	assert.Equal(t, EnvDevelopment, parseEnvironment("staging"))
}
