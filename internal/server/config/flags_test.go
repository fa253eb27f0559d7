package config

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/walletkeeper/internal/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:8080", "-g", "127.0.0.1:9090", "-d", "db", "-s", "secret",
				"-t", "90s", "-l", "debug", "-f", "text", "-o", "https://a.example, https://b.example",
			},
			expected: &Config{
				EndpointAddrHTTP:            "127.0.0.1:8080",
				EndpointAddrGRPC:            "127.0.0.1:9090",
				DatabaseDSN:                 "db",
				SecretKey:                   "secret",
				AccessTokenValidityDuration: 90 * time.Second,
				LogLevel:                    "debug",
				LogFormat:                   "text",
				CORSAllowedOrigins:          []string{"https://a.example", "https://b.example"},
			},
		},
		{
			name: "foreign flags ignored",
			args: []string{"-c", "cfg.json", "-x", "1", "-s", "secret"},
			expected: &Config{
				SecretKey: "secret",
			},
		},
		{
			name: "equals form",
			args: []string{"-s=k", "-t=1h"},
			expected: &Config{
				SecretKey:                   "k",
				AccessTokenValidityDuration: time.Hour,
			},
		},
		{
			name:    "bad duration",
			args:    []string{"-t", "3"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}

			err := parseFlags(config, tt.args)
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrConfiguration)
				return
			}

			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
