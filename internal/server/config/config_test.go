package config

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/walletkeeper/internal/common"
	"github.com/dmitrijs2005/walletkeeper/internal/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Empty(t, c.EndpointAddrGRPC)
	assert.Empty(t, c.DatabaseDSN)
	assert.Empty(t, c.SecretKey)
	assert.Equal(t, 15*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "json", c.LogFormat)
	assert.Equal(t, []string{"*"}, c.CORSAllowedOrigins)
	assert.Equal(t, cryptox.DefaultParams(), c.Argon2)
}

func TestLoadConfig_DefaultsWithoutSources(t *testing.T) {
	c, err := LoadConfig(nil, noEnv)
	require.NoError(t, err)
	require.NotNil(t, c, "LoadConfig must not return nil")

	var want Config
	want.LoadDefaults()
	assert.Equal(t, want, *c)
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"endpoint_addr_http":             ":7000",
		"secret_key":                     "from-json",
		"access_token_validity_duration": "5m",
		"log_level":                      "warn",
	})

	env := envMap(map[string]string{
		EnvSecretKey: "from-env",
		EnvTokenTTL:  "10m",
	})

	c, err := LoadConfig([]string{"-c", path, "-t", "20m"}, env)
	require.NoError(t, err)

	assert.Equal(t, ":7000", c.EndpointAddrHTTP, "json overrides defaults")
	assert.Equal(t, "warn", c.LogLevel, "json overrides defaults")
	assert.Equal(t, "from-env", c.SecretKey, "env overrides json")
	assert.Equal(t, 20*time.Minute, c.AccessTokenValidityDuration, "flags override env")
}

func TestLoadConfig_ErrorsAreConfigurationErrors(t *testing.T) {
	_, err := LoadConfig([]string{"-c", "/does/not/exist.json"}, noEnv)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConfiguration))

	_, err = LoadConfig(nil, envMap(map[string]string{EnvTokenTTL: "forever"}))
	assert.ErrorIs(t, err, common.ErrConfiguration)

	_, err = LoadConfig([]string{"-t", "soon"}, noEnv)
	assert.ErrorIs(t, err, common.ErrConfiguration)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var c Config
		c.LoadDefaults()
		c.SecretKey = "k"
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "empty secret", mutate: func(c *Config) { c.SecretKey = "" }, wantErr: true},
		{name: "zero ttl", mutate: func(c *Config) { c.AccessTokenValidityDuration = 0 }, wantErr: true},
		{name: "negative ttl", mutate: func(c *Config) { c.AccessTokenValidityDuration = -time.Second }, wantErr: true},
		{name: "no http address", mutate: func(c *Config) { c.EndpointAddrHTTP = "" }, wantErr: true},
		{name: "no grpc address is fine", mutate: func(c *Config) { c.EndpointAddrGRPC = "" }},
		{name: "bad argon2", mutate: func(c *Config) { c.Argon2.KeyLen = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrConfiguration)
				return
			}
			assert.NoError(t, err)
		})
	}
}
