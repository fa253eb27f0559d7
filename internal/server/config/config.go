// Package config handles configuration for the server component: defaults,
// an optional JSON file, WALLET_* environment variables and command-line
// flags, applied in that order.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/walletkeeper/internal/common"
	"github.com/dmitrijs2005/walletkeeper/internal/cryptox"
)

// Config holds runtime settings for the walletkeeper server.
//
// Fields:
//   - EndpointAddrHTTP / EndpointAddrGRPC: bind addresses. The gRPC listener
//     only serves the health service and is off unless an address is set.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing tokens (HS256). Required.
//   - AccessTokenValidityDuration: default token lifetime.
//   - LogLevel / LogFormat: see logging.New.
//   - CORSAllowedOrigins: origins allowed to call the HTTP API from a browser.
//   - Argon2: password hashing cost parameters.
type Config struct {
	EndpointAddrHTTP            string
	EndpointAddrGRPC            string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	LogLevel                    string
	LogFormat                   string
	CORSAllowedOrigins          []string
	Argon2                      cryptox.Params
}

// LoadDefaults populates Config with development defaults. SecretKey is left
// empty on purpose so that a server never starts with a guessable secret.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPC = ""
	c.DatabaseDSN = ""
	c.SecretKey = ""
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.CORSAllowedOrigins = []string{"*"}
	c.Argon2 = cryptox.DefaultParams()
}

// Validate reports settings the server cannot start with. All failures wrap
// common.ErrConfiguration.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return fmt.Errorf("%w: secret key is required", common.ErrConfiguration)
	}
	if c.AccessTokenValidityDuration <= 0 {
		return fmt.Errorf("%w: access token validity must be positive", common.ErrConfiguration)
	}
	if c.EndpointAddrHTTP == "" {
		return fmt.Errorf("%w: http endpoint address is required", common.ErrConfiguration)
	}
	if err := c.Argon2.Validate(); err != nil {
		return err
	}
	return nil
}

// LoadConfig builds a Config from defaults, then overlays values from an
// optional JSON file, the environment and finally the command-line flags in
// args (without the program name).
func LoadConfig(args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, getenv); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is LoadConfig over the process arguments and environment.
func Load() (*Config, error) {
	return LoadConfig(os.Args[1:], os.Getenv)
}
