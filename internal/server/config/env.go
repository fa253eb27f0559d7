package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/walletkeeper/internal/common"
)

// Environment variables recognized by parseEnv.
const (
	EnvHTTPAddr    = "WALLET_HTTP_ADDR"
	EnvGRPCAddr    = "WALLET_GRPC_ADDR"
	EnvDatabaseDSN = "WALLET_DATABASE_DSN"
	EnvSecretKey   = "WALLET_SECRET_KEY"
	EnvTokenTTL    = "WALLET_TOKEN_TTL"
	EnvLogLevel    = "WALLET_LOG_LEVEL"
	EnvLogFormat   = "WALLET_LOG_FORMAT"
	EnvCORSOrigins = "WALLET_CORS_ORIGINS"
)

// parseEnv overlays non-empty WALLET_* variables. WALLET_TOKEN_TTL takes a
// Go duration string; WALLET_CORS_ORIGINS a comma-separated list.
func parseEnv(config *Config, getenv func(string) string) error {
	if getenv == nil {
		return nil
	}

	setString := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	setString(&config.EndpointAddrHTTP, EnvHTTPAddr)
	setString(&config.EndpointAddrGRPC, EnvGRPCAddr)
	setString(&config.DatabaseDSN, EnvDatabaseDSN)
	setString(&config.SecretKey, EnvSecretKey)
	setString(&config.LogLevel, EnvLogLevel)
	setString(&config.LogFormat, EnvLogFormat)

	if v := getenv(EnvTokenTTL); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", common.ErrConfiguration, EnvTokenTTL, err)
		}
		config.AccessTokenValidityDuration = d
	}

	if v := getenv(EnvCORSOrigins); v != "" {
		config.CORSAllowedOrigins = splitList(v)
	}

	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
