package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/walletkeeper/internal/common"
	"github.com/dmitrijs2005/walletkeeper/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string     HTTP bind address (e.g. ":8080")
//	-g string     gRPC bind address, empty disables gRPC
//	-d string     PostgreSQL DSN, empty selects the in-memory store
//	-s string     token signing secret
//	-t duration   access token validity (e.g. "15m")
//	-l string     log level: debug, info, warn, error
//	-f string     log format: json, text, console
//	-o string     comma-separated CORS allowed origins
//
// Only the flags listed here are parsed (see flagx.FilterArgs), so -c/-config
// and flags meant for other loaders do not cause errors.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-s", "-t", "-l", "-f", "-o"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port to run server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC health listener address, empty disables it")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")
	fs.DurationVar(&config.AccessTokenValidityDuration, "t", config.AccessTokenValidityDuration, "access token validity")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format")
	origins := fs.String("o", "", "CORS allowed origins (comma separated)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", common.ErrConfiguration, err)
	}

	if *origins != "" {
		config.CORSAllowedOrigins = splitList(*origins)
	}

	return nil
}
