// Command useradd creates an account directly in the configured credential
// store. It reads the same configuration as the server.
package main

import (
	"bufio"
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/walletkeeper/internal/cli"
	"github.com/dmitrijs2005/walletkeeper/internal/server"
	"github.com/dmitrijs2005/walletkeeper/internal/server/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("%v", err)
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal("useradd needs a database DSN (-d or WALLET_DATABASE_DSN)")
	}

	app, err := server.NewApp(ctx, cfg, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	if _, err := cli.Useradd(ctx, app.Credentials(), bufio.NewReader(os.Stdin), os.Stdout, int(os.Stdin.Fd())); err != nil {
		app.Close()
		log.Fatalf("%v", err)
	}

}
