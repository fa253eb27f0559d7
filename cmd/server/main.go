package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/walletkeeper/internal/server"
	"github.com/dmitrijs2005/walletkeeper/internal/server/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := server.NewApp(ctx, cfg, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
