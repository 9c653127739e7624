package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/client/cli"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/client/config"
)

func main() {
	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.Run(ctx)
}
