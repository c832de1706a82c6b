package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/thereayou/netsentinel/cmd/server"
	"github.com/thereayou/netsentinel/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Config load failed")
	}

	srv, err := server.NewServer(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Server init failed")
	}

	if err := srv.Run(ctx); err != nil {
		logrus.WithError(err).Fatal("Server run error")
	}
}
