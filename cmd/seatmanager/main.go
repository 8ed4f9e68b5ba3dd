// Package main is a seat-management server: the end of the chain, answering ReserveSeat and
// GetSeatStatus from the configured seat store (memory, Postgres or Redis).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"seatrouter/cmd/internal/boot"
	"seatrouter/config"
	"seatrouter/helpers"
	"seatrouter/service"
	"seatrouter/transport"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const defaultConfigPath = "confseatman.txt"

func main() {
	env, err := config.LoadEnv(defaultConfigPath)
	if err != nil {
		level.Error(helpers.NewLogger(os.Stderr, "info")).Log("msg", "Failed to read environment", "err", err)
		os.Exit(1)
	}
	logger := helpers.NewLogger(os.Stderr, env.LogLevel)
	level.Info(logger).Log("msg", "Starting seat-management server", "config", env.ConfigPath)

	if err := run(env, logger); err != nil {
		level.Error(logger).Log("msg", "Seat-management server failed", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log("msg", "Seat-management server stopped")
}

func run(env config.Env, logger log.Logger) error {
	cfg, err := config.LoadServer(env.ConfigPath)
	if err != nil {
		return err
	}
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"listen", cfg.Listen,
		"store", cfg.StoreDriver,
		"max_workers", cfg.MaxWorkers,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := boot.OpenSeatStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := transport.NewServer(cfg.MaxWorkers, logger)
	srv.Register(service.NewSeatManager(store, logger))

	lis, admin, adminLis, err := boot.Listen(cfg, logger)
	if err != nil {
		return err
	}
	return transport.Run(ctx, logger, srv, lis, admin, adminLis)
}
