// Package main is a reservation server: the middle tier of the chain. Both ReserveSeat and
// GetSeatStatus are forwarded to a live seat-management server; ResponseAnnotation, when set, tags
// every forwarded reservation answer with this server's name.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"seatrouter/cmd/internal/boot"
	"seatrouter/config"
	"seatrouter/domain"
	"seatrouter/helpers"
	"seatrouter/transport"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const defaultConfigPath = "confreserv.txt"

func main() {
	env, err := config.LoadEnv(defaultConfigPath)
	if err != nil {
		level.Error(helpers.NewLogger(os.Stderr, "info")).Log("msg", "Failed to read environment", "err", err)
		os.Exit(1)
	}
	logger := helpers.NewLogger(os.Stderr, env.LogLevel)
	level.Info(logger).Log("msg", "Starting reservation server", "config", env.ConfigPath)

	if err := run(env, logger); err != nil {
		level.Error(logger).Log("msg", "Reservation server failed", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log("msg", "Reservation server stopped")
}

func run(env config.Env, logger log.Logger) error {
	cfg, err := config.LoadServer(env.ConfigPath, domain.TierSeatManagement)
	if err != nil {
		return err
	}
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"listen", cfg.Listen,
		"seat_management_servers", len(cfg.Tiers[domain.TierSeatManagement]),
		"annotation", cfg.ResponseAnnotation,
		"max_workers", cfg.MaxWorkers,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	probeCtx, cancelProbes := context.WithCancel(context.Background())
	defer cancelProbes()

	router, err := boot.NewRouter(probeCtx, cfg, domain.TierSeatManagement, domain.TierSeatManagement, logger)
	if err != nil {
		return err
	}
	defer router.Close()

	srv := transport.NewServer(cfg.MaxWorkers, logger)
	srv.Register(router.Servicer)

	lis, admin, adminLis, err := boot.Listen(cfg, logger, router.Pools...)
	if err != nil {
		return err
	}
	return transport.Run(ctx, logger, srv, lis, admin, adminLis)
}
