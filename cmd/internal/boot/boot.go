// Package boot wires the configuration of a server binary into running components. It is shared
// by the main packages under cmd/.
package boot

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"seatrouter/adapters/probe"
	"seatrouter/config"
	"seatrouter/domain"
	"seatrouter/handlers"
	"seatrouter/service"
	"seatrouter/transport"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// Router is a routing tier server ready to run: the dispatcher or a reservation server.
type Router struct {
	Servicer *service.DispatchServicer
	Pools    []*service.BackendPool
}

// NewRouter builds one pool per distinct tier of reserveTier and statusTier, starts their probes
// under probeCtx and creates the servicer. The caller closes the pools.
//
// Called from cmd/dispatcher (reservation + seat management) and cmd/reservation (seat management
// for both operations).
func NewRouter(probeCtx context.Context, cfg *config.Config, reserveTier, statusTier domain.Tier, logger log.Logger) (*Router, error) {
	checker, err := probe.NewChecker(cfg.ProbeMode)
	if err != nil {
		return nil, config.KeyError{Key: config.KeyProbeMode, Reason: err.Error()}
	}
	settings := service.ProbeSettings{Interval: cfg.ProbeInterval, Timeout: cfg.ProbeTimeout}

	r := &Router{}
	routers := make(map[domain.Tier]*service.TierRouter, 2)
	for _, tier := range []domain.Tier{reserveTier, statusTier} {
		if _, ok := routers[tier]; ok {
			continue
		}
		pool, err := service.BuildPool(tier, cfg.Tiers[tier], transport.Dial, logger)
		if err != nil {
			r.Close()
			return nil, err
		}
		r.Pools = append(r.Pools, pool)
		pool.StartProbes(probeCtx, checker, settings)
		level.Info(logger).Log("msg", "Backend pool ready", "tier", tier, "endpoints", len(pool.Endpoints()))
		routers[tier] = service.NewTierRouter(pool, logger)
	}
	r.Servicer = service.NewDispatchServicer(routers[reserveTier], routers[statusTier], cfg.ResponseAnnotation, logger)
	return r, nil
}

// Close closes the connections of every pool.
func (r *Router) Close() {
	for _, p := range r.Pools {
		_ = p.Close()
	}
}

// Listen opens the gRPC listener on cfg.Listen and, when AdminPort is set, the admin listener on
// the same host with an echo instance serving pools.
func Listen(cfg *config.Config, logger log.Logger, pools ...*service.BackendPool) (lis net.Listener, admin *echo.Echo, adminLis net.Listener, err error) {
	lis, err = net.Listen("tcp", cfg.Listen.String())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("listen %s: %w", cfg.Listen, err)
	}
	if cfg.AdminPort == 0 {
		return lis, nil, nil, nil
	}
	adminAddr := net.JoinHostPort(cfg.Listen.Host, strconv.Itoa(cfg.AdminPort))
	adminLis, err = net.Listen("tcp", adminAddr)
	if err != nil {
		_ = lis.Close()
		return nil, nil, nil, fmt.Errorf("listen admin %s: %w", adminAddr, err)
	}
	return lis, handlers.NewEcho(handlers.NewAdminHTTP(logger, pools...), logger), adminLis, nil
}
