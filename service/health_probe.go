package service

import (
	"context"
	"time"

	"seatrouter/helpers"
	"seatrouter/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	DefaultProbeInterval = time.Second
	DefaultProbeTimeout  = time.Second
)

// ProbeSettings controls how often an endpoint is re-tested and how long one attempt may take.
type ProbeSettings struct {
	Interval time.Duration
	Timeout  time.Duration
}

// DefaultProbeSettings returns 1s interval and 1s timeout.
func DefaultProbeSettings() ProbeSettings {
	return ProbeSettings{Interval: DefaultProbeInterval, Timeout: DefaultProbeTimeout}
}

// HealthProbe keeps the liveness flag of one endpoint current. Every interval it runs one
// connectivity check bounded by the timeout: success marks the endpoint live, an error or timeout
// marks it down. There is no backoff and no flap damping; a single failed attempt takes the
// endpoint out of rotation and a single successful one puts it back.
//
// The check runs without holding the pool mutex (it blocks for up to the timeout); only the
// resulting flag is written under it, through BackendPool.SetLive.
type HealthProbe struct {
	pool     *BackendPool
	endpoint *Endpoint
	checker  interfaces.ConnectivityChecker
	settings ProbeSettings
	logger   log.Logger
}

// NewHealthProbe creates the probe for ep. Non-positive settings fall back to the defaults.
//
// Called from BackendPool.StartProbes.
func NewHealthProbe(pool *BackendPool, ep *Endpoint, checker interfaces.ConnectivityChecker, settings ProbeSettings, logger log.Logger) *HealthProbe {
	if settings.Interval <= 0 {
		settings.Interval = DefaultProbeInterval
	}
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultProbeTimeout
	}
	ep = helpers.NilPanic(ep, "service.health_probe.go: endpoint is required")
	return &HealthProbe{
		pool:     helpers.NilPanic(pool, "service.health_probe.go: pool is required"),
		endpoint: ep,
		checker:  helpers.NilPanic(checker, "service.health_probe.go: checker is required"),
		settings: settings,
		logger: log.With(helpers.NilPanic(logger, "service.health_probe.go: logger is required"),
			"endpoint", ep.index, "address", ep.address),
	}
}

// Run loops until ctx is cancelled: sleep one interval, then ProbeOnce.
func (h *HealthProbe) Run(ctx context.Context) {
	timer := time.NewTimer(h.settings.Interval)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		h.ProbeOnce(ctx)
		timer.Reset(h.settings.Interval)
	}
}

// ProbeOnce runs a single check and records the result.
//
// Returns: the liveness now recorded for the endpoint. When ctx itself is cancelled during the
// check (shutdown) nothing is recorded and the previous flag is returned.
func (h *HealthProbe) ProbeOnce(ctx context.Context) bool {
	checkCtx, cancel := context.WithTimeout(ctx, h.settings.Timeout)
	err := h.checker.Check(checkCtx, h.endpoint.conn)
	cancel()
	if ctx.Err() != nil {
		return h.pool.IsLive(h.endpoint)
	}

	live := err == nil
	if h.pool.SetLive(h.endpoint, live) {
		if live {
			level.Info(h.logger).Log("msg", "endpoint is back up", "live", h.pool.LiveCount())
		} else {
			level.Warn(h.logger).Log("msg", "endpoint is down", "err", err, "live", h.pool.LiveCount())
		}
	}
	return live
}
