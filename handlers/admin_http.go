// Package handlers contains the admin HTTP surface of the routing binaries.
package handlers

import (
	"net/http"

	"seatrouter/domain"
	"seatrouter/helpers"
	"seatrouter/service"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
)

// PoolResponse is the JSON view of one BackendPool.
type PoolResponse struct {
	Tier      domain.Tier             `json:"tier"`
	Live      int                     `json:"live"`
	Endpoints []domain.EndpointStatus `json:"endpoints"`
}

// PoolsResponse is the body of GET /v1/pools.
type PoolsResponse struct {
	Pools []PoolResponse `json:"pools"`
}

// AdminHTTP serves read-only pool snapshots.
type AdminHTTP struct {
	pools  []*service.BackendPool
	logger log.Logger
}

// NewAdminHTTP creates the admin handlers over pools (listed in the given order).
func NewAdminHTTP(logger log.Logger, pools ...*service.BackendPool) *AdminHTTP {
	for _, p := range pools {
		helpers.NilPanic(p, "handlers.admin_http.go: pool is required")
	}
	return &AdminHTTP{
		pools:  pools,
		logger: log.WithPrefix(helpers.NilPanic(logger, "handlers.admin_http.go: logger is required"), "component", "AdminHTTP"),
	}
}

// Register mounts the routes on e.
func (h *AdminHTTP) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.GET("/v1/pools", h.GetPools)
	e.GET("/v1/pools/:tier", h.GetPool)
}

// NewEcho returns an echo instance with the admin routes and the error handler installed.
func NewEcho(h *AdminHTTP, logger log.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	h.Register(e)
	RegisterErrorHandler(e, logger)
	return e
}

// Healthz (GET /healthz) answers 200 while the process serves.
func (h *AdminHTTP) Healthz(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetPools (GET /v1/pools) returns every pool.
func (h *AdminHTTP) GetPools(ectx echo.Context) error {
	out := PoolsResponse{Pools: make([]PoolResponse, 0, len(h.pools))}
	for _, p := range h.pools {
		out.Pools = append(out.Pools, toPoolResponse(p))
	}
	return ectx.JSON(http.StatusOK, out)
}

// GetPool (GET /v1/pools/{tier}) returns one pool, 404 for an unknown tier.
func (h *AdminHTTP) GetPool(ectx echo.Context) error {
	tier := domain.Tier(ectx.Param("tier"))
	for _, p := range h.pools {
		if p.Tier() == tier {
			return ectx.JSON(http.StatusOK, toPoolResponse(p))
		}
	}
	return service.NewEntityNotFoundError("no pool for tier "+string(tier), nil)
}

func toPoolResponse(p *service.BackendPool) PoolResponse {
	snapshot := p.Snapshot()
	live := 0
	for _, ep := range snapshot {
		if ep.Live {
			live++
		}
	}
	return PoolResponse{Tier: p.Tier(), Live: live, Endpoints: snapshot}
}
