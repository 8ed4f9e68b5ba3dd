package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"seatrouter/domain"
	"seatrouter/helpers"
	"seatrouter/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"google.golang.org/grpc"
)

// Endpoint is one backend instance of a tier: its configured address, the long-lived connection
// created at startup (reused for every forwarded call and every probe) and the client bound to it.
// Liveness is not stored here but in the owning BackendPool, under the pool mutex.
type Endpoint struct {
	tier    domain.Tier
	index   int
	address domain.Address
	conn    *grpc.ClientConn
	client  interfaces.BackendClient
}

// NewEndpoint creates an Endpoint. index is the 1-based position in configuration order. conn may
// be nil in tests that never probe or close the endpoint; client is required.
//
// Called from BuildPool.
func NewEndpoint(tier domain.Tier, index int, address domain.Address, conn *grpc.ClientConn, client interfaces.BackendClient) *Endpoint {
	return &Endpoint{
		tier:    tier,
		index:   index,
		address: address,
		conn:    conn,
		client:  helpers.NilPanic(client, "service.backend_pool.go: client is required"),
	}
}

func (e *Endpoint) Tier() domain.Tier { return e.tier }
func (e *Endpoint) Index() int { return e.index }
func (e *Endpoint) Address() domain.Address { return e.address }
func (e *Endpoint) Conn() *grpc.ClientConn { return e.conn }

func (e *Endpoint) String() string {
	return fmt.Sprintf("%s#%d(%s)", e.tier, e.index, e.address)
}

// BackendPool is the fixed, ordered set of endpoints of one tier with a liveness flag per endpoint
// and a round-robin cursor over the live subset. Membership never changes after construction;
// only liveness does, and only through SetLive (called by the HealthProbe of each endpoint).
//
// Fields under mu: live (liveness per endpoint, same order as endpoints), cursor (index within the
// live subset of the last endpoint chosen, -1 before the first selection).
type BackendPool struct {
	tier      domain.Tier
	endpoints []*Endpoint
	logger    log.Logger

	mu     sync.Mutex
	live   []bool
	cursor int
}

// NewBackendPool creates a pool for one tier. Every endpoint starts live so traffic flows before
// the first probe round; a dead instance is taken out by its probe after one interval.
//
// Parameters: tier is the tier every endpoint belongs to; endpoints are in configuration order and
// all belong to tier (an empty pool is valid and always answers unavailable); logger is required.
//
// Called from BuildPool and tests.
func NewBackendPool(tier domain.Tier, endpoints []*Endpoint, logger log.Logger) *BackendPool {
	live := make([]bool, len(endpoints))
	for i, ep := range endpoints {
		helpers.NilPanic(ep, "service.backend_pool.go: endpoint is required")
		if ep.tier != tier {
			panic(fmt.Sprintf("service.backend_pool.go: endpoint %s does not belong to tier %s", ep, tier))
		}
		live[i] = true
	}
	return &BackendPool{
		tier:      tier,
		endpoints: endpoints,
		logger:    log.With(helpers.NilPanic(logger, "service.backend_pool.go: logger is required"), "component", "backend_pool", "tier", tier),
		live:      live,
		cursor:    -1,
	}
}

// Tier returns the tier the pool serves.
func (p *BackendPool) Tier() domain.Tier { return p.tier }

// Endpoints returns the endpoints in configuration order. The slice is a copy.
func (p *BackendPool) Endpoints() []*Endpoint {
	out := make([]*Endpoint, len(p.endpoints))
	copy(out, p.endpoints)
	return out
}

// SelectNext returns the next live endpoint in round-robin order.
//
// The live subset is recomputed from the current flags on every call (configuration order), then
// the cursor advances by one modulo its size. With [A, B, C] all live the sequence is A, B, C, A;
// with B down it is A, C, A. A flag flipped by a probe is seen by the very next call.
//
// Returns: (endpoint, true), or (nil, false) when no endpoint is live; the cursor is left
// untouched in that case.
//
// Called from TierRouter for every routed call.
func (p *BackendPool) SelectNext() (*Endpoint, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	alive := make([]*Endpoint, 0, len(p.endpoints))
	for i, ep := range p.endpoints {
		if p.live[i] {
			alive = append(alive, ep)
		}
	}
	if len(alive) == 0 {
		return nil, false
	}
	p.cursor = (p.cursor + 1) % len(alive)
	return alive[p.cursor], true
}

// SetLive records the liveness of ep.
//
// Returns: true when the flag actually changed (used to log transitions once). Endpoints that do
// not belong to this pool are ignored (false).
//
// Called from HealthProbe.ProbeOnce.
func (p *BackendPool) SetLive(ep *Endpoint, live bool) bool {
	i := p.indexOf(ep)
	if i < 0 {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.live[i] == live {
		return false
	}
	p.live[i] = live
	return true
}

// IsLive reports the current liveness of ep (false for foreign endpoints).
func (p *BackendPool) IsLive(ep *Endpoint) bool {
	i := p.indexOf(ep)
	if i < 0 {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.live[i]
}

// LiveCount returns how many endpoints are currently live.
func (p *BackendPool) LiveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, l := range p.live {
		if l {
			n++
		}
	}
	return n
}

// Snapshot returns a point-in-time view of every endpoint, in configuration order.
//
// Called from handlers.AdminHTTP and the startup log of the binaries.
func (p *BackendPool) Snapshot() []domain.EndpointStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.EndpointStatus, len(p.endpoints))
	for i, ep := range p.endpoints {
		out[i] = domain.EndpointStatus{
			Tier:    p.tier,
			Index:   ep.index,
			Address: ep.address.String(),
			Live:    p.live[i],
		}
	}
	return out
}

// StartProbes starts one HealthProbe goroutine per endpoint. The goroutines stop when ctx is
// cancelled; nothing waits for them.
//
// Called from the binaries right after the pools are built.
func (p *BackendPool) StartProbes(ctx context.Context, checker interfaces.ConnectivityChecker, settings ProbeSettings) {
	for _, ep := range p.endpoints {
		probe := NewHealthProbe(p, ep, checker, settings, p.logger)
		go probe.Run(ctx)
	}
	level.Info(p.logger).Log(
		"msg", "health probes started",
		"endpoints", len(p.endpoints),
		"interval", settings.Interval,
		"timeout", settings.Timeout,
	)
}

// Close closes every endpoint connection. Errors are joined.
func (p *BackendPool) Close() error {
	var errs []error
	for _, ep := range p.endpoints {
		if ep.conn == nil {
			continue
		}
		if err := ep.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", ep, err))
		}
	}
	return errors.Join(errs...)
}

func (p *BackendPool) indexOf(ep *Endpoint) int {
	for i, e := range p.endpoints {
		if e == ep {
			return i
		}
	}
	return -1
}
