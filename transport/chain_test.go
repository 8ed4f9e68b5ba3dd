package transport

import (
	"context"
	"testing"
	"time"

	"seatrouter/adapters/memory"
	"seatrouter/adapters/probe"
	"seatrouter/api"
	"seatrouter/config"
	"seatrouter/domain"
	"seatrouter/service"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastProbes = service.ProbeSettings{Interval: 20 * time.Millisecond, Timeout: 200 * time.Millisecond}

type runningServer struct {
	addr   domain.Address
	cancel context.CancelFunc
	done   chan struct{}
}

func (r *runningServer) stop(t *testing.T) {
	t.Helper()
	r.cancel()
	select {
	case <-r.done:
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("server did not stop")
	}
}

func startServer(t *testing.T, impl api.ReservationServiceServer) *runningServer {
	t.Helper()
	lis, addr := listen(t)
	srv := NewServer(10, log.NewNopLogger())
	srv.Register(impl)
	ctx, cancel := context.WithCancel(context.Background())
	r := &runningServer{addr: addr, cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(r.done)
		_ = srv.Serve(ctx, lis)
	}()
	t.Cleanup(func() {
		cancel()
		<-r.done
	})
	return r
}

func startPool(t *testing.T, tier domain.Tier, addrs ...domain.Address) *service.BackendPool {
	t.Helper()
	pool, err := service.BuildPool(tier, addrs, Dial, log.NewNopLogger())
	require.NoError(t, err)
	checker, err := probe.NewChecker(probe.ModeConnectivity)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	pool.StartProbes(ctx, checker, fastProbes)
	t.Cleanup(func() {
		cancel()
		_ = pool.Close()
	})
	return pool
}

// chain is client -> dispatcher -> 2 reservation servers -> 2 seat managers sharing one store.
type chain struct {
	dispatcher  *runningServer
	seatServers []*runningServer
	resServers  []*runningServer
	reservePool *service.BackendPool
	client      api.ReservationServiceClient
}

func startChain(t *testing.T) *chain {
	t.Helper()
	store := memory.NewSeatStore(config.DefaultRooms(10))
	c := &chain{}

	var seatAddrs []domain.Address
	for range 2 {
		s := startServer(t, service.NewSeatManager(store, log.NewNopLogger()))
		c.seatServers = append(c.seatServers, s)
		seatAddrs = append(seatAddrs, s.addr)
	}

	var resAddrs []domain.Address
	for i := range 2 {
		router := service.NewTierRouter(startPool(t, domain.TierSeatManagement, seatAddrs...), log.NewNopLogger())
		annotation := []string{"server 1", "server 2"}[i]
		s := startServer(t, service.NewDispatchServicer(router, router, annotation, log.NewNopLogger()))
		c.resServers = append(c.resServers, s)
		resAddrs = append(resAddrs, s.addr)
	}

	c.reservePool = startPool(t, domain.TierReservation, resAddrs...)
	c.dispatcher = startServer(t, service.NewDispatchServicer(
		service.NewTierRouter(c.reservePool, log.NewNopLogger()),
		service.NewTierRouter(startPool(t, domain.TierSeatManagement, seatAddrs...), log.NewNopLogger()),
		"",
		log.NewNopLogger(),
	))

	conn, err := Dial(c.dispatcher.addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	c.client = api.NewReservationServiceClient(conn)
	return c
}

func callCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestChain_reserveAndStatus(t *testing.T) {
	c := startChain(t)

	resp, err := c.client.ReserveSeat(callCtx(t), &api.ReservationRequest{CustomerName: "Ann", SeatNumber: 3})
	require.NoError(t, err)
	assert.True(t, resp.GetSuccess())
	assert.Equal(t, "Room 3 successfully reserved for Ann. (server 1)", resp.GetMessage())

	resp, err = c.client.ReserveSeat(callCtx(t), &api.ReservationRequest{CustomerName: "Bo", SeatNumber: 3})
	require.NoError(t, err)
	assert.False(t, resp.GetSuccess())
	assert.Equal(t, "Room 3 is already occupied. (server 2)", resp.GetMessage())

	stream, err := c.client.GetSeatStatus(callCtx(t), &api.SeatListRequest{})
	require.NoError(t, err)
	var got []*api.SeatStatus
	for {
		st, err := stream.Recv()
		if err != nil {
			break
		}
		got = append(got, st)
	}
	require.Len(t, got, 10)
	for i, st := range got {
		assert.Equal(t, int32(i+1), st.GetSeatNumber())
	}
	assert.Equal(t, domain.StatusOccupied, got[2].GetStatus())
	assert.Equal(t, domain.StatusFree, got[0].GetStatus())
}

func TestChain_failover(t *testing.T) {
	c := startChain(t)

	c.resServers[0].stop(t)
	dead := c.reservePool.Endpoints()[0]
	require.Eventually(t, func() bool { return !c.reservePool.IsLive(dead) }, 3*time.Second, 20*time.Millisecond)

	for i := range 4 {
		resp, err := c.client.ReserveSeat(callCtx(t), &api.ReservationRequest{CustomerName: "Bo", SeatNumber: int32(i + 1)})
		require.NoError(t, err)
		assert.Contains(t, resp.GetMessage(), "(server 2)", "only the surviving reservation server is used")
	}

	_, err := c.client.Ping(callCtx(t), &api.PingRequest{})
	assert.NoError(t, err)
}

func TestChain_seatManagementTierDown(t *testing.T) {
	c := startChain(t)
	for _, s := range c.seatServers {
		s.stop(t)
	}

	want := domain.UnavailableMessage(domain.TierSeatManagement)
	require.Eventually(t, func() bool {
		stream, err := c.client.GetSeatStatus(callCtx(t), &api.SeatListRequest{})
		if err != nil {
			return false
		}
		st, err := stream.Recv()
		return err == nil && st.GetStatus() == domain.StatusUnavailable && st.GetMessage() == want
	}, 3*time.Second, 50*time.Millisecond)

	require.Eventually(t, func() bool {
		resp, err := c.client.ReserveSeat(callCtx(t), &api.ReservationRequest{CustomerName: "Ann", SeatNumber: 1})
		return err == nil && !resp.GetSuccess() && resp.GetMessage() == want
	}, 3*time.Second, 50*time.Millisecond, "reservation servers answer unavailable without annotation")

	_, err := c.client.Ping(callCtx(t), &api.PingRequest{})
	assert.NoError(t, err, "Ping does not depend on the pools")
}
