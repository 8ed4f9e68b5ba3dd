package service

import (
	"fmt"
	"sync"
	"testing"

	"seatrouter/domain"
	"seatrouter/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// newTestPool builds a pool of n endpoints named A, B, C... on 127.0.0.1:5001.. with stub clients.
func newTestPool(t *testing.T, tier domain.Tier, n int) (*BackendPool, []*mock.BackendClientMock) {
	t.Helper()
	endpoints := make([]*Endpoint, n)
	clients := make([]*mock.BackendClientMock, n)
	for i := range n {
		clients[i] = &mock.BackendClientMock{}
		endpoints[i] = NewEndpoint(tier, i+1, domain.Address{Host: "127.0.0.1", Port: 5001 + i}, nil, clients[i])
	}
	return NewBackendPool(tier, endpoints, log.NewNopLogger()), clients
}

func selectIndexes(t *testing.T, p *BackendPool, n int) []int {
	t.Helper()
	out := make([]int, 0, n)
	for range n {
		ep, ok := p.SelectNext()
		require.True(t, ok)
		out = append(out, ep.Index())
	}
	return out
}

func TestBackendPool_SelectNext_roundRobinOrder(t *testing.T) {
	p, _ := newTestPool(t, domain.TierReservation, 3)
	assert.Equal(t, []int{1, 2, 3, 1, 2, 3, 1}, selectIndexes(t, p, 7))
}

func TestBackendPool_SelectNext_fairness(t *testing.T) {
	p, _ := newTestPool(t, domain.TierReservation, 3)
	counts := map[int]int{}
	for _, idx := range selectIndexes(t, p, 300) {
		counts[idx]++
	}
	assert.Equal(t, map[int]int{1: 100, 2: 100, 3: 100}, counts)
}

func TestBackendPool_SelectNext_skipsDeadEndpoint(t *testing.T) {
	p, _ := newTestPool(t, domain.TierReservation, 3)
	eps := p.Endpoints()
	require.True(t, p.SetLive(eps[1], false))

	assert.Equal(t, []int{1, 3, 1}, selectIndexes(t, p, 3))
}

func TestBackendPool_SelectNext_singleLive(t *testing.T) {
	p, _ := newTestPool(t, domain.TierSeatManagement, 3)
	eps := p.Endpoints()
	p.SetLive(eps[0], false)
	p.SetLive(eps[2], false)

	assert.Equal(t, []int{2, 2, 2, 2}, selectIndexes(t, p, 4))
}

func TestBackendPool_SelectNext_allDown(t *testing.T) {
	p, _ := newTestPool(t, domain.TierSeatManagement, 2)
	for _, ep := range p.Endpoints() {
		p.SetLive(ep, false)
	}
	ep, ok := p.SelectNext()
	assert.False(t, ok)
	assert.Nil(t, ep)
	assert.Equal(t, 0, p.LiveCount())
}

func TestBackendPool_SelectNext_seesTransitionImmediately(t *testing.T) {
	p, _ := newTestPool(t, domain.TierReservation, 2)
	eps := p.Endpoints()

	first, ok := p.SelectNext()
	require.True(t, ok)
	assert.Equal(t, 1, first.Index())

	p.SetLive(eps[1], false)
	for range 3 {
		ep, ok := p.SelectNext()
		require.True(t, ok)
		assert.Equal(t, 1, ep.Index())
	}

	p.SetLive(eps[1], true)
	p.SetLive(eps[0], false)
	ep, ok := p.SelectNext()
	require.True(t, ok)
	assert.Equal(t, 2, ep.Index())
}

func TestBackendPool_SetLive(t *testing.T) {
	p, _ := newTestPool(t, domain.TierReservation, 2)
	ep := p.Endpoints()[0]

	assert.True(t, p.IsLive(ep), "endpoints start live")
	assert.False(t, p.SetLive(ep, true), "no change")
	assert.True(t, p.SetLive(ep, false))
	assert.False(t, p.IsLive(ep))
	assert.False(t, p.SetLive(ep, false))
	assert.True(t, p.SetLive(ep, true))

	foreign := NewEndpoint(domain.TierReservation, 9, domain.Address{Host: "10.0.0.9", Port: 1}, nil, &mock.BackendClientMock{})
	assert.False(t, p.SetLive(foreign, false))
	assert.False(t, p.IsLive(foreign))
}

func TestBackendPool_Snapshot(t *testing.T) {
	p, _ := newTestPool(t, domain.TierSeatManagement, 2)
	p.SetLive(p.Endpoints()[1], false)

	assert.Equal(t, []domain.EndpointStatus{
		{Tier: domain.TierSeatManagement, Index: 1, Address: "127.0.0.1:5001", Live: true},
		{Tier: domain.TierSeatManagement, Index: 2, Address: "127.0.0.1:5002", Live: false},
	}, p.Snapshot())
}

func TestBackendPool_concurrentSelectAndProbe(t *testing.T) {
	p, _ := newTestPool(t, domain.TierReservation, 4)
	eps := p.Endpoints()

	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 500 {
				p.SetLive(eps[w], i%2 == 0)
			}
		}()
	}
	var selected sync.Map
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 500 {
				if ep, ok := p.SelectNext(); ok {
					selected.Store(ep.Index(), true)
				}
			}
		}()
	}
	wg.Wait()

	selected.Range(func(k, _ any) bool {
		idx := k.(int)
		assert.True(t, idx >= 1 && idx <= 4, fmt.Sprintf("unexpected index %d", idx))
		return true
	})
}

func TestNewBackendPool_panics(t *testing.T) {
	client := &mock.BackendClientMock{}
	ep := NewEndpoint(domain.TierReservation, 1, domain.Address{Host: "h", Port: 1}, nil, client)

	assert.Panics(t, func() { NewBackendPool(domain.TierReservation, []*Endpoint{ep}, nil) })
	assert.Panics(t, func() { NewBackendPool(domain.TierSeatManagement, []*Endpoint{ep}, log.NewNopLogger()) })
	assert.Panics(t, func() { NewEndpoint(domain.TierReservation, 1, domain.Address{}, nil, nil) })
}

func TestBuildPool(t *testing.T) {
	addrs := []domain.Address{{Host: "127.0.0.1", Port: 6001}, {Host: "127.0.0.1", Port: 6002}}
	dial := func(addr domain.Address) (*grpc.ClientConn, error) {
		return grpc.NewClient(addr.String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	}

	p, err := BuildPool(domain.TierSeatManagement, addrs, dial, log.NewNopLogger())
	require.NoError(t, err)
	require.Len(t, p.Endpoints(), 2)
	assert.Equal(t, "127.0.0.1:6002", p.Endpoints()[1].Address().String())
	assert.Equal(t, 2, p.Endpoints()[1].Index())
	assert.NotNil(t, p.Endpoints()[0].Conn())
	assert.NoError(t, p.Close())
}

func TestBuildPool_empty(t *testing.T) {
	p, err := BuildPool(domain.TierReservation, nil, nil, log.NewNopLogger())
	require.NoError(t, err)
	assert.Empty(t, p.Endpoints())
	_, ok := p.SelectNext()
	assert.False(t, ok)
}

func TestBuildPool_errors(t *testing.T) {
	calls := 0
	dial := func(addr domain.Address) (*grpc.ClientConn, error) {
		calls++
		if calls == 2 {
			return nil, fmt.Errorf("bad target")
		}
		return grpc.NewClient(addr.String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	}
	addrs := []domain.Address{{Host: "127.0.0.1", Port: 6001}, {Host: "127.0.0.1", Port: 6002}}
	_, err := BuildPool(domain.TierReservation, addrs, dial, log.NewNopLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad target")
}
