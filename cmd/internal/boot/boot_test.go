package boot

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"seatrouter/config"
	"seatrouter/domain"
	"seatrouter/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) int {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()
	return lis.Addr().(*net.TCPAddr).Port
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Listen: domain.Address{Host: "127.0.0.1", Port: freePort(t)},
		Tiers: map[domain.Tier][]domain.Address{
			domain.TierReservation:    {{Host: "127.0.0.1", Port: 1}, {Host: "127.0.0.1", Port: 2}},
			domain.TierSeatManagement: {{Host: "127.0.0.1", Port: 3}},
		},
		MaxWorkers:    config.DefaultMaxWorkers,
		ProbeInterval: time.Hour,
		ProbeTimeout:  time.Second,
		ProbeMode:     config.DefaultProbeMode,
		StoreDriver:   config.StoreMemory,
		RoomCount:     4,
	}
}

func TestNewRouter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("dispatcher has two pools", func(t *testing.T) {
		r, err := NewRouter(ctx, testConfig(t), domain.TierReservation, domain.TierSeatManagement, log.NewNopLogger())
		require.NoError(t, err)
		defer r.Close()
		require.Len(t, r.Pools, 2)
		assert.Equal(t, domain.TierReservation, r.Pools[0].Tier())
		assert.Len(t, r.Pools[0].Endpoints(), 2)
		assert.NotNil(t, r.Servicer)
	})

	t.Run("reservation server shares one pool", func(t *testing.T) {
		r, err := NewRouter(ctx, testConfig(t), domain.TierSeatManagement, domain.TierSeatManagement, log.NewNopLogger())
		require.NoError(t, err)
		defer r.Close()
		require.Len(t, r.Pools, 1)
		assert.Equal(t, domain.TierSeatManagement, r.Pools[0].Tier())
	})

	t.Run("unknown probe mode", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.ProbeMode = "icmp"
		_, err := NewRouter(ctx, cfg, domain.TierReservation, domain.TierSeatManagement, log.NewNopLogger())
		assert.True(t, config.IsKeyError(err, config.KeyProbeMode))
	})
}

func TestListen(t *testing.T) {
	cfg := testConfig(t)
	lis, admin, adminLis, err := Listen(cfg, log.NewNopLogger())
	require.NoError(t, err)
	defer lis.Close()
	assert.Nil(t, admin)
	assert.Nil(t, adminLis)

	cfg = testConfig(t)
	cfg.AdminPort = freePort(t)
	lis2, admin, adminLis, err := Listen(cfg, log.NewNopLogger())
	require.NoError(t, err)
	defer lis2.Close()
	defer adminLis.Close()
	assert.NotNil(t, admin)

	_, _, _, err = Listen(&config.Config{Listen: cfg.Listen}, log.NewNopLogger())
	assert.Error(t, err, "port already in use")
}

func TestOpenSeatStore_memory(t *testing.T) {
	store, err := OpenSeatStore(context.Background(), testConfig(t), log.NewNopLogger())
	require.NoError(t, err)
	rooms, err := store.ListRooms(context.Background())
	require.NoError(t, err)
	assert.Len(t, rooms, 4)
}

func TestOpenSeatStore_unknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.StoreDriver = "mongo"
	_, err := OpenSeatStore(context.Background(), cfg, log.NewNopLogger())
	assert.Error(t, err)
}

func TestPingWithRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock.NewMockSeatStore(ctrl)
	gomock.InOrder(
		store.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused")),
		store.EXPECT().Ping(gomock.Any()).Return(nil),
	)
	require.NoError(t, pingWithRetry(context.Background(), store, log.NewNopLogger()))
}

func TestPingWithRetry_givesUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock.NewMockSeatStore(ctrl)
	store.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused")).AnyTimes()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err := pingWithRetry(ctx, store, log.NewNopLogger())
	assert.Error(t, err)
}
