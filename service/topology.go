package service

import (
	"errors"
	"fmt"

	"seatrouter/api"
	"seatrouter/domain"

	"github.com/go-kit/log"
	"google.golang.org/grpc"
)

// DialFunc creates the long-lived connection of one endpoint. It must not block on the network:
// the connection is established lazily and watched by the probes.
type DialFunc func(address domain.Address) (*grpc.ClientConn, error)

// BuildPool dials every address of tier and assembles its BackendPool. On a dial error the
// connections created so far are closed.
//
// Called from boot.NewRouter, once per tier at startup.
func BuildPool(tier domain.Tier, addresses []domain.Address, dial DialFunc, logger log.Logger) (*BackendPool, error) {
	endpoints := make([]*Endpoint, 0, len(addresses))
	for i, addr := range addresses {
		conn, err := dial(addr)
		if err != nil {
			var errs []error
			for _, ep := range endpoints {
				errs = append(errs, ep.conn.Close())
			}
			return nil, errors.Join(append([]error{fmt.Errorf("tier %s: dial %s: %w", tier, addr, err)}, errs...)...)
		}
		endpoints = append(endpoints, NewEndpoint(tier, i+1, addr, conn, api.NewReservationServiceClient(conn)))
	}
	return NewBackendPool(tier, endpoints, logger), nil
}
