package interfaces

import "seatrouter/api"

// BackendClient is the outbound capability set of one endpoint connection: Ping, ReserveSeat and
// the GetSeatStatus stream. Every tier speaks the same ReservationService, so one client type
// serves the reservation and the seat-management pools alike.
//
// Implemented by api.NewReservationServiceClient over the endpoint's *grpc.ClientConn. Called from
// service.TierRouter for forwarded calls.
//
//go:generate moq -stub -out mock/backend_client.go -pkg mock . BackendClient
type BackendClient interface {
	api.ReservationServiceClient
}
