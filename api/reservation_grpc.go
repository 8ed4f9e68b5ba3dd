package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ReservationService_Ping_FullMethodName          = "/reservation.ReservationService/Ping"
	ReservationService_ReserveSeat_FullMethodName   = "/reservation.ReservationService/ReserveSeat"
	ReservationService_GetSeatStatus_FullMethodName = "/reservation.ReservationService/GetSeatStatus"
)

// ReservationServiceClient is the client API for ReservationService service.
type ReservationServiceClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	ReserveSeat(ctx context.Context, in *ReservationRequest, opts ...grpc.CallOption) (*ReservationResponse, error)
	GetSeatStatus(ctx context.Context, in *SeatListRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[SeatStatus], error)
}

type reservationServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewReservationServiceClient(cc grpc.ClientConnInterface) ReservationServiceClient {
	return &reservationServiceClient{cc}
}

func (c *reservationServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	out := new(PingResponse)
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	err := c.cc.Invoke(ctx, ReservationService_Ping_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *reservationServiceClient) ReserveSeat(ctx context.Context, in *ReservationRequest, opts ...grpc.CallOption) (*ReservationResponse, error) {
	out := new(ReservationResponse)
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	err := c.cc.Invoke(ctx, ReservationService_ReserveSeat_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *reservationServiceClient) GetSeatStatus(ctx context.Context, in *SeatListRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[SeatStatus], error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	stream, err := c.cc.NewStream(ctx, &ReservationService_ServiceDesc.Streams[0], ReservationService_GetSeatStatus_FullMethodName, cOpts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[SeatListRequest, SeatStatus]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// ReservationServiceServer is the server API for ReservationService service.
type ReservationServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	ReserveSeat(context.Context, *ReservationRequest) (*ReservationResponse, error)
	GetSeatStatus(*SeatListRequest, grpc.ServerStreamingServer[SeatStatus]) error
}

// UnimplementedReservationServiceServer can be embedded to have forward compatible implementations.
type UnimplementedReservationServiceServer struct{}

func (UnimplementedReservationServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Ping not implemented")
}

func (UnimplementedReservationServiceServer) ReserveSeat(context.Context, *ReservationRequest) (*ReservationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ReserveSeat not implemented")
}

func (UnimplementedReservationServiceServer) GetSeatStatus(*SeatListRequest, grpc.ServerStreamingServer[SeatStatus]) error {
	return status.Errorf(codes.Unimplemented, "method GetSeatStatus not implemented")
}

func RegisterReservationServiceServer(s grpc.ServiceRegistrar, srv ReservationServiceServer) {
	s.RegisterService(&ReservationService_ServiceDesc, srv)
}

func _ReservationService_Ping_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(PingRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReservationServiceServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ReservationService_Ping_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ReservationServiceServer).Ping(ctx, req.(*PingRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ReservationService_ReserveSeat_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ReservationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReservationServiceServer).ReserveSeat(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ReservationService_ReserveSeat_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ReservationServiceServer).ReserveSeat(ctx, req.(*ReservationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ReservationService_GetSeatStatus_Handler(srv any, stream grpc.ServerStream) error {
	m := new(SeatListRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ReservationServiceServer).GetSeatStatus(m, &grpc.GenericServerStream[SeatListRequest, SeatStatus]{ServerStream: stream})
}

// ReservationService_ServiceDesc is the grpc.ServiceDesc for ReservationService service.
var ReservationService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "reservation.ReservationService",
	HandlerType: (*ReservationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Ping",
			Handler:    _ReservationService_Ping_Handler,
		},
		{
			MethodName: "ReserveSeat",
			Handler:    _ReservationService_ReserveSeat_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "GetSeatStatus",
			Handler:       _ReservationService_GetSeatStatus_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "api/reservation.proto",
}
