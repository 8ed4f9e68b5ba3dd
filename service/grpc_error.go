package service

import (
	"context"
	"errors"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const msgInternalError = "internal error"

// routerErrorCodeToGRPCCode maps RouterError codes to gRPC status codes.
func routerErrorCodeToGRPCCode(code string) codes.Code {
	switch code {
	case ErrBadParameter:
		return codes.InvalidArgument
	case ErrEntityNotFound:
		return codes.NotFound
	case ErrInternalServerError:
		return codes.Internal
	case ErrUnavailable:
		return codes.Unavailable
	default:
		return codes.Unknown
	}
}

// RouterErrorToGRPC converts a handler error to a gRPC status error.
//
// RouterError is mapped to its code and message. An error that already carries a gRPC status
// (a forwarded backend failure) is returned unchanged so the caller sees the original code and
// message. Context cancellation and deadline errors become Canceled / DeadlineExceeded. Anything
// else becomes codes.Unknown with "internal error".
func RouterErrorToGRPC(err error) error {
	if err == nil {
		return nil
	}
	var routerErr RouterError
	if errors.As(err, &routerErr) {
		return status.Error(routerErrorCodeToGRPCCode(routerErr.Code), routerErr.Message)
	}
	if s, ok := status.FromError(err); ok {
		return s.Err()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return status.FromContextError(err).Err()
	}
	return status.Error(codes.Unknown, msgInternalError)
}

// logHandlerError logs coded errors at info and everything else at error level.
func logHandlerError(logger log.Logger, msg, method string, err error) {
	var routerErr RouterError
	if errors.As(err, &routerErr) {
		level.Info(logger).Log(
			"msg", msg,
			"method", method,
			"error_code", routerErr.Code,
			"error_message", routerErr.Message,
			"err", err,
		)
		return
	}
	level.Error(logger).Log(
		"msg", msg,
		"method", method,
		"err", err,
	)
}

// RouterErrorToGRPCInterceptor returns a unary server interceptor that converts handler errors
// with RouterErrorToGRPC and logs every error for diagnostics.
func RouterErrorToGRPCInterceptor(logger log.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err != nil {
			logHandlerError(logger, "gRPC handler error", info.FullMethod, err)
			err = RouterErrorToGRPC(err)
		}
		return resp, err
	}
}

// RouterErrorToGRPCStreamInterceptor is the streaming counterpart of RouterErrorToGRPCInterceptor.
//
// Called from transport.NewServer (grpc.ChainStreamInterceptor).
func RouterErrorToGRPCStreamInterceptor(logger log.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		err := handler(srv, ss)
		if err != nil {
			logHandlerError(logger, "stream handler error", info.FullMethod, err)
			err = RouterErrorToGRPC(err)
		}
		return err
	}
}
