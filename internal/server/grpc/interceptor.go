package grpc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const requestIDHeader = "x-request-id"

// loggingInterceptor tags each call with a request id, returns it in the
// response header and logs the outcome.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	requestID := uuid.NewString()
	log := s.logger.With("request_id", requestID, "method", info.FullMethod)

	_ = grpc.SetHeader(ctx, metadata.Pairs(requestIDHeader, requestID))

	start := time.Now()
	resp, err := handler(ctx, req)
	code := status.Code(err)

	switch code {
	case codes.OK:
		log.Info(ctx, "request handled", "code", code.String(), "duration", time.Since(start))
	case codes.Internal, codes.Unknown:
		log.Error(ctx, "request failed", "code", code.String(), "duration", time.Since(start))
	default:
		log.Warn(ctx, "request rejected", "code", code.String(), "reason", status.Convert(err).Message(), "duration", time.Since(start))
	}
	return resp, err
}

// recoveryInterceptor turns a panic in a handler into codes.Internal.
func (s *GRPCServer) recoveryInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
	defer func() {
		if p := recover(); p != nil {
			s.logger.Error(ctx, "panic in handler", "method", info.FullMethod, "panic", p)
			resp, err = nil, status.Error(codes.Internal, "internal error")
		}
	}()
	return handler(ctx, req)
}
