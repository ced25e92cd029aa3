// Package grpc exposes the verifier over gRPC as the zkp_auth.Auth service.
package grpc

import (
	"context"
	"errors"
	"math/big"
	"net"
	"time"

	"github.com/dmitrijs2005/zkpauth/internal/logging"
	pb "github.com/dmitrijs2005/zkpauth/internal/proto"
	"github.com/dmitrijs2005/zkpauth/internal/zkp"
	"google.golang.org/grpc"
)

// authSvc is the verifier behaviour the handlers depend on.
type authSvc interface {
	Register(ctx context.Context, userID string, y1, y2 *big.Int) error
	CreateChallenge(ctx context.Context, userID string, r1, r2 *big.Int) (string, *big.Int, error)
	VerifyAuthentication(ctx context.Context, authID string, s *big.Int) (string, error)
	Params() *zkp.Params
}

type GRPCServer struct {
	pb.UnimplementedAuthServer
	address         string
	auth            authSvc
	params          *zkp.Params
	logger          logging.Logger
	shutdownTimeout time.Duration
}

// NewGRPCServer wires the handlers to auth. shutdownTimeout bounds graceful
// stop; after it expires in-flight calls are cut off.
func NewGRPCServer(address string, l logging.Logger, auth authSvc, shutdownTimeout time.Duration) *GRPCServer {
	return &GRPCServer{
		address:         address,
		auth:            auth,
		params:          auth.Params(),
		logger:          l.With("module", "grpc_server"),
		shutdownTimeout: shutdownTimeout,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.recoveryInterceptor))
	pb.RegisterAuthServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
// It returns once in-flight calls have drained or the shutdown timeout hit.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	served := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		select {
		case <-ctx.Done():
		case <-served:
			return
		}
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.stop(srv)
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	err := srv.Serve(lis)
	close(served)
	<-stopped

	if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

func (s *GRPCServer) stop(srv *grpc.Server) {
	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	if s.shutdownTimeout <= 0 {
		<-stopped
		return
	}

	t := time.NewTimer(s.shutdownTimeout)
	defer t.Stop()

	select {
	case <-stopped:
	case <-t.C:
		s.logger.Warn(context.Background(), "graceful stop timed out, forcing")
		srv.Stop()
		<-stopped
	}
}
