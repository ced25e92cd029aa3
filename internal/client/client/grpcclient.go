package client

import (
	"context"
	"fmt"
	"math/big"
	"time"

	pb "github.com/dmitrijs2005/zkpauth/internal/proto"
	"github.com/dmitrijs2005/zkpauth/internal/zkp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	codec       string
	conn        *grpc.ClientConn
	client      pb.AuthClient
}

// NewAuthClient dials endpointURL lazily and returns a client whose calls
// are bounded by timeout. A non-positive timeout leaves the caller's
// context untouched. codec names the content subtype (pb.ProtoCodecName or
// pb.CBORCodecName); empty means gRPC's default, protobuf.
func NewAuthClient(endpointURL string, timeout time.Duration, codec string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout, codec: codec}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	opts := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	if s.codec != "" {
		opts = append(opts, grpc.WithDefaultCallOptions(grpc.CallContentSubtype(s.codec)))
	}

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewAuthClient(conn)
	return nil
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GRPCClient) Register(ctx context.Context, user string, y1, y2 *big.Int) error {

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	req := &pb.RegisterRequest{User: user, Y1: zkp.Encode(y1), Y2: zkp.Encode(y2)}

	_, err := s.client.Register(ctx, req)
	if err != nil {
		return s.mapError(err)
	}

	return nil
}

func (s *GRPCClient) CreateChallenge(ctx context.Context, user string, r1, r2 *big.Int) (string, *big.Int, error) {

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	req := &pb.AuthenticationChallengeRequest{User: user, R1: zkp.Encode(r1), R2: zkp.Encode(r2)}

	resp, err := s.client.CreateAuthenticationChallenge(ctx, req)
	if err != nil {
		return "", nil, s.mapError(err)
	}

	if resp.GetAuthId() == "" {
		return "", nil, fmt.Errorf("%w: empty auth id", ErrBadResponse)
	}

	c, err := zkp.Decode(resp.GetC())
	if err != nil {
		return "", nil, fmt.Errorf("%w: challenge: %v", ErrBadResponse, err)
	}

	return resp.GetAuthId(), c, nil
}

func (s *GRPCClient) VerifyAuthentication(ctx context.Context, authID string, answer *big.Int) (string, error) {

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	req := &pb.AuthenticationAnswerRequest{AuthId: authID, S: zkp.Encode(answer)}

	resp, err := s.client.VerifyAuthentication(ctx, req)
	if err != nil {
		return "", s.mapError(err)
	}

	if resp.GetSessionId() == "" {
		return "", fmt.Errorf("%w: empty session id", ErrBadResponse)
	}

	return resp.GetSessionId(), nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}

	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
