package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/zkpauth/internal/common"
	pb "github.com/dmitrijs2005/zkpauth/internal/proto"
	"github.com/dmitrijs2005/zkpauth/internal/zkp"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.RegisterResponse, error) {
	y1, err := zkp.DecodeElement(req.GetY1(), s.params.P)
	if err != nil {
		return nil, toStatus(err)
	}
	y2, err := zkp.DecodeElement(req.GetY2(), s.params.P)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.auth.Register(ctx, req.GetUser(), y1, y2); err != nil {
		return nil, toStatus(err)
	}
	return &pb.RegisterResponse{}, nil
}

func (s *GRPCServer) CreateAuthenticationChallenge(ctx context.Context, req *pb.AuthenticationChallengeRequest) (*pb.AuthenticationChallengeResponse, error) {
	r1, err := zkp.DecodeElement(req.GetR1(), s.params.P)
	if err != nil {
		return nil, toStatus(err)
	}
	r2, err := zkp.DecodeElement(req.GetR2(), s.params.P)
	if err != nil {
		return nil, toStatus(err)
	}

	authID, c, err := s.auth.CreateChallenge(ctx, req.GetUser(), r1, r2)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.AuthenticationChallengeResponse{AuthId: authID, C: zkp.Encode(c)}, nil
}

func (s *GRPCServer) VerifyAuthentication(ctx context.Context, req *pb.AuthenticationAnswerRequest) (*pb.AuthenticationAnswerResponse, error) {
	sVal, err := zkp.Decode(req.GetS())
	if err != nil {
		return nil, toStatus(err)
	}

	sessionID, err := s.auth.VerifyAuthentication(ctx, req.GetAuthId(), sVal)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.AuthenticationAnswerResponse{SessionId: sessionID}, nil
}

// toStatus maps an error kind onto the matching gRPC code. Internal errors
// are reported without detail.
func toStatus(err error) error {
	var msg string
	var ce *common.Error
	if errors.As(err, &ce) && ce.Err != nil {
		msg = ce.Err.Error()
	} else {
		msg = err.Error()
	}

	switch common.KindOf(err) {
	case common.KindNotFound:
		return status.Error(codes.NotFound, msg)
	case common.KindUnauthenticated:
		return status.Error(codes.Unauthenticated, msg)
	case common.KindInvalidArgument:
		return status.Error(codes.InvalidArgument, msg)
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
