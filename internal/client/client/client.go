package client

import (
	"context"
	"math/big"
)

// Client is the transport contract the prover side uses to reach the
// authentication server.
type Client interface {
	Close() error
	Register(ctx context.Context, user string, y1, y2 *big.Int) error
	CreateChallenge(ctx context.Context, user string, r1, r2 *big.Int) (authID string, c *big.Int, err error)
	VerifyAuthentication(ctx context.Context, authID string, s *big.Int) (sessionID string, err error)
}
