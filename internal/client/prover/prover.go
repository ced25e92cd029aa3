// Package prover implements the client side of the Chaum-Pedersen protocol:
// it turns a secret into public commitments, opens a fresh blinded attempt
// for every challenge and answers the verifier's challenge.
package prover

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/dmitrijs2005/zkpauth/internal/zkp"
)

var ErrAttemptUsed = errors.New("prover: attempt already answered or discarded")

// Prover holds the public group parameters. It keeps no per-user state and
// is safe for concurrent use.
type Prover struct {
	params *zkp.Params
}

// New returns a Prover over params. A nil params uses zkp.DefaultParams.
func New(params *zkp.Params) *Prover {
	if params == nil {
		params = zkp.DefaultParams()
	}
	return &Prover{params: params.Clone()}
}

// Params returns a copy of the group parameters in use.
func (p *Prover) Params() *zkp.Params {
	return p.params.Clone()
}

// Register returns the commitments y1 = g^x and y2 = h^x mod p.
func (p *Prover) Register(secret *big.Int) (y1, y2 *big.Int, err error) {
	if secret == nil || secret.Sign() < 0 {
		return nil, nil, fmt.Errorf("prover: secret must be a non-negative integer")
	}
	y1 = zkp.Exponentiate(p.params.G, secret, p.params.P)
	y2 = zkp.Exponentiate(p.params.H, secret, p.params.P)
	return y1, y2, nil
}

// Attempt is one authentication attempt. K is the blinding value and must
// not outlive the attempt; R1 and R2 are sent to the verifier.
type Attempt struct {
	K  *big.Int
	R1 *big.Int
	R2 *big.Int

	used bool
}

// BeginChallenge draws a fresh blinding value k in [0, q) and returns the
// attempt with r1 = g^k and r2 = h^k mod p. Every call draws a new k.
func (p *Prover) BeginChallenge() (*Attempt, error) {
	k, err := zkp.RandomScalar(p.params.Q)
	if err != nil {
		return nil, fmt.Errorf("prover: sample blinding: %w", err)
	}
	return &Attempt{
		K:  k,
		R1: zkp.Exponentiate(p.params.G, k, p.params.P),
		R2: zkp.Exponentiate(p.params.H, k, p.params.P),
	}, nil
}

// Respond computes s = (k - c*x) mod q for the attempt. The attempt's
// blinding value is discarded afterwards so it cannot answer a second
// challenge.
func (p *Prover) Respond(secret *big.Int, a *Attempt, challenge *big.Int) (*big.Int, error) {
	if a == nil || a.used || a.K == nil {
		return nil, ErrAttemptUsed
	}
	if secret == nil || challenge == nil || secret.Sign() < 0 || challenge.Sign() < 0 {
		return nil, fmt.Errorf("prover: secret and challenge must be non-negative integers")
	}
	defer a.Discard()

	return zkp.ComputeResponse(secret, a.K, challenge, p.params.Q), nil
}

// Discard clears the blinding value. It is safe to call more than once.
func (a *Attempt) Discard() {
	if a == nil {
		return
	}
	if a.K != nil {
		a.K.SetInt64(0)
		a.K = nil
	}
	a.used = true
}
