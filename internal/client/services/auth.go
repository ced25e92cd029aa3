// Package services contains application services for the zkpauth client.
// This file defines the authentication service: registering a user's
// commitments and running the three-step login against the server.
package services

import (
	"context"
	"fmt"
	"math/big"

	"github.com/dmitrijs2005/zkpauth/internal/client/client"
	"github.com/dmitrijs2005/zkpauth/internal/client/config"
	"github.com/dmitrijs2005/zkpauth/internal/client/prover"
	"github.com/dmitrijs2005/zkpauth/internal/cryptox"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: derive the secret, compute y1/y2 and send them to the server.
//   - Login: run commit, challenge and answer; return the session id.
//   - Close: release underlying client resources.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, user string, password []byte) error
	Login(ctx context.Context, user string, password []byte) (string, error)
	Close(ctx context.Context) error
}

// SecretFunc turns a user's password into the secret exponent x.
type SecretFunc func(user string, password []byte) (*big.Int, error)

// SecretFor returns the SecretFunc for a config.SecretMode value.
func SecretFor(mode string, order *big.Int) (SecretFunc, error) {
	switch mode {
	case config.SecretModeArgon2:
		return func(user string, password []byte) (*big.Int, error) {
			return cryptox.DeriveSecret(password, user, order), nil
		}, nil
	case config.SecretModeDecimal:
		return func(_ string, password []byte) (*big.Int, error) {
			return cryptox.ParseDecimalSecret(string(password))
		}, nil
	default:
		return nil, fmt.Errorf("unknown secret mode %q", mode)
	}
}

type authService struct {
	client client.Client
	prover *prover.Prover
	secret SecretFunc
}

// NewAuthService constructs an AuthService bound to the given API client and prover.
func NewAuthService(c client.Client, p *prover.Prover, secret SecretFunc) AuthService {
	return &authService{client: c, prover: p, secret: secret}
}

// Register derives x from the password and registers y1 = g^x, y2 = h^x
// for user. Registering again overwrites the previous commitments.
func (a *authService) Register(ctx context.Context, user string, password []byte) error {
	x, err := a.secret(user, password)
	if err != nil {
		return err
	}
	defer x.SetInt64(0)

	y1, y2, err := a.prover.Register(x)
	if err != nil {
		return err
	}

	if err := a.client.Register(ctx, user, y1, y2); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	return nil
}

// Login opens a fresh attempt, asks the server for a challenge and answers
// it. Each call draws a new blinding value.
func (a *authService) Login(ctx context.Context, user string, password []byte) (string, error) {
	x, err := a.secret(user, password)
	if err != nil {
		return "", err
	}
	defer x.SetInt64(0)

	attempt, err := a.prover.BeginChallenge()
	if err != nil {
		return "", err
	}
	defer attempt.Discard()

	authID, c, err := a.client.CreateChallenge(ctx, user, attempt.R1, attempt.R2)
	if err != nil {
		return "", fmt.Errorf("challenge error: %w", err)
	}

	s, err := a.prover.Respond(x, attempt, c)
	if err != nil {
		return "", err
	}

	sessionID, err := a.client.VerifyAuthentication(ctx, authID, s)
	if err != nil {
		return "", fmt.Errorf("verify error: %w", err)
	}
	return sessionID, nil
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
