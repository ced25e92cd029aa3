// Package services contains the verifier's protocol logic. AuthService
// drives each user through register, challenge and verification, keeping
// all state in a store.Store and all arithmetic in package zkp.
package services

import (
	"context"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/zkpauth/internal/common"
	"github.com/dmitrijs2005/zkpauth/internal/logging"
	"github.com/dmitrijs2005/zkpauth/internal/server/store"
	"github.com/dmitrijs2005/zkpauth/internal/zkp"
)

// DefaultIdentifierLength is used when NewAuthService gets a non-positive length.
const DefaultIdentifierLength = 16

// AuthService is the verifier side of the Chaum-Pedersen protocol. It is
// safe for concurrent use; all shared state lives in the store.
type AuthService struct {
	store    store.Store
	params   *zkp.Params
	idLength int
	logger   logging.Logger
}

// NewAuthService builds a verifier over st. A nil params selects
// zkp.DefaultParams.
func NewAuthService(st store.Store, params *zkp.Params, idLength int, logger logging.Logger) *AuthService {
	if params == nil {
		params = zkp.DefaultParams()
	}
	if idLength <= 0 {
		idLength = DefaultIdentifierLength
	}
	return &AuthService{
		store:    st,
		params:   params.Clone(),
		idLength: idLength,
		logger:   logger.With("module", "auth"),
	}
}

// Params returns a copy of the group parameters the service verifies against.
func (s *AuthService) Params() *zkp.Params {
	return s.params.Clone()
}

// IdentifierLength is the length of issued auth and session identifiers.
func (s *AuthService) IdentifierLength() int {
	return s.idLength
}

func (s *AuthService) checkElement(op, name string, v *big.Int) error {
	if v == nil || v.Sign() <= 0 || v.Cmp(s.params.P) >= 0 {
		return common.InvalidArgument(op, "%s is not a group element", name)
	}
	return nil
}

// checkUser accepts any UTF-8 user id without NUL bytes, the empty one
// included. PostgreSQL TEXT cannot hold NUL.
func (s *AuthService) checkUser(op, userID string) error {
	if !utf8.ValidString(userID) || strings.IndexByte(userID, 0) >= 0 {
		return common.InvalidArgument(op, "user id must be UTF-8 text without NUL bytes")
	}
	return nil
}

// Register stores fresh commitments for userID, replacing any previous
// record. Pending challenges and sessions of that user are cleared.
func (s *AuthService) Register(ctx context.Context, userID string, y1, y2 *big.Int) error {
	const op = "services.Register"

	if err := s.checkUser(op, userID); err != nil {
		return err
	}
	if err := s.checkElement(op, "y1", y1); err != nil {
		return err
	}
	if err := s.checkElement(op, "y2", y2); err != nil {
		return err
	}

	if err := s.store.SaveUser(ctx, userID, y1, y2); err != nil {
		return err
	}

	s.logger.Info(ctx, "user registered", "user", userID, "y1", zkp.Fingerprint(y1), "y2", zkp.Fingerprint(y2))
	return nil
}

// CreateChallenge records the prover's r1 and r2, draws a challenge c in
// [0, q) and a fresh auth id, and returns both. Unknown users fail NotFound.
func (s *AuthService) CreateChallenge(ctx context.Context, userID string, r1, r2 *big.Int) (string, *big.Int, error) {
	const op = "services.CreateChallenge"

	if err := s.checkUser(op, userID); err != nil {
		return "", nil, err
	}
	if err := s.checkElement(op, "r1", r1); err != nil {
		return "", nil, err
	}
	if err := s.checkElement(op, "r2", r2); err != nil {
		return "", nil, err
	}

	c, err := zkp.RandomScalar(s.params.Q)
	if err != nil {
		return "", nil, common.Internal(op, "draw challenge: %w", err)
	}
	authID, err := zkp.RandomIdentifier(s.idLength)
	if err != nil {
		return "", nil, common.Internal(op, "draw auth id: %w", err)
	}

	if err := s.store.SaveChallenge(ctx, userID, authID, r1, r2, c); err != nil {
		if common.KindOf(err) == common.KindInternal {
			s.logger.Error(ctx, "challenge not stored", "user", userID, "error", err)
		}
		return "", nil, err
	}

	s.logger.Info(ctx, "challenge issued", "user", userID, "r1", zkp.Fingerprint(r1), "r2", zkp.Fingerprint(r2))
	return authID, c, nil
}

// VerifyAuthentication checks the response sVal against the challenge that
// authID refers to. On success a new session id is stored and returned. A
// wrong response fails Unauthenticated and leaves the record untouched, so
// the same auth id can be answered again.
func (s *AuthService) VerifyAuthentication(ctx context.Context, authID string, sVal *big.Int) (string, error) {
	const op = "services.VerifyAuthentication"

	if sVal == nil || sVal.Sign() < 0 {
		return "", common.InvalidArgument(op, "response must be a non-negative integer")
	}

	rec, err := s.store.LookupChallenge(ctx, authID)
	if err != nil {
		return "", err
	}

	p := s.params
	if !zkp.VerifyProof(p.P, rec.Y1, rec.Y2, rec.R1, rec.R2, p.G, p.H, rec.C, sVal) {
		s.logger.Warn(ctx, "verification failed", "user", rec.UserID, "state", rec.State.String())
		return "", common.Unauthenticated(op, "challenge not solved correctly")
	}

	sessionID, err := zkp.RandomIdentifier(s.idLength)
	if err != nil {
		return "", common.Internal(op, "draw session id: %w", err)
	}
	if err := s.store.SaveSession(ctx, rec.UserID, authID, sessionID); err != nil {
		s.logger.Warn(ctx, "session not stored", "user", rec.UserID, "error", err)
		return "", err
	}

	s.logger.Info(ctx, "user authenticated", "user", rec.UserID)
	return sessionID, nil
}

// User returns a copy of the stored record for userID.
func (s *AuthService) User(ctx context.Context, userID string) (*store.UserRecord, error) {
	return s.store.GetUser(ctx, userID)
}
