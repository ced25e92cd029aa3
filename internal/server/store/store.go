// Package store keeps the verifier's per-user protocol state and the index
// from challenge identifiers (auth_id) to users.
//
// Two backends satisfy Store: MemoryStore, the default, and PostgresStore,
// selected when a database DSN is configured. Both return copies, so callers
// may read records without holding any lock.
package store

import (
	"context"
	"math/big"
)

// Store is the session bookkeeping used by the verifier.
//
// Errors carry common kinds: NotFound for unknown users or auth_ids,
// Unauthenticated when a challenge was superseded before its session could
// be recorded, Internal for auth_id collisions and backend failures.
type Store interface {
	// SaveUser creates or replaces the record for userID with fresh
	// commitments and state Registered. Challenge and session fields are
	// cleared.
	SaveUser(ctx context.Context, userID string, y1, y2 *big.Int) error

	// GetUser returns a copy of the record for userID.
	GetUser(ctx context.Context, userID string) (*UserRecord, error)

	// SaveChallenge stores r1, r2 and c on an existing user, moves it to
	// Challenged and maps authID to the user. An authID that is already
	// indexed is never overwritten.
	SaveChallenge(ctx context.Context, userID, authID string, r1, r2, c *big.Int) error

	// LookupChallenge resolves authID and returns a copy of the owning
	// user's record.
	LookupChallenge(ctx context.Context, authID string) (*UserRecord, error)

	// SaveSession records sessionID and moves the user to Authenticated,
	// provided authID is still the user's current challenge.
	SaveSession(ctx context.Context, userID, authID, sessionID string) error

	Close() error
}
