package store

import "math/big"

// State is the protocol position of a registered user.
type State uint8

const (
	StateUnregistered State = iota
	StateRegistered
	StateChallenged
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateRegistered:
		return "registered"
	case StateChallenged:
		return "challenged"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unregistered"
	}
}

// UserRecord is the verifier's view of one user. The secret never appears
// here; R1, R2 and C belong to the latest challenge and are nil until one is
// issued. SessionID is empty until a verification succeeds.
type UserRecord struct {
	UserID    string
	Y1, Y2    *big.Int
	R1, R2    *big.Int
	C         *big.Int
	SessionID string
	State     State
}

// Clone returns a deep copy of r.
func (r *UserRecord) Clone() *UserRecord {
	if r == nil {
		return nil
	}
	out := *r
	out.Y1 = cloneInt(r.Y1)
	out.Y2 = cloneInt(r.Y2)
	out.R1 = cloneInt(r.R1)
	out.R2 = cloneInt(r.R2)
	out.C = cloneInt(r.C)
	return &out
}

func cloneInt(n *big.Int) *big.Int {
	if n == nil {
		return nil
	}
	return new(big.Int).Set(n)
}
