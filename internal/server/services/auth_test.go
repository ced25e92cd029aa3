package services

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/dmitrijs2005/zkpauth/internal/common"
	"github.com/dmitrijs2005/zkpauth/internal/logging"
	"github.com/dmitrijs2005/zkpauth/internal/server/store"
	"github.com/dmitrijs2005/zkpauth/internal/zkp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newService(t *testing.T) (*AuthService, *zkp.Params) {
	t.Helper()
	svc := NewAuthService(store.NewMemoryStore(), nil, 0, logging.Nop())
	return svc, svc.Params()
}

type proverState struct {
	x, k   *big.Int
	r1, r2 *big.Int
}

func register(t *testing.T, svc *AuthService, pp *zkp.Params, user string, x *big.Int) {
	t.Helper()
	y1 := zkp.Exponentiate(pp.G, x, pp.P)
	y2 := zkp.Exponentiate(pp.H, x, pp.P)
	require.NoError(t, svc.Register(context.Background(), user, y1, y2))
}

func begin(t *testing.T, pp *zkp.Params, x *big.Int) *proverState {
	t.Helper()
	k, err := zkp.RandomScalar(pp.Q)
	require.NoError(t, err)
	return &proverState{
		x:  x,
		k:  k,
		r1: zkp.Exponentiate(pp.G, k, pp.P),
		r2: zkp.Exponentiate(pp.H, k, pp.P),
	}
}

func TestEndToEnd(t *testing.T) {
	svc, pp := newService(t)
	ctx := context.Background()
	x := big.NewInt(123456789)

	register(t, svc, pp, "user123", x)
	ps := begin(t, pp, x)

	authID, c, err := svc.CreateChallenge(ctx, "user123", ps.r1, ps.r2)
	require.NoError(t, err)
	assert.True(t, zkp.IsIdentifier(authID, DefaultIdentifierLength))
	assert.True(t, c.Sign() >= 0 && c.Cmp(pp.Q) < 0)

	rec, err := svc.User(ctx, "user123")
	require.NoError(t, err)
	assert.Equal(t, store.StateChallenged, rec.State)

	sVal := zkp.ComputeResponse(x, ps.k, c, pp.Q)
	sessionID, err := svc.VerifyAuthentication(ctx, authID, sVal)
	require.NoError(t, err)
	assert.True(t, zkp.IsIdentifier(sessionID, DefaultIdentifierLength))

	rec, err = svc.User(ctx, "user123")
	require.NoError(t, err)
	assert.Equal(t, store.StateAuthenticated, rec.State)
	assert.Equal(t, sessionID, rec.SessionID)
}

func TestCreateChallenge_UnknownUser(t *testing.T) {
	svc, pp := newService(t)
	ps := begin(t, pp, big.NewInt(1))

	_, _, err := svc.CreateChallenge(context.Background(), "nosuchuser", ps.r1, ps.r2)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestVerifyAuthentication_UnknownAuthID(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.VerifyAuthentication(context.Background(), "bogus-id", big.NewInt(1))
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestVerifyAuthentication_WrongThenCorrect(t *testing.T) {
	svc, pp := newService(t)
	ctx := context.Background()
	x := big.NewInt(123456789)

	register(t, svc, pp, "user123", x)
	ps := begin(t, pp, x)

	authID, c, err := svc.CreateChallenge(ctx, "user123", ps.r1, ps.r2)
	require.NoError(t, err)

	correct := zkp.ComputeResponse(x, ps.k, c, pp.Q)
	wrong := new(big.Int).Add(correct, big.NewInt(1))
	wrong.Mod(wrong, pp.Q)

	sessionID, err := svc.VerifyAuthentication(ctx, authID, wrong)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
	assert.Empty(t, sessionID)

	rec, err := svc.User(ctx, "user123")
	require.NoError(t, err)
	assert.Equal(t, store.StateChallenged, rec.State)
	assert.Empty(t, rec.SessionID)

	// No replay protection: the same auth id still accepts the right answer.
	sessionID, err = svc.VerifyAuthentication(ctx, authID, correct)
	require.NoError(t, err)
	assert.NotEmpty(t, sessionID)
}

func TestVerifyAuthentication_SupersededChallenge(t *testing.T) {
	svc, pp := newService(t)
	ctx := context.Background()
	x := big.NewInt(42)

	register(t, svc, pp, "alice", x)
	first := begin(t, pp, x)
	authID1, c1, err := svc.CreateChallenge(ctx, "alice", first.r1, first.r2)
	require.NoError(t, err)

	second := begin(t, pp, x)
	authID2, c2, err := svc.CreateChallenge(ctx, "alice", second.r1, second.r2)
	require.NoError(t, err)
	require.NotEqual(t, authID1, authID2)

	// The first auth id now resolves to the second attempt's values.
	_, err = svc.VerifyAuthentication(ctx, authID1, zkp.ComputeResponse(x, first.k, c1, pp.Q))
	assert.ErrorIs(t, err, common.ErrUnauthenticated)

	_, err = svc.VerifyAuthentication(ctx, authID2, zkp.ComputeResponse(x, second.k, c2, pp.Q))
	require.NoError(t, err)
}

func TestReRegister_ResetsState(t *testing.T) {
	svc, pp := newService(t)
	ctx := context.Background()
	x := big.NewInt(7)

	register(t, svc, pp, "alice", x)
	ps := begin(t, pp, x)
	authID, c, err := svc.CreateChallenge(ctx, "alice", ps.r1, ps.r2)
	require.NoError(t, err)

	register(t, svc, pp, "alice", big.NewInt(8))

	rec, err := svc.User(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, store.StateRegistered, rec.State)
	assert.Nil(t, rec.C)

	_, err = svc.VerifyAuthentication(ctx, authID, zkp.ComputeResponse(x, ps.k, c, pp.Q))
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestRegister_InvalidInput(t *testing.T) {
	svc, pp := newService(t)
	ctx := context.Background()
	one := big.NewInt(1)

	tests := []struct {
		name   string
		user   string
		y1, y2 *big.Int
	}{
		{"nul in user", "al\x00ice", one, one},
		{"invalid utf8 user", "\xff\xfe", one, one},
		{"nil y1", "u", nil, one},
		{"zero y2", "u", one, big.NewInt(0)},
		{"y1 equal to p", "u", pp.P, one},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Register(ctx, tt.user, tt.y1, tt.y2)
			assert.ErrorIs(t, err, common.ErrInvalidArgument)
		})
	}
}

func TestCreateChallenge_InvalidInput(t *testing.T) {
	svc, pp := newService(t)
	ctx := context.Background()
	register(t, svc, pp, "alice", big.NewInt(3))

	_, _, err := svc.CreateChallenge(ctx, "alice", big.NewInt(0), big.NewInt(1))
	assert.ErrorIs(t, err, common.ErrInvalidArgument)

	_, _, err = svc.CreateChallenge(ctx, "ali\x00ce", big.NewInt(1), big.NewInt(1))
	assert.ErrorIs(t, err, common.ErrInvalidArgument)

	_, err = svc.VerifyAuthentication(ctx, "whatever", big.NewInt(-1))
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
}

func TestEmptyUserID_FullFlow(t *testing.T) {
	svc, pp := newService(t)
	ctx := context.Background()
	x := big.NewInt(987654321)

	register(t, svc, pp, "", x)

	ps := begin(t, pp, x)
	authID, c, err := svc.CreateChallenge(ctx, "", ps.r1, ps.r2)
	require.NoError(t, err)

	sid, err := svc.VerifyAuthentication(ctx, authID, zkp.ComputeResponse(x, ps.k, c, pp.Q))
	require.NoError(t, err)
	assert.NotEmpty(t, sid)

	rec, err := svc.User(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, store.StateAuthenticated, rec.State)
}

type failingStore struct {
	store.Store
	err error
}

func (f *failingStore) SaveChallenge(context.Context, string, string, *big.Int, *big.Int, *big.Int) error {
	return f.err
}

func TestCreateChallenge_StoreError(t *testing.T) {
	mem := store.NewMemoryStore()
	boom := common.Internal("store.SaveChallenge", "auth id collision")
	svc := NewAuthService(&failingStore{Store: mem, err: boom}, nil, 8, logging.Nop())
	pp := svc.Params()

	register(t, svc, pp, "alice", big.NewInt(3))
	ps := begin(t, pp, big.NewInt(3))

	_, _, err := svc.CreateChallenge(context.Background(), "alice", ps.r1, ps.r2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInternal))
	assert.Equal(t, 8, svc.IdentifierLength())
}

func TestConcurrentUsers(t *testing.T) {
	svc, pp := newService(t)
	ctx := context.Background()
	const n = 16

	var g errgroup.Group
	sessions := make([]string, n)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			user := fmt.Sprintf("user%d", i)
			x := big.NewInt(int64(1000 + i))

			y1 := zkp.Exponentiate(pp.G, x, pp.P)
			y2 := zkp.Exponentiate(pp.H, x, pp.P)
			if err := svc.Register(ctx, user, y1, y2); err != nil {
				return err
			}

			for attempt := 0; attempt < 3; attempt++ {
				k, err := zkp.RandomScalar(pp.Q)
				if err != nil {
					return err
				}
				r1 := zkp.Exponentiate(pp.G, k, pp.P)
				r2 := zkp.Exponentiate(pp.H, k, pp.P)

				authID, c, err := svc.CreateChallenge(ctx, user, r1, r2)
				if err != nil {
					return err
				}
				sid, err := svc.VerifyAuthentication(ctx, authID, zkp.ComputeResponse(x, k, c, pp.Q))
				if err != nil {
					return fmt.Errorf("%s attempt %d: %w", user, attempt, err)
				}
				sessions[i] = sid
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for i := 0; i < n; i++ {
		x := big.NewInt(int64(1000 + i))
		rec, err := svc.User(ctx, fmt.Sprintf("user%d", i))
		require.NoError(t, err)
		assert.Equal(t, 0, zkp.Exponentiate(pp.G, x, pp.P).Cmp(rec.Y1))
		assert.Equal(t, 0, zkp.Exponentiate(pp.H, x, pp.P).Cmp(rec.Y2))
		assert.Equal(t, sessions[i], rec.SessionID)
		assert.Equal(t, store.StateAuthenticated, rec.State)
	}
}
