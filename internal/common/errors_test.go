package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorIs_MatchesByKind(t *testing.T) {
	err := NotFound("store.GetUser", "user %q not found", "alice")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrUnauthenticated))
	assert.False(t, errors.Is(err, ErrInternal))

	wrapped := fmt.Errorf("service: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"not found", NotFound("op", "x"), KindNotFound},
		{"unauthenticated", Unauthenticated("op", "x"), KindUnauthenticated},
		{"invalid argument", InvalidArgument("op", "x"), KindInvalidArgument},
		{"internal", Internal("op", "x"), KindInternal},
		{"wrapped", fmt.Errorf("outer: %w", InvalidArgument("op", "x")), KindInvalidArgument},
		{"foreign error", errors.New("boom"), KindInternal},
		{"nil", nil, KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestError_Message(t *testing.T) {
	err := Unauthenticated("services.VerifyAuthentication", "challenge not solved correctly")
	assert.Equal(t, "services.VerifyAuthentication: unauthenticated: challenge not solved correctly", err.Error())

	assert.Equal(t, "not found", ErrNotFound.Error())
	assert.Equal(t, "op: internal error", (&Error{Op: "op"}).Error())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("db down")
	err := &Error{Kind: KindInternal, Op: "store.SaveUser", Err: cause}

	require.ErrorIs(t, err, cause)
	require.ErrorIs(t, err, ErrInternal)
}
