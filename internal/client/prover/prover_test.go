package prover

import (
	"math/big"
	"testing"

	"github.com/dmitrijs2005/zkpauth/internal/zkp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Commitments(t *testing.T) {
	p := New(nil)
	pp := zkp.DefaultParams()
	x := big.NewInt(123456789)

	y1, y2, err := p.Register(x)
	require.NoError(t, err)

	want, ok := new(big.Int).SetString("1a0065a8cce8dfd638300796a133a60548eb0f682ca21856978d0806d780b1c00fde7adfed7246d9cb44a52b3f41245260c2986355d2931a386c1434dec69b6c6375ae6e5c71c5679aa4324bc72427deb9164e67ee41cb119c6d49f499ebd5fb7aa741b866ae89dfd45f5033aea17cd453de097d642b7988ee1ecbf200489d1f", 16)
	require.True(t, ok)
	assert.Equal(t, 0, want.Cmp(y1))
	assert.Equal(t, 0, new(big.Int).Exp(pp.H, x, pp.P).Cmp(y2))
}

func TestRegister_RejectsNegative(t *testing.T) {
	_, _, err := New(nil).Register(big.NewInt(-1))
	assert.Error(t, err)

	_, _, err = New(nil).Register(nil)
	assert.Error(t, err)
}

func TestBeginChallenge_FreshBlinding(t *testing.T) {
	p := New(nil)
	pp := p.Params()

	a1, err := p.BeginChallenge()
	require.NoError(t, err)
	a2, err := p.BeginChallenge()
	require.NoError(t, err)

	assert.NotEqual(t, 0, a1.K.Cmp(a2.K), "blinding values must differ between attempts")
	assert.True(t, a1.K.Cmp(pp.Q) < 0)
	assert.Equal(t, 0, new(big.Int).Exp(pp.G, a1.K, pp.P).Cmp(a1.R1))
	assert.Equal(t, 0, new(big.Int).Exp(pp.H, a1.K, pp.P).Cmp(a1.R2))
}

func TestRespond_VerifiesAndDiscards(t *testing.T) {
	p := New(nil)
	pp := p.Params()
	x := big.NewInt(123456789)

	y1, y2, err := p.Register(x)
	require.NoError(t, err)

	a, err := p.BeginChallenge()
	require.NoError(t, err)
	r1, r2 := a.R1, a.R2

	c, err := zkp.RandomScalar(pp.Q)
	require.NoError(t, err)

	s, err := p.Respond(x, a, c)
	require.NoError(t, err)
	assert.True(t, zkp.VerifyProof(pp.P, y1, y2, r1, r2, pp.G, pp.H, c, s))

	assert.Nil(t, a.K)
	_, err = p.Respond(x, a, c)
	assert.ErrorIs(t, err, ErrAttemptUsed)
}

func TestRespond_ToyGroup(t *testing.T) {
	params := &zkp.Params{P: big.NewInt(23), Q: big.NewInt(11), G: big.NewInt(4), H: big.NewInt(9)}
	p := New(params)

	a := &Attempt{K: big.NewInt(7), R1: big.NewInt(8), R2: big.NewInt(4)}
	s, err := p.Respond(big.NewInt(6), a, big.NewInt(4))
	require.NoError(t, err)
	assert.Equal(t, int64(5), s.Int64())
}

func TestRespond_InvalidInput(t *testing.T) {
	p := New(nil)

	_, err := p.Respond(big.NewInt(1), nil, big.NewInt(1))
	assert.ErrorIs(t, err, ErrAttemptUsed)

	a, err := p.BeginChallenge()
	require.NoError(t, err)
	_, err = p.Respond(big.NewInt(1), a, big.NewInt(-2))
	assert.Error(t, err)
	assert.NotNil(t, a.K, "a rejected call must not consume the attempt")

	a.Discard()
	a.Discard()
	_, err = p.Respond(big.NewInt(1), a, big.NewInt(2))
	assert.ErrorIs(t, err, ErrAttemptUsed)
}

func TestNew_CopiesParams(t *testing.T) {
	params := zkp.DefaultParams()
	p := New(params)
	params.G.SetInt64(2)

	assert.NotEqual(t, 0, p.Params().G.Cmp(big.NewInt(2)))
}
