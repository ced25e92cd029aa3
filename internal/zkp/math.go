package zkp

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
)

const maxSampleIterations = 255

var errSampleIterations = errors.New("zkp: failed to sample a scalar")

func toNat(x *big.Int) *saferith.Nat {
	return new(saferith.Nat).SetBig(x, x.BitLen())
}

func toModulus(m *big.Int) *saferith.Modulus {
	return saferith.ModulusFromBytes(m.Bytes())
}

// Exponentiate returns base^exponent mod modulus. The exponent may exceed
// the modulus; base is reduced first. For odd moduli, which include every
// group modulus, exponentiation runs in time that depends only on the sizes
// of its inputs, so it is safe for secret exponents. Even moduli fall back
// to math/big. modulus must be greater than 1 and exponent non-negative.
func Exponentiate(base, exponent, modulus *big.Int) *big.Int {
	if exponent.Sign() < 0 {
		panic("zkp: negative exponent")
	}
	if exponent.Sign() == 0 {
		return new(big.Int).Mod(big.NewInt(1), modulus)
	}

	b := new(big.Int).Mod(base, modulus)
	if modulus.Bit(0) == 0 {
		// saferith's Montgomery exponentiation requires an odd modulus.
		return b.Exp(b, exponent, modulus)
	}

	m := toModulus(modulus)
	return new(saferith.Nat).Exp(toNat(b), toNat(exponent), m).Big()
}

// RandomScalar returns a uniform value in [0, order) read from crypto/rand.
func RandomScalar(order *big.Int) (*big.Int, error) {
	return sampleScalar(rand.Reader, order)
}

// sampleScalar draws bitlen(order) bits and retries until the candidate is
// below order. Each draw succeeds with probability above 1/2.
func sampleScalar(r io.Reader, order *big.Int) (*big.Int, error) {
	if order == nil || order.Sign() <= 0 {
		return nil, errors.New("zkp: order must be positive")
	}

	bitLen := order.BitLen()
	buf := make([]byte, (bitLen+7)/8)
	topMask := byte(0xff)
	if extra := len(buf)*8 - bitLen; extra > 0 {
		topMask >>= extra
	}

	out := new(big.Int)
	for i := 0; i < maxSampleIterations; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		buf[0] &= topMask
		out.SetBytes(buf)
		if out.Cmp(order) < 0 {
			return out, nil
		}
	}
	return nil, errSampleIterations
}

// ComputeResponse returns s = (blinding - challenge*secret) mod order, always
// in [0, order).
func ComputeResponse(secret, blinding, challenge, order *big.Int) *big.Int {
	if order.Bit(0) == 0 {
		cx := new(big.Int).Mul(challenge, secret)
		s := new(big.Int).Sub(blinding, cx)
		return s.Mod(s, order)
	}

	q := toModulus(order)

	x := toNat(secret)
	x.Mod(x, q)
	k := toNat(blinding)
	k.Mod(k, q)
	c := toNat(challenge)
	c.Mod(c, q)

	cx := new(saferith.Nat).ModMul(c, x, q)
	return new(saferith.Nat).ModSub(k, cx, q).Big()
}

// VerifyProof reports whether g^s * y1^c = r1 and h^s * y2^c = r2, both
// modulo p. Both equations are always evaluated; a partial match fails.
// Nil inputs or a modulus not greater than 1 yield false.
func VerifyProof(p, y1, y2, r1, r2, g, h, c, s *big.Int) bool {
	for _, v := range []*big.Int{p, y1, y2, r1, r2, g, h, c, s} {
		if v == nil || v.Sign() < 0 {
			return false
		}
	}
	if p.Cmp(big.NewInt(1)) <= 0 {
		return false
	}

	lhs1 := mulMod(Exponentiate(g, s, p), Exponentiate(y1, c, p), p)
	lhs2 := mulMod(Exponentiate(h, s, p), Exponentiate(y2, c, p), p)

	ok1 := lhs1.Cmp(r1) == 0
	ok2 := lhs2.Cmp(r2) == 0
	return ok1 && ok2
}

func mulMod(a, b, m *big.Int) *big.Int {
	out := new(big.Int).Mul(a, b)
	return out.Mod(out, m)
}
