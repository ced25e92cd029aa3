// Package zkp implements the group arithmetic behind the Chaum-Pedersen
// proof of equality of discrete logarithms: modular exponentiation, uniform
// scalar sampling, random identifiers, the canonical integer encoding, and
// the prover response and verifier check.
//
// Every function here is stateless and safe for concurrent use.
package zkp

import (
	"fmt"
	"math/big"
)

// RFC 5114, section 2.1: 1024-bit MODP group with a 160-bit prime order
// subgroup. hexH is a second generator of the same subgroup: a hash of a
// public seed raised to (p-1)/q, so log_g(h) is unknown to everyone.
const (
	hexP = "B10B8F96A080E01DDE92DE5EAE5D54EC52C99FBCFB06A3C69A6A9DCA52D23B61" +
		"6073E28675A23D189838EF1E2EE652C013ECB4AEA906112324975C3CD49B83BF" +
		"ACCBDD7D90C4BD7098488E9C219A73724EFFD6FAE5644738FAA31A4FF55BCCC0" +
		"A151AF5F0DC8B4BD45BF37DF365C1A65E68CFDA76D4DA708DF1FB2BC2E4A4371"
	hexQ = "F518AA8781A8DF278ABA4E7D64B7CB9D49462353"
	hexG = "A4D1CBD5C3FD34126765A442EFB99905F8104DD258AC507FD6406CFF14266D31" +
		"266FEA1E5C41564B777E690F5504F213160217B4B01B886A5E91547F9E2749F4" +
		"D7FBD7D3B9A92EE1909D0D2263F80A76A6A24C087A091F531DBF0A0169B6A28A" +
		"D662A4D18E73AFA32D779D5918D08BC8858F4DCEF97C2A24855E6EEB22B3B2E5"
	hexH = "9E1050444BA4407455BE1C3F5FB7D9CFC6D9702C3D89CE58A9BBE6032EAD077D" +
		"0A201B4A4B69576930DB8D2450E2E866620DFE6A7B1320AFB748E3695EFDFD7E" +
		"FD92993F70D1F1F692DC76DA765D212EC49169F4C2D3749E3845B3CA71D9E76F" +
		"ECE215EBCF954CC5F8773FB82427E631C97314A43D8884CE1071F01DC4360BCC"
)

// Params are the public group parameters known to both roles out of band.
// They are never part of a request payload.
type Params struct {
	P *big.Int // prime modulus
	Q *big.Int // prime order of the subgroup generated by G and H
	G *big.Int
	H *big.Int
}

var defaultParams = Params{
	P: mustHex(hexP),
	Q: mustHex(hexQ),
	G: mustHex(hexG),
	H: mustHex(hexH),
}

// DefaultParams returns a fresh copy of the fixed group parameters.
func DefaultParams() *Params {
	return defaultParams.Clone()
}

// Clone returns a deep copy of p.
func (p *Params) Clone() *Params {
	return &Params{
		P: new(big.Int).Set(p.P),
		Q: new(big.Int).Set(p.Q),
		G: new(big.Int).Set(p.G),
		H: new(big.Int).Set(p.H),
	}
}

// Validate checks that q divides p-1 and that g and h are distinct
// non-trivial elements of order q.
func (p *Params) Validate() error {
	if p == nil || p.P == nil || p.Q == nil || p.G == nil || p.H == nil {
		return fmt.Errorf("zkp: incomplete group parameters")
	}
	one := big.NewInt(1)
	if p.P.Cmp(one) <= 0 || p.Q.Cmp(one) <= 0 {
		return fmt.Errorf("zkp: modulus and order must be greater than 1")
	}

	pMinusOne := new(big.Int).Sub(p.P, one)
	if new(big.Int).Mod(pMinusOne, p.Q).Sign() != 0 {
		return fmt.Errorf("zkp: q does not divide p-1")
	}

	for name, gen := range map[string]*big.Int{"g": p.G, "h": p.H} {
		if gen.Cmp(one) <= 0 || gen.Cmp(p.P) >= 0 {
			return fmt.Errorf("zkp: generator %s out of range", name)
		}
		if Exponentiate(gen, p.Q, p.P).Cmp(one) != 0 {
			return fmt.Errorf("zkp: generator %s does not have order q", name)
		}
	}

	if p.G.Cmp(p.H) == 0 {
		return fmt.Errorf("zkp: generators g and h must differ")
	}
	return nil
}

func mustHex(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("zkp: invalid hex constant")
	}
	return n
}
