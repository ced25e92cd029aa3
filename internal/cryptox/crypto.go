// Package cryptox turns user passwords into prover secrets.
package cryptox

import (
	"errors"
	"math/big"
	"strings"

	"golang.org/x/crypto/argon2"
)

// SaltPrefix is prepended to the user id to form the argon2 salt, so equal
// passwords of different users yield unrelated secrets.
const SaltPrefix = "zkpauth:"

var ErrInvalidSecret = errors.New("secret must be a non-negative decimal integer")

func deriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// DeriveSecret derives the secret exponent x from a password with argon2id
// and reduces it modulo the group order. The same password and user always
// give the same x.
func DeriveSecret(password []byte, userID string, order *big.Int) *big.Int {
	key := deriveKey(password, []byte(SaltPrefix+userID))
	defer Wipe(key)

	x := new(big.Int).SetBytes(key)
	return x.Mod(x, order)
}

// ParseDecimalSecret reads the password as a plain decimal integer and uses
// it as x unchanged.
func ParseDecimalSecret(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrInvalidSecret
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return nil, ErrInvalidSecret
		}
	}

	x, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, ErrInvalidSecret
	}
	return x, nil
}

// Wipe zeroes b.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
