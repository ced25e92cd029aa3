package zkp

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"math/big"

	"github.com/zeebo/blake3"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Bytes at or above this bound are rejected so every symbol is equally likely.
const alphabetBound = 256 - 256%len(alphabet)

// RandomIdentifier returns a string of length characters drawn uniformly
// from [A-Za-z0-9] using crypto/rand. It is used for both challenge and
// session identifiers.
func RandomIdentifier(length int) (string, error) {
	return randomIdentifier(rand.Reader, length)
}

func randomIdentifier(r io.Reader, length int) (string, error) {
	if length < 0 {
		return "", errors.New("zkp: negative identifier length")
	}

	out := make([]byte, 0, length)
	buf := make([]byte, length+length/4+1)
	for len(out) < length {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= alphabetBound {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}

// IsIdentifier reports whether s has the given length and only uses the
// identifier alphabet.
func IsIdentifier(s string, length int) bool {
	if len(s) != length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' || '0' <= c && c <= '9') {
			return false
		}
	}
	return true
}

// Fingerprint returns a short BLAKE3 digest of n for log lines, so public
// values can be correlated without being written out in full.
func Fingerprint(n *big.Int) string {
	if n == nil {
		return ""
	}
	sum := blake3.Sum256(Encode(n))
	return hex.EncodeToString(sum[:8])
}
