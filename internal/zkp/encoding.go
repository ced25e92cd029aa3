package zkp

import (
	"math/big"

	"github.com/dmitrijs2005/zkpauth/internal/common"
)

// MaxEncodedLen bounds the size of a decoded integer. It leaves ample room
// above the 128-byte modulus while keeping hostile inputs cheap to reject.
const MaxEncodedLen = 512

// Encode returns the minimal big-endian encoding of n. Zero encodes as a
// single zero byte. n must be non-negative.
func Encode(n *big.Int) []byte {
	if n.Sign() == 0 {
		return []byte{0}
	}
	return n.Bytes()
}

// Decode parses a canonical big-endian encoding produced by Encode. Empty
// input, redundant leading zero bytes and inputs above MaxEncodedLen are
// rejected with an InvalidArgument error.
func Decode(b []byte) (*big.Int, error) {
	switch {
	case len(b) == 0:
		return nil, common.InvalidArgument("zkp.Decode", "empty integer encoding")
	case len(b) > MaxEncodedLen:
		return nil, common.InvalidArgument("zkp.Decode", "integer encoding too long: %d bytes", len(b))
	case len(b) > 1 && b[0] == 0:
		return nil, common.InvalidArgument("zkp.Decode", "non-canonical integer encoding")
	}
	return new(big.Int).SetBytes(b), nil
}

// DecodeElement decodes a group element and checks that it lies in [1, p).
func DecodeElement(b []byte, p *big.Int) (*big.Int, error) {
	n, err := Decode(b)
	if err != nil {
		return nil, err
	}
	if n.Sign() == 0 || n.Cmp(p) >= 0 {
		return nil, common.InvalidArgument("zkp.DecodeElement", "group element out of range")
	}
	return n, nil
}
