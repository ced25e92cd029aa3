package proto

import (
	"errors"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of zkp_auth.proto.
const (
	fieldUser   protowire.Number = 1
	fieldY1     protowire.Number = 2
	fieldY2     protowire.Number = 3
	fieldR1     protowire.Number = 2
	fieldR2     protowire.Number = 3
	fieldAuthID protowire.Number = 1
	fieldC      protowire.Number = 2
	fieldS      protowire.Number = 2
	fieldSessID protowire.Number = 1
)

var errInvalidUTF8 = errors.New("proto: string field contains invalid UTF-8")

// wireMessage is implemented by every message of the service. Encoding
// follows proto3: empty fields are omitted, unknown fields are skipped and
// the last occurrence of a field wins.
type wireMessage interface {
	appendWire(b []byte) []byte
	unmarshalWire(b []byte) error
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

// walkFields calls fn for every length-delimited field of b. Fields of any
// other wire type are skipped like unknown fields.
func walkFields(b []byte, fn func(num protowire.Number, v []byte) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		if typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
			continue
		}

		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		if err := fn(num, v); err != nil {
			return err
		}
	}
	return nil
}

func toString(v []byte) (string, error) {
	if !utf8.Valid(v) {
		return "", errInvalidUTF8
	}
	return string(v), nil
}

func toBytes(v []byte) []byte {
	return append([]byte(nil), v...)
}

func (x *RegisterRequest) appendWire(b []byte) []byte {
	b = appendString(b, fieldUser, x.User)
	b = appendBytes(b, fieldY1, x.Y1)
	return appendBytes(b, fieldY2, x.Y2)
}

func (x *RegisterRequest) unmarshalWire(b []byte) error {
	*x = RegisterRequest{}
	return walkFields(b, func(num protowire.Number, v []byte) (err error) {
		switch num {
		case fieldUser:
			x.User, err = toString(v)
		case fieldY1:
			x.Y1 = toBytes(v)
		case fieldY2:
			x.Y2 = toBytes(v)
		}
		return err
	})
}

func (x *RegisterResponse) appendWire(b []byte) []byte { return b }

func (x *RegisterResponse) unmarshalWire(b []byte) error {
	return walkFields(b, func(protowire.Number, []byte) error { return nil })
}

func (x *AuthenticationChallengeRequest) appendWire(b []byte) []byte {
	b = appendString(b, fieldUser, x.User)
	b = appendBytes(b, fieldR1, x.R1)
	return appendBytes(b, fieldR2, x.R2)
}

func (x *AuthenticationChallengeRequest) unmarshalWire(b []byte) error {
	*x = AuthenticationChallengeRequest{}
	return walkFields(b, func(num protowire.Number, v []byte) (err error) {
		switch num {
		case fieldUser:
			x.User, err = toString(v)
		case fieldR1:
			x.R1 = toBytes(v)
		case fieldR2:
			x.R2 = toBytes(v)
		}
		return err
	})
}

func (x *AuthenticationChallengeResponse) appendWire(b []byte) []byte {
	b = appendString(b, fieldAuthID, x.AuthId)
	return appendBytes(b, fieldC, x.C)
}

func (x *AuthenticationChallengeResponse) unmarshalWire(b []byte) error {
	*x = AuthenticationChallengeResponse{}
	return walkFields(b, func(num protowire.Number, v []byte) (err error) {
		switch num {
		case fieldAuthID:
			x.AuthId, err = toString(v)
		case fieldC:
			x.C = toBytes(v)
		}
		return err
	})
}

func (x *AuthenticationAnswerRequest) appendWire(b []byte) []byte {
	b = appendString(b, fieldAuthID, x.AuthId)
	return appendBytes(b, fieldS, x.S)
}

func (x *AuthenticationAnswerRequest) unmarshalWire(b []byte) error {
	*x = AuthenticationAnswerRequest{}
	return walkFields(b, func(num protowire.Number, v []byte) (err error) {
		switch num {
		case fieldAuthID:
			x.AuthId, err = toString(v)
		case fieldS:
			x.S = toBytes(v)
		}
		return err
	})
}

func (x *AuthenticationAnswerResponse) appendWire(b []byte) []byte {
	return appendString(b, fieldSessID, x.SessionId)
}

func (x *AuthenticationAnswerResponse) unmarshalWire(b []byte) error {
	*x = AuthenticationAnswerResponse{}
	return walkFields(b, func(num protowire.Number, v []byte) (err error) {
		if num == fieldSessID {
			x.SessionId, err = toString(v)
		}
		return err
	})
}
