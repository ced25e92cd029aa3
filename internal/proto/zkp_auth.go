// Package proto defines the zkp_auth.Auth wire contract: request and
// response messages, the codecs that carry them over gRPC (protobuf wire
// format by default, CBOR on request), and the client and server bindings
// for the three RPCs.
//
// All integers travel as canonical big-endian byte strings (see zkp.Encode).
package proto

// RegisterRequest carries the commitments y1 = g^x and y2 = h^x.
type RegisterRequest struct {
	User string `cbor:"1,keyasint"`
	Y1   []byte `cbor:"2,keyasint"`
	Y2   []byte `cbor:"3,keyasint"`
}

func (x *RegisterRequest) GetUser() string {
	if x != nil {
		return x.User
	}
	return ""
}

func (x *RegisterRequest) GetY1() []byte {
	if x != nil {
		return x.Y1
	}
	return nil
}

func (x *RegisterRequest) GetY2() []byte {
	if x != nil {
		return x.Y2
	}
	return nil
}

type RegisterResponse struct{}

// AuthenticationChallengeRequest carries the per-attempt commitments r1 and r2.
type AuthenticationChallengeRequest struct {
	User string `cbor:"1,keyasint"`
	R1   []byte `cbor:"2,keyasint"`
	R2   []byte `cbor:"3,keyasint"`
}

func (x *AuthenticationChallengeRequest) GetUser() string {
	if x != nil {
		return x.User
	}
	return ""
}

func (x *AuthenticationChallengeRequest) GetR1() []byte {
	if x != nil {
		return x.R1
	}
	return nil
}

func (x *AuthenticationChallengeRequest) GetR2() []byte {
	if x != nil {
		return x.R2
	}
	return nil
}

type AuthenticationChallengeResponse struct {
	AuthId string `cbor:"1,keyasint"`
	C      []byte `cbor:"2,keyasint"`
}

func (x *AuthenticationChallengeResponse) GetAuthId() string {
	if x != nil {
		return x.AuthId
	}
	return ""
}

func (x *AuthenticationChallengeResponse) GetC() []byte {
	if x != nil {
		return x.C
	}
	return nil
}

// AuthenticationAnswerRequest answers the challenge identified by AuthId.
type AuthenticationAnswerRequest struct {
	AuthId string `cbor:"1,keyasint"`
	S      []byte `cbor:"2,keyasint"`
}

func (x *AuthenticationAnswerRequest) GetAuthId() string {
	if x != nil {
		return x.AuthId
	}
	return ""
}

func (x *AuthenticationAnswerRequest) GetS() []byte {
	if x != nil {
		return x.S
	}
	return nil
}

type AuthenticationAnswerResponse struct {
	SessionId string `cbor:"1,keyasint"`
}

func (x *AuthenticationAnswerResponse) GetSessionId() string {
	if x != nil {
		return x.SessionId
	}
	return ""
}
