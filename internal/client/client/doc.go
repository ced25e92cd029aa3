// Package client contains the prover-side transport for the zkp_auth.Auth
// service.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering the
//     three protocol steps: Register, CreateChallenge and
//     VerifyAuthentication. Group elements and scalars cross it as *big.Int.
//  2. A concrete gRPC implementation (see GRPCClient) that encodes integers
//     as canonical big-endian bytes, applies a per-call timeout, and maps
//     gRPC status codes to sentinel errors.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable, ErrUnauthorized, ErrNotFound,
// ErrInvalidArgument and ErrBadResponse.
//
// # Concurrency & Contexts
//
// GRPCClient is safe for concurrent use once constructed. All operations
// accept context.Context and honor cancellation.
package client
