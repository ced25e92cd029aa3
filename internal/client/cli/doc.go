// Package cli provides the zkpauth command-line prover.
//
// It wires configuration, the gRPC client and the prover into two commands:
//
//	register -u <user>   derive the secret and register y1, y2
//	login    -u <user>   run the challenge/response exchange and print
//	                     SessionID=<id> on success
//
// Without a command the App starts an interactive REPL offering the same
// commands plus logout and exit. Passwords are read without echo.
package cli
