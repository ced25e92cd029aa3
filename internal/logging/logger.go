// Package logging defines the structured-logging interface shared by the
// verifier service and the prover client, and its slog implementation.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key-value pairs, e.g.:
//
//	log.Info(ctx, "challenge issued", "user", userID, "auth_id", authID)
//
// Secrets, blinding factors and full group elements must never be passed as
// attributes; use zkp.Fingerprint for public values.
type Logger interface {
	// Debug logs detail useful when tracing a single authentication.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value pairs.
	With(args ...any) Logger
}
