package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"

	"github.com/dmitrijs2005/zkpauth/internal/common"
	"github.com/dmitrijs2005/zkpauth/internal/dbx"
	"github.com/dmitrijs2005/zkpauth/internal/server/migrations"
	"github.com/dmitrijs2005/zkpauth/internal/zkp"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/zeebo/blake3"
)

// PostgresStore persists records in PostgreSQL. auth_ids are stored only as
// BLAKE3 digests.
type PostgresStore struct {
	db *sql.DB
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres connects with the pgx driver, checks the connection and
// applies migrations.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return NewPostgresStore(db), nil
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

func authDigest(authID string) []byte {
	sum := blake3.Sum256([]byte(authID))
	return sum[:]
}

func encodeNullable(n *big.Int) []byte {
	if n == nil {
		return nil
	}
	return zkp.Encode(n)
}

func decodeNullable(b []byte) *big.Int {
	if b == nil {
		return nil
	}
	return new(big.Int).SetBytes(b)
}

func (s *PostgresStore) SaveUser(ctx context.Context, userID string, y1, y2 *big.Int) error {
	query := `INSERT INTO zkp_users (user_id, y1, y2, state)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			y1 = EXCLUDED.y1, y2 = EXCLUDED.y2,
			r1 = NULL, r2 = NULL, c = NULL, auth_digest = NULL, session_id = NULL,
			state = EXCLUDED.state, updated_at = now()`

	_, err := s.db.ExecContext(ctx, query, userID, zkp.Encode(y1), zkp.Encode(y2), int16(StateRegistered))
	if err != nil {
		return common.Internal("store.SaveUser", "db error: %w", err)
	}
	return nil
}

const selectUser = `SELECT u.user_id, u.y1, u.y2, u.r1, u.r2, u.c, u.session_id, u.state FROM zkp_users u`

func scanUser(row *sql.Row) (*UserRecord, error) {
	var (
		rec               UserRecord
		y1, y2, r1, r2, c []byte
		sessionID         sql.NullString
		state             int16
	)
	if err := row.Scan(&rec.UserID, &y1, &y2, &r1, &r2, &c, &sessionID, &state); err != nil {
		return nil, err
	}
	rec.Y1, rec.Y2 = decodeNullable(y1), decodeNullable(y2)
	rec.R1, rec.R2, rec.C = decodeNullable(r1), decodeNullable(r2), decodeNullable(c)
	rec.SessionID = sessionID.String
	rec.State = State(state)
	return &rec, nil
}

func (s *PostgresStore) GetUser(ctx context.Context, userID string) (*UserRecord, error) {
	rec, err := scanUser(s.db.QueryRowContext(ctx, selectUser+` WHERE u.user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NotFound("store.GetUser", "user %q not registered", userID)
		}
		return nil, common.Internal("store.GetUser", "db error: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) SaveChallenge(ctx context.Context, userID, authID string, r1, r2, c *big.Int) error {
	const op = "store.SaveChallenge"
	digest := authDigest(authID)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var locked string
		err := tx.QueryRowContext(ctx, `SELECT user_id FROM zkp_users WHERE user_id = $1 FOR UPDATE`, userID).Scan(&locked)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return common.NotFound(op, "user %q not registered", userID)
			}
			return err
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO zkp_challenges (auth_digest, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			digest, userID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return common.Internal(op, "auth id collision")
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE zkp_users SET r1 = $2, r2 = $3, c = $4, auth_digest = $5, state = $6, updated_at = now() WHERE user_id = $1`,
			userID, encodeNullable(r1), encodeNullable(r2), encodeNullable(c), digest, int16(StateChallenged))
		return err
	})
	return wrapDB(op, err)
}

func (s *PostgresStore) LookupChallenge(ctx context.Context, authID string) (*UserRecord, error) {
	query := selectUser + ` JOIN zkp_challenges ch ON ch.user_id = u.user_id WHERE ch.auth_digest = $1`

	rec, err := scanUser(s.db.QueryRowContext(ctx, query, authDigest(authID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NotFound("store.LookupChallenge", "unknown auth id")
		}
		return nil, common.Internal("store.LookupChallenge", "db error: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) SaveSession(ctx context.Context, userID, authID, sessionID string) error {
	const op = "store.SaveSession"
	digest := authDigest(authID)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var current []byte
		err := tx.QueryRowContext(ctx, `SELECT auth_digest FROM zkp_users WHERE user_id = $1 FOR UPDATE`, userID).Scan(&current)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return common.NotFound(op, "user %q not registered", userID)
			}
			return err
		}
		if string(current) != string(digest) {
			return common.Unauthenticated(op, "challenge superseded")
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE zkp_users SET session_id = $2, state = $3, updated_at = now() WHERE user_id = $1`,
			userID, sessionID, int16(StateAuthenticated))
		return err
	})
	return wrapDB(op, err)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// wrapDB passes classified errors through and marks the rest Internal.
func wrapDB(op string, err error) error {
	if err == nil {
		return nil
	}
	var ce *common.Error
	if errors.As(err, &ce) {
		return err
	}
	return common.Internal(op, "db error: %w", err)
}
