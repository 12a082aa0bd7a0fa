package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tradewire/ibdesk/internal/auth/entity"
	"github.com/tradewire/ibdesk/internal/pkg/goerror"
	"github.com/tradewire/ibdesk/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type DB struct {
	conn *pgxpool.Pool
	ins  instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation) *DB {
	return &DB{conn: conn, ins: ins}
}

func (s *DB) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return goerror.ErrConflict
	}

	return err
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *DB) UpsertTotpCredential(ctx context.Context, cred entity.TotpCredential) (err error) {
	ctx, span := s.startSpan(ctx, "UpsertTotpCredential")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO auth_totp_credentials (username, secret, enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (username) DO UPDATE
		SET secret = EXCLUDED.secret, enabled = EXCLUDED.enabled, updated_at = EXCLUDED.updated_at`

	_, err = s.conn.Exec(ctx, query, cred.Username, cred.Secret, cred.Enabled, cred.UpdatedAt)
	err = s.mapError(err)
	return err
}

func (s *DB) GetTotpCredential(ctx context.Context, username string) (_ *entity.TotpCredential, err error) {
	ctx, span := s.startSpan(ctx, "GetTotpCredential")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT username, secret, enabled, created_at, updated_at
		FROM auth_totp_credentials
		WHERE username = $1`

	var cred entity.TotpCredential
	err = s.conn.QueryRow(ctx, query, username).
		Scan(&cred.Username, &cred.Secret, &cred.Enabled, &cred.CreatedAt, &cred.UpdatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &cred, nil
}

func (s *DB) DeleteTotpCredential(ctx context.Context, username string) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteTotpCredential")
	defer func() { s.endSpan(span, err) }()

	// Idempotent: deleting a missing enrollment succeeds.
	_, err = s.conn.Exec(ctx, `DELETE FROM auth_totp_credentials WHERE username = $1`, username)
	err = s.mapError(err)
	return err
}
