package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tradewire/ibdesk/internal/partner/entity"
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
	return s.ins.Tracer("partner.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *DB) UpsertPayoutDetails(ctx context.Context, det entity.PayoutDetails) (err error) {
	ctx, span := s.startSpan(ctx, "UpsertPayoutDetails")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO partner_payout_details
			(partner_id, method, bank_name, account_name, account_number, iban, swift_code, currency, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (partner_id) DO UPDATE
		SET method = EXCLUDED.method,
			bank_name = EXCLUDED.bank_name,
			account_name = EXCLUDED.account_name,
			account_number = EXCLUDED.account_number,
			iban = EXCLUDED.iban,
			swift_code = EXCLUDED.swift_code,
			currency = EXCLUDED.currency,
			updated_at = EXCLUDED.updated_at`

	_, err = s.conn.Exec(ctx, query,
		det.PartnerID, det.Method, det.BankName, det.AccountName,
		det.AccountNumber, det.IBAN, det.SwiftCode, det.Currency, det.UpdatedAt)
	err = s.mapError(err)
	return err
}

func (s *DB) GetPayoutDetails(ctx context.Context, partnerID int64) (_ *entity.PayoutDetails, err error) {
	ctx, span := s.startSpan(ctx, "GetPayoutDetails")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT partner_id, method, bank_name, account_name, account_number, iban, swift_code, currency, updated_at
		FROM partner_payout_details
		WHERE partner_id = $1`

	var det entity.PayoutDetails
	err = s.conn.QueryRow(ctx, query, partnerID).
		Scan(&det.PartnerID, &det.Method, &det.BankName, &det.AccountName,
			&det.AccountNumber, &det.IBAN, &det.SwiftCode, &det.Currency, &det.UpdatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &det, nil
}
