package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tradewire/ibdesk/internal/partner/entity"
	"github.com/tradewire/ibdesk/internal/pkg/goerror"
)

type PayoutGetInput struct {
	PartnerID int64 `validate:"required,gt=0"`
}

type PayoutGetOutput struct {
	PartnerID     int64
	Method        entity.PayoutMethod
	BankName      string
	AccountName   string
	AccountNumber string
	IBAN          string
	SwiftCode     string
	Currency      string
	UpdatedAt     time.Time
}

// PayoutGet returns the payout destination for a partner.
func (s *Usecase) PayoutGet(ctx context.Context, in PayoutGetInput) (*PayoutGetOutput, error) {
	ctx, span := s.startSpan(ctx, "PayoutGet")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	det, err := s.repoDB.GetPayoutDetails(ctx, in.PartnerID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("payout details not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get payout details", "partner_id", in.PartnerID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &PayoutGetOutput{
		PartnerID:     det.PartnerID,
		Method:        det.Method,
		BankName:      det.BankName,
		AccountName:   det.AccountName,
		AccountNumber: det.AccountNumber,
		IBAN:          det.IBAN,
		SwiftCode:     det.SwiftCode,
		Currency:      det.Currency,
		UpdatedAt:     det.UpdatedAt,
	}, nil
}
