package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tradewire/ibdesk/internal/partner/entity"
	"github.com/tradewire/ibdesk/internal/pkg/goerror"
)

type PayoutSaveInput struct {
	PartnerID     int64  `validate:"required,gt=0"`
	Method        string `validate:"required,oneof=bank_transfer wallet"`
	BankName      string `validate:"required_if=Method bank_transfer,max=100"`
	AccountName   string `validate:"required,min=2,max=100"`
	AccountNumber string `validate:"required,min=4,max=64"`
	IBAN          string `validate:"omitempty,max=34"`
	SwiftCode     string `validate:"omitempty,min=8,max=11"`
	Currency      string `validate:"required,len=3,alpha"`
}

// PayoutSave stores or replaces the payout destination for a partner.
func (s *Usecase) PayoutSave(ctx context.Context, in PayoutSaveInput) error {
	ctx, span := s.startSpan(ctx, "PayoutSave")
	defer span.End()

	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	in.SwiftCode = strings.ToUpper(strings.TrimSpace(in.SwiftCode))
	in.IBAN = strings.ToUpper(strings.ReplaceAll(in.IBAN, " ", ""))
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	det := entity.PayoutDetails{
		PartnerID:     in.PartnerID,
		Method:        entity.PayoutMethodFromString(in.Method),
		BankName:      strings.TrimSpace(in.BankName),
		AccountName:   strings.TrimSpace(in.AccountName),
		AccountNumber: strings.TrimSpace(in.AccountNumber),
		IBAN:          in.IBAN,
		SwiftCode:     in.SwiftCode,
		Currency:      in.Currency,
		UpdatedAt:     s.clock.Now(),
	}

	if err := s.repoDB.UpsertPayoutDetails(ctx, det); err != nil {
		slog.ErrorContext(ctx, "failed to upsert payout details", "partner_id", in.PartnerID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
