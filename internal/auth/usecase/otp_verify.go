package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/tradewire/ibdesk/internal/pkg/goerror"
)

type OTPVerifyInput struct {
	Email string `validate:"required,email"`
	Code  string `validate:"required,len=6,numeric"`
}

// OTPVerify checks a submitted code against the live record for an identity.
// A matching code is consumed; a mismatching one leaves the record in place.
func (s *Usecase) OTPVerify(ctx context.Context, in OTPVerifyInput) error {
	ctx, span := s.startSpan(ctx, "OTPVerify")
	defer span.End()

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	rec, err := s.otpStore.Get(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "otp record not found", "identity", in.Email)
		return goerror.NewBusiness("no verification code found for this email", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to load otp record", "identity", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if rec.Expired(s.clock.Now()) {
		if err := s.otpStore.Delete(ctx, in.Email); err != nil {
			slog.ErrorContext(ctx, "failed to delete expired otp record", "identity", in.Email, "error", err)
		}
		slog.WarnContext(ctx, "otp record expired", "identity", in.Email)
		return goerror.NewBusiness("verification code has expired", goerror.CodeExpired)
	}

	// Mismatch keeps the record so the user may retry until expiry.
	if !s.hmac.Verify(rec.CodeHash, in.Code) {
		slog.WarnContext(ctx, "otp code mismatch", "identity", in.Email)
		return goerror.NewBusiness("incorrect verification code", goerror.CodeInvalidCode)
	}

	if err := s.otpStore.Delete(ctx, in.Email); err != nil {
		slog.ErrorContext(ctx, "failed to consume otp record", "identity", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
