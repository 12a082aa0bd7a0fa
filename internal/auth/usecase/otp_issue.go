package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/tradewire/ibdesk/internal/auth/entity"
	"github.com/tradewire/ibdesk/internal/pkg/goerror"
	"github.com/tradewire/ibdesk/internal/pkg/mail"
)

const defaultOtpTTL = 10 * time.Minute

type OTPIssueInput struct {
	Email   string `validate:"required,email"`
	Purpose string
}

type OTPIssueOutput struct {
	Email     string
	Purpose   entity.OtpPurpose
	ExpiresAt time.Time
	// Warnings lists degraded-success conditions, such as the code email
	// failing to send while the code itself is live.
	Warnings []string
}

// OTPIssue generates a one-time code for an identity, stores its digest, and
// emails the plaintext. Reissuing replaces any live code for the identity.
func (s *Usecase) OTPIssue(ctx context.Context, in OTPIssueInput) (*OTPIssueOutput, error) {
	ctx, span := s.startSpan(ctx, "OTPIssue")
	defer span.End()

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}
	purpose := entity.OtpPurposeFromString(in.Purpose)

	code, err := randomCode()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "error", err)
		return nil, goerror.NewServer(err)
	}

	codeHash, err := s.hmac.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp code", "error", err)
		return nil, goerror.NewServer(err)
	}

	ttl := s.cfg.GetSecond("modules.auth.otp_ttl_seconds")
	if ttl <= 0 {
		ttl = defaultOtpTTL
	}

	now := s.clock.Now()
	rec := entity.OtpRecord{
		Identity:  in.Email,
		CodeHash:  string(codeHash),
		Purpose:   purpose,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
	if err := s.otpStore.Put(ctx, rec); err != nil {
		slog.ErrorContext(ctx, "failed to store otp record", "identity", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	out := &OTPIssueOutput{Email: in.Email, Purpose: purpose, ExpiresAt: rec.ExpiresAt}

	// The code is live even when the email does not go out; surface the
	// failure as a warning instead of failing the operation.
	if _, err := s.mailer.Send(ctx, mail.Message{
		To:       []string{in.Email},
		Subject:  fmt.Sprintf("Your %s verification code", purpose),
		TextBody: fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(ttl.Minutes())),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send otp email", "identity", in.Email, "error", err)
		out.Warnings = append(out.Warnings, "verification email could not be delivered")
	}

	return out, nil
}

// randomCode draws a uniform code in [100000, 999999]; the range keeps every
// draw at exactly six digits, so the %06d padding never fires.
func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
