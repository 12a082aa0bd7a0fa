package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/tradewire/ibdesk/internal/pkg/goerror"
	"github.com/tradewire/ibdesk/internal/pkg/mfa"
)

type TOTPVerifyLoginInput struct {
	Username string `validate:"required,min=1,max=100"`
	Code     string `validate:"required,len=6,numeric"`
}

// TOTPVerifyLogin checks an authenticator code during login. An account with
// no verified enrollment gets the same answer as a wrong code, so callers
// cannot probe which usernames carry 2FA.
func (s *Usecase) TOTPVerifyLogin(ctx context.Context, in TOTPVerifyLoginInput) error {
	ctx, span := s.startSpan(ctx, "TOTPVerifyLogin")
	defer span.End()

	in.Username = strings.TrimSpace(in.Username)
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	cred, err := s.repoDB.GetTotpCredential(ctx, in.Username)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "totp login for unenrolled account", "username", in.Username)
		return goerror.NewBusiness("two-factor authentication is not enabled", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to load totp credential", "username", in.Username, "error", err)
		return goerror.NewServer(err)
	}

	if !cred.Enabled {
		slog.WarnContext(ctx, "totp login before setup verification", "username", in.Username)
		return goerror.NewBusiness("two-factor authentication is not enabled", goerror.CodeUnauthorized)
	}

	secret, err := s.mfaEncryptor.Decrypt(cred.Secret, mfa.Scope{
		Username: in.Username,
		Purpose:  mfa.PurposeTOTPSecret,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to decrypt totp secret", "username", in.Username, "error", err)
		return goerror.NewServer(err)
	}

	if !s.totp.Validate(in.Code, string(secret), s.clock.Now()) {
		slog.WarnContext(ctx, "totp login code mismatch", "username", in.Username)
		return goerror.NewBusiness("invalid authenticator code", goerror.CodeUnauthorized)
	}

	return nil
}
