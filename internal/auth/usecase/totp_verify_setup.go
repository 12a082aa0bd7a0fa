package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tradewire/ibdesk/internal/auth/entity"
	"github.com/tradewire/ibdesk/internal/pkg/goerror"
	"github.com/tradewire/ibdesk/internal/pkg/mfa"
)

type TOTPVerifySetupInput struct {
	Username string `validate:"required,min=1,max=100"`
	Secret   string `validate:"required"`
	Code     string `validate:"required,len=6,numeric"`
}

type TOTPVerifySetupOutput struct {
	Username string
	Enabled  bool
	Warnings []string
}

// TOTPVerifySetup proves the user captured the secret in an authenticator.
// On a valid code the credential is upserted with enabled=true: upserting
// rather than flipping a flag self-heals a setup whose persistence failed.
func (s *Usecase) TOTPVerifySetup(ctx context.Context, in TOTPVerifySetupInput) (*TOTPVerifySetupOutput, error) {
	ctx, span := s.startSpan(ctx, "TOTPVerifySetup")
	defer span.End()

	in.Username = strings.TrimSpace(in.Username)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if !s.totp.Validate(in.Code, in.Secret, s.clock.Now()) {
		slog.WarnContext(ctx, "totp setup code mismatch", "username", in.Username)
		return nil, goerror.NewBusiness("incorrect authenticator code", goerror.CodeInvalidCode)
	}

	out := &TOTPVerifySetupOutput{Username: in.Username, Enabled: true}

	encryptedSecret, err := s.mfaEncryptor.Encrypt([]byte(in.Secret), mfa.Scope{
		Username: in.Username,
		Purpose:  mfa.PurposeTOTPSecret,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to encrypt totp secret", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	cred := entity.TotpCredential{
		Username:  in.Username,
		Secret:    encryptedSecret,
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repoDB.UpsertTotpCredential(ctx, cred); err != nil {
		// The code was valid; report success but flag that enrollment may
		// need to be repeated.
		slog.ErrorContext(ctx, "failed to persist verified totp credential", "username", in.Username, "error", err)
		out.Warnings = append(out.Warnings, "verification succeeded but enrollment could not be saved")
	}

	return out, nil
}
