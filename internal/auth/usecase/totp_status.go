package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/tradewire/ibdesk/internal/pkg/goerror"
)

type TOTPStatusInput struct {
	Username string `validate:"required,min=1,max=100"`
}

type TOTPStatusOutput struct {
	Username string
	Enabled  bool
}

// TOTPStatus reports whether a verified enrollment exists. Lookup failures
// answer false rather than erroring, so login flows that branch on 2FA keep
// working when the credential store is unhealthy.
func (s *Usecase) TOTPStatus(ctx context.Context, in TOTPStatusInput) (*TOTPStatusOutput, error) {
	ctx, span := s.startSpan(ctx, "TOTPStatus")
	defer span.End()

	in.Username = strings.TrimSpace(in.Username)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	out := &TOTPStatusOutput{Username: in.Username}

	cred, err := s.repoDB.GetTotpCredential(ctx, in.Username)
	if errors.Is(err, goerror.ErrNotFound) {
		return out, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to load totp credential, reporting disabled", "username", in.Username, "error", err)
		return out, nil
	}

	out.Enabled = cred.Enabled

	return out, nil
}
