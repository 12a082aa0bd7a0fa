package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tradewire/ibdesk/internal/pkg/goerror"
)

type TOTPDisableInput struct {
	Username string `validate:"required,min=1,max=100"`
}

// TOTPDisable destroys the enrollment entirely. Re-enabling requires a full
// setup with a new secret. Disabling an account that was never enrolled is a
// no-op.
func (s *Usecase) TOTPDisable(ctx context.Context, in TOTPDisableInput) error {
	ctx, span := s.startSpan(ctx, "TOTPDisable")
	defer span.End()

	in.Username = strings.TrimSpace(in.Username)
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if err := s.repoDB.DeleteTotpCredential(ctx, in.Username); err != nil {
		slog.ErrorContext(ctx, "failed to delete totp credential", "username", in.Username, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
