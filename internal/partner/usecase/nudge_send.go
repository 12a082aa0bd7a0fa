package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/tradewire/ibdesk/internal/partner/entity"
	"github.com/tradewire/ibdesk/internal/pkg/goerror"
	"github.com/tradewire/ibdesk/internal/pkg/idempotency"
	"github.com/tradewire/ibdesk/internal/pkg/mail"
	"github.com/tradewire/ibdesk/internal/shared/nudge"
)

type NudgeSendInput struct {
	Email string `validate:"required,email"`
	Kind  string `validate:"required"`
	Name  string `validate:"omitempty,max=100"`
}

type NudgeSendOutput struct {
	Email      string
	Kind       entity.NudgeKind
	DeliveryID string
}

// NudgeSend delivers one reminder email synchronously. A duplicate send for
// the same kind and recipient inside the idempotency TTL is rejected, and a
// mailer failure after retries surfaces as a delivery error.
func (s *Usecase) NudgeSend(ctx context.Context, in NudgeSendInput) (*NudgeSendOutput, error) {
	ctx, span := s.startSpan(ctx, "NudgeSend")
	defer span.End()

	if _, err := s.authorized(ctx, "partner_nudges", "write"); err != nil {
		return nil, err
	}

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	kind := entity.NudgeKind(in.Kind)
	if !kind.Valid() {
		return nil, goerror.NewInvalidInput(nil, "kind", "unknown nudge kind")
	}

	subject, body, err := nudge.Render(in.Kind, nudge.Data{
		Name:         in.Name,
		DashboardURL: s.cfg.GetString("app.web"),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to render nudge template", "kind", in.Kind, "error", err)
		return nil, goerror.NewServer(err)
	}

	out := &NudgeSendOutput{Email: in.Email, Kind: kind}

	idempKey := "nudge:" + in.Kind + ":" + in.Email
	err = s.idemp.Exec(ctx, idempKey, func(ctx context.Context) error {
		deliveryID, sendErr := s.mailer.Send(ctx, mail.Message{
			To:       []string{in.Email},
			Subject:  subject,
			HTMLBody: body,
		})
		out.DeliveryID = deliveryID
		return sendErr
	},
		idempotency.WithLockDuration(s.cfg.GetSecond("modules.partner.nudge_lock_seconds")),
		idempotency.WithStateTTL(s.cfg.GetSecond("modules.partner.nudge_dedupe_ttl_seconds")),
	)

	switch {
	case err == nil:
		return out, nil

	case errors.Is(err, idempotency.ErrAlreadyCompleted),
		errors.Is(err, idempotency.ErrAlreadyInProgress):
		slog.WarnContext(ctx, "duplicate nudge send rejected", "email", in.Email, "kind", in.Kind)
		return nil, goerror.NewBusiness("this nudge was already sent recently", goerror.CodeConflict)

	default:
		slog.ErrorContext(ctx, "failed to send nudge email", "email", in.Email, "kind", in.Kind, "error", err)
		return nil, goerror.NewBusiness("nudge email could not be delivered", goerror.CodeDeliveryFailed)
	}
}
