package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tradewire/ibdesk/internal/notify/entity"
	"github.com/tradewire/ibdesk/internal/pkg/mail"
	"github.com/tradewire/ibdesk/internal/shared/nudge"
)

const defaultRetryDelay = 2 * time.Minute

type ConsumePartnerNudgeInput struct {
	Email string `validate:"required,email"`
	Kind  string `validate:"required"`
	Name  string `validate:"omitempty,max=100"`
}

// ConsumePartnerNudge renders and sends one nudge email picked up from the
// queue. Malformed events are dropped, not retried; send failures are recorded
// on the delivery log with a retry hint.
func (s *Usecase) ConsumePartnerNudge(ctx context.Context, in ConsumePartnerNudgeInput) error {
	ctx, span := s.startSpan(ctx, "ConsumePartnerNudge")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	subject, body, err := nudge.Render(in.Kind, nudge.Data{
		Name:         in.Name,
		DashboardURL: s.cfg.GetString("app.web"),
	})
	if errors.Is(err, nudge.ErrUnknownKind) {
		slog.ErrorContext(ctx, "dropped nudge event with unknown kind", "kind", in.Kind)
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to render nudge template", "kind", in.Kind, "error", err)
		return err
	}

	logID := s.uid.Generate()
	if err := s.repoDB.CreateDeliveryLog(ctx, entity.CreateDeliveryLog{
		ID:        logID,
		Email:     in.Email,
		Kind:      in.Kind,
		Status:    entity.DeliveryStatusQueued,
		CreatedAt: s.clock.Now(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo create delivery log", "email", in.Email, "kind", in.Kind, "error", err)
		return err
	}

	deliveryID, mailErr := s.repoMail.Send(ctx, mail.Message{
		To:       []string{in.Email},
		Subject:  subject,
		HTMLBody: body,
	})
	if mailErr == nil {
		up := entity.UpdateDeliveryLog{
			ID:               logID,
			Status:           entity.DeliveryStatusSent,
			ProviderResponse: deliveryID,
			UpdatedAt:        s.clock.Now(),
		}
		if err := s.repoDB.UpdateDeliveryLogStatus(ctx, up); err != nil {
			slog.ErrorContext(ctx, "failed to repo update delivery log status sent", "log_id", logID, "error", err)
		}
		return nil
	}

	retryDelay := s.cfg.GetSecond("modules.notify.retry_delay_seconds")
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}

	nextRetry := s.clock.Now().Add(retryDelay)
	up := entity.UpdateDeliveryLog{
		ID:               logID,
		Status:           entity.DeliveryStatusFailed,
		ProviderResponse: mailErr.Error(),
		NextRetryAt:      &nextRetry,
		UpdatedAt:        s.clock.Now(),
	}
	if err := s.repoDB.UpdateDeliveryLogStatus(ctx, up); err != nil {
		slog.ErrorContext(ctx, "failed to repo update delivery log status failed", "log_id", logID, "error", err)
	}

	slog.ErrorContext(ctx, "failed to send nudge email", "log_id", logID, "email", in.Email, "kind", in.Kind, "error", mailErr)
	return nil
}
