package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/samber/lo"
	"github.com/tradewire/ibdesk/internal/partner/entity"
	"github.com/tradewire/ibdesk/internal/pkg/goerror"
)

const maxBroadcastRecipients = 1000

type BroadcastRecipient struct {
	Email string `validate:"required,email"`
	Name  string `validate:"omitempty,max=100"`
}

type NudgeBroadcastInput struct {
	Kind       string               `validate:"required"`
	Recipients []BroadcastRecipient `validate:"required,min=1,max=1000,dive"`
}

type NudgeBroadcastOutput struct {
	Kind   entity.NudgeKind
	Queued int
	// Failed lists recipients whose event could not be published.
	Failed []string
}

// NudgeBroadcast fans a reminder out as one event per recipient; delivery
// happens asynchronously in the notify consumer. Duplicate addresses are
// collapsed before publishing.
func (s *Usecase) NudgeBroadcast(ctx context.Context, in NudgeBroadcastInput) (*NudgeBroadcastOutput, error) {
	ctx, span := s.startSpan(ctx, "NudgeBroadcast")
	defer span.End()

	if _, err := s.authorized(ctx, "partner_nudges", "write"); err != nil {
		return nil, err
	}

	for i := range in.Recipients {
		in.Recipients[i].Email = strings.ToLower(strings.TrimSpace(in.Recipients[i].Email))
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	kind := entity.NudgeKind(in.Kind)
	if !kind.Valid() {
		return nil, goerror.NewInvalidInput(nil, "kind", "unknown nudge kind")
	}

	recipients := lo.UniqBy(in.Recipients, func(r BroadcastRecipient) string { return r.Email })
	if len(recipients) > maxBroadcastRecipients {
		recipients = recipients[:maxBroadcastRecipients]
	}

	out := &NudgeBroadcastOutput{Kind: kind}
	for _, rec := range recipients {
		if err := s.repoMessaging.PublishNudgeRequested(ctx, NudgeRequestedEvent{
			Email: rec.Email,
			Kind:  in.Kind,
			Name:  rec.Name,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to publish nudge event", "email", rec.Email, "kind", in.Kind, "error", err)
			out.Failed = append(out.Failed, rec.Email)
			continue
		}
		out.Queued++
	}

	if out.Queued == 0 {
		return nil, goerror.NewBusiness("no nudge events could be queued", goerror.CodeUnavailable)
	}

	return out, nil
}
