package mq

import (
	"context"
	"encoding/json"

	"github.com/tradewire/ibdesk/internal/partner/usecase"
	"github.com/tradewire/ibdesk/internal/pkg/instrument"
	"github.com/tradewire/ibdesk/internal/pkg/messaging"
	"github.com/tradewire/ibdesk/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishNudgeRequested(ctx context.Context, msg usecase.NudgeRequestedEvent) error {
	ctx, span := m.ins.Tracer("partner.outbound.mq").Start(ctx, "PublishNudgeRequested")
	defer span.End()

	body, err := json.Marshal(event.PartnerNudgeMessage{
		Email: msg.Email,
		Kind:  msg.Kind,
		Name:  msg.Name,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.PartnerNudgeDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
