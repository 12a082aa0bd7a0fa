package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/tradewire/ibdesk/internal/notify/usecase"
	"github.com/tradewire/ibdesk/internal/pkg/instrument"
	"github.com/tradewire/ibdesk/internal/pkg/messaging"
	"github.com/tradewire/ibdesk/internal/pkg/uid"
	"github.com/tradewire/ibdesk/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) PartnerNudgeNotify(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notify.inbound.mq").Start(ctx, "PartnerNudgeNotify")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: partner nudge requested", "msg_body", string(body))

	var payload event.PartnerNudgeMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of partner nudge", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumePartnerNudge(ctx, usecase.ConsumePartnerNudgeInput{
		Email: payload.Email,
		Kind:  payload.Kind,
		Name:  payload.Name,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume partner nudge", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
