package inbound

import (
	"context"

	"github.com/tradewire/ibdesk/internal/notify/usecase"
)

type uc interface {
	ConsumePartnerNudge(ctx context.Context, in usecase.ConsumePartnerNudgeInput) error
}
