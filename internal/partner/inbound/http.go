package inbound

import (
	"context"

	"github.com/tradewire/ibdesk/internal/partner/usecase"
	"github.com/tradewire/ibdesk/internal/pkg/router"
)

type uc interface {
	PayoutSave(ctx context.Context, in usecase.PayoutSaveInput) error
	PayoutGet(ctx context.Context, in usecase.PayoutGetInput) (*usecase.PayoutGetOutput, error)

	NudgeSend(ctx context.Context, in usecase.NudgeSendInput) (*usecase.NudgeSendOutput, error)
	NudgeBroadcast(ctx context.Context, in usecase.NudgeBroadcastInput) (*usecase.NudgeBroadcastOutput, error)

	RoleAssign(ctx context.Context, in usecase.RoleAssignInput) error
	RoleRevoke(ctx context.Context, in usecase.RoleRevokeInput) error
	RoleList(ctx context.Context, in usecase.RoleListInput) (*usecase.RoleListOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Payout details (need authenticated)
	r.PUT("/api/v1/partners/:id/payout", end.PayoutSave)
	r.GET("/api/v1/partners/:id/payout", end.PayoutGet)

	// Nudge emails (need authenticated & authorization)
	r.POST("/api/v1/partners/nudge", end.NudgeSend)
	r.POST("/api/v1/partners/nudge/broadcast", end.NudgeBroadcast)

	// Role management (need authenticated & authorization)
	r.POST("/api/v1/admin/roles/assign", end.RoleAssign)
	r.POST("/api/v1/admin/roles/revoke", end.RoleRevoke)
	r.GET("/api/v1/admin/roles/:username", end.RoleList)
}
