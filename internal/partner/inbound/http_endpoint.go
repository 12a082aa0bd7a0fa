package inbound

import (
	"github.com/tradewire/ibdesk/internal/partner/usecase"
	"github.com/tradewire/ibdesk/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for payout details, nudge emails and
// role management.
type HTTPEndpoint struct {
	uc uc
}

// PayoutSave stores or replaces the payout destination for a partner.
func (h *HTTPEndpoint) PayoutSave(r *router.Request) (any, error) {
	partnerID, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req PayoutSaveRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PayoutSave(r.Context(), usecase.PayoutSaveInput{
		PartnerID:     partnerID,
		Method:        req.Method,
		BankName:      req.BankName,
		AccountName:   req.AccountName,
		AccountNumber: req.AccountNumber,
		IBAN:          req.IBAN,
		SwiftCode:     req.SwiftCode,
		Currency:      req.Currency,
	}); err != nil {
		return nil, err
	}

	return nil, nil
}

// PayoutGet returns the payout destination for a partner.
func (h *HTTPEndpoint) PayoutGet(r *router.Request) (any, error) {
	partnerID, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.PayoutGet(r.Context(), usecase.PayoutGetInput{PartnerID: partnerID})
	if err != nil {
		return nil, err
	}

	return PayoutResponse{
		PartnerID:     resp.PartnerID,
		Method:        string(resp.Method),
		BankName:      resp.BankName,
		AccountName:   resp.AccountName,
		AccountNumber: resp.AccountNumber,
		IBAN:          resp.IBAN,
		SwiftCode:     resp.SwiftCode,
		Currency:      resp.Currency,
		UpdatedAt:     resp.UpdatedAt,
	}, nil
}

// NudgeSend delivers one reminder email synchronously.
func (h *HTTPEndpoint) NudgeSend(r *router.Request) (any, error) {
	var req NudgeSendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.NudgeSend(r.Context(), usecase.NudgeSendInput{
		Email: req.Email,
		Kind:  req.Kind,
		Name:  req.Name,
	})
	if err != nil {
		return nil, err
	}

	return NudgeSendResponse{
		Email:      resp.Email,
		Kind:       string(resp.Kind),
		DeliveryID: resp.DeliveryID,
	}, nil
}

// NudgeBroadcast queues a reminder for many recipients at once.
func (h *HTTPEndpoint) NudgeBroadcast(r *router.Request) (any, error) {
	var req NudgeBroadcastRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	recipients := make([]usecase.BroadcastRecipient, 0, len(req.Recipients))
	for _, rec := range req.Recipients {
		recipients = append(recipients, usecase.BroadcastRecipient{
			Email: rec.Email,
			Name:  rec.Name,
		})
	}

	resp, err := h.uc.NudgeBroadcast(r.Context(), usecase.NudgeBroadcastInput{
		Kind:       req.Kind,
		Recipients: recipients,
	})
	if err != nil {
		return nil, err
	}

	return NudgeBroadcastResponse{
		Kind:   string(resp.Kind),
		Queued: resp.Queued,
		Failed: resp.Failed,
	}, nil
}

// RoleAssign grants a role to a partner user.
func (h *HTTPEndpoint) RoleAssign(r *router.Request) (any, error) {
	var req RoleAssignRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.RoleAssign(r.Context(), usecase.RoleAssignInput{
		Username: req.Username,
		Role:     req.Role,
	}); err != nil {
		return nil, err
	}

	return nil, nil
}

// RoleRevoke removes a role from a partner user.
func (h *HTTPEndpoint) RoleRevoke(r *router.Request) (any, error) {
	var req RoleRevokeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.RoleRevoke(r.Context(), usecase.RoleRevokeInput{
		Username: req.Username,
		Role:     req.Role,
	}); err != nil {
		return nil, err
	}

	return nil, nil
}

// RoleList returns the roles held by a partner user.
func (h *HTTPEndpoint) RoleList(r *router.Request) (any, error) {
	resp, err := h.uc.RoleList(r.Context(), usecase.RoleListInput{
		Username: r.GetParam("username"),
	})
	if err != nil {
		return nil, err
	}

	return RoleListResponse{
		Username: resp.Username,
		Roles:    resp.Roles,
	}, nil
}
