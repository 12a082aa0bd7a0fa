package inbound

import (
	"github.com/tradewire/ibdesk/internal/auth/usecase"
	"github.com/tradewire/ibdesk/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for one-time codes and authenticator 2FA.
type HTTPEndpoint struct {
	uc uc
}

// OTPSend issues a one-time code and emails it to the partner user.
func (h *HTTPEndpoint) OTPSend(r *router.Request) (any, error) {
	var req OTPSendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.OTPIssue(r.Context(), usecase.OTPIssueInput{
		Email:   req.Email,
		Purpose: req.Purpose,
	})
	if err != nil {
		return nil, err
	}

	return OTPSendResponse{
		Email:     resp.Email,
		Purpose:   string(resp.Purpose),
		ExpiresAt: resp.ExpiresAt,
		Warnings:  resp.Warnings,
	}, nil
}

// OTPVerify consumes a one-time code.
func (h *HTTPEndpoint) OTPVerify(r *router.Request) (any, error) {
	var req OTPVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.OTPVerify(r.Context(), usecase.OTPVerifyInput{
		Email: req.Email,
		Code:  req.Code,
	}); err != nil {
		return nil, err
	}

	return nil, nil
}

// TOTPSetup starts authenticator enrollment and returns the secret, the
// provisioning URI and, when available, a link to the QR image.
func (h *HTTPEndpoint) TOTPSetup(r *router.Request) (any, error) {
	var req TOTPSetupRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.TOTPSetup(r.Context(), usecase.TOTPSetupInput{Username: req.Username})
	if err != nil {
		return nil, err
	}

	return TOTPSetupResponse{
		Username:  resp.Username,
		Secret:    resp.Secret,
		URI:       resp.URI,
		QRCodeURL: resp.QRCodeURL,
		Warnings:  resp.Warnings,
	}, nil
}

// TOTPVerifySetup completes enrollment by proving the authenticator produces
// valid codes for the secret.
func (h *HTTPEndpoint) TOTPVerifySetup(r *router.Request) (any, error) {
	var req TOTPVerifySetupRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.TOTPVerifySetup(r.Context(), usecase.TOTPVerifySetupInput{
		Username: req.Username,
		Secret:   req.Secret,
		Code:     req.Code,
	})
	if err != nil {
		return nil, err
	}

	return TOTPVerifySetupResponse{
		Username: resp.Username,
		Enabled:  resp.Enabled,
		Warnings: resp.Warnings,
	}, nil
}

// TOTPVerifyLogin checks an authenticator code for an enrolled account.
func (h *HTTPEndpoint) TOTPVerifyLogin(r *router.Request) (any, error) {
	var req TOTPVerifyLoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.TOTPVerifyLogin(r.Context(), usecase.TOTPVerifyLoginInput{
		Username: req.Username,
		Code:     req.Code,
	}); err != nil {
		return nil, err
	}

	return nil, nil
}

// TOTPDisable removes the enrollment for an account.
func (h *HTTPEndpoint) TOTPDisable(r *router.Request) (any, error) {
	var req TOTPDisableRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.TOTPDisable(r.Context(), usecase.TOTPDisableInput{Username: req.Username}); err != nil {
		return nil, err
	}

	return nil, nil
}

// TOTPStatus reports whether 2FA is active for an account.
func (h *HTTPEndpoint) TOTPStatus(r *router.Request) (any, error) {
	var req TOTPStatusRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.TOTPStatus(r.Context(), usecase.TOTPStatusInput{Username: req.Username})
	if err != nil {
		return nil, err
	}

	return TOTPStatusResponse{
		Username: resp.Username,
		Enabled:  resp.Enabled,
	}, nil
}
