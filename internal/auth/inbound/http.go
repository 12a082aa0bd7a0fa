package inbound

import (
	"context"

	"github.com/tradewire/ibdesk/internal/auth/usecase"
	"github.com/tradewire/ibdesk/internal/pkg/router"
)

type uc interface {
	OTPIssue(ctx context.Context, in usecase.OTPIssueInput) (*usecase.OTPIssueOutput, error)
	OTPVerify(ctx context.Context, in usecase.OTPVerifyInput) error

	TOTPSetup(ctx context.Context, in usecase.TOTPSetupInput) (*usecase.TOTPSetupOutput, error)
	TOTPVerifySetup(ctx context.Context, in usecase.TOTPVerifySetupInput) (*usecase.TOTPVerifySetupOutput, error)
	TOTPVerifyLogin(ctx context.Context, in usecase.TOTPVerifyLoginInput) error
	TOTPDisable(ctx context.Context, in usecase.TOTPDisableInput) error
	TOTPStatus(ctx context.Context, in usecase.TOTPStatusInput) (*usecase.TOTPStatusOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Email one-time codes
	r.POST("/api/v1/auth/otp/send", end.OTPSend)
	r.POST("/api/v1/auth/otp/verify", end.OTPVerify)

	// Authenticator 2FA
	r.POST("/api/v1/auth/2fa/setup", end.TOTPSetup)
	r.POST("/api/v1/auth/2fa/verify", end.TOTPVerifySetup)
	r.POST("/api/v1/auth/2fa/verify-login", end.TOTPVerifyLogin)
	r.POST("/api/v1/auth/2fa/disable", end.TOTPDisable)
	r.POST("/api/v1/auth/2fa/check", end.TOTPStatus)
}

// PublicEndpoints lists the auth routes that skip JWT authentication; they
// are the entry points that produce a session in the first place.
func PublicEndpoints() map[string]map[string]struct{} {
	return map[string]map[string]struct{}{
		"POST": {
			"/api/v1/auth/otp/send":         {},
			"/api/v1/auth/otp/verify":       {},
			"/api/v1/auth/2fa/setup":        {},
			"/api/v1/auth/2fa/verify":       {},
			"/api/v1/auth/2fa/verify-login": {},
			"/api/v1/auth/2fa/disable":      {},
			"/api/v1/auth/2fa/check":        {},
		},
	}
}
