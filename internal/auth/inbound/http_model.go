package inbound

import "time"

type OTPSendRequest struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
}

type OTPSendResponse struct {
	Email     string    `json:"email"`
	Purpose   string    `json:"purpose"`
	ExpiresAt time.Time `json:"expires_at"`
	Warnings  []string  `json:"warnings,omitempty"`
}

type OTPVerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type TOTPSetupRequest struct {
	Username string `json:"username"`
}

type TOTPSetupResponse struct {
	Username  string   `json:"username"`
	Secret    string   `json:"secret"`
	URI       string   `json:"uri"`
	QRCodeURL string   `json:"qr_code_url,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

type TOTPVerifySetupRequest struct {
	Username string `json:"username"`
	Secret   string `json:"secret"`
	Code     string `json:"code"`
}

type TOTPVerifySetupResponse struct {
	Username string   `json:"username"`
	Enabled  bool     `json:"enabled"`
	Warnings []string `json:"warnings,omitempty"`
}

type TOTPVerifyLoginRequest struct {
	Username string `json:"username"`
	Code     string `json:"code"`
}

type TOTPDisableRequest struct {
	Username string `json:"username"`
}

type TOTPStatusRequest struct {
	Username string `json:"username"`
}

type TOTPStatusResponse struct {
	Username string `json:"username"`
	Enabled  bool   `json:"enabled"`
}
