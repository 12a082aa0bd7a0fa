package inbound

import "time"

type PayoutSaveRequest struct {
	Method        string `json:"method"`
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	IBAN          string `json:"iban"`
	SwiftCode     string `json:"swift_code"`
	Currency      string `json:"currency"`
}

type PayoutResponse struct {
	PartnerID     int64     `json:"partner_id"`
	Method        string    `json:"method"`
	BankName      string    `json:"bank_name,omitempty"`
	AccountName   string    `json:"account_name"`
	AccountNumber string    `json:"account_number"`
	IBAN          string    `json:"iban,omitempty"`
	SwiftCode     string    `json:"swift_code,omitempty"`
	Currency      string    `json:"currency"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type NudgeSendRequest struct {
	Email string `json:"email"`
	Kind  string `json:"kind"`
	Name  string `json:"name"`
}

type NudgeSendResponse struct {
	Email      string `json:"email"`
	Kind       string `json:"kind"`
	DeliveryID string `json:"delivery_id,omitempty"`
}

type NudgeBroadcastRequest struct {
	Kind       string                    `json:"kind"`
	Recipients []NudgeBroadcastRecipient `json:"recipients"`
}

type NudgeBroadcastRecipient struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type NudgeBroadcastResponse struct {
	Kind   string   `json:"kind"`
	Queued int      `json:"queued"`
	Failed []string `json:"failed,omitempty"`
}

type RoleAssignRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type RoleRevokeRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type RoleListResponse struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}
