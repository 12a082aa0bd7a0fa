package entity

import "time"

// OtpPurpose labels what a one-time code is meant for. The purpose rides
// along in the stored record and in the email subject, but does not scope
// the lookup key: one live code per identity.
type OtpPurpose string

const (
	OtpPurposeLogin        OtpPurpose = "login"
	OtpPurposeRegistration OtpPurpose = "registration"
	OtpPurposeSensitiveOp  OtpPurpose = "sensitive_op"
)

// OtpPurposeFromString normalizes a purpose string; unknown values fall back
// to login.
func OtpPurposeFromString(s string) OtpPurpose {
	switch OtpPurpose(s) {
	case OtpPurposeRegistration:
		return OtpPurposeRegistration
	case OtpPurposeSensitiveOp:
		return OtpPurposeSensitiveOp
	default:
		return OtpPurposeLogin
	}
}

// OtpRecord is a live one-time code for an identity. Only the keyed digest
// of the code is stored, never the plaintext.
type OtpRecord struct {
	Identity  string     `json:"identity"`
	CodeHash  string     `json:"code_hash"`
	Purpose   OtpPurpose `json:"purpose"`
	IssuedAt  time.Time  `json:"issued_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Expired reports whether the record is past its expiry at the given time.
func (r OtpRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
