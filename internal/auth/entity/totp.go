package entity

import "time"

// TotpCredential is a persisted authenticator enrollment. Secret holds the
// AES-GCM ciphertext of the base32 secret; Enabled stays false until the
// user proves possession of the authenticator during setup verification.
type TotpCredential struct {
	Username  string
	Secret    []byte
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
