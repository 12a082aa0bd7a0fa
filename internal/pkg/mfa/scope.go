package mfa

// Purpose identifies what the encrypted material is for.
type Purpose string

// PurposeTOTPSecret scopes encryption to authenticator seeds.
const PurposeTOTPSecret Purpose = "totp_secret"

// Scope binds a ciphertext to its owner and purpose. It feeds the AES-GCM
// AAD, so a ciphertext moved to another user or purpose fails to decrypt.
type Scope struct {
	// Username is the owning account identifier.
	Username string
	// Purpose is the encryption purpose.
	Purpose Purpose
}
