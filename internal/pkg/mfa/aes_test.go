package mfa

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEncryptor() *AESGCMEncryptor {
	return NewAESGCMEncryptor(StaticKeyProvider{KeyBytes: bytes.Repeat([]byte{0x42}, 32)})
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	e := testEncryptor()
	scope := Scope{Username: "alice", Purpose: PurposeTOTPSecret}

	ct, err := e.Encrypt([]byte("JBSWY3DPEHPK3PXP"), scope)
	require.NoError(t, err)
	assert.NotContains(t, string(ct), "JBSWY3DP")

	pt, err := e.Decrypt(ct, scope)
	require.NoError(t, err)
	assert.Equal(t, []byte("JBSWY3DPEHPK3PXP"), pt)
}

func TestDecryptScopeMismatch(t *testing.T) {
	e := testEncryptor()

	ct, err := e.Encrypt([]byte("seed"), Scope{Username: "alice", Purpose: PurposeTOTPSecret})
	require.NoError(t, err)

	_, err = e.Decrypt(ct, Scope{Username: "mallory", Purpose: PurposeTOTPSecret})
	assert.ErrorIs(t, err, ErrDecryptFailed)

	_, err = e.Decrypt(ct, Scope{Username: "alice", Purpose: "other"})
	assert.ErrorIs(t, err, ErrDecryptFailed)
}

func TestDecryptTamperedCiphertext(t *testing.T) {
	e := testEncryptor()
	scope := Scope{Username: "alice", Purpose: PurposeTOTPSecret}

	ct, err := e.Encrypt([]byte("seed"), scope)
	require.NoError(t, err)

	ct[len(ct)-1] ^= 0xFF
	_, err = e.Decrypt(ct, scope)
	assert.ErrorIs(t, err, ErrDecryptFailed)
}

func TestEncryptEmptyPlaintext(t *testing.T) {
	e := testEncryptor()

	_, err := e.Encrypt(nil, Scope{Username: "alice", Purpose: PurposeTOTPSecret})
	assert.ErrorIs(t, err, ErrPlaintextEmpty)
}

func TestDecryptTruncatedCiphertext(t *testing.T) {
	e := testEncryptor()

	_, err := e.Decrypt([]byte{0, 1, 2}, Scope{Username: "alice", Purpose: PurposeTOTPSecret})
	assert.ErrorIs(t, err, ErrCiphertextTooShort)
}

func TestInvalidKeyLength(t *testing.T) {
	e := NewAESGCMEncryptor(StaticKeyProvider{KeyBytes: []byte("short")})

	_, err := e.Encrypt([]byte("seed"), Scope{Username: "alice", Purpose: PurposeTOTPSecret})
	assert.ErrorIs(t, err, ErrInvalidKeyLength)
}
