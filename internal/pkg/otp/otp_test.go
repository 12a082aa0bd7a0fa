package otp

import (
	"testing"
	"time"

	libOTP "github.com/pquerna/otp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	o := NewTOTP("IB Desk", 30, 2, libOTP.DigitsSix)

	secret, uri, err := o.Generate("alice@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, secret)
	assert.Contains(t, uri, "otpauth://totp/")
	assert.Contains(t, uri, "issuer=IB+Desk")
}

func TestValidateWithinSkewWindow(t *testing.T) {
	o := NewTOTP("IB Desk", 30, 2, libOTP.DigitsSix)

	secret, _, err := o.Generate("alice@example.com")
	require.NoError(t, err)

	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	current, err := o.GenerateCode(secret, now)
	require.NoError(t, err)
	assert.True(t, o.Validate(current, secret, now))

	// Two steps behind and ahead are still accepted.
	behind, err := o.GenerateCode(secret, now.Add(-60*time.Second))
	require.NoError(t, err)
	assert.True(t, o.Validate(behind, secret, now))

	ahead, err := o.GenerateCode(secret, now.Add(60*time.Second))
	require.NoError(t, err)
	assert.True(t, o.Validate(ahead, secret, now))
}

func TestValidateOutsideSkewWindow(t *testing.T) {
	o := NewTOTP("IB Desk", 30, 2, libOTP.DigitsSix)

	secret, _, err := o.Generate("alice@example.com")
	require.NoError(t, err)

	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	// Three steps is the first step outside skew 2, in both directions.
	behind, err := o.GenerateCode(secret, now.Add(-90*time.Second))
	require.NoError(t, err)
	assert.False(t, o.Validate(behind, secret, now))

	ahead, err := o.GenerateCode(secret, now.Add(90*time.Second))
	require.NoError(t, err)
	assert.False(t, o.Validate(ahead, secret, now))

	stale, err := o.GenerateCode(secret, now.Add(-120*time.Second))
	require.NoError(t, err)
	assert.False(t, o.Validate(stale, secret, now))

	assert.False(t, o.Validate("000000", secret, now))
	assert.False(t, o.Validate("", secret, now))
}

func TestQRCode(t *testing.T) {
	o := NewTOTP("IB Desk", 30, 2, libOTP.DigitsSix)

	secret, _, err := o.Generate("alice@example.com")
	require.NoError(t, err)

	img, err := o.QRCode("alice@example.com", secret, 256)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), img[:4])
}
