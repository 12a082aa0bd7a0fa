package otp

import (
	"bytes"
	"image/png"
	"net/url"
	"strconv"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// OTP defines the contract for TOTP enrollment and verification.
type OTP interface {
	// Generate creates a fresh secret and provisioning URI for an account.
	Generate(accountName string) (secret string, uri string, err error)
	// Validate checks whether a code is valid for the secret at the given time.
	Validate(code, secret string, at time.Time) bool
	// GenerateCode creates a code for the given secret and time.
	GenerateCode(secret string, at time.Time) (string, error)
	// QRCode renders the provisioning URI for a secret as a PNG image.
	QRCode(accountName, secret string, size int) ([]byte, error)
}

// TOTP implements OTP using the Time-based One-Time Password algorithm
// (RFC 6238, SHA-1).
type TOTP struct {
	issuer string
	period uint
	skew   uint
	digits otp.Digits
}

// NewTOTP constructs a TOTP instance.
//
// Digits other than 6 or 8 fall back to 6. A zero period uses the common
// 30-second step. A zero skew accepts two steps on either side of now, so a
// code stays usable for roughly a minute of clock drift.
func NewTOTP(issuer string, period, skew uint, digits otp.Digits) *TOTP {
	if digits != otp.DigitsSix && digits != otp.DigitsEight {
		digits = otp.DigitsSix
	}

	if period == 0 {
		period = 30
	}

	if skew == 0 {
		skew = 2
	}

	return &TOTP{
		issuer: issuer,
		period: period,
		skew:   skew,
		digits: digits,
	}
}

// Generate creates a fresh secret and provisioning URI for an account.
func (o *TOTP) Generate(accountName string) (secret string, uri string, err error) {
	key, err := o.key(accountName)
	if err != nil {
		return "", "", err
	}

	return key.Secret(), key.URL(), nil
}

// Validate checks whether a code is valid for the secret at the given time.
func (o *TOTP) Validate(code, secret string, at time.Time) bool {
	rv, err := totp.ValidateCustom(code, secret, at, o.validateOpts())

	return rv && err == nil
}

// GenerateCode creates a code for the given secret and time.
func (o *TOTP) GenerateCode(secret string, at time.Time) (string, error) {
	return totp.GenerateCodeCustom(secret, at, o.validateOpts())
}

// QRCode renders the provisioning URI for an existing secret as a PNG.
func (o *TOTP) QRCode(accountName, secret string, size int) ([]byte, error) {
	key, err := otp.NewKeyFromURL(o.uri(accountName, secret))
	if err != nil {
		return nil, err
	}

	img, err := key.Image(size, size)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (o *TOTP) key(accountName string) (*otp.Key, error) {
	return totp.Generate(totp.GenerateOpts{
		Issuer:      o.issuer,
		AccountName: accountName,
		Period:      o.period,
		SecretSize:  20, // RFC 4226/6238 recommendation
		Digits:      o.digits,
		Algorithm:   otp.AlgorithmSHA1,
	})
}

// uri rebuilds the otpauth provisioning URI for a stored secret.
func (o *TOTP) uri(accountName, secret string) string {
	q := url.Values{}
	q.Set("secret", secret)
	q.Set("issuer", o.issuer)
	q.Set("period", strconv.FormatUint(uint64(o.period), 10))
	q.Set("digits", o.digits.String())
	q.Set("algorithm", "SHA1")

	u := url.URL{
		Scheme:   "otpauth",
		Host:     "totp",
		Path:     "/" + o.issuer + ":" + accountName,
		RawQuery: q.Encode(),
	}

	return u.String()
}

func (o *TOTP) validateOpts() totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    o.period,
		Skew:      o.skew,
		Digits:    o.digits,
		Algorithm: otp.AlgorithmSHA1,
	}
}
