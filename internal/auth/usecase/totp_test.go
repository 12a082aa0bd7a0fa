package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradewire/ibdesk/internal/pkg/goerror"
)

func TestTOTPSetupPersistsDisabledCredential(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.uc.TOTPSetup(t.Context(), TOTPSetupInput{Username: " alice "})
	require.NoError(t, err)
	assert.Equal(t, "alice", out.Username)
	assert.NotEmpty(t, out.Secret)
	assert.Contains(t, out.URI, "otpauth://totp/")
	assert.Equal(t, "https://cdn.example.com/2fa/qr/signed", out.QRCodeURL)
	assert.Empty(t, out.Warnings)

	cred, ok := env.repo.creds["alice"]
	require.True(t, ok)
	assert.False(t, cred.Enabled)
	assert.NotEmpty(t, cred.Secret)
}

func TestTOTPSetupStorageFailureIsWarning(t *testing.T) {
	env := newTestEnv(t)
	env.stg.putErr = errors.New("bucket unreachable")

	out, err := env.uc.TOTPSetup(t.Context(), TOTPSetupInput{Username: "alice"})
	require.NoError(t, err)
	assert.Empty(t, out.QRCodeURL)
	assert.Contains(t, out.Warnings, "QR image unavailable, use the provisioning URI")
	assert.NotEmpty(t, out.Secret)
}

func TestTOTPSetupPersistFailureIsWarning(t *testing.T) {
	env := newTestEnv(t)
	env.repo.upsertErr = errors.New("db down")

	out, err := env.uc.TOTPSetup(t.Context(), TOTPSetupInput{Username: "alice"})
	require.NoError(t, err)
	assert.Contains(t, out.Warnings, "enrollment could not be saved, verification will retry")
}

func TestTOTPSetupOverwritesEnrollment(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	first := enroll(t, env, "alice")
	require.NoError(t, env.uc.TOTPVerifyLogin(ctx, TOTPVerifyLoginInput{
		Username: "alice",
		Code:     code(t, env, first),
	}))

	second, err := env.uc.TOTPSetup(ctx, TOTPSetupInput{Username: "alice"})
	require.NoError(t, err)
	assert.NotEqual(t, first, second.Secret)

	// The replacement enrollment is unverified, so login 2FA is off again.
	err = env.uc.TOTPVerifyLogin(ctx, TOTPVerifyLoginInput{Username: "alice", Code: code(t, env, first)})
	assertCode(t, err, goerror.CodeUnauthorized)
}

func TestTOTPVerifySetupEnablesCredential(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	setup, err := env.uc.TOTPSetup(ctx, TOTPSetupInput{Username: "alice"})
	require.NoError(t, err)

	out, err := env.uc.TOTPVerifySetup(ctx, TOTPVerifySetupInput{
		Username: "alice",
		Secret:   setup.Secret,
		Code:     code(t, env, setup.Secret),
	})
	require.NoError(t, err)
	assert.True(t, out.Enabled)
	assert.Empty(t, out.Warnings)

	status, err := env.uc.TOTPStatus(ctx, TOTPStatusInput{Username: "alice"})
	require.NoError(t, err)
	assert.True(t, status.Enabled)
}

func TestTOTPVerifySetupWrongCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	setup, err := env.uc.TOTPSetup(ctx, TOTPSetupInput{Username: "alice"})
	require.NoError(t, err)

	_, err = env.uc.TOTPVerifySetup(ctx, TOTPVerifySetupInput{
		Username: "alice",
		Secret:   setup.Secret,
		Code:     wrongCode(t, env, setup.Secret),
	})
	assertCode(t, err, goerror.CodeInvalidCode)

	status, err := env.uc.TOTPStatus(ctx, TOTPStatusInput{Username: "alice"})
	require.NoError(t, err)
	assert.False(t, status.Enabled)
}

func TestTOTPVerifySetupPersistFailureStillSucceeds(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	setup, err := env.uc.TOTPSetup(ctx, TOTPSetupInput{Username: "alice"})
	require.NoError(t, err)

	env.repo.upsertErr = errors.New("db down")
	out, err := env.uc.TOTPVerifySetup(ctx, TOTPVerifySetupInput{
		Username: "alice",
		Secret:   setup.Secret,
		Code:     code(t, env, setup.Secret),
	})
	require.NoError(t, err)
	assert.True(t, out.Enabled)
	assert.Contains(t, out.Warnings, "verification succeeded but enrollment could not be saved")
}

func TestTOTPVerifyLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	secret := enroll(t, env, "alice")

	require.NoError(t, env.uc.TOTPVerifyLogin(ctx, TOTPVerifyLoginInput{
		Username: "alice",
		Code:     code(t, env, secret),
	}))

	err := env.uc.TOTPVerifyLogin(ctx, TOTPVerifyLoginInput{
		Username: "alice",
		Code:     wrongCode(t, env, secret),
	})
	assertCode(t, err, goerror.CodeUnauthorized)
}

func TestTOTPVerifyLoginUnenrolled(t *testing.T) {
	env := newTestEnv(t)

	err := env.uc.TOTPVerifyLogin(t.Context(), TOTPVerifyLoginInput{Username: "nobody", Code: "123456"})
	assertCode(t, err, goerror.CodeUnauthorized)
}

func TestTOTPVerifyLoginBeforeSetupVerification(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	setup, err := env.uc.TOTPSetup(ctx, TOTPSetupInput{Username: "alice"})
	require.NoError(t, err)

	err = env.uc.TOTPVerifyLogin(ctx, TOTPVerifyLoginInput{
		Username: "alice",
		Code:     code(t, env, setup.Secret),
	})
	assertCode(t, err, goerror.CodeUnauthorized)
}

func TestTOTPDisableIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	enroll(t, env, "alice")

	require.NoError(t, env.uc.TOTPDisable(ctx, TOTPDisableInput{Username: "alice"}))
	require.NoError(t, env.uc.TOTPDisable(ctx, TOTPDisableInput{Username: "alice"}))

	status, err := env.uc.TOTPStatus(ctx, TOTPStatusInput{Username: "alice"})
	require.NoError(t, err)
	assert.False(t, status.Enabled)
}

func TestTOTPStatusLookupErrorReportsDisabled(t *testing.T) {
	env := newTestEnv(t)
	env.repo.getErr = errors.New("db down")

	status, err := env.uc.TOTPStatus(t.Context(), TOTPStatusInput{Username: "alice"})
	require.NoError(t, err)
	assert.False(t, status.Enabled)
}

// enroll runs setup plus verify-setup and returns the plaintext secret.
func enroll(t *testing.T, env *testEnv, username string) string {
	t.Helper()

	setup, err := env.uc.TOTPSetup(t.Context(), TOTPSetupInput{Username: username})
	require.NoError(t, err)

	_, err = env.uc.TOTPVerifySetup(t.Context(), TOTPVerifySetupInput{
		Username: username,
		Secret:   setup.Secret,
		Code:     code(t, env, setup.Secret),
	})
	require.NoError(t, err)

	return setup.Secret
}

func code(t *testing.T, env *testEnv, secret string) string {
	t.Helper()

	c, err := env.totp.GenerateCode(secret, env.clock.at)
	require.NoError(t, err)
	return c
}

// wrongCode returns a code far outside the accepted skew window.
func wrongCode(t *testing.T, env *testEnv, secret string) string {
	t.Helper()

	c, err := env.totp.GenerateCode(secret, env.clock.at.Add(-10*time.Minute))
	require.NoError(t, err)
	return c
}
