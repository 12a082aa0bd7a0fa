package usecase

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradewire/ibdesk/internal/pkg/goerror"
)

func TestRandomCodeStaysSixDigits(t *testing.T) {
	for range 64 {
		code, err := randomCode()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestOTPIssueNormalizesAndStores(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.uc.OTPIssue(t.Context(), OTPIssueInput{Email: "  Alice@Example.COM ", Purpose: "login"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", out.Email)
	assert.Equal(t, env.clock.at.Add(10*time.Minute), out.ExpiresAt)
	assert.Empty(t, out.Warnings)

	rec, ok := env.store.recs["alice@example.com"]
	require.True(t, ok)
	assert.Equal(t, env.clock.at, rec.IssuedAt)
	assert.NotEmpty(t, rec.CodeHash)

	require.Len(t, env.mailer.sent, 1)
	assert.Equal(t, []string{"alice@example.com"}, env.mailer.sent[0].To)
	assert.Contains(t, env.mailer.sent[0].TextBody, "expires in 10 minutes")
}

func TestOTPIssueRejectsInvalidEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.OTPIssue(t.Context(), OTPIssueInput{Email: "not-an-email"})
	assertCode(t, err, goerror.CodeInvalidInput)
	assert.Empty(t, env.store.recs)
}

func TestOTPIssueOverwritesLiveCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	_, err := env.uc.OTPIssue(ctx, OTPIssueInput{Email: "alice@example.com"})
	require.NoError(t, err)
	first := sentCode(t, env.mailer)

	_, err = env.uc.OTPIssue(ctx, OTPIssueInput{Email: "alice@example.com"})
	require.NoError(t, err)
	second := sentCode(t, env.mailer)

	assert.Equal(t, 2, env.store.puts)
	require.Len(t, env.store.recs, 1)

	if first != second {
		err = env.uc.OTPVerify(ctx, OTPVerifyInput{Email: "alice@example.com", Code: first})
		assertCode(t, err, goerror.CodeInvalidCode)
	}
	require.NoError(t, env.uc.OTPVerify(ctx, OTPVerifyInput{Email: "alice@example.com", Code: second}))
}

func TestOTPIssueMailFailureIsWarning(t *testing.T) {
	env := newTestEnv(t)
	env.mailer.err = errors.New("smtp down")

	out, err := env.uc.OTPIssue(t.Context(), OTPIssueInput{Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Contains(t, out.Warnings, "verification email could not be delivered")
	assert.Contains(t, env.store.recs, "alice@example.com")
}

func TestOTPVerifyConsumesOnMatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	_, err := env.uc.OTPIssue(ctx, OTPIssueInput{Email: "alice@example.com"})
	require.NoError(t, err)
	code := sentCode(t, env.mailer)

	require.NoError(t, env.uc.OTPVerify(ctx, OTPVerifyInput{Email: " ALICE@example.com ", Code: code}))

	// Single use: the consumed code cannot be replayed.
	err = env.uc.OTPVerify(ctx, OTPVerifyInput{Email: "alice@example.com", Code: code})
	assertCode(t, err, goerror.CodeNotFound)
}

func TestOTPVerifyUnknownIdentity(t *testing.T) {
	env := newTestEnv(t)

	err := env.uc.OTPVerify(t.Context(), OTPVerifyInput{Email: "nobody@example.com", Code: "123456"})
	assertCode(t, err, goerror.CodeNotFound)
}

func TestOTPVerifyExpiredCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	_, err := env.uc.OTPIssue(ctx, OTPIssueInput{Email: "alice@example.com"})
	require.NoError(t, err)
	code := sentCode(t, env.mailer)

	env.clock.at = env.clock.at.Add(11 * time.Minute)

	err = env.uc.OTPVerify(ctx, OTPVerifyInput{Email: "alice@example.com", Code: code})
	assertCode(t, err, goerror.CodeExpired)
	assert.NotContains(t, env.store.recs, "alice@example.com")
}

func TestOTPVerifyMismatchKeepsRecord(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	_, err := env.uc.OTPIssue(ctx, OTPIssueInput{Email: "alice@example.com"})
	require.NoError(t, err)
	code := sentCode(t, env.mailer)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	err = env.uc.OTPVerify(ctx, OTPVerifyInput{Email: "alice@example.com", Code: wrong})
	assertCode(t, err, goerror.CodeInvalidCode)

	// A retry with the right code still works until expiry.
	require.NoError(t, env.uc.OTPVerify(ctx, OTPVerifyInput{Email: "alice@example.com", Code: code}))
}
