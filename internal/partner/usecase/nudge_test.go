package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradewire/ibdesk/internal/partner/entity"
	"github.com/tradewire/ibdesk/internal/pkg/goerror"
	"github.com/tradewire/ibdesk/internal/pkg/jwt"
)

func TestNudgeSendDeliversEmail(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.uc.NudgeSend(adminCtx(t), NudgeSendInput{
		Email: " Alice@Example.COM ",
		Kind:  "missing_payout",
		Name:  "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", out.Email)
	assert.Equal(t, entity.NudgeKindMissingPayout, out.Kind)
	assert.Equal(t, "mail-1", out.DeliveryID)

	require.Len(t, env.mailer.sent, 1)
	assert.Equal(t, []string{"alice@example.com"}, env.mailer.sent[0].To)
	assert.Contains(t, env.mailer.sent[0].HTMLBody, "https://dash.example.com")
}

func TestNudgeSendRequiresAuthentication(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.NudgeSend(t.Context(), NudgeSendInput{Email: "alice@example.com", Kind: "missing_payout"})
	assertCode(t, err, goerror.CodeUnauthorized)
}

func TestNudgeSendRequiresRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := jwt.SetAuth(t.Context(), jwt.Claims{Username: "viewer"})

	_, err := env.uc.NudgeSend(ctx, NudgeSendInput{Email: "alice@example.com", Kind: "missing_payout"})
	assertCode(t, err, goerror.CodeForbidden)
	assert.Empty(t, env.mailer.sent)
}

func TestNudgeSendUnknownKind(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.NudgeSend(adminCtx(t), NudgeSendInput{Email: "alice@example.com", Kind: "made_up"})
	assertCode(t, err, goerror.CodeInvalidInput)
}

func TestNudgeSendDuplicateRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := adminCtx(t)
	in := NudgeSendInput{Email: "alice@example.com", Kind: "dormant_account"}

	_, err := env.uc.NudgeSend(ctx, in)
	require.NoError(t, err)

	_, err = env.uc.NudgeSend(ctx, in)
	assertCode(t, err, goerror.CodeConflict)
	assert.Len(t, env.mailer.sent, 1)
}

func TestNudgeSendMailFailure(t *testing.T) {
	env := newTestEnv(t)
	env.mailer.err = errors.New("smtp down")

	_, err := env.uc.NudgeSend(adminCtx(t), NudgeSendInput{Email: "alice@example.com", Kind: "incomplete_profile"})
	assertCode(t, err, goerror.CodeDeliveryFailed)
}

func TestNudgeBroadcastDeduplicatesRecipients(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.uc.NudgeBroadcast(adminCtx(t), NudgeBroadcastInput{
		Kind: "incomplete_profile",
		Recipients: []BroadcastRecipient{
			{Email: "alice@example.com", Name: "Alice"},
			{Email: " ALICE@example.com ", Name: "Alice Again"},
			{Email: "bob@example.com", Name: "Bob"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Queued)
	assert.Empty(t, out.Failed)

	require.Len(t, env.pub.events, 2)
	assert.Equal(t, "alice@example.com", env.pub.events[0].Email)
	assert.Equal(t, "bob@example.com", env.pub.events[1].Email)
}

func TestNudgeBroadcastPartialFailure(t *testing.T) {
	env := newTestEnv(t)
	env.pub.failFor = map[string]error{"bob@example.com": errors.New("broker down")}

	out, err := env.uc.NudgeBroadcast(adminCtx(t), NudgeBroadcastInput{
		Kind: "dormant_account",
		Recipients: []BroadcastRecipient{
			{Email: "alice@example.com"},
			{Email: "bob@example.com"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Queued)
	assert.Equal(t, []string{"bob@example.com"}, out.Failed)
}

func TestNudgeBroadcastAllFailuresIsUnavailable(t *testing.T) {
	env := newTestEnv(t)
	env.pub.failFor = map[string]error{"alice@example.com": errors.New("broker down")}

	_, err := env.uc.NudgeBroadcast(adminCtx(t), NudgeBroadcastInput{
		Kind:       "missing_payout",
		Recipients: []BroadcastRecipient{{Email: "alice@example.com"}},
	})
	assertCode(t, err, goerror.CodeUnavailable)
}

func TestNudgeBroadcastRequiresRecipients(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.NudgeBroadcast(adminCtx(t), NudgeBroadcastInput{Kind: "missing_payout"})
	assertCode(t, err, goerror.CodeInvalidInput)
}
