package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradewire/ibdesk/internal/notify/entity"
	"github.com/tradewire/ibdesk/internal/pkg/config"
	"github.com/tradewire/ibdesk/internal/pkg/instrument"
	"github.com/tradewire/ibdesk/internal/pkg/mail"
	"github.com/tradewire/ibdesk/internal/pkg/validator"
)

type fakeClock struct{ at time.Time }

func (c *fakeClock) Now() time.Time { return c.at }

type seqID struct{ next int64 }

func (s *seqID) Generate() int64 {
	s.next++
	return s.next
}

type fakeLogRepo struct {
	created   []entity.CreateDeliveryLog
	updated   []entity.UpdateDeliveryLog
	createErr error
}

func (r *fakeLogRepo) CreateDeliveryLog(_ context.Context, dl entity.CreateDeliveryLog) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, dl)
	return nil
}

func (r *fakeLogRepo) UpdateDeliveryLogStatus(_ context.Context, u entity.UpdateDeliveryLog) error {
	r.updated = append(r.updated, u)
	return nil
}

type fakeMailer struct {
	sent []mail.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg mail.Message) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.sent = append(m.sent, msg)
	return "mail-1", nil
}

type testEnv struct {
	uc     *Usecase
	clock  *fakeClock
	repo   *fakeLogRepo
	mailer *fakeMailer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
app:
  web: https://dash.example.com
modules:
  notify:
    retry_delay_seconds: 120
`))
	require.NoError(t, err)

	v10, err := validator.NewV10Validator()
	require.NoError(t, err)

	env := &testEnv{
		clock:  &fakeClock{at: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)},
		repo:   &fakeLogRepo{},
		mailer: &fakeMailer{},
	}

	env.uc = New(Dependency{
		RepoDB:     env.repo,
		RepoMail:   env.mailer,
		Config:     cfg,
		UID:        &seqID{},
		Clock:      env.clock,
		Validator:  v10,
		Instrument: instrument.NewNoop(),
	})

	return env
}

func TestConsumePartnerNudgeSendsAndLogs(t *testing.T) {
	env := newTestEnv(t)

	err := env.uc.ConsumePartnerNudge(t.Context(), ConsumePartnerNudgeInput{
		Email: "alice@example.com",
		Kind:  "missing_payout",
		Name:  "Alice",
	})
	require.NoError(t, err)

	require.Len(t, env.repo.created, 1)
	assert.Equal(t, entity.DeliveryStatusQueued, env.repo.created[0].Status)
	assert.Equal(t, "alice@example.com", env.repo.created[0].Email)

	require.Len(t, env.repo.updated, 1)
	assert.Equal(t, entity.DeliveryStatusSent, env.repo.updated[0].Status)
	assert.Equal(t, "mail-1", env.repo.updated[0].ProviderResponse)
	assert.Nil(t, env.repo.updated[0].NextRetryAt)

	require.Len(t, env.mailer.sent, 1)
	assert.Contains(t, env.mailer.sent[0].HTMLBody, "Hi Alice")
}

func TestConsumePartnerNudgeDropsInvalidEvent(t *testing.T) {
	env := newTestEnv(t)

	err := env.uc.ConsumePartnerNudge(t.Context(), ConsumePartnerNudgeInput{Email: "not-an-email", Kind: "missing_payout"})
	assert.NoError(t, err)
	assert.Empty(t, env.repo.created)
	assert.Empty(t, env.mailer.sent)
}

func TestConsumePartnerNudgeDropsUnknownKind(t *testing.T) {
	env := newTestEnv(t)

	err := env.uc.ConsumePartnerNudge(t.Context(), ConsumePartnerNudgeInput{Email: "alice@example.com", Kind: "made_up"})
	assert.NoError(t, err)
	assert.Empty(t, env.repo.created)
	assert.Empty(t, env.mailer.sent)
}

func TestConsumePartnerNudgeLogFailureRedelivers(t *testing.T) {
	env := newTestEnv(t)
	env.repo.createErr = errors.New("db down")

	err := env.uc.ConsumePartnerNudge(t.Context(), ConsumePartnerNudgeInput{Email: "alice@example.com", Kind: "missing_payout"})
	assert.Error(t, err)
	assert.Empty(t, env.mailer.sent)
}

func TestConsumePartnerNudgeMailFailureRecordsRetryHint(t *testing.T) {
	env := newTestEnv(t)
	env.mailer.err = errors.New("smtp down")

	err := env.uc.ConsumePartnerNudge(t.Context(), ConsumePartnerNudgeInput{Email: "alice@example.com", Kind: "dormant_account"})
	require.NoError(t, err)

	require.Len(t, env.repo.updated, 1)
	up := env.repo.updated[0]
	assert.Equal(t, entity.DeliveryStatusFailed, up.Status)
	assert.Equal(t, "smtp down", up.ProviderResponse)
	require.NotNil(t, up.NextRetryAt)
	assert.Equal(t, env.clock.at.Add(2*time.Minute), *up.NextRetryAt)
}
