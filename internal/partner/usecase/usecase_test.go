package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradewire/ibdesk/internal/partner/entity"
	"github.com/tradewire/ibdesk/internal/pkg/config"
	"github.com/tradewire/ibdesk/internal/pkg/goerror"
	"github.com/tradewire/ibdesk/internal/pkg/idempotency"
	"github.com/tradewire/ibdesk/internal/pkg/instrument"
	"github.com/tradewire/ibdesk/internal/pkg/jwt"
	"github.com/tradewire/ibdesk/internal/pkg/mail"
	"github.com/tradewire/ibdesk/internal/pkg/validator"
)

const testModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

type fakeClock struct{ at time.Time }

func (c *fakeClock) Now() time.Time { return c.at }

type fakePayoutRepo struct {
	details map[int64]entity.PayoutDetails
}

func (r *fakePayoutRepo) UpsertPayoutDetails(_ context.Context, det entity.PayoutDetails) error {
	r.details[det.PartnerID] = det
	return nil
}

func (r *fakePayoutRepo) GetPayoutDetails(_ context.Context, partnerID int64) (*entity.PayoutDetails, error) {
	det, ok := r.details[partnerID]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &det, nil
}

type fakePublisher struct {
	events  []NudgeRequestedEvent
	failFor map[string]error
}

func (p *fakePublisher) PublishNudgeRequested(_ context.Context, msg NudgeRequestedEvent) error {
	if err, ok := p.failFor[msg.Email]; ok {
		return err
	}
	p.events = append(p.events, msg)
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

func (m *fakeMailer) Close() error { return nil }

// fakeIdemp runs fn once per key and rejects replays, mirroring the Redis
// tracker without the lock.
type fakeIdemp struct {
	completed map[string]bool
}

func (f *fakeIdemp) Acquire(_ context.Context, key string, _ time.Duration) (idempotency.State, error) {
	if f.completed[key] {
		return idempotency.StateCompleted, nil
	}
	return idempotency.StateNone, nil
}

func (f *fakeIdemp) MarkCompleted(_ context.Context, key string, _ time.Duration) error {
	f.completed[key] = true
	return nil
}

func (f *fakeIdemp) MarkFailed(_ context.Context, _ string, _ time.Duration) error {
	return nil
}

func (f *fakeIdemp) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	if f.completed[key] {
		return idempotency.ErrAlreadyCompleted
	}
	if err := fn(ctx); err != nil {
		return err
	}
	f.completed[key] = true
	return nil
}

type testEnv struct {
	uc       *Usecase
	clock    *fakeClock
	repo     *fakePayoutRepo
	pub      *fakePublisher
	mailer   *fakeMailer
	enforcer *casbin.Enforcer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
app:
  web: https://dash.example.com
modules:
  partner:
    nudge_lock_seconds: 30
    nudge_dedupe_ttl_seconds: 3600
`))
	require.NoError(t, err)

	v10, err := validator.NewV10Validator()
	require.NoError(t, err)

	m, err := model.NewModelFromString(testModel)
	require.NoError(t, err)
	enforcer, err := casbin.NewEnforcer(m)
	require.NoError(t, err)

	_, err = enforcer.AddPolicy("admin", "admin_roles", "*")
	require.NoError(t, err)
	_, err = enforcer.AddPolicy("admin", "partner_nudges", "write")
	require.NoError(t, err)
	_, err = enforcer.AddGroupingPolicy("root", "admin")
	require.NoError(t, err)

	env := &testEnv{
		clock:    &fakeClock{at: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)},
		repo:     &fakePayoutRepo{details: map[int64]entity.PayoutDetails{}},
		pub:      &fakePublisher{},
		mailer:   &fakeMailer{},
		enforcer: enforcer,
	}

	env.uc = New(Dependency{
		RepoDB:        env.repo,
		RepoMessaging: env.pub,
		Idempotency:   &fakeIdemp{completed: map[string]bool{}},
		Mailer:        env.mailer,
		Validator:     v10,
		Config:        cfg,
		Clock:         env.clock,
		Enforcer:      enforcer,
		Instrument:    instrument.NewNoop(),
	})

	return env
}

// adminCtx carries claims for a user holding the admin role.
func adminCtx(t *testing.T) context.Context {
	t.Helper()
	return jwt.SetAuth(t.Context(), jwt.Claims{Username: "root", Email: "root@example.com"})
}

func assertCode(t *testing.T, err error, want goerror.Code) {
	t.Helper()

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, want, gerr.Code())
}
