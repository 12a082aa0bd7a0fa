package usecase

import (
	"context"
	"io"
	"regexp"
	"testing"
	"time"

	libOTP "github.com/pquerna/otp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradewire/ibdesk/internal/auth/entity"
	"github.com/tradewire/ibdesk/internal/pkg/config"
	"github.com/tradewire/ibdesk/internal/pkg/goerror"
	"github.com/tradewire/ibdesk/internal/pkg/hash"
	"github.com/tradewire/ibdesk/internal/pkg/instrument"
	"github.com/tradewire/ibdesk/internal/pkg/mail"
	"github.com/tradewire/ibdesk/internal/pkg/mfa"
	"github.com/tradewire/ibdesk/internal/pkg/otp"
	"github.com/tradewire/ibdesk/internal/pkg/storage"
	"github.com/tradewire/ibdesk/internal/pkg/validator"
)

type fakeClock struct{ at time.Time }

func (c *fakeClock) Now() time.Time { return c.at }

type fakeOtpStore struct {
	recs map[string]entity.OtpRecord
	puts int
}

func newFakeOtpStore() *fakeOtpStore {
	return &fakeOtpStore{recs: map[string]entity.OtpRecord{}}
}

func (s *fakeOtpStore) Put(_ context.Context, rec entity.OtpRecord) error {
	s.puts++
	s.recs[rec.Identity] = rec
	return nil
}

func (s *fakeOtpStore) Get(_ context.Context, identity string) (*entity.OtpRecord, error) {
	rec, ok := s.recs[identity]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &rec, nil
}

func (s *fakeOtpStore) Delete(_ context.Context, identity string) error {
	delete(s.recs, identity)
	return nil
}

type fakeRepoDB struct {
	creds     map[string]entity.TotpCredential
	upsertErr error
	getErr    error
}

func newFakeRepoDB() *fakeRepoDB {
	return &fakeRepoDB{creds: map[string]entity.TotpCredential{}}
}

func (r *fakeRepoDB) UpsertTotpCredential(_ context.Context, cred entity.TotpCredential) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.creds[cred.Username] = cred
	return nil
}

func (r *fakeRepoDB) GetTotpCredential(_ context.Context, username string) (*entity.TotpCredential, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	cred, ok := r.creds[username]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &cred, nil
}

func (r *fakeRepoDB) DeleteTotpCredential(_ context.Context, username string) error {
	delete(r.creds, username)
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

type fakeStorage struct {
	putErr error
}

func (s *fakeStorage) PutObject(context.Context, string, string, io.Reader, storage.PutOptions) (storage.ObjectInfo, error) {
	if s.putErr != nil {
		return storage.ObjectInfo{}, s.putErr
	}
	return storage.ObjectInfo{}, nil
}

func (s *fakeStorage) GetObject(context.Context, string, string) (io.ReadCloser, storage.ObjectInfo, error) {
	return nil, storage.ObjectInfo{}, goerror.ErrNotFound
}

func (s *fakeStorage) StatObject(context.Context, string, string) (storage.ObjectInfo, error) {
	return storage.ObjectInfo{}, goerror.ErrNotFound
}

func (s *fakeStorage) DeleteObject(context.Context, string, string) error { return nil }

func (s *fakeStorage) PresignGet(context.Context, string, string, time.Duration) (string, error) {
	return "https://cdn.example.com/2fa/qr/signed", nil
}

func (s *fakeStorage) Close() error { return nil }

type testEnv struct {
	uc     *Usecase
	clock  *fakeClock
	store  *fakeOtpStore
	repo   *fakeRepoDB
	mailer *fakeMailer
	stg    *fakeStorage
	totp   otp.OTP
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
modules:
  auth:
    otp_ttl_seconds: 600
storage:
  bucket: test-bucket
  presign_ttl_minutes: 15
`))
	require.NoError(t, err)

	v10, err := validator.NewV10Validator()
	require.NoError(t, err)

	env := &testEnv{
		clock:  &fakeClock{at: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)},
		store:  newFakeOtpStore(),
		repo:   newFakeRepoDB(),
		mailer: &fakeMailer{},
		stg:    &fakeStorage{},
		totp:   otp.NewTOTP("IB Desk", 30, 2, libOTP.DigitsSix),
	}

	env.uc = New(Dependency{
		RepoDB:       env.repo,
		OtpStore:     env.store,
		Mailer:       env.mailer,
		Storage:      env.stg,
		Validator:    v10,
		Config:       cfg,
		HMAC:         hash.NewHMACSHA256("test-secret"),
		MFAEncryptor: mfa.NewAESGCMEncryptor(mfa.StaticKeyProvider{KeyBytes: []byte("0123456789abcdef0123456789abcdef")}),
		Totp:         env.totp,
		Clock:        env.clock,
		Instrument:   instrument.NewNoop(),
	})

	return env
}

func assertCode(t *testing.T, err error, want goerror.Code) {
	t.Helper()

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, want, gerr.Code())
}

var codePattern = regexp.MustCompile(`\d{6}`)

func sentCode(t *testing.T, m *fakeMailer) string {
	t.Helper()

	require.NotEmpty(t, m.sent)
	code := codePattern.FindString(m.sent[len(m.sent)-1].TextBody)
	require.Len(t, code, 6)
	return code
}
