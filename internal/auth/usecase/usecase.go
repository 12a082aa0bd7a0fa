package usecase

import (
	"context"

	"github.com/tradewire/ibdesk/internal/auth/entity"
	"github.com/tradewire/ibdesk/internal/pkg/clock"
	"github.com/tradewire/ibdesk/internal/pkg/config"
	"github.com/tradewire/ibdesk/internal/pkg/hash"
	"github.com/tradewire/ibdesk/internal/pkg/instrument"
	"github.com/tradewire/ibdesk/internal/pkg/mail"
	"github.com/tradewire/ibdesk/internal/pkg/mfa"
	"github.com/tradewire/ibdesk/internal/pkg/otp"
	"github.com/tradewire/ibdesk/internal/pkg/storage"
	"github.com/tradewire/ibdesk/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// otpStore keeps at most one live code per identity.
type otpStore interface {
	// Put overwrites any existing record for the identity.
	Put(ctx context.Context, rec entity.OtpRecord) error
	// Get returns the record for the identity or goerror.ErrNotFound.
	Get(ctx context.Context, identity string) (*entity.OtpRecord, error)
	// Delete removes the record; deleting a missing record is not an error.
	Delete(ctx context.Context, identity string) error
}

type repoDB interface {
	UpsertTotpCredential(ctx context.Context, cred entity.TotpCredential) error
	GetTotpCredential(ctx context.Context, username string) (*entity.TotpCredential, error)
	DeleteTotpCredential(ctx context.Context, username string) error
}

type Usecase struct {
	repoDB       repoDB
	otpStore     otpStore
	mailer       mail.Mail
	storage      storage.Storage
	validator    validator.Validator
	cfg          config.Config
	hmac         hash.Hash
	mfaEncryptor mfa.Encryptor
	totp         otp.OTP
	clock        clock.Clocker
	ins          instrument.Instrumentation
}

type Dependency struct {
	RepoDB       repoDB
	OtpStore     otpStore
	Mailer       mail.Mail
	Storage      storage.Storage
	Validator    validator.Validator
	Config       config.Config
	HMAC         hash.Hash
	MFAEncryptor mfa.Encryptor
	Totp         otp.OTP
	Clock        clock.Clocker
	Instrument   instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:       dep.RepoDB,
		otpStore:     dep.OtpStore,
		mailer:       dep.Mailer,
		storage:      dep.Storage,
		validator:    dep.Validator,
		cfg:          dep.Config,
		hmac:         dep.HMAC,
		mfaEncryptor: dep.MFAEncryptor,
		totp:         dep.Totp,
		clock:        dep.Clock,
		ins:          dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}
