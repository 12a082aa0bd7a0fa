package usecase

import (
	"context"
	"log/slog"

	"github.com/casbin/casbin/v3"
	"github.com/tradewire/ibdesk/internal/partner/entity"
	"github.com/tradewire/ibdesk/internal/pkg/clock"
	"github.com/tradewire/ibdesk/internal/pkg/config"
	"github.com/tradewire/ibdesk/internal/pkg/goerror"
	"github.com/tradewire/ibdesk/internal/pkg/idempotency"
	"github.com/tradewire/ibdesk/internal/pkg/instrument"
	"github.com/tradewire/ibdesk/internal/pkg/jwt"
	"github.com/tradewire/ibdesk/internal/pkg/mail"
	"github.com/tradewire/ibdesk/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type NudgeRequestedEvent struct {
	Email string
	Kind  string
	Name  string
}

type repoMessaging interface {
	PublishNudgeRequested(ctx context.Context, msg NudgeRequestedEvent) error
}

type repoDB interface {
	UpsertPayoutDetails(ctx context.Context, det entity.PayoutDetails) error
	GetPayoutDetails(ctx context.Context, partnerID int64) (*entity.PayoutDetails, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	idemp         idempotency.Idempotency
	mailer        mail.Mail
	validator     validator.Validator
	cfg           config.Config
	clock         clock.Clocker
	enforcer      *casbin.Enforcer
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Idempotency   idempotency.Idempotency
	Mailer        mail.Mail
	Validator     validator.Validator
	Config        config.Config
	Clock         clock.Clocker
	Enforcer      *casbin.Enforcer
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		idemp:         dep.Idempotency,
		mailer:        dep.Mailer,
		validator:     dep.Validator,
		cfg:           dep.Config,
		clock:         dep.Clock,
		enforcer:      dep.Enforcer,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("partner.usecase").Start(ctx, name)
}

// authorized requires an authenticated caller whose roles allow act on obj.
func (s *Usecase) authorized(ctx context.Context, obj, act string) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	ok, err := s.enforcer.Enforce(clm.Username, obj, act)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check authorization", "username", clm.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !ok {
		return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	return clm, nil
}
