package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/tradewire/ibdesk/internal/auth/inbound"
	"github.com/tradewire/ibdesk/internal/auth/outbound/db"
	"github.com/tradewire/ibdesk/internal/auth/outbound/otpcache"
	"github.com/tradewire/ibdesk/internal/auth/usecase"
	"github.com/tradewire/ibdesk/internal/pkg/clock"
	"github.com/tradewire/ibdesk/internal/pkg/config"
	"github.com/tradewire/ibdesk/internal/pkg/goroutine"
	"github.com/tradewire/ibdesk/internal/pkg/hash"
	"github.com/tradewire/ibdesk/internal/pkg/instrument"
	"github.com/tradewire/ibdesk/internal/pkg/mail"
	"github.com/tradewire/ibdesk/internal/pkg/mfa"
	"github.com/tradewire/ibdesk/internal/pkg/otp"
	"github.com/tradewire/ibdesk/internal/pkg/router"
	"github.com/tradewire/ibdesk/internal/pkg/storage"
	"github.com/tradewire/ibdesk/internal/pkg/validator"
)

type Dependency struct {
	Ctx          context.Context            `validate:"required"`
	DBConn       *pgxpool.Pool              `validate:"required"`
	CacheConn    *redis.Client              `validate:"required"`
	Goroutine    *goroutine.Manager         `validate:"required"`
	Router       *router.Router             `validate:"required"`
	Mail         mail.Mail                  `validate:"required"`
	Storage      storage.Storage            `validate:"required"`
	Config       config.Config              `validate:"required"`
	Instrument   instrument.Instrumentation `validate:"required"`
	HMAC         hash.Hash                  `validate:"required"`
	MFAEncryptor mfa.Encryptor              `validate:"required"`
	Clock        clock.Clocker              `validate:"required"`
	Totp         otp.OTP                    `validate:"required"`
	Validator    validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAuth := db.NewDB(dep.DBConn, dep.Instrument)

	ucDep := usecase.Dependency{
		RepoDB:       dbAuth,
		Mailer:       dep.Mail,
		Storage:      dep.Storage,
		Validator:    dep.Validator,
		Config:       dep.Config,
		HMAC:         dep.HMAC,
		MFAEncryptor: dep.MFAEncryptor,
		Totp:         dep.Totp,
		Clock:        dep.Clock,
		Instrument:   dep.Instrument,
	}

	// The OTP store grace window equals one TTL, keeping "expired" and
	// "not found" distinguishable for a while after expiry.
	grace := dep.Config.GetSecond("modules.auth.otp_ttl_seconds")
	if dep.Config.GetString("modules.auth.otp_store") == "redis" {
		ucDep.OtpStore = otpcache.NewRedis(dep.CacheConn, dep.Clock, grace)
	} else {
		sweep := dep.Config.GetSecond("modules.auth.otp_sweep_interval_seconds")
		ucDep.OtpStore = otpcache.NewMemory(dep.Ctx, dep.Clock, grace, sweep, dep.Goroutine)
	}

	inbound.RegisterHTTPEndpoint(dep.Router, usecase.New(ucDep))

	return nil
}
