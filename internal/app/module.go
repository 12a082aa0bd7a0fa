package app

import (
	"log/slog"
	"os"

	"github.com/tradewire/ibdesk/internal/auth"
	"github.com/tradewire/ibdesk/internal/notify"
	"github.com/tradewire/ibdesk/internal/partner"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.auth.enabled") {
		if err := auth.New(auth.Dependency{
			Ctx:          a.ctx,
			DBConn:       a.dbConn,
			CacheConn:    a.cacheConn,
			Goroutine:    a.goroutine,
			Router:       a.router,
			Mail:         a.mail,
			Storage:      a.storage,
			Config:       a.config,
			Instrument:   a.ins,
			HMAC:         a.hmac,
			MFAEncryptor: a.mfaEncryptor,
			Clock:        a.clock,
			Totp:         a.totp,
			Validator:    a.validator,
		}); err != nil {
			slog.Error("failed to init module auth", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.partner.enabled") {
		if err := partner.New(partner.Dependency{
			DBConn:      a.dbConn,
			Router:      a.router,
			Mail:        a.mail,
			Messaging:   a.messaging,
			Idempotency: a.idemp,
			Enforcer:    a.casbin,
			Config:      a.config,
			Instrument:  a.ins,
			Clock:       a.clock,
			Validator:   a.validator,
		}); err != nil {
			slog.Error("failed to init module partner", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notify.enabled") {
		if err := notify.New(notify.Dependency{
			Ctx:        a.ctx,
			DBConn:     a.dbConn,
			Messaging:  a.messaging,
			Mail:       a.mail,
			Goroutine:  a.goroutine,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			UUID:       a.uuid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module notify", "error", err)
			os.Exit(1)
		}
	}
}
