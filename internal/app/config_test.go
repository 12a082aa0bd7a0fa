package app

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradewire/ibdesk/internal/pkg/clock"
	"github.com/tradewire/ibdesk/internal/pkg/config"
	"github.com/tradewire/ibdesk/internal/pkg/jwt"
	"github.com/tradewire/ibdesk/internal/pkg/uid"
)

// The shipped defaults must pass every boot-time validator, otherwise the
// service exits before serving a single request.
func TestShippedConfigBoots(t *testing.T) {
	cfg, err := config.NewViper("../../config/config.yaml")
	require.NoError(t, err)

	secret := cfg.GetString("jwt.secret")
	assert.GreaterOrEqual(t, len(secret), 64, "jwt.secret must satisfy the HS512 key length check")

	_, err = jwt.NewHS512(jwt.Config{
		Secret:    []byte(secret),
		Issuer:    cfg.GetString("jwt.issuer"),
		Audiences: cfg.GetArray("jwt.audiences"),
		TTL:       cfg.GetMinute("jwt.ttl_minutes"),
		Clock:     clock.New(),
		UUID:      uid.NewUUID(),
	})
	require.NoError(t, err)

	rawKey, err := base64.StdEncoding.DecodeString(cfg.GetString("mfa.secret"))
	require.NoError(t, err)
	assert.Len(t, rawKey, 32, "mfa.secret must decode to an AES-256 key")
}
