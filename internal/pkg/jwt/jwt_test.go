package jwt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

type fixedID struct{}

func (fixedID) Generate() string { return "0192f8a1-1111-7aaa-bbbb-cccccccccccc" }

func testConfig(at time.Time) Config {
	return Config{
		Secret:    []byte(strings.Repeat("s", 64)),
		Issuer:    "ibdesk",
		Audiences: []string{"ibdesk-dashboard"},
		TTL:       time.Hour,
		Clock:     fixedClock{at: at},
		UUID:      fixedID{},
	}
}

func TestNewHS512RejectsShortKey(t *testing.T) {
	cfg := testConfig(time.Now())
	cfg.Secret = []byte("too-short")

	_, err := NewHS512(cfg)
	assert.ErrorIs(t, err, ErrSigningKeyTooShort)
}

func TestGenerateVerifyRoundTrip(t *testing.T) {
	s, err := NewHS512(testConfig(time.Now()))
	require.NoError(t, err)

	token, err := s.Generate("alice", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	clm, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", clm.Username)
	assert.Equal(t, "alice@example.com", clm.Email)
	assert.Equal(t, "alice", clm.Subject)
	assert.Equal(t, "ibdesk", clm.Issuer)
}

func TestVerifyExpiredToken(t *testing.T) {
	s, err := NewHS512(testConfig(time.Now().Add(-2 * time.Hour)))
	require.NoError(t, err)

	token, err := s.Generate("alice", "alice@example.com")
	require.NoError(t, err)

	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	s1, err := NewHS512(testConfig(time.Now()))
	require.NoError(t, err)

	cfg := testConfig(time.Now())
	cfg.Secret = []byte(strings.Repeat("x", 64))
	s2, err := NewHS512(cfg)
	require.NoError(t, err)

	token, err := s1.Generate("alice", "alice@example.com")
	require.NoError(t, err)

	_, err = s2.Verify(token)
	assert.Error(t, err)
}

func TestVerifyGarbage(t *testing.T) {
	s, err := NewHS512(testConfig(time.Now()))
	require.NoError(t, err)

	_, err = s.Verify("not.a.token")
	assert.Error(t, err)
}

func TestAuthContextRoundTrip(t *testing.T) {
	ctx := t.Context()
	assert.Nil(t, GetAuth(ctx))

	ctx = SetAuth(ctx, Claims{Username: "alice", Email: "alice@example.com"})
	clm := GetAuth(ctx)
	require.NotNil(t, clm)
	assert.Equal(t, "alice", clm.Username)
}
