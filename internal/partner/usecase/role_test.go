package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradewire/ibdesk/internal/pkg/goerror"
	"github.com/tradewire/ibdesk/internal/pkg/jwt"
)

func TestRoleAssignListRevoke(t *testing.T) {
	env := newTestEnv(t)
	ctx := adminCtx(t)

	require.NoError(t, env.uc.RoleAssign(ctx, RoleAssignInput{Username: " alice ", Role: "manager"}))

	out, err := env.uc.RoleList(ctx, RoleListInput{Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, []string{"manager"}, out.Roles)

	require.NoError(t, env.uc.RoleRevoke(ctx, RoleRevokeInput{Username: "alice", Role: "manager"}))

	out, err = env.uc.RoleList(ctx, RoleListInput{Username: "alice"})
	require.NoError(t, err)
	assert.Empty(t, out.Roles)
}

func TestRoleAssignIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := adminCtx(t)

	require.NoError(t, env.uc.RoleAssign(ctx, RoleAssignInput{Username: "alice", Role: "manager"}))
	require.NoError(t, env.uc.RoleAssign(ctx, RoleAssignInput{Username: "alice", Role: "manager"}))

	out, err := env.uc.RoleList(ctx, RoleListInput{Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, []string{"manager"}, out.Roles)
}

func TestRoleRevokeMissingIsNoop(t *testing.T) {
	env := newTestEnv(t)

	assert.NoError(t, env.uc.RoleRevoke(adminCtx(t), RoleRevokeInput{Username: "alice", Role: "manager"}))
}

func TestRoleAssignGrantsEnforcement(t *testing.T) {
	env := newTestEnv(t)
	ctx := adminCtx(t)

	require.NoError(t, env.uc.RoleAssign(ctx, RoleAssignInput{Username: "alice", Role: "admin"}))

	// alice now passes the nudge permission check herself.
	aliceCtx := jwt.SetAuth(t.Context(), jwt.Claims{Username: "alice"})
	_, err := env.uc.NudgeSend(aliceCtx, NudgeSendInput{Email: "bob@example.com", Kind: "missing_payout"})
	require.NoError(t, err)
}

func TestRoleOpsRequireAdminRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := jwt.SetAuth(t.Context(), jwt.Claims{Username: "viewer"})

	err := env.uc.RoleAssign(ctx, RoleAssignInput{Username: "alice", Role: "manager"})
	assertCode(t, err, goerror.CodeForbidden)

	err = env.uc.RoleRevoke(ctx, RoleRevokeInput{Username: "alice", Role: "manager"})
	assertCode(t, err, goerror.CodeForbidden)

	_, err = env.uc.RoleList(ctx, RoleListInput{Username: "alice"})
	assertCode(t, err, goerror.CodeForbidden)
}

func TestRoleOpsRequireAuthentication(t *testing.T) {
	env := newTestEnv(t)

	err := env.uc.RoleAssign(t.Context(), RoleAssignInput{Username: "alice", Role: "manager"})
	assertCode(t, err, goerror.CodeUnauthorized)
}
