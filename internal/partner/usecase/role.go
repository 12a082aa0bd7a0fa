package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/samber/lo"
	"github.com/tradewire/ibdesk/internal/pkg/goerror"
)

type RoleAssignInput struct {
	Username string `validate:"required,min=1,max=100"`
	Role     string `validate:"required,min=1,max=64"`
}

type RoleRevokeInput struct {
	Username string `validate:"required,min=1,max=100"`
	Role     string `validate:"required,min=1,max=64"`
}

type RoleListInput struct {
	Username string `validate:"required,min=1,max=100"`
}

type RoleListOutput struct {
	Username string
	Roles    []string
}

// RoleAssign grants a role to a partner user. Granting a role the user
// already holds is a no-op.
func (s *Usecase) RoleAssign(ctx context.Context, in RoleAssignInput) error {
	ctx, span := s.startSpan(ctx, "RoleAssign")
	defer span.End()

	if _, err := s.authorized(ctx, "admin_roles", "write"); err != nil {
		return err
	}

	in.Username = strings.TrimSpace(in.Username)
	in.Role = strings.TrimSpace(in.Role)
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if _, err := s.enforcer.AddGroupingPolicy(in.Username, in.Role); err != nil {
		slog.ErrorContext(ctx, "failed to assign role", "username", in.Username, "role", in.Role, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

// RoleRevoke removes a role from a partner user. Revoking a role the user
// does not hold is a no-op.
func (s *Usecase) RoleRevoke(ctx context.Context, in RoleRevokeInput) error {
	ctx, span := s.startSpan(ctx, "RoleRevoke")
	defer span.End()

	if _, err := s.authorized(ctx, "admin_roles", "write"); err != nil {
		return err
	}

	in.Username = strings.TrimSpace(in.Username)
	in.Role = strings.TrimSpace(in.Role)
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if _, err := s.enforcer.RemoveGroupingPolicy(in.Username, in.Role); err != nil {
		slog.ErrorContext(ctx, "failed to revoke role", "username", in.Username, "role", in.Role, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

// RoleList returns the roles held by a partner user, sorted and deduplicated.
func (s *Usecase) RoleList(ctx context.Context, in RoleListInput) (*RoleListOutput, error) {
	ctx, span := s.startSpan(ctx, "RoleList")
	defer span.End()

	if _, err := s.authorized(ctx, "admin_roles", "read"); err != nil {
		return nil, err
	}

	in.Username = strings.TrimSpace(in.Username)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	roles, err := s.enforcer.GetRolesForUser(in.Username)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list roles", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &RoleListOutput{
		Username: in.Username,
		Roles:    lo.Uniq(roles),
	}, nil
}
