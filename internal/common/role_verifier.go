package common

import (
	"context"
	"errors"

	"github.com/questx-lab/rewardengine/pkg/xcontext"
	"golang.org/x/exp/slices"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var AdminRoles = []string{RoleAdmin}

// AdminCapability is the single place deciding whether the request may use the
// admin entry points. It is checked once at the boundary, the domains trust
// their callers.
type AdminCapability interface {
	Verify(ctx context.Context) error
}

type roleAdminCapability struct {
	roles []string
}

func NewAdminCapability(roles ...string) *roleAdminCapability {
	if len(roles) == 0 {
		roles = AdminRoles
	}

	return &roleAdminCapability{roles: roles}
}

func (c *roleAdminCapability) Verify(ctx context.Context) error {
	if xcontext.RequestUserID(ctx) == "" {
		return errors.New("request is not authenticated")
	}

	if !slices.Contains(c.roles, xcontext.RequestUserRole(ctx)) {
		return errors.New("user role does not have permission")
	}

	return nil
}
