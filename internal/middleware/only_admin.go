package middleware

import (
	"context"

	"github.com/questx-lab/rewardengine/internal/common"
	"github.com/questx-lab/rewardengine/pkg/errorx"
	"github.com/questx-lab/rewardengine/pkg/router"
	"github.com/questx-lab/rewardengine/pkg/xcontext"
)

type OnlyAdmin struct {
	capability common.AdminCapability
}

func NewOnlyAdmin(capability common.AdminCapability) *OnlyAdmin {
	return &OnlyAdmin{capability: capability}
}

func (a *OnlyAdmin) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if err := a.capability.Verify(ctx); err != nil {
			xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
			return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
		}

		return nil, nil
	}
}
