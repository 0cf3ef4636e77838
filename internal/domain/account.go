package domain

import (
	"context"
	"errors"

	"github.com/questx-lab/rewardengine/internal/common"
	"github.com/questx-lab/rewardengine/internal/model"
	"github.com/questx-lab/rewardengine/internal/repository"
	"github.com/questx-lab/rewardengine/pkg/errorx"
	"github.com/questx-lab/rewardengine/pkg/xcontext"
	"gorm.io/gorm"
)

type AccountDomain interface {
	Ban(context.Context, *model.BanRequest) (*model.BanResponse, error)
	Unban(context.Context, *model.UnbanRequest) (*model.UnbanResponse, error)
	GetAccount(context.Context, *model.GetAccountRequest) (*model.GetAccountResponse, error)
}

type accountDomain struct {
	accountRepo repository.AccountRepository
}

func NewAccountDomain(accountRepo repository.AccountRepository) *accountDomain {
	return &accountDomain{accountRepo: accountRepo}
}

func (d *accountDomain) Ban(ctx context.Context, req *model.BanRequest) (*model.BanResponse, error) {
	if err := common.ValidateUserID(req.UserID); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid user id: %v", err)
	}

	if req.Reason == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a reason")
	}

	var newlyBanned bool
	err := withTransaction(ctx, func(ctx context.Context) error {
		var err error
		newlyBanned, err = d.accountRepo.Ban(ctx, req.UserID, req.Reason)
		if err != nil {
			return internalError(ctx, err, "Cannot ban account")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if newlyBanned {
		xcontext.Logger(ctx).Infof("Banned %s by %s: %s", req.UserID, xcontext.RequestUserID(ctx), req.Reason)
	}

	return &model.BanResponse{}, nil
}

func (d *accountDomain) Unban(ctx context.Context, req *model.UnbanRequest) (*model.UnbanResponse, error) {
	err := withTransaction(ctx, func(ctx context.Context) error {
		if err := d.accountRepo.Unban(ctx, req.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorx.New(errorx.NotFound, "Not found account")
			}

			return internalError(ctx, err, "Cannot unban account")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	xcontext.Logger(ctx).Infof("Unbanned %s by %s", req.UserID, xcontext.RequestUserID(ctx))
	return &model.UnbanResponse{}, nil
}

func (d *accountDomain) GetAccount(
	ctx context.Context, req *model.GetAccountRequest,
) (*model.GetAccountResponse, error) {
	ctx, cancel := xcontext.WithQueryDeadline(ctx)
	defer cancel()

	account, err := d.accountRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found account")
		}

		return nil, internalError(ctx, err, "Cannot get account")
	}

	return &model.GetAccountResponse{Account: convertAccount(account)}, nil
}
