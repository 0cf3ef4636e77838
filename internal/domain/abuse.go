package domain

import (
	"context"
	"errors"

	"github.com/questx-lab/rewardengine/internal/domain/abuse"
	"github.com/questx-lab/rewardengine/internal/model"
	"github.com/questx-lab/rewardengine/internal/repository"
	"github.com/questx-lab/rewardengine/pkg/errorx"
	"github.com/questx-lab/rewardengine/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

const maxPayloadLength = 10000

type AbuseDomain interface {
	// CheckAction lets the surrounding community features run posts and
	// comments through the guard before accepting them.
	CheckAction(context.Context, *model.CheckActionRequest) (*model.CheckActionResponse, error)
}

type abuseDomain struct {
	accountRepo repository.AccountRepository
	guard       abuse.Guard
}

func NewAbuseDomain(accountRepo repository.AccountRepository, guard abuse.Guard) *abuseDomain {
	return &abuseDomain{accountRepo: accountRepo, guard: guard}
}

func (d *abuseDomain) CheckAction(
	ctx context.Context, req *model.CheckActionRequest,
) (*model.CheckActionResponse, error) {
	userID, err := requestUserID(ctx)
	if err != nil {
		return nil, err
	}

	if !slices.Contains(abuse.CollaboratorActions, req.Action) {
		return nil, errorx.New(errorx.BadRequest, "Invalid action %s", req.Action)
	}

	if len(req.Payload) > maxPayloadLength {
		return nil, errorx.New(errorx.BadRequest, "Payload must not exceed %d bytes", maxPayloadLength)
	}

	queryCtx, cancel := xcontext.WithQueryDeadline(ctx)
	account, err := d.accountRepo.GetByID(queryCtx, userID)
	cancel()
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internalError(ctx, err, "Cannot get account")
	}

	if account != nil && account.Banned {
		return nil, errorx.New(errorx.AccountBanned, "The account is banned")
	}

	if err := d.guard.CheckAndRecord(ctx, userID, req.Action, req.Payload).Err(); err != nil {
		return nil, err
	}

	return &model.CheckActionResponse{Allowed: true}, nil
}
