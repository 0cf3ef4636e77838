package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/questx-lab/rewardengine/internal/common"
	"github.com/questx-lab/rewardengine/internal/domain/abuse"
	"github.com/questx-lab/rewardengine/internal/entity"
	"github.com/questx-lab/rewardengine/internal/model"
	"github.com/questx-lab/rewardengine/internal/repository"
	"github.com/questx-lab/rewardengine/pkg/errorx"
	"github.com/questx-lab/rewardengine/pkg/pubsub"
	"github.com/questx-lab/rewardengine/pkg/xcontext"
	"gorm.io/gorm"
)

type ClaimDomain interface {
	RequestClaim(context.Context, *model.RequestClaimRequest) (*model.RequestClaimResponse, error)
	ReviewClaim(context.Context, *model.ReviewClaimRequest) (*model.ReviewClaimResponse, error)
	GetPendingClaims(context.Context, *model.GetPendingClaimsRequest) (*model.GetPendingClaimsResponse, error)
}

type claimDomain struct {
	accountRepo     repository.AccountRepository
	prizeRepo       repository.PrizeRepository
	drawHistoryRepo repository.DrawHistoryRepository
	guard           abuse.Guard
	publisher       pubsub.Publisher
	now             func() time.Time
}

func NewClaimDomain(
	accountRepo repository.AccountRepository,
	prizeRepo repository.PrizeRepository,
	drawHistoryRepo repository.DrawHistoryRepository,
	guard abuse.Guard,
	publisher pubsub.Publisher,
) *claimDomain {
	return &claimDomain{
		accountRepo:     accountRepo,
		prizeRepo:       prizeRepo,
		drawHistoryRepo: drawHistoryRepo,
		guard:           guard,
		publisher:       publisher,
		now:             utcNow,
	}
}

// RequestClaim asks for the fulfillment of a prize which is not self-settling.
// Only the winner of the draw may request it, exactly once.
func (d *claimDomain) RequestClaim(
	ctx context.Context, req *model.RequestClaimRequest,
) (*model.RequestClaimResponse, error) {
	userID, err := requestUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := d.guard.CheckAndRecord(ctx, userID, abuse.ActionClaimPrize, "").Err(); err != nil {
		return nil, err
	}

	draw, err := d.getDraw(ctx, req.DrawID)
	if err != nil {
		return nil, err
	}

	if draw.UserID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "The draw does not belong to you")
	}

	account, err := d.accountRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, internalError(ctx, err, "Cannot get account")
	}

	if account.Banned {
		return nil, errorx.New(errorx.AccountBanned, "The account is banned")
	}

	if err := d.transition(ctx, draw, entity.ClaimPending, userID, ""); err != nil {
		return nil, err
	}

	prizeName := ""
	if prize, err := d.prizeRepo.GetByID(ctx, draw.PrizeID); err == nil {
		prizeName = prize.Name
	}

	publishEvent(ctx, d.publisher, model.ClaimRequestedTopic, userID, model.ClaimRequestedEvent{
		DrawID:    draw.ID,
		UserID:    userID,
		PrizeName: prizeName,
	})

	return &model.RequestClaimResponse{}, nil
}

// ReviewClaim settles a pending claim. The caller must be authorized as an
// admin beforehand.
func (d *claimDomain) ReviewClaim(
	ctx context.Context, req *model.ReviewClaimRequest,
) (*model.ReviewClaimResponse, error) {
	draw, err := d.getDraw(ctx, req.DrawID)
	if err != nil {
		return nil, err
	}

	next := entity.ClaimRejected
	if req.Accept {
		next = entity.ClaimClaimed
	}

	reviewer := xcontext.RequestUserID(ctx)
	if err := d.transition(ctx, draw, next, reviewer, req.Note); err != nil {
		return nil, err
	}

	xcontext.Logger(ctx).Infof("Claim of draw %s is %s by %s", draw.ID, next, reviewer)

	publishEvent(ctx, d.publisher, model.ClaimReviewedTopic, draw.UserID, model.ClaimReviewedEvent{
		DrawID:   draw.ID,
		UserID:   draw.UserID,
		Status:   string(next),
		Reviewer: reviewer,
		Note:     req.Note,
	})

	return &model.ReviewClaimResponse{}, nil
}

func (d *claimDomain) GetPendingClaims(
	ctx context.Context, req *model.GetPendingClaimsRequest,
) (*model.GetPendingClaimsResponse, error) {
	offset, limit := common.Pagination(ctx, req.Offset, req.Limit)

	ctx, cancel := xcontext.WithQueryDeadline(ctx)
	defer cancel()

	draws, err := d.drawHistoryRepo.GetByClaimStatus(ctx, entity.ClaimPending, offset, limit)
	if err != nil {
		return nil, internalError(ctx, err, "Cannot get pending claims")
	}

	clientDraws := []model.DrawHistory{}
	for i := range draws {
		name := ""
		if prize, err := d.prizeRepo.GetByID(ctx, draws[i].PrizeID); err == nil {
			name = prize.Name
		}

		clientDraws = append(clientDraws, convertDrawHistory(&draws[i], name))
	}

	return &model.GetPendingClaimsResponse{Draws: clientDraws}, nil
}

func (d *claimDomain) getDraw(ctx context.Context, drawID string) (*entity.DrawHistory, error) {
	if drawID == "" {
		return nil, errorx.New(errorx.BadRequest, "Require draw id")
	}

	draw, err := d.drawHistoryRepo.GetByID(ctx, drawID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found draw")
		}

		return nil, internalError(ctx, err, "Cannot get draw")
	}

	return draw, nil
}

// transition moves the claim of draw to next. The update is conditional on the
// status read before, so two concurrent transitions cannot both succeed.
func (d *claimDomain) transition(
	ctx context.Context, draw *entity.DrawHistory, next entity.ClaimStatus, actorID, note string,
) error {
	if !draw.ClaimStatus.Valid {
		return errorx.New(errorx.InvalidStateTransition, "The prize does not need to be claimed")
	}

	current := entity.ClaimStatus(draw.ClaimStatus.String)
	if !current.CanTransitionTo(next) {
		return errorx.New(errorx.InvalidStateTransition, "Cannot change claim from %s to %s", current, next)
	}

	now := d.now()
	return withTransaction(ctx, func(ctx context.Context) error {
		err := d.drawHistoryRepo.UpdateClaimStatus(ctx, draw.ID, current, next, now)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorx.New(errorx.InvalidStateTransition, "The claim has been changed by another request")
			}

			return internalError(ctx, err, "Cannot update claim status")
		}

		err = d.drawHistoryRepo.CreateTransition(ctx, &entity.ClaimTransition{
			Base:       entity.Base{ID: uuid.NewString()},
			DrawID:     draw.ID,
			FromStatus: current,
			ToStatus:   next,
			ActorID:    actorID,
			Note:       note,
		})
		if err != nil {
			return internalError(ctx, err, "Cannot create claim transition")
		}

		return nil
	})
}
