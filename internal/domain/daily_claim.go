package domain

import (
	"context"
	"errors"
	"time"

	"github.com/questx-lab/rewardengine/internal/domain/abuse"
	"github.com/questx-lab/rewardengine/internal/entity"
	"github.com/questx-lab/rewardengine/internal/model"
	"github.com/questx-lab/rewardengine/internal/repository"
	"github.com/questx-lab/rewardengine/pkg/errorx"
	"github.com/questx-lab/rewardengine/pkg/xcontext"
	"gorm.io/gorm"
)

type DailyClaimResult struct {
	Claimed        bool
	NextEligibleAt time.Time
	CoinBalance    int64
}

type DailyClaimDomain interface {
	ClaimDaily(context.Context, *model.ClaimDailyRequest) (*model.ClaimDailyResponse, error)
	GetDailyStatus(context.Context, *model.GetDailyStatusRequest) (*model.GetDailyStatusResponse, error)

	// TryClaimDaily credits rewardAmount coins at most once per claim window.
	// An ineligible claim is not an error, it returns Claimed=false with the
	// time of the next eligible claim.
	TryClaimDaily(ctx context.Context, userID string, rewardAmount int64) (*DailyClaimResult, error)
}

type dailyClaimDomain struct {
	accountRepo repository.AccountRepository
	writer      *ledgerWriter
	guard       abuse.Guard
	now         func() time.Time
}

func NewDailyClaimDomain(
	accountRepo repository.AccountRepository,
	ledgerRepo repository.LedgerRepository,
	guard abuse.Guard,
) *dailyClaimDomain {
	return &dailyClaimDomain{
		accountRepo: accountRepo,
		writer:      newLedgerWriter(accountRepo, ledgerRepo),
		guard:       guard,
		now:         utcNow,
	}
}

func (d *dailyClaimDomain) ClaimDaily(
	ctx context.Context, req *model.ClaimDailyRequest,
) (*model.ClaimDailyResponse, error) {
	userID, err := requestUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := d.guard.CheckAndRecord(ctx, userID, abuse.ActionDailyClaim, "").Err(); err != nil {
		return nil, err
	}

	result, err := d.TryClaimDaily(ctx, userID, xcontext.Configs(ctx).Reward.DailyAmount)
	if err != nil {
		return nil, err
	}

	return &model.ClaimDailyResponse{
		Claimed:        result.Claimed,
		NextEligibleAt: result.NextEligibleAt.Format(defaultTimeLayout),
		CoinBalance:    result.CoinBalance,
	}, nil
}

func (d *dailyClaimDomain) TryClaimDaily(
	ctx context.Context, userID string, rewardAmount int64,
) (*DailyClaimResult, error) {
	if rewardAmount <= 0 {
		xcontext.Logger(ctx).Errorf("Invalid daily reward amount %d", rewardAmount)
		return nil, errorx.Unknown
	}

	window := xcontext.Configs(ctx).Reward.ClaimWindow.Duration
	now := d.now()

	result := &DailyClaimResult{}
	var entry *entity.LedgerEntry
	err := withTransaction(ctx, func(ctx context.Context) error {
		if err := d.accountRepo.Upsert(ctx, userID); err != nil {
			return internalError(ctx, err, "Cannot create account")
		}

		err := d.accountRepo.ClaimDaily(ctx, userID, now, window)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return internalError(ctx, err, "Cannot update daily claim")
			}

			account, err := d.accountRepo.GetByID(ctx, userID)
			if err != nil {
				return internalError(ctx, err, "Cannot get account")
			}

			if account.Banned {
				return errorx.New(errorx.AccountBanned, "The account is banned")
			}

			result.Claimed = false
			result.NextEligibleAt = account.LastDailyClaimAt.Time.UTC().Add(window)
			result.CoinBalance = account.CoinBalance
			return nil
		}

		entry, err = d.writer.apply(ctx, userID, entity.CurrencyCoin, rewardAmount, entity.LedgerDailyClaim, "daily claim")
		if err != nil {
			return err
		}

		result.Claimed = true
		result.NextEligibleAt = now.Add(window)
		result.CoinBalance = entry.BalanceAfter
		return nil
	})
	if err != nil {
		return nil, err
	}

	countLedger(entry)
	return result, nil
}

func (d *dailyClaimDomain) GetDailyStatus(
	ctx context.Context, req *model.GetDailyStatusRequest,
) (*model.GetDailyStatusResponse, error) {
	userID, err := requestUserID(ctx)
	if err != nil {
		return nil, err
	}

	cfg := xcontext.Configs(ctx).Reward
	now := d.now()

	ctx, cancel := xcontext.WithQueryDeadline(ctx)
	defer cancel()

	account, err := d.accountRepo.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internalError(ctx, err, "Cannot get account")
		}

		account = &entity.Account{UserID: userID}
	}

	resp := &model.GetDailyStatusResponse{}

	next := nextEligibleAt(account.LastDailyClaimAt.Time, account.LastDailyClaimAt.Valid, cfg.ClaimWindow.Duration, now)
	resp.Eligible = !account.Banned && !next.After(now)
	resp.NextEligibleAt = next.Format(defaultTimeLayout)

	if cfg.FreeSpinEnabled {
		next := nextEligibleAt(account.LastFreeSpinAt.Time, account.LastFreeSpinAt.Valid, cfg.ClaimWindow.Duration, now)
		resp.FreeSpinEligible = !account.Banned && !next.After(now)
		resp.NextFreeSpinAt = next.Format(defaultTimeLayout)
	}

	return resp, nil
}

func nextEligibleAt(last time.Time, valid bool, window time.Duration, now time.Time) time.Time {
	if !valid {
		return now
	}

	next := last.UTC().Add(window)
	if next.Before(now) {
		return now
	}

	return next
}
