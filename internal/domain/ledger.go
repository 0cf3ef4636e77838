package domain

import (
	"context"
	"errors"

	"github.com/questx-lab/rewardengine/internal/common"
	"github.com/questx-lab/rewardengine/internal/entity"
	"github.com/questx-lab/rewardengine/internal/model"
	"github.com/questx-lab/rewardengine/internal/repository"
	"github.com/questx-lab/rewardengine/pkg/enum"
	"github.com/questx-lab/rewardengine/pkg/errorx"
	"github.com/questx-lab/rewardengine/pkg/xcontext"
	"gorm.io/gorm"
)

type LedgerDomain interface {
	GetBalance(context.Context, *model.GetBalanceRequest) (*model.GetBalanceResponse, error)
	GetLedger(context.Context, *model.GetLedgerRequest) (*model.GetLedgerResponse, error)
	AdjustBalance(context.Context, *model.AdjustBalanceRequest) (*model.AdjustBalanceResponse, error)
	Reward(context.Context, *model.RewardRequest) (*model.RewardResponse, error)
	VerifyConservation(context.Context, *model.VerifyConservationRequest) (*model.VerifyConservationResponse, error)

	// ApplyTransaction atomically adds amount to the coin balance of userID
	// and appends the matching ledger entry. It returns the new balance and
	// the id of the entry.
	ApplyTransaction(ctx context.Context, userID string, amount int64, kind entity.LedgerKind, description string) (int64, int64, error)
	ReadBalance(ctx context.Context, userID string) (*entity.Account, error)
}

type ledgerDomain struct {
	accountRepo repository.AccountRepository
	ledgerRepo  repository.LedgerRepository
	writer      *ledgerWriter
}

func NewLedgerDomain(
	accountRepo repository.AccountRepository,
	ledgerRepo repository.LedgerRepository,
) *ledgerDomain {
	return &ledgerDomain{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		writer:      newLedgerWriter(accountRepo, ledgerRepo),
	}
}

func (d *ledgerDomain) ApplyTransaction(
	ctx context.Context, userID string, amount int64, kind entity.LedgerKind, description string,
) (int64, int64, error) {
	if err := common.ValidateUserID(userID); err != nil {
		return 0, 0, errorx.New(errorx.BadRequest, "Invalid user id: %v", err)
	}

	if !enum.IsValid(kind) {
		return 0, 0, errorx.New(errorx.BadRequest, "Invalid ledger kind %s", kind)
	}

	if amount == 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Amount must be non-zero")
	}

	var entry *entity.LedgerEntry
	err := withTransaction(ctx, func(ctx context.Context) error {
		var err error
		entry, err = d.writer.apply(ctx, userID, entity.CurrencyCoin, amount, kind, description)
		return err
	})
	if err != nil {
		return 0, 0, err
	}

	countLedger(entry)
	return entry.BalanceAfter, entry.ID, nil
}

// ReadBalance returns a zero account if the user has never been seen.
func (d *ledgerDomain) ReadBalance(ctx context.Context, userID string) (*entity.Account, error) {
	ctx, cancel := xcontext.WithQueryDeadline(ctx)
	defer cancel()

	account, err := d.accountRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &entity.Account{UserID: userID}, nil
		}

		return nil, internalError(ctx, err, "Cannot get account")
	}

	return account, nil
}

func (d *ledgerDomain) GetBalance(
	ctx context.Context, req *model.GetBalanceRequest,
) (*model.GetBalanceResponse, error) {
	userID, err := requestUserID(ctx)
	if err != nil {
		return nil, err
	}

	account, err := d.ReadBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.GetBalanceResponse{Account: convertAccount(account)}, nil
}

func (d *ledgerDomain) GetLedger(
	ctx context.Context, req *model.GetLedgerRequest,
) (*model.GetLedgerResponse, error) {
	userID, err := requestUserID(ctx)
	if err != nil {
		return nil, err
	}

	offset, limit := common.Pagination(ctx, req.Offset, req.Limit)

	ctx, cancel := xcontext.WithQueryDeadline(ctx)
	defer cancel()

	entries, err := d.ledgerRepo.GetByUserID(ctx, userID, offset, limit)
	if err != nil {
		return nil, internalError(ctx, err, "Cannot get ledger entries")
	}

	clientEntries := []model.LedgerEntry{}
	for i := range entries {
		clientEntries = append(clientEntries, convertLedgerEntry(&entries[i]))
	}

	return &model.GetLedgerResponse{Entries: clientEntries}, nil
}

func (d *ledgerDomain) AdjustBalance(
	ctx context.Context, req *model.AdjustBalanceRequest,
) (*model.AdjustBalanceResponse, error) {
	if req.Description == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a description")
	}

	balance, entryID, err := d.ApplyTransaction(ctx, req.UserID, req.Amount, entity.LedgerAdminAdjust, req.Description)
	if err != nil {
		return nil, err
	}

	xcontext.Logger(ctx).Infof("Adjusted balance of %s by %d: %s", req.UserID, req.Amount, req.Description)
	return &model.AdjustBalanceResponse{CoinBalance: balance, EntryID: entryID}, nil
}

// Reward credits coins earned outside of this service, such as upload rewards
// or refunds.
func (d *ledgerDomain) Reward(
	ctx context.Context, req *model.RewardRequest,
) (*model.RewardResponse, error) {
	kind, err := enum.ToEnum[entity.LedgerKind](req.Kind)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid reward kind")
	}

	if kind != entity.LedgerUploadReward && kind != entity.LedgerRefund {
		return nil, errorx.New(errorx.BadRequest, "Reward kind must be upload_reward or refund")
	}

	if req.Amount <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Reward amount must be positive")
	}

	balance, entryID, err := d.ApplyTransaction(ctx, req.UserID, req.Amount, kind, req.Description)
	if err != nil {
		return nil, err
	}

	return &model.RewardResponse{CoinBalance: balance, EntryID: entryID}, nil
}

// VerifyConservation compares the cached balances of the user with the sums
// of the ledger.
func (d *ledgerDomain) VerifyConservation(
	ctx context.Context, req *model.VerifyConservationRequest,
) (*model.VerifyConservationResponse, error) {
	if err := common.ValidateUserID(req.UserID); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid user id: %v", err)
	}

	account, err := d.ReadBalance(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := xcontext.WithQueryDeadline(ctx)
	defer cancel()

	coinSum, err := d.ledgerRepo.Sum(ctx, req.UserID, entity.CurrencyCoin)
	if err != nil {
		return nil, internalError(ctx, err, "Cannot sum coin entries")
	}

	ticketSum, err := d.ledgerRepo.Sum(ctx, req.UserID, entity.CurrencyTicket)
	if err != nil {
		return nil, internalError(ctx, err, "Cannot sum ticket entries")
	}

	resp := &model.VerifyConservationResponse{
		CoinBalance: account.CoinBalance,
		CoinSum:     coinSum,
		TicketCount: account.TicketCount,
		TicketSum:   ticketSum,
	}
	resp.Consistent = resp.CoinBalance == resp.CoinSum && resp.TicketCount == resp.TicketSum

	if !resp.Consistent {
		xcontext.Logger(ctx).Errorf("Ledger of %s is inconsistent: %+v", req.UserID, resp)
	}

	return resp, nil
}
