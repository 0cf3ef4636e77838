package domain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/questx-lab/rewardengine/internal/common"
	"github.com/questx-lab/rewardengine/internal/domain/abuse"
	"github.com/questx-lab/rewardengine/internal/domain/wheel"
	"github.com/questx-lab/rewardengine/internal/entity"
	"github.com/questx-lab/rewardengine/internal/model"
	"github.com/questx-lab/rewardengine/internal/repository"
	"github.com/questx-lab/rewardengine/pkg/crypto"
	"github.com/questx-lab/rewardengine/pkg/errorx"
	"github.com/questx-lab/rewardengine/pkg/pubsub"
	"github.com/questx-lab/rewardengine/pkg/xcontext"
	"gorm.io/gorm"
)

type DrawDomain interface {
	Draw(context.Context, *model.DrawRequest) (*model.DrawResponse, error)
	GetDrawHistory(context.Context, *model.GetDrawHistoryRequest) (*model.GetDrawHistoryResponse, error)
	GetCatalog(context.Context, *model.GetCatalogRequest) (*model.GetCatalogResponse, error)
}

type drawDomain struct {
	accountRepo     repository.AccountRepository
	prizeRepo       repository.PrizeRepository
	drawHistoryRepo repository.DrawHistoryRepository
	ticketDomain    TicketDomain
	writer          *ledgerWriter
	guard           abuse.Guard
	publisher       pubsub.Publisher

	now        func() time.Time
	randInt63n func(n int64) int64
}

func NewDrawDomain(
	accountRepo repository.AccountRepository,
	ledgerRepo repository.LedgerRepository,
	prizeRepo repository.PrizeRepository,
	drawHistoryRepo repository.DrawHistoryRepository,
	ticketDomain TicketDomain,
	guard abuse.Guard,
	publisher pubsub.Publisher,
) *drawDomain {
	return &drawDomain{
		accountRepo:     accountRepo,
		prizeRepo:       prizeRepo,
		drawHistoryRepo: drawHistoryRepo,
		ticketDomain:    ticketDomain,
		writer:          newLedgerWriter(accountRepo, ledgerRepo),
		guard:           guard,
		publisher:       publisher,
		now:             utcNow,
		randInt63n:      crypto.RandInt63n,
	}
}

// Draw spins the wheel once for the requesting user. The daily free spin is
// used first, a ticket otherwise. Spending the spin, selecting and paying the
// prize and recording the draw happen in one transaction.
func (d *drawDomain) Draw(ctx context.Context, req *model.DrawRequest) (*model.DrawResponse, error) {
	userID, err := requestUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := d.guard.CheckAndRecord(ctx, userID, abuse.ActionDraw, "").Err(); err != nil {
		return nil, err
	}

	cfg := xcontext.Configs(ctx).Reward
	now := d.now()

	var entries []*entity.LedgerEntry
	var account *entity.Account
	var winner entity.PrizeDefinition
	record := &entity.DrawHistory{
		Base:   entity.Base{ID: uuid.NewString()},
		UserID: userID,
	}

	err = withTransaction(ctx, func(ctx context.Context) error {
		if err := d.accountRepo.Upsert(ctx, userID); err != nil {
			return internalError(ctx, err, "Cannot create account")
		}

		source, spent, err := d.useSpin(ctx, userID, cfg.FreeSpinEnabled, now, cfg.ClaimWindow.Duration)
		if err != nil {
			return err
		}
		record.SpinSource = source
		entries = append(entries, spent)

		// A catalog failure rolls the spent spin back.
		prizes, err := d.loadCatalog(ctx)
		if err != nil {
			return err
		}

		winner, err = wheel.Spin(prizes, d.randInt63n)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot select a prize from the catalog: %v", err)
			return errorx.New(errorx.NoPrizesConfigured, "The prize wheel is not available")
		}

		record.PrizeID = winner.ID
		record.PayoutKind = winner.Kind
		record.PayoutValue = winner.Value
		if !winner.Kind.SelfSettling() {
			record.ClaimStatus = sql.NullString{String: string(entity.ClaimUnclaimed), Valid: true}
		}

		description := fmt.Sprintf("win %s", winner.Name)
		switch winner.Kind {
		case entity.PrizeCoins:
			entry, err := d.writer.apply(ctx, userID, entity.CurrencyCoin, winner.Value, entity.LedgerDrawWin, description)
			if err != nil {
				return err
			}
			entries = append(entries, entry)

		case entity.PrizeTicket:
			entry, err := d.writer.apply(ctx, userID, entity.CurrencyTicket, winner.Value, entity.LedgerDrawWin, description)
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}

		if err := d.drawHistoryRepo.Create(ctx, record); err != nil {
			return internalError(ctx, err, "Cannot create draw history")
		}

		account, err = d.accountRepo.GetByID(ctx, userID)
		if err != nil {
			return internalError(ctx, err, "Cannot get account")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	countLedger(entries...)
	common.PromCounters[common.DrawTotal].WithLabelValues(string(winner.Kind)).Inc()

	publishEvent(ctx, d.publisher, model.PrizeWonTopic, userID, model.PrizeWonEvent{
		DrawID:      record.ID,
		UserID:      userID,
		PrizeID:     winner.ID,
		PrizeName:   winner.Name,
		PayoutKind:  string(winner.Kind),
		PayoutValue: winner.Value,
	})

	return &model.DrawResponse{
		DrawID:      record.ID,
		PrizeID:     winner.ID,
		PrizeName:   winner.Name,
		PayoutKind:  string(winner.Kind),
		PayoutValue: winner.Value,
		SpinSource:  string(record.SpinSource),
		ClaimStatus: record.ClaimStatus.String,
		CoinBalance: account.CoinBalance,
		TicketCount: account.TicketCount,
	}, nil
}

// useSpin must be called inside the draw transaction. The returned entry is
// nil for a free spin.
func (d *drawDomain) useSpin(
	ctx context.Context, userID string, freeSpinEnabled bool, now time.Time, window time.Duration,
) (entity.SpinSource, *entity.LedgerEntry, error) {
	if freeSpinEnabled {
		err := d.accountRepo.UseFreeSpin(ctx, userID, now, window)
		if err == nil {
			return entity.SpinFree, nil, nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, internalError(ctx, err, "Cannot use free spin")
		}
	}

	entry, err := d.ticketDomain.ConsumeTicket(ctx, userID)
	if err != nil {
		if errorx.Is(err, errorx.NoTicketsAvailable) {
			return "", nil, errorx.New(errorx.NoEligibleSpin, "No free spin or ticket available")
		}

		return "", nil, err
	}

	return entity.SpinTicket, entry, nil
}

// loadCatalog reads the active catalog, bounded by the query timeout.
func (d *drawDomain) loadCatalog(ctx context.Context) ([]entity.PrizeDefinition, error) {
	ctx, cancel := xcontext.WithQueryDeadline(ctx)
	defer cancel()

	prizes, err := d.prizeRepo.GetActive(ctx)
	if err != nil {
		return nil, internalError(ctx, err, "Cannot get active prizes")
	}

	if len(prizes) == 0 {
		xcontext.Logger(ctx).Errorf("The prize catalog is empty")
		return nil, errorx.New(errorx.NoPrizesConfigured, "The prize wheel is not available")
	}

	return prizes, nil
}

func (d *drawDomain) GetDrawHistory(
	ctx context.Context, req *model.GetDrawHistoryRequest,
) (*model.GetDrawHistoryResponse, error) {
	userID, err := requestUserID(ctx)
	if err != nil {
		return nil, err
	}

	offset, limit := common.Pagination(ctx, req.Offset, req.Limit)

	ctx, cancel := xcontext.WithQueryDeadline(ctx)
	defer cancel()

	draws, err := d.drawHistoryRepo.GetByUserID(ctx, userID, offset, limit)
	if err != nil {
		return nil, internalError(ctx, err, "Cannot get draw history")
	}

	names, err := d.prizeNames(ctx)
	if err != nil {
		return nil, err
	}

	clientDraws := []model.DrawHistory{}
	for i := range draws {
		clientDraws = append(clientDraws, convertDrawHistory(&draws[i], names[draws[i].PrizeID]))
	}

	return &model.GetDrawHistoryResponse{Draws: clientDraws}, nil
}

func (d *drawDomain) prizeNames(ctx context.Context) (map[string]string, error) {
	prizes, err := d.prizeRepo.GetList(ctx)
	if err != nil {
		return nil, internalError(ctx, err, "Cannot get prizes")
	}

	names := map[string]string{}
	for _, p := range prizes {
		names[p.ID] = p.Name
	}

	return names, nil
}

// GetCatalog returns the active prizes in wheel order with their winning
// probabilities.
func (d *drawDomain) GetCatalog(
	ctx context.Context, req *model.GetCatalogRequest,
) (*model.GetCatalogResponse, error) {
	ctx, cancel := xcontext.WithQueryDeadline(ctx)
	defer cancel()

	prizes, err := d.prizeRepo.GetActive(ctx)
	if err != nil {
		return nil, internalError(ctx, err, "Cannot get active prizes")
	}

	prizes = wheel.Order(prizes)
	total, err := wheel.Total(prizes)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Invalid prize catalog: %v", err)
		return nil, errorx.New(errorx.NoPrizesConfigured, "The prize wheel is not available")
	}

	clientPrizes := []model.Prize{}
	for i := range prizes {
		clientPrizes = append(clientPrizes, convertPrize(&prizes[i], total))
	}

	return &model.GetCatalogResponse{Prizes: clientPrizes}, nil
}
