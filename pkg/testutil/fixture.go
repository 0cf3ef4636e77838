package testutil

import (
	"context"

	"github.com/questx-lab/rewardengine/internal/entity"
	"github.com/questx-lab/rewardengine/internal/repository"
	"github.com/questx-lab/rewardengine/pkg/xcontext"
)

var (
	// Users
	User1 = &entity.Account{UserID: "user1", CoinBalance: 1000, TicketCount: 2}
	User2 = &entity.Account{UserID: "user2"}
	User3 = &entity.Account{UserID: "user3", CoinBalance: 50, Banned: true, BanReason: "spam"}

	Users = []*entity.Account{User1, User2, User3}

	// Prizes, matching the catalog of ten coins 30, one ticket 25, nothing 45.
	PrizeCoins = &entity.PrizeDefinition{
		Base:      entity.Base{ID: "prize-coins"},
		Name:      "10 coins",
		Kind:      entity.PrizeCoins,
		Value:     10,
		Weight:    30,
		Active:    true,
		SortOrder: 1,
	}

	PrizeTicket = &entity.PrizeDefinition{
		Base:      entity.Base{ID: "prize-ticket"},
		Name:      "1 ticket",
		Kind:      entity.PrizeTicket,
		Value:     1,
		Weight:    25,
		Active:    true,
		SortOrder: 2,
	}

	PrizeNothing = &entity.PrizeDefinition{
		Base:      entity.Base{ID: "prize-nothing"},
		Name:      "Try again",
		Kind:      entity.PrizeNothing,
		Weight:    45,
		Active:    true,
		SortOrder: 3,
	}

	PrizePhysical = &entity.PrizeDefinition{
		Base:      entity.Base{ID: "prize-physical"},
		Name:      "T-shirt",
		Kind:      entity.PrizePhysical,
		Value:     1,
		Weight:    0,
		Active:    false,
		SortOrder: 4,
	}

	Prizes = []*entity.PrizeDefinition{PrizeCoins, PrizeTicket, PrizeNothing, PrizePhysical}
)

// CreateFixtureDb inserts the fixtures into the database of ctx. Starting
// balances are written together with their ledger entries so the ledger sums
// match the cached balances.
func CreateFixtureDb(ctx context.Context) {
	InsertAccounts(ctx)
	InsertPrizes(ctx)
}

func InsertAccounts(ctx context.Context) {
	ledgerRepo := repository.NewLedgerRepository(LedgerNode)
	for _, account := range Users {
		a := *account
		if err := xcontext.DB(ctx).Create(&a).Error; err != nil {
			panic(err)
		}

		if a.CoinBalance != 0 {
			insertOpening(ctx, ledgerRepo, a.UserID, entity.CurrencyCoin, a.CoinBalance)
		}

		if a.TicketCount != 0 {
			insertOpening(ctx, ledgerRepo, a.UserID, entity.CurrencyTicket, a.TicketCount)
		}
	}
}

func insertOpening(
	ctx context.Context, ledgerRepo repository.LedgerRepository,
	userID string, currency entity.Currency, amount int64,
) {
	err := ledgerRepo.Create(ctx, &entity.LedgerEntry{
		UserID:       userID,
		Currency:     currency,
		Amount:       amount,
		Kind:         entity.LedgerAdminAdjust,
		Description:  "opening balance",
		BalanceAfter: amount,
	})
	if err != nil {
		panic(err)
	}
}

func InsertPrizes(ctx context.Context) {
	prizeRepo := repository.NewPrizeRepository()
	for _, prize := range Prizes {
		p := *prize
		if err := prizeRepo.Create(ctx, &p); err != nil {
			panic(err)
		}
	}
}
