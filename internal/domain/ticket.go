package domain

import (
	"context"
	"fmt"
	"math"

	"github.com/questx-lab/rewardengine/internal/domain/abuse"
	"github.com/questx-lab/rewardengine/internal/entity"
	"github.com/questx-lab/rewardengine/internal/model"
	"github.com/questx-lab/rewardengine/internal/repository"
	"github.com/questx-lab/rewardengine/pkg/errorx"
	"github.com/questx-lab/rewardengine/pkg/xcontext"
)

type TicketDomain interface {
	BuyTickets(context.Context, *model.BuyTicketsRequest) (*model.BuyTicketsResponse, error)

	// PurchaseTickets exchanges quantity*pricePerTicket coins for quantity
	// tickets. It returns the new ticket count and coin balance.
	PurchaseTickets(ctx context.Context, userID string, quantity, pricePerTicket int64) (int64, int64, error)

	// ConsumeTicket spends one ticket. It joins the transaction of ctx if
	// there is one.
	ConsumeTicket(ctx context.Context, userID string) (*entity.LedgerEntry, error)
}

type ticketDomain struct {
	writer *ledgerWriter
	guard  abuse.Guard
}

func NewTicketDomain(
	accountRepo repository.AccountRepository,
	ledgerRepo repository.LedgerRepository,
	guard abuse.Guard,
) *ticketDomain {
	return &ticketDomain{
		writer: newLedgerWriter(accountRepo, ledgerRepo),
		guard:  guard,
	}
}

func (d *ticketDomain) BuyTickets(
	ctx context.Context, req *model.BuyTicketsRequest,
) (*model.BuyTicketsResponse, error) {
	userID, err := requestUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := d.guard.CheckAndRecord(ctx, userID, abuse.ActionTicketPurchase, "").Err(); err != nil {
		return nil, err
	}

	price := xcontext.Configs(ctx).Reward.TicketPrice
	tickets, coins, err := d.PurchaseTickets(ctx, userID, req.Quantity, price)
	if err != nil {
		return nil, err
	}

	return &model.BuyTicketsResponse{TicketCount: tickets, CoinBalance: coins}, nil
}

func (d *ticketDomain) PurchaseTickets(
	ctx context.Context, userID string, quantity, pricePerTicket int64,
) (int64, int64, error) {
	maxQuantity := xcontext.Configs(ctx).Reward.MaxTicketsPerPurchase
	if quantity <= 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Quantity must be a positive number")
	}

	if maxQuantity > 0 && quantity > maxQuantity {
		return 0, 0, errorx.New(errorx.BadRequest, "Cannot buy more than %d tickets at once", maxQuantity)
	}

	if pricePerTicket <= 0 {
		xcontext.Logger(ctx).Errorf("Invalid ticket price %d", pricePerTicket)
		return 0, 0, errorx.Unknown
	}

	if quantity > math.MaxInt64/pricePerTicket {
		return 0, 0, errorx.New(errorx.BadRequest, "Quantity is too large")
	}

	cost := quantity * pricePerTicket
	description := fmt.Sprintf("buy %d tickets at %d coins", quantity, pricePerTicket)

	var debit, credit *entity.LedgerEntry
	err := withTransaction(ctx, func(ctx context.Context) error {
		var err error
		debit, err = d.writer.apply(ctx, userID, entity.CurrencyCoin, -cost, entity.LedgerTicketPurchase, description)
		if err != nil {
			return err
		}

		credit, err = d.writer.apply(ctx, userID, entity.CurrencyTicket, quantity, entity.LedgerTicketPurchase, description)
		return err
	})
	if err != nil {
		return 0, 0, err
	}

	countLedger(debit, credit)
	return credit.BalanceAfter, debit.BalanceAfter, nil
}

func (d *ticketDomain) ConsumeTicket(ctx context.Context, userID string) (*entity.LedgerEntry, error) {
	var entry *entity.LedgerEntry
	err := withTransaction(ctx, func(ctx context.Context) error {
		var err error
		entry, err = d.writer.apply(ctx, userID, entity.CurrencyTicket, -1, entity.LedgerDrawSpend, "spend a ticket to spin")
		return err
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}
