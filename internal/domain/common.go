package domain

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/questx-lab/rewardengine/internal/common"
	"github.com/questx-lab/rewardengine/internal/entity"
	"github.com/questx-lab/rewardengine/internal/repository"
	"github.com/questx-lab/rewardengine/pkg/errorx"
	"github.com/questx-lab/rewardengine/pkg/pubsub"
	"github.com/questx-lab/rewardengine/pkg/xcontext"
	"gorm.io/gorm"
)

func utcNow() time.Time {
	return time.Now().UTC()
}

// withTransaction runs fn in one database transaction. The transaction is
// detached from the caller's cancellation and bounded by the configured
// transaction timeout, so it either fully commits or fully rolls back.
func withTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := xcontext.WithTxDeadline(ctx)
	defer cancel()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.RollbackDBTransaction(ctx)

	if err := fn(ctx); err != nil {
		return err
	}

	if err := xcontext.CommitDBTransaction(ctx); err != nil {
		return internalError(ctx, err, "Cannot commit transaction")
	}

	return nil
}

// internalError logs err and hides it from the caller. Errors which are
// already an errorx.Error are returned unchanged.
func internalError(ctx context.Context, err error, msg string) error {
	var errx errorx.Error
	if errorx.As(err, &errx) {
		return errx
	}

	if errors.Is(err, context.DeadlineExceeded) {
		xcontext.Logger(ctx).Warnf("%s: %v", msg, err)
		return errorx.New(errorx.Timeout, "Request timed out")
	}

	if errors.Is(err, context.Canceled) {
		xcontext.Logger(ctx).Debugf("%s: %v", msg, err)
		return errorx.New(errorx.Canceled, "Request canceled")
	}

	xcontext.Logger(ctx).Errorf("%s: %v", msg, err)
	return errorx.Unknown
}

func requestUserID(ctx context.Context) (string, error) {
	userID := xcontext.RequestUserID(ctx)
	if err := common.ValidateUserID(userID); err != nil {
		xcontext.Logger(ctx).Debugf("Invalid user id: %v", err)
		return "", errorx.New(errorx.Unauthenticated, "Need authentication")
	}

	return userID, nil
}

// ledgerWriter applies balance changes together with their ledger entries. It
// must be used inside a database transaction.
type ledgerWriter struct {
	accountRepo repository.AccountRepository
	ledgerRepo  repository.LedgerRepository
}

func newLedgerWriter(
	accountRepo repository.AccountRepository,
	ledgerRepo repository.LedgerRepository,
) *ledgerWriter {
	return &ledgerWriter{accountRepo: accountRepo, ledgerRepo: ledgerRepo}
}

func (w *ledgerWriter) apply(
	ctx context.Context,
	userID string,
	currency entity.Currency,
	amount int64,
	kind entity.LedgerKind,
	description string,
) (*entity.LedgerEntry, error) {
	if amount == 0 {
		return nil, errorx.New(errorx.BadRequest, "Amount must be non-zero")
	}

	if err := w.accountRepo.Upsert(ctx, userID); err != nil {
		return nil, internalError(ctx, err, "Cannot create account")
	}

	err := w.accountRepo.IncreaseBalance(ctx, userID, currency, amount)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internalError(ctx, err, "Cannot update balance")
		}

		account, err := w.accountRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, internalError(ctx, err, "Cannot get account")
		}

		if account.Banned {
			return nil, errorx.New(errorx.AccountBanned, "The account is banned")
		}

		if currency == entity.CurrencyTicket {
			return nil, errorx.New(errorx.NoTicketsAvailable, "Not enough tickets")
		}

		return nil, errorx.New(errorx.InsufficientFunds, "Not enough coins")
	}

	account, err := w.accountRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, internalError(ctx, err, "Cannot get account")
	}

	entry := &entity.LedgerEntry{
		UserID:       userID,
		Currency:     currency,
		Amount:       amount,
		Kind:         kind,
		Description:  description,
		BalanceAfter: account.CoinBalance,
	}
	if currency == entity.CurrencyTicket {
		entry.BalanceAfter = account.TicketCount
	}

	if err := w.ledgerRepo.Create(ctx, entry); err != nil {
		return nil, internalError(ctx, err, "Cannot create ledger entry")
	}

	return entry, nil
}

// countLedger must be called only after the entries are committed.
func countLedger(entries ...*entity.LedgerEntry) {
	for _, e := range entries {
		if e == nil {
			continue
		}

		common.PromCounters[common.LedgerTransactionTotal].
			WithLabelValues(string(e.Currency), string(e.Kind)).Inc()
	}
}

// publishEvent notifies subscribers after a commit. The outcome of the
// operation never depends on it, failures are only logged.
func publishEvent(ctx context.Context, publisher pubsub.Publisher, topic, key string, event any) {
	if publisher == nil {
		return
	}

	b, err := json.Marshal(event)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal %s event: %v", topic, err)
		return
	}

	err = publisher.Publish(context.WithoutCancel(ctx), topic, &pubsub.Pack{Key: []byte(key), Msg: b})
	if err != nil {
		common.PromCounters[common.NotificationFailureTotal].WithLabelValues(topic).Inc()
		xcontext.Logger(ctx).Warnf("Cannot publish %s event: %v", topic, err)
	}
}
