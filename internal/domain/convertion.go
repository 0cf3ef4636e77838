package domain

import (
	"database/sql"
	"time"

	"github.com/questx-lab/rewardengine/internal/domain/wheel"
	"github.com/questx-lab/rewardengine/internal/entity"
	"github.com/questx-lab/rewardengine/internal/model"
)

const defaultTimeLayout string = time.RFC3339Nano

func formatNullTime(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}

	return t.Time.UTC().Format(defaultTimeLayout)
}

func convertAccount(account *entity.Account) model.Account {
	if account == nil {
		return model.Account{}
	}

	return model.Account{
		UserID:           account.UserID,
		CoinBalance:      account.CoinBalance,
		TicketCount:      account.TicketCount,
		LastDailyClaimAt: formatNullTime(account.LastDailyClaimAt),
		LastFreeSpinAt:   formatNullTime(account.LastFreeSpinAt),
		Banned:           account.Banned,
		BanReason:        account.BanReason,
		CreatedAt:        account.CreatedAt.UTC().Format(defaultTimeLayout),
	}
}

func convertLedgerEntry(entry *entity.LedgerEntry) model.LedgerEntry {
	if entry == nil {
		return model.LedgerEntry{}
	}

	return model.LedgerEntry{
		ID:           entry.ID,
		UserID:       entry.UserID,
		Currency:     string(entry.Currency),
		Amount:       entry.Amount,
		Kind:         string(entry.Kind),
		Description:  entry.Description,
		BalanceAfter: entry.BalanceAfter,
		CreatedAt:    entry.CreatedAt.UTC().Format(defaultTimeLayout),
	}
}

// convertPrize computes the probability against total, the weight sum of the
// active catalog.
func convertPrize(prize *entity.PrizeDefinition, total int64) model.Prize {
	if prize == nil {
		return model.Prize{}
	}

	probability := float64(0)
	if prize.Active {
		probability = wheel.Probability(*prize, total)
	}

	return model.Prize{
		ID:          prize.ID,
		Name:        prize.Name,
		Kind:        string(prize.Kind),
		Value:       prize.Value,
		Weight:      prize.Weight,
		Active:      prize.Active,
		SortOrder:   prize.SortOrder,
		Probability: probability,
	}
}

func convertDrawHistory(draw *entity.DrawHistory, prizeName string) model.DrawHistory {
	if draw == nil {
		return model.DrawHistory{}
	}

	return model.DrawHistory{
		ID:          draw.ID,
		UserID:      draw.UserID,
		PrizeID:     draw.PrizeID,
		PrizeName:   prizeName,
		PayoutKind:  string(draw.PayoutKind),
		PayoutValue: draw.PayoutValue,
		SpinSource:  string(draw.SpinSource),
		ClaimStatus: draw.ClaimStatus.String,
		ClaimedAt:   formatNullTime(draw.ClaimedAt),
		CreatedAt:   draw.CreatedAt.UTC().Format(defaultTimeLayout),
	}
}
