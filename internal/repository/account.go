package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/questx-lab/rewardengine/internal/entity"
	"github.com/questx-lab/rewardengine/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AccountRepository interface {
	Upsert(ctx context.Context, userID string) error
	GetByID(ctx context.Context, userID string) (*entity.Account, error)
	IncreaseBalance(ctx context.Context, userID string, currency entity.Currency, amount int64) error
	ClaimDaily(ctx context.Context, userID string, now time.Time, window time.Duration) error
	UseFreeSpin(ctx context.Context, userID string, now time.Time, window time.Duration) error
	Ban(ctx context.Context, userID, reason string) (bool, error)
	Unban(ctx context.Context, userID string) error
}

type accountRepository struct{}

func NewAccountRepository() *accountRepository {
	return &accountRepository{}
}

// Upsert creates the account if it does not exist. Concurrent calls for the
// same user are safe.
func (r *accountRepository) Upsert(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.Account{UserID: userID}).Error
}

func (r *accountRepository) GetByID(ctx context.Context, userID string) (*entity.Account, error) {
	var result entity.Account
	if err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// IncreaseBalance adds amount (possibly negative) to the balance of currency.
// It returns gorm.ErrRecordNotFound if the account is banned, does not exist or
// the balance would become negative.
func (r *accountRepository) IncreaseBalance(
	ctx context.Context, userID string, currency entity.Currency, amount int64,
) error {
	column := currency.Column()
	tx := xcontext.DB(ctx).
		Model(&entity.Account{}).
		Where("user_id=? AND banned=?", userID, false).
		Where(fmt.Sprintf("%s + ? >= 0", column), amount).
		Update(column, gorm.Expr(fmt.Sprintf("%s + ?", column), amount))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of rows effected is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// ClaimDaily sets the last daily claim time to now if the previous claim is at
// least window old. It returns gorm.ErrRecordNotFound if the account is not
// eligible or banned.
func (r *accountRepository) ClaimDaily(
	ctx context.Context, userID string, now time.Time, window time.Duration,
) error {
	return r.touchCooldown(ctx, userID, "last_daily_claim_at", now, window)
}

func (r *accountRepository) UseFreeSpin(
	ctx context.Context, userID string, now time.Time, window time.Duration,
) error {
	return r.touchCooldown(ctx, userID, "last_free_spin_at", now, window)
}

func (r *accountRepository) touchCooldown(
	ctx context.Context, userID, column string, now time.Time, window time.Duration,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Account{}).
		Where("user_id=? AND banned=?", userID, false).
		Where(fmt.Sprintf("(%s IS NULL OR %s <= ?)", column, column), now.Add(-window)).
		Update(column, now)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of rows effected is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Ban marks the account as banned. It returns false without error if the
// account was already banned.
func (r *accountRepository) Ban(ctx context.Context, userID, reason string) (bool, error) {
	if err := r.Upsert(ctx, userID); err != nil {
		return false, err
	}

	tx := xcontext.DB(ctx).
		Model(&entity.Account{}).
		Where("user_id=? AND banned=?", userID, false).
		Updates(map[string]any{"banned": true, "ban_reason": reason})

	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

func (r *accountRepository) Unban(ctx context.Context, userID string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Account{}).
		Where("user_id=?", userID).
		Updates(map[string]any{"banned": false, "ban_reason": ""})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
