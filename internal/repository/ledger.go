package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/questx-lab/rewardengine/internal/entity"
	"github.com/questx-lab/rewardengine/pkg/xcontext"
)

type LedgerRepository interface {
	Create(ctx context.Context, entry *entity.LedgerEntry) error
	GetByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.LedgerEntry, error)
	Sum(ctx context.Context, userID string, currency entity.Currency) (int64, error)
}

type ledgerRepository struct {
	node *snowflake.Node
}

func NewLedgerRepository(node *snowflake.Node) *ledgerRepository {
	return &ledgerRepository{node: node}
}

// Create appends the entry. The id is generated if it is not set.
func (r *ledgerRepository) Create(ctx context.Context, entry *entity.LedgerEntry) error {
	if entry.ID == 0 {
		entry.ID = r.node.Generate().Int64()
	}

	return xcontext.DB(ctx).Create(entry).Error
}

func (r *ledgerRepository) GetByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.LedgerEntry, error) {
	var result []entity.LedgerEntry
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ledgerRepository) Sum(ctx context.Context, userID string, currency entity.Currency) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.LedgerEntry{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id=? AND currency=?", userID, currency).
		Scan(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}
