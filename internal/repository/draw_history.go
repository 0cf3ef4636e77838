package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/questx-lab/rewardengine/internal/entity"
	"github.com/questx-lab/rewardengine/pkg/xcontext"
	"gorm.io/gorm"
)

type DrawHistoryRepository interface {
	Create(ctx context.Context, record *entity.DrawHistory) error
	GetByID(ctx context.Context, id string) (*entity.DrawHistory, error)
	GetByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.DrawHistory, error)
	GetByClaimStatus(ctx context.Context, status entity.ClaimStatus, offset, limit int) ([]entity.DrawHistory, error)
	UpdateClaimStatus(ctx context.Context, id string, from, to entity.ClaimStatus, at time.Time) error

	CreateTransition(ctx context.Context, transition *entity.ClaimTransition) error
	GetTransitions(ctx context.Context, drawID string) ([]entity.ClaimTransition, error)
}

type drawHistoryRepository struct{}

func NewDrawHistoryRepository() *drawHistoryRepository {
	return &drawHistoryRepository{}
}

func (r *drawHistoryRepository) Create(ctx context.Context, record *entity.DrawHistory) error {
	return xcontext.DB(ctx).Create(record).Error
}

func (r *drawHistoryRepository) GetByID(ctx context.Context, id string) (*entity.DrawHistory, error) {
	var result entity.DrawHistory
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *drawHistoryRepository) GetByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.DrawHistory, error) {
	var result []entity.DrawHistory
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *drawHistoryRepository) GetByClaimStatus(
	ctx context.Context, status entity.ClaimStatus, offset, limit int,
) ([]entity.DrawHistory, error) {
	var result []entity.DrawHistory
	err := xcontext.DB(ctx).
		Where("claim_status=?", status).
		Order("created_at ASC, id ASC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateClaimStatus moves the claim from the status from to the status to. It
// returns gorm.ErrRecordNotFound if the current status is not from.
func (r *drawHistoryRepository) UpdateClaimStatus(
	ctx context.Context, id string, from, to entity.ClaimStatus, at time.Time,
) error {
	updateMap := map[string]any{"claim_status": string(to)}
	if to == entity.ClaimClaimed {
		updateMap["claimed_at"] = sql.NullTime{Time: at, Valid: true}
	}

	tx := xcontext.DB(ctx).
		Model(&entity.DrawHistory{}).
		Where("id=? AND claim_status=?", id, string(from)).
		Updates(updateMap)

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

func (r *drawHistoryRepository) CreateTransition(ctx context.Context, transition *entity.ClaimTransition) error {
	return xcontext.DB(ctx).Create(transition).Error
}

func (r *drawHistoryRepository) GetTransitions(ctx context.Context, drawID string) ([]entity.ClaimTransition, error) {
	var result []entity.ClaimTransition
	err := xcontext.DB(ctx).
		Where("draw_id=?", drawID).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
