package repository

import (
	"context"

	"github.com/questx-lab/rewardengine/internal/entity"
	"github.com/questx-lab/rewardengine/pkg/xcontext"
	"gorm.io/gorm"
)

type PrizeRepository interface {
	Create(ctx context.Context, prize *entity.PrizeDefinition) error
	GetByID(ctx context.Context, id string) (*entity.PrizeDefinition, error)
	GetActive(ctx context.Context) ([]entity.PrizeDefinition, error)
	GetList(ctx context.Context) ([]entity.PrizeDefinition, error)
	UpdateByID(ctx context.Context, id string, data map[string]any) error
}

type prizeRepository struct{}

func NewPrizeRepository() *prizeRepository {
	return &prizeRepository{}
}

func (r *prizeRepository) Create(ctx context.Context, prize *entity.PrizeDefinition) error {
	return xcontext.DB(ctx).Create(prize).Error
}

func (r *prizeRepository) GetByID(ctx context.Context, id string) (*entity.PrizeDefinition, error) {
	var result entity.PrizeDefinition
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *prizeRepository) GetActive(ctx context.Context) ([]entity.PrizeDefinition, error) {
	var result []entity.PrizeDefinition
	err := xcontext.DB(ctx).
		Where("active=?", true).
		Order("sort_order ASC, id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *prizeRepository) GetList(ctx context.Context) ([]entity.PrizeDefinition, error) {
	var result []entity.PrizeDefinition
	if err := xcontext.DB(ctx).Order("sort_order ASC, id ASC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *prizeRepository) UpdateByID(ctx context.Context, id string, data map[string]any) error {
	tx := xcontext.DB(ctx).
		Model(&entity.PrizeDefinition{}).
		Where("id=?", id).
		Updates(data)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
