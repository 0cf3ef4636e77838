package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/fatih/structs"
	"github.com/google/uuid"
	"github.com/questx-lab/rewardengine/internal/domain/wheel"
	"github.com/questx-lab/rewardengine/internal/entity"
	"github.com/questx-lab/rewardengine/internal/model"
	"github.com/questx-lab/rewardengine/internal/repository"
	"github.com/questx-lab/rewardengine/pkg/enum"
	"github.com/questx-lab/rewardengine/pkg/errorx"
	"github.com/questx-lab/rewardengine/pkg/xcontext"
	"gorm.io/gorm"
)

type PrizeDomain interface {
	CreatePrize(context.Context, *model.CreatePrizeRequest) (*model.CreatePrizeResponse, error)
	UpdatePrize(context.Context, *model.UpdatePrizeRequest) (*model.UpdatePrizeResponse, error)
	DeletePrize(context.Context, *model.DeletePrizeRequest) (*model.DeletePrizeResponse, error)
	GetPrizes(context.Context, *model.GetPrizesRequest) (*model.GetPrizesResponse, error)
}

type prizeDomain struct {
	prizeRepo repository.PrizeRepository
}

func NewPrizeDomain(prizeRepo repository.PrizeRepository) *prizeDomain {
	return &prizeDomain{prizeRepo: prizeRepo}
}

func (d *prizeDomain) CreatePrize(
	ctx context.Context, req *model.CreatePrizeRequest,
) (*model.CreatePrizeResponse, error) {
	kind, err := validatePrize(req.Name, req.Kind, req.Value, req.Weight)
	if err != nil {
		return nil, err
	}

	prize := &entity.PrizeDefinition{
		Base:      entity.Base{ID: uuid.NewString()},
		Name:      strings.TrimSpace(req.Name),
		Kind:      kind,
		Value:     req.Value,
		Weight:    req.Weight,
		Active:    true,
		SortOrder: req.SortOrder,
	}

	if err := d.prizeRepo.Create(ctx, prize); err != nil {
		return nil, internalError(ctx, err, "Cannot create prize")
	}

	xcontext.Logger(ctx).Infof("Created prize %s (%s) with weight %d", prize.ID, prize.Name, prize.Weight)
	return &model.CreatePrizeResponse{ID: prize.ID}, nil
}

// prizeUpdate lists the columns an admin may change, zero values included.
type prizeUpdate struct {
	Name      string           `structs:"name"`
	Kind      entity.PrizeKind `structs:"kind"`
	Value     int64            `structs:"value"`
	Weight    int64            `structs:"weight"`
	Active    bool             `structs:"active"`
	SortOrder int              `structs:"sort_order"`
}

func (d *prizeDomain) UpdatePrize(
	ctx context.Context, req *model.UpdatePrizeRequest,
) (*model.UpdatePrizeResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Require prize id")
	}

	kind, err := validatePrize(req.Name, req.Kind, req.Value, req.Weight)
	if err != nil {
		return nil, err
	}

	err = d.prizeRepo.UpdateByID(ctx, req.ID, structs.Map(prizeUpdate{
		Name:      strings.TrimSpace(req.Name),
		Kind:      kind,
		Value:     req.Value,
		Weight:    req.Weight,
		Active:    req.Active,
		SortOrder: req.SortOrder,
	}))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found prize")
		}

		return nil, internalError(ctx, err, "Cannot update prize")
	}

	return &model.UpdatePrizeResponse{}, nil
}

// DeletePrize deactivates the prize. Prizes are never removed because draw
// histories refer to them.
func (d *prizeDomain) DeletePrize(
	ctx context.Context, req *model.DeletePrizeRequest,
) (*model.DeletePrizeResponse, error) {
	err := d.prizeRepo.UpdateByID(ctx, req.ID, map[string]any{"active": false})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found prize")
		}

		return nil, internalError(ctx, err, "Cannot deactivate prize")
	}

	return &model.DeletePrizeResponse{}, nil
}

func (d *prizeDomain) GetPrizes(
	ctx context.Context, req *model.GetPrizesRequest,
) (*model.GetPrizesResponse, error) {
	ctx, cancel := xcontext.WithQueryDeadline(ctx)
	defer cancel()

	prizes, err := d.prizeRepo.GetList(ctx)
	if err != nil {
		return nil, internalError(ctx, err, "Cannot get prizes")
	}

	active := []entity.PrizeDefinition{}
	for _, p := range prizes {
		if p.Active {
			active = append(active, p)
		}
	}

	total, err := wheel.Total(active)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Invalid prize catalog: %v", err)
		total = 0
	}

	clientPrizes := []model.Prize{}
	for i := range prizes {
		clientPrizes = append(clientPrizes, convertPrize(&prizes[i], total))
	}

	return &model.GetPrizesResponse{Prizes: clientPrizes}, nil
}

func validatePrize(name, kindStr string, value, weight int64) (entity.PrizeKind, error) {
	if strings.TrimSpace(name) == "" {
		return "", errorx.New(errorx.BadRequest, "Require prize name")
	}

	kind, err := enum.ToEnum[entity.PrizeKind](kindStr)
	if err != nil {
		return "", errorx.New(errorx.BadRequest, "Invalid prize kind %s", kindStr)
	}

	if weight < 0 {
		return "", errorx.New(errorx.BadRequest, "Weight must not be negative")
	}

	switch kind {
	case entity.PrizeCoins, entity.PrizeTicket:
		if value <= 0 {
			return "", errorx.New(errorx.BadRequest, "Value of %s prize must be positive", kind)
		}
	case entity.PrizeNothing:
		if value != 0 {
			return "", errorx.New(errorx.BadRequest, "Value of nothing prize must be zero")
		}
	case entity.PrizePhysical:
		if value < 0 {
			return "", errorx.New(errorx.BadRequest, "Value must not be negative")
		}
	}

	return kind, nil
}
