package wheel

import (
	"errors"
	"math"

	"github.com/questx-lab/rewardengine/internal/entity"
	"golang.org/x/exp/slices"
)

var (
	ErrEmptyCatalog   = errors.New("no active prize")
	ErrNegativeWeight = errors.New("prize has a negative weight")
	ErrZeroWeight     = errors.New("all prize weights are zero and no consolation prize exists")
	ErrWeightOverflow = errors.New("total weight overflows")
	ErrOutOfRange     = errors.New("random value is out of range")
)

// Order returns a copy of prizes sorted by sort order, then by id. Selection
// only depends on this order, never on the order prizes were loaded.
func Order(prizes []entity.PrizeDefinition) []entity.PrizeDefinition {
	ordered := slices.Clone(prizes)
	slices.SortStableFunc(ordered, func(a, b entity.PrizeDefinition) bool {
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}

		return a.ID < b.ID
	})

	return ordered
}

// Total returns the sum of all weights.
func Total(prizes []entity.PrizeDefinition) (int64, error) {
	var total int64
	for _, p := range prizes {
		if p.Weight < 0 {
			return 0, ErrNegativeWeight
		}

		if p.Weight > math.MaxInt64-total {
			return 0, ErrWeightOverflow
		}

		total += p.Weight
	}

	return total, nil
}

// Select picks the prize whose cumulative weight range contains r, where r is
// in [0, total). When every weight is zero, the first "nothing" prize is
// returned and r is ignored.
func Select(prizes []entity.PrizeDefinition, r int64) (entity.PrizeDefinition, error) {
	if len(prizes) == 0 {
		return entity.PrizeDefinition{}, ErrEmptyCatalog
	}

	ordered := Order(prizes)
	total, err := Total(ordered)
	if err != nil {
		return entity.PrizeDefinition{}, err
	}

	if total == 0 {
		for _, p := range ordered {
			if p.Kind == entity.PrizeNothing {
				return p, nil
			}
		}

		return entity.PrizeDefinition{}, ErrZeroWeight
	}

	if r < 0 || r >= total {
		return entity.PrizeDefinition{}, ErrOutOfRange
	}

	var cumulative int64
	for _, p := range ordered {
		cumulative += p.Weight
		if r < cumulative {
			return p, nil
		}
	}

	// Unreachable while r < total.
	return entity.PrizeDefinition{}, ErrOutOfRange
}

// Spin draws r with randInt63n, which must return a uniform value in [0, n),
// then selects the winner.
func Spin(prizes []entity.PrizeDefinition, randInt63n func(n int64) int64) (entity.PrizeDefinition, error) {
	total, err := Total(prizes)
	if err != nil {
		return entity.PrizeDefinition{}, err
	}

	var r int64
	if total > 0 {
		r = randInt63n(total)
	}

	return Select(prizes, r)
}

// Probability returns the chance of winning p out of a catalog whose total
// weight is total.
func Probability(p entity.PrizeDefinition, total int64) float64 {
	if total <= 0 {
		return 0
	}

	return float64(p.Weight) / float64(total)
}
