package wheel

import (
	"testing"

	"github.com/questx-lab/rewardengine/internal/entity"
	"github.com/stretchr/testify/require"
)

func prize(id string, kind entity.PrizeKind, weight int64, sortOrder int) entity.PrizeDefinition {
	return entity.PrizeDefinition{
		Base:      entity.Base{ID: id},
		Name:      id,
		Kind:      kind,
		Weight:    weight,
		Active:    true,
		SortOrder: sortOrder,
	}
}

func sampleCatalog() []entity.PrizeDefinition {
	// Intentionally not in display order.
	return []entity.PrizeDefinition{
		prize("coins-100", entity.PrizeCoins, 45, 3),
		prize("nothing", entity.PrizeNothing, 30, 1),
		prize("coins-10", entity.PrizeCoins, 25, 2),
	}
}

func TestSelect(t *testing.T) {
	testCases := []struct {
		name string
		r    int64
		want string
	}{
		{name: "lower bound", r: 0, want: "nothing"},
		{name: "last of first range", r: 29, want: "nothing"},
		{name: "first of second range", r: 30, want: "coins-10"},
		{name: "middle", r: 40, want: "coins-10"},
		{name: "first of third range", r: 55, want: "coins-100"},
		{name: "upper bound", r: 99, want: "coins-100"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select(sampleCatalog(), tt.r)
			require.NoError(t, err)
			require.Equal(t, tt.want, got.ID)
		})
	}
}

func TestSelect_OutOfRange(t *testing.T) {
	_, err := Select(sampleCatalog(), 100)
	require.ErrorIs(t, err, ErrOutOfRange)

	_, err = Select(sampleCatalog(), -1)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestSelect_TieBreakByID(t *testing.T) {
	prizes := []entity.PrizeDefinition{
		prize("b", entity.PrizeCoins, 1, 0),
		prize("a", entity.PrizeCoins, 1, 0),
	}

	got, err := Select(prizes, 0)
	require.NoError(t, err)
	require.Equal(t, "a", got.ID)
}

func TestSelect_SkipsZeroWeight(t *testing.T) {
	prizes := []entity.PrizeDefinition{
		prize("zero", entity.PrizeCoins, 0, 0),
		prize("one", entity.PrizeCoins, 1, 1),
	}

	got, err := Select(prizes, 0)
	require.NoError(t, err)
	require.Equal(t, "one", got.ID)
}

func TestSelect_AllZeroWeight(t *testing.T) {
	prizes := []entity.PrizeDefinition{
		prize("coins", entity.PrizeCoins, 0, 0),
		prize("nothing", entity.PrizeNothing, 0, 1),
	}

	got, err := Select(prizes, 0)
	require.NoError(t, err)
	require.Equal(t, "nothing", got.ID)

	_, err = Select(prizes[:1], 0)
	require.ErrorIs(t, err, ErrZeroWeight)
}

func TestSelect_NegativeWeight(t *testing.T) {
	prizes := append(sampleCatalog(), prize("bad", entity.PrizeCoins, -1, 4))

	_, err := Select(prizes, 0)
	require.ErrorIs(t, err, ErrNegativeWeight)
}

func TestSelect_Empty(t *testing.T) {
	_, err := Select(nil, 0)
	require.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestSpin(t *testing.T) {
	var gotN int64
	got, err := Spin(sampleCatalog(), func(n int64) int64 {
		gotN = n
		return 40
	})
	require.NoError(t, err)
	require.Equal(t, int64(100), gotN)
	require.Equal(t, "coins-10", got.ID)
}

func TestProbability(t *testing.T) {
	catalog := Order(sampleCatalog())
	total, err := Total(catalog)
	require.NoError(t, err)
	require.Equal(t, int64(100), total)
	require.InDelta(t, 0.3, Probability(catalog[0], total), 1e-9)
	require.Equal(t, float64(0), Probability(catalog[0], 0))
}
