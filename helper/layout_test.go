package helper

import (
	"testing"

	"movie_booking/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLayoutTotals(t *testing.T) {
	cases := []struct {
		sizeClass string
		want      int
	}{
		{model.TheatreSmall, 48},
		{model.TheatreMedium, 80},
		{model.TheatreLarge, 120},
	}

	for _, tc := range cases {
		seats, err := GenerateLayout(tc.sizeClass)
		require.NoError(t, err)
		assert.Len(t, seats, tc.want, "size class %s", tc.sizeClass)
	}
}

func TestGenerateLayoutUniqueSeatNumbers(t *testing.T) {
	for _, sizeClass := range []string{model.TheatreSmall, model.TheatreMedium, model.TheatreLarge} {
		seats, err := GenerateLayout(sizeClass)
		require.NoError(t, err)

		seen := make(map[string]bool, len(seats))
		for _, s := range seats {
			assert.Falsef(t, seen[s.SeatNumber], "duplicate seat %s in %s", s.SeatNumber, sizeClass)
			seen[s.SeatNumber] = true
		}
	}
}

func TestGenerateLayoutBanding(t *testing.T) {
	// Medium class has 8 rows: A-B Silver, C-F Gold, G-H Platinum.
	seats, err := GenerateLayout(model.TheatreMedium)
	require.NoError(t, err)

	wantByRow := map[string]string{
		"A": model.CategorySilver, "B": model.CategorySilver,
		"C": model.CategoryGold, "D": model.CategoryGold,
		"E": model.CategoryGold, "F": model.CategoryGold,
		"G": model.CategoryPlatinum, "H": model.CategoryPlatinum,
	}
	for _, s := range seats {
		assert.Equalf(t, wantByRow[s.Row], s.Category, "row %s", s.Row)
		assert.Equal(t, CategoryPrices[s.Category], s.Price)
	}
}

func TestSeatCategoryRecomputesFromTotalRows(t *testing.T) {
	// Banding is derived from totalRows, not hard-coded per class.
	assert.Equal(t, model.CategorySilver, SeatCategory(0, 6))
	assert.Equal(t, model.CategorySilver, SeatCategory(1, 10))
	assert.Equal(t, model.CategoryGold, SeatCategory(2, 6))
	assert.Equal(t, model.CategoryGold, SeatCategory(7, 10))
	assert.Equal(t, model.CategoryPlatinum, SeatCategory(4, 6))
	assert.Equal(t, model.CategoryPlatinum, SeatCategory(9, 10))
}

func TestGenerateLayoutUnknownSizeClass(t *testing.T) {
	_, err := GenerateLayout("XL")
	assert.Error(t, err)
}

func TestGenerateLayoutPriceOrdering(t *testing.T) {
	assert.Less(t, CategoryPrices[model.CategorySilver], CategoryPrices[model.CategoryGold])
	assert.Less(t, CategoryPrices[model.CategoryGold], CategoryPrices[model.CategoryPlatinum])
}
