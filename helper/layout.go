package helper

import (
	"fmt"

	"movie_booking/model"
)

// CategoryPrices is the fixed tier price table. Prices are stamped onto
// seats at generation time so historical inventory keeps its original
// price if the table ever changes.
var CategoryPrices = map[string]float64{
	model.CategorySilver:   150,
	model.CategoryGold:     200,
	model.CategoryPlatinum: 250,
}

var layoutDims = map[string]struct{ Rows, Cols int }{
	model.TheatreSmall:  {6, 8},
	model.TheatreMedium: {8, 10},
	model.TheatreLarge:  {10, 12},
}

type LayoutSeat struct {
	SeatNumber string
	Row        string
	Column     int
	Category   string
	Price      float64
}

// SeatCategory bands rows into tiers: the first two rows are Silver, the
// last two Platinum, everything between Gold. Derived from totalRows so it
// holds for any size class.
func SeatCategory(rowIndex, totalRows int) string {
	if rowIndex < 2 {
		return model.CategorySilver
	}
	if rowIndex >= totalRows-2 {
		return model.CategoryPlatinum
	}
	return model.CategoryGold
}

// GenerateLayout produces the deterministic seat layout for a theatre size
// class. Seat numbers are rowLabel+column ("C7") and unique by construction.
func GenerateLayout(sizeClass string) ([]LayoutSeat, error) {
	dims, ok := layoutDims[sizeClass]
	if !ok {
		return nil, fmt.Errorf("unknown theatre size class: %s", sizeClass)
	}

	seats := make([]LayoutSeat, 0, dims.Rows*dims.Cols)
	for r := 0; r < dims.Rows; r++ {
		rowLabel := string(rune('A' + r))
		category := SeatCategory(r, dims.Rows)
		for col := 1; col <= dims.Cols; col++ {
			seats = append(seats, LayoutSeat{
				SeatNumber: fmt.Sprintf("%s%d", rowLabel, col),
				Row:        rowLabel,
				Column:     col,
				Category:   category,
				Price:      CategoryPrices[category],
			})
		}
	}
	return seats, nil
}
