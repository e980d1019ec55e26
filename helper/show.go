package helper

import (
	"movie_booking/model"

	"gorm.io/gorm"
)

// CreateShowSeats generates the seat inventory for a show from its
// theatre's size class and inserts it in one batch. It must run inside the
// same transaction that creates the show: either all seats exist or none do.
func CreateShowSeats(tx *gorm.DB, showId uint, sizeClass string) error {
	layout, err := GenerateLayout(sizeClass)
	if err != nil {
		return err
	}

	seats := make([]model.Seat, 0, len(layout))
	for _, ls := range layout {
		seats = append(seats, model.Seat{
			ShowId:     showId,
			SeatNumber: ls.SeatNumber,
			Category:   ls.Category,
			Price:      ls.Price,
		})
	}

	return tx.Create(&seats).Error
}
