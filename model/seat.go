package model

// Seat price categories, banded by row position at layout generation time.
const (
	CategorySilver   = "Silver"
	CategoryGold     = "Gold"
	CategoryPlatinum = "Platinum"
)

// Seat is one inventory row of a show. The (show, seat number) pair is
// unique at the storage layer; the booked flag and owner are mutated only
// by the booking commit and cancel paths.
type Seat struct {
	DTO
	ShowId     uint    `gorm:"not null;uniqueIndex:idx_show_seat" json:"showId"`
	SeatNumber string  `gorm:"size:5;not null;uniqueIndex:idx_show_seat" json:"seatNumber"`
	Category   string  `gorm:"size:10;not null" json:"category"`
	Price      float64 `gorm:"not null" json:"price"`
	IsBooked   bool    `gorm:"not null;default:false" json:"isBooked"`
	UserId     *uint   `json:"userId"`
	Show       Show    `gorm:"constraint:OnDelete:CASCADE;foreignKey:ShowId" json:"-"`
}
