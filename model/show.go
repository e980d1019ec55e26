package model

type Show struct {
	DTO
	MovieId   uint    `gorm:"not null;index" json:"movieId"`
	TheatreId uint    `gorm:"not null;index" json:"theatreId"`
	Date      string  `gorm:"size:10;not null;index" json:"date"` // YYYY-MM-DD
	Time      string  `gorm:"size:5;not null" json:"time"`        // HH:MM
	BasePrice float64 `json:"basePrice"`
	Movie     Movie   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;foreignKey:MovieId" json:"Movie"`
	Theatre   Theatre `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;foreignKey:TheatreId" json:"Theatre"`
}

type CreateShowInput struct {
	MovieId   uint    `json:"movieId" validate:"required,gt=0"`
	TheatreId uint    `json:"theatreId" validate:"required,gt=0"`
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string  `json:"time" validate:"required,datetime=15:04"`
	BasePrice float64 `json:"basePrice" validate:"required,gt=0"`
}

type FilterShowInput struct {
	MovieId uint   `query:"movieId"`
	Date    string `query:"date"`
	City    string `query:"city"`
}
