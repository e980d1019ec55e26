package model

type Movie struct {
	DTO
	Title       string `gorm:"not null" validate:"required" json:"title"`
	Slug        string `gorm:"uniqueIndex;size:120" json:"slug"`
	Description string `json:"description"`
	Genre       string `gorm:"size:50" json:"genre"`
	Duration    int    `json:"duration"` // minutes
	PosterUrl   string `json:"posterUrl"`
	Language    string `gorm:"size:20" json:"language"`
}
