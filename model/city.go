package model

type City struct {
	DTO
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}
