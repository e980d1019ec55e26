package model

// Theatre size classes determine the generated seat layout.
const (
	TheatreSmall  = "Small"
	TheatreMedium = "Medium"
	TheatreLarge  = "Large"
)

type Theatre struct {
	DTO
	Name      string `gorm:"not null" validate:"required" json:"name"`
	City      string `gorm:"not null;index" validate:"required" json:"city"`
	Location  string `json:"location"`
	SizeClass string `gorm:"size:10;not null" validate:"required,oneof=Small Medium Large" json:"sizeClass"`
}
