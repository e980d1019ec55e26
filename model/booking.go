package model

const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"

	PaymentCompleted = "completed"
)

type Booking struct {
	DTO
	PublicCode    string        `gorm:"uniqueIndex;size:20" json:"publicCode"`
	UserId        uint          `gorm:"not null;index" json:"userId"`
	ShowId        uint          `gorm:"not null" json:"showId"`
	TotalPrice    float64       `json:"totalPrice"`
	PaymentStatus string        `gorm:"size:10;default:'completed'" json:"paymentStatus"`
	PaymentId     string        `gorm:"size:64" json:"paymentId"`
	OrderId       string        `gorm:"size:64" json:"orderId"`
	Status        string        `gorm:"size:10;default:'confirmed'" json:"status"`
	Seats         []BookingSeat `gorm:"foreignKey:BookingId" json:"seats"`
	User          User          `gorm:"foreignKey:UserId" json:"-"`
	Show          Show          `gorm:"foreignKey:ShowId" json:"-"`
}

type BookingSeat struct {
	DTO
	BookingId  uint    `gorm:"not null;index" json:"bookingId"`
	SeatNumber string  `gorm:"size:5;not null" json:"seatNumber"`
	Price      float64 `json:"price"`
}

type CreateOrderInput struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type BookingData struct {
	// UserId is accepted for contract compatibility but the committed
	// booking is always owned by the token user.
	UserId     uint     `json:"userId"`
	ShowId     uint     `json:"showId" validate:"required,gt=0"`
	Seats      []string `json:"seats" validate:"required,min=1,dive,required"`
	TotalPrice float64  `json:"totalPrice" validate:"required,gt=0"`
}

type VerifyPaymentInput struct {
	OrderId     string      `json:"orderId" validate:"required"`
	PaymentId   string      `json:"paymentId"`
	BookingData BookingData `json:"bookingData" validate:"required"`
}
