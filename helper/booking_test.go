package helper

import (
	"strings"
	"testing"

	"movie_booking/model"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderToken(t *testing.T) {
	token := GenerateOrderToken()
	assert.True(t, strings.HasPrefix(token, "order_"))
	assert.NotEqual(t, token, GenerateOrderToken())
}

func TestGenerateBookingCode(t *testing.T) {
	code := GenerateBookingCode()
	assert.True(t, strings.HasPrefix(code, "BK-"))
	assert.Len(t, code, 11)
}

func TestCalculateTotal(t *testing.T) {
	seats := []model.Seat{
		{SeatNumber: "A1", Price: 150},
		{SeatNumber: "A2", Price: 150},
	}
	assert.Equal(t, 300.0, CalculateTotal(seats))
	assert.Equal(t, 0.0, CalculateTotal(nil))
}
