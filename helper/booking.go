package helper

import (
	"fmt"
	"strings"

	"movie_booking/model"

	"github.com/google/uuid"
)

// GenerateOrderToken issues the opaque token returned by checkout initiate.
func GenerateOrderToken() string {
	return fmt.Sprintf("order_%s", uuid.New().String())
}

// GeneratePaymentId stands in for a gateway payment reference when the
// simulated payment step did not supply one.
func GeneratePaymentId() string {
	return fmt.Sprintf("pay_%s", uuid.New().String())
}

// GenerateBookingCode returns a short public code for a booking, e.g. BK-1A2B3C4D.
func GenerateBookingCode() string {
	short := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("BK-%s", short)
}

// CalculateTotal sums seat prices for a commit. The client-sent total is
// checked against this, never trusted.
func CalculateTotal(seats []model.Seat) float64 {
	var total float64
	for _, s := range seats {
		total += s.Price
	}
	return total
}
