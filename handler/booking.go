package handler

import (
	"encoding/base64"
	"errors"
	"log"
	"time"

	"movie_booking/database"
	"movie_booking/helper"
	"movie_booking/model"
	"movie_booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingHandler owns the checkout and cancellation paths. It carries the
// seat hub so authoritative state changes reach every show room.
type BookingHandler struct {
	hub *SeatHub
}

func NewBookingHandler(hub *SeatHub) *BookingHandler {
	return &BookingHandler{hub: hub}
}

// CreateOrder is checkout initiate: it issues the opaque order token the
// payment-confirmed signal must carry later. Nothing is reserved here.
func (h *BookingHandler) CreateOrder(c *fiber.Ctx) error {
	input := c.Locals("createOrderInput").(model.CreateOrderInput)

	return c.JSON(fiber.Map{
		"id":       helper.GenerateOrderToken(),
		"amount":   input.Amount * 100,
		"currency": "INR",
	})
}

// markSeatsBooked flips the requested seats to booked in one conditional
// update keyed on their current unbooked state. If any seat in the set is
// already taken the update falls short, no row is left half-changed once
// the caller rolls back, and the seats that lost the race are returned.
// RETURNING tells us exactly which rows the update won, so the lost set is
// the requested seats minus those, regardless of who holds the rest.
func markSeatsBooked(tx *gorm.DB, showId uint, seatNumbers []string, userId uint) ([]string, error) {
	var updated []model.Seat
	res := tx.Model(&updated).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "seat_number"}}}).
		Where("show_id = ? AND seat_number IN ? AND is_booked = ?", showId, seatNumbers, false).
		Updates(map[string]any{"is_booked": true, "user_id": userId})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == int64(len(seatNumbers)) {
		return nil, nil
	}

	won := make(map[string]bool, len(updated))
	for _, s := range updated {
		won[s.SeatNumber] = true
	}
	var lost []string
	for _, sn := range seatNumbers {
		if !won[sn] {
			lost = append(lost, sn)
		}
	}
	return lost, nil
}

// releaseSeats returns a booking's seats to unbooked with the owner
// cleared, conditioned on the seats still being booked by that owner.
func releaseSeats(tx *gorm.DB, showId uint, seatNumbers []string, userId uint) error {
	return tx.Model(&model.Seat{}).
		Where("show_id = ? AND seat_number IN ? AND is_booked = ? AND user_id = ?",
			showId, seatNumbers, true, userId).
		Updates(map[string]any{"is_booked": false, "user_id": nil}).Error
}

// VerifyPayment is checkout commit: once the external payment-confirmed
// signal arrives it atomically verifies every requested seat is unbooked,
// marks the set booked and creates the confirmed booking. A lost race
// returns 409 with the unavailable seats and mutates nothing.
func (h *BookingHandler) VerifyPayment(c *fiber.Ctx) error {
	db := database.DB
	input := c.Locals("verifyPaymentInput").(model.VerifyPaymentInput)
	data := input.BookingData

	userId := helper.GetUserIdFromToken(c)
	if userId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}

	var show model.Show
	if err := db.First(&show, data.ShowId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Show not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Error fetching show", err)
	}

	paymentId := input.PaymentId
	if paymentId == "" {
		paymentId = helper.GeneratePaymentId()
	}

	var booking model.Booking
	var lost []string
	err := db.Transaction(func(tx *gorm.DB) error {
		var seats []model.Seat
		if err := tx.Where("show_id = ? AND seat_number IN ?", show.ID, data.Seats).
			Find(&seats).Error; err != nil {
			return err
		}
		if len(seats) != len(data.Seats) {
			return errUnknownSeats
		}
		if total := helper.CalculateTotal(seats); total != data.TotalPrice {
			return errTotalMismatch
		}

		var err error
		lost, err = markSeatsBooked(tx, show.ID, data.Seats, userId)
		if err != nil {
			return err
		}
		if len(lost) > 0 {
			return errSeatsUnavailable
		}

		bookingSeats := make([]model.BookingSeat, 0, len(seats))
		for _, s := range seats {
			bookingSeats = append(bookingSeats, model.BookingSeat{
				SeatNumber: s.SeatNumber,
				Price:      s.Price,
			})
		}
		booking = model.Booking{
			PublicCode:    helper.GenerateBookingCode(),
			UserId:        userId,
			ShowId:        show.ID,
			TotalPrice:    data.TotalPrice,
			PaymentStatus: model.PaymentCompleted,
			PaymentId:     paymentId,
			OrderId:       input.OrderId,
			Status:        model.BookingConfirmed,
			Seats:         bookingSeats,
		}
		return tx.Create(&booking).Error
	})

	switch {
	case errors.Is(err, errUnknownSeats):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "One or more seats do not exist for this show", err)
	case errors.Is(err, errTotalMismatch):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Total does not match seat prices", err)
	case errors.Is(err, errSeatsUnavailable):
		return utils.ConflictResponse(c, "Seat no longer available, please reselect", lost)
	case err != nil:
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Booking failed", err)
	}

	if h.hub != nil {
		h.hub.NotifyBooked(show.ID, data.Seats)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Booking successful",
		"booking": booking,
	})
}

var (
	errUnknownSeats     = errors.New("unknown seats in selection")
	errTotalMismatch    = errors.New("total price mismatch")
	errSeatsUnavailable = errors.New("seats unavailable")
)

// CancelBooking transitions a confirmed booking to cancelled and frees its
// seats as one unit. Only the owner may cancel; cancelling twice is
// rejected.
func (h *BookingHandler) CancelBooking(c *fiber.Ctx) error {
	db := database.DB
	id := c.Locals("inputId").(int)

	userId := helper.GetUserIdFromToken(c)
	if userId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}

	var booking model.Booking
	if err := db.Preload("Seats").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Booking not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Error fetching booking", err)
	}

	if booking.UserId != userId {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Not authorized", nil)
	}
	if booking.Status == model.BookingCancelled {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Booking already cancelled", nil)
	}

	seatNumbers := make([]string, 0, len(booking.Seats))
	for _, s := range booking.Seats {
		seatNumbers = append(seatNumbers, s.SeatNumber)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Booking{}).
			Where("id = ? AND status = ?", booking.ID, model.BookingConfirmed).
			Update("status", model.BookingCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAlreadyCancelled
		}
		return releaseSeats(tx, booking.ShowId, seatNumbers, booking.UserId)
	})
	if errors.Is(err, errAlreadyCancelled) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Booking already cancelled", nil)
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cannot cancel booking", err)
	}

	if h.hub != nil {
		h.hub.NotifyReleased(booking.ShowId, seatNumbers)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Booking cancelled successfully. Refund initiated.",
	})
}

var errAlreadyCancelled = errors.New("booking already cancelled")

type BookingResponse struct {
	ID         uint      `json:"id"`
	PublicCode string    `json:"publicCode"`
	Status     string    `json:"status"`
	TotalPrice float64   `json:"totalPrice"`
	PaymentId  string    `json:"paymentId"`
	OrderId    string    `json:"orderId"`
	CreatedAt  time.Time `json:"createdAt"`
	MovieTitle string    `json:"movieTitle"`
	Theatre    string    `json:"theatre"`
	City       string    `json:"city"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Seats      []string  `json:"seats"`
	QrCode     string    `json:"qrCode,omitempty"`
}

func buildBookingResponse(booking model.Booking, withQr bool) BookingResponse {
	var resp BookingResponse
	copier.Copy(&resp, &booking)

	resp.MovieTitle = booking.Show.Movie.Title
	resp.Theatre = booking.Show.Theatre.Name
	resp.City = booking.Show.Theatre.City
	resp.Date = booking.Show.Date
	resp.Time = booking.Show.Time

	resp.Seats = make([]string, 0, len(booking.Seats))
	for _, s := range booking.Seats {
		resp.Seats = append(resp.Seats, s.SeatNumber)
	}

	if withQr {
		qrBytes, err := utils.GenerateQRCode(booking.PublicCode, 400)
		if err != nil {
			log.Printf("QR generation failed for booking %s: %v", booking.PublicCode, err)
		} else {
			resp.QrCode = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
		}
	}

	return resp
}

// GetMyBookings lists the caller's bookings newest first, confirmed and
// cancelled alike. Bookings whose show, movie or theatre no longer exists
// are excluded rather than returned half-populated.
func (h *BookingHandler) GetMyBookings(c *fiber.Ctx) error {
	db := database.DB

	userId := helper.GetUserIdFromToken(c)
	if userId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}

	var pagination model.Pagination
	if err := c.QueryParser(&pagination); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query", err)
	}

	query := db.
		Preload("Seats").
		Preload("Show").
		Preload("Show.Movie").
		Preload("Show.Theatre").
		Where("user_id = ?", userId).
		Order("created_at desc")
	query = utils.ApplyPagination(query, pagination.Limit, pagination.Page)

	var bookings []model.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Error fetching bookings", err)
	}

	response := make([]BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		if booking.Show.ID == 0 || booking.Show.Movie.ID == 0 || booking.Show.Theatre.ID == 0 {
			continue
		}
		response = append(response, buildBookingResponse(booking, true))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// GetBookingById returns one booking, owner-only.
func (h *BookingHandler) GetBookingById(c *fiber.Ctx) error {
	db := database.DB
	id := c.Locals("inputId").(int)

	userId := helper.GetUserIdFromToken(c)
	if userId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}

	var booking model.Booking
	if err := db.
		Preload("Seats").
		Preload("Show").
		Preload("Show.Movie").
		Preload("Show.Theatre").
		First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Booking not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Error fetching booking", err)
	}

	if booking.UserId != userId {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Not authorized to view this booking", nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, buildBookingResponse(booking, true))
}
