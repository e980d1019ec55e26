package handler

import (
	"errors"
	"strings"

	"movie_booking/database"
	"movie_booking/helper"
	"movie_booking/model"
	"movie_booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetShows lists shows filtered by movie, date and city. City matches the
// theatre's city case-insensitively; results are sorted by start time.
func GetShows(c *fiber.Ctx) error {
	db := database.DB

	var filter model.FilterShowInput
	if err := c.QueryParser(&filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query", err)
	}

	query := db.Model(&model.Show{}).
		Preload("Movie").
		Preload("Theatre").
		Joins("JOIN theatres ON theatres.id = shows.theatre_id")

	if filter.MovieId > 0 {
		query = query.Where("shows.movie_id = ?", filter.MovieId)
	}
	if filter.Date != "" {
		query = query.Where("shows.date = ?", filter.Date)
	}
	if filter.City != "" {
		query = query.Where("LOWER(theatres.city) = LOWER(?)", strings.TrimSpace(filter.City))
	}

	var shows []model.Show
	if err := query.Order("shows.time asc").Find(&shows).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Error fetching shows", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, shows)
}

func GetShowById(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)

	var show model.Show
	if err := database.DB.Preload("Movie").Preload("Theatre").First(&show, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Show not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Error fetching show", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, show)
}

// CreateShow creates a show and its full seat inventory in one transaction,
// so a show never exists with a partial layout.
func CreateShow(c *fiber.Ctx) error {
	db := database.DB
	input := c.Locals("createShowInput").(model.CreateShowInput)

	var movie model.Movie
	if err := db.First(&movie, input.MovieId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Movie not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Error fetching movie", err)
	}

	var theatre model.Theatre
	if err := db.First(&theatre, input.TheatreId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Theatre not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Error fetching theatre", err)
	}

	show := model.Show{
		MovieId:   input.MovieId,
		TheatreId: input.TheatreId,
		Date:      input.Date,
		Time:      input.Time,
		BasePrice: input.BasePrice,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&show).Error; err != nil {
			return err
		}
		return helper.CreateShowSeats(tx, show.ID, theatre.SizeClass)
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cannot create show", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, show)
}

// DeleteShow removes a show and its seat inventory together. Seats go
// first so the show is never left referencing nothing.
func DeleteShow(c *fiber.Ctx) error {
	db := database.DB
	id := c.Locals("inputId").(int)

	var show model.Show
	if err := db.First(&show, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Show not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Error fetching show", err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("show_id = ?", show.ID).Delete(&model.Seat{}).Error; err != nil {
			return err
		}
		return tx.Delete(&show).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cannot delete show", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Show removed"})
}

// SeatView is the public seat snapshot. Owners of other seats are never
// exposed; a logged-in caller only learns which booked seats are their own.
type SeatView struct {
	ID         uint    `json:"id"`
	SeatNumber string  `json:"seatNumber"`
	Category   string  `json:"category"`
	Price      float64 `json:"price"`
	IsBooked   bool    `json:"isBooked"`
	IsMine     bool    `json:"isMine"`
}

// GetSeatsByShow returns the current inventory snapshot in generation
// order. Auth is optional: with a token, the caller's booked seats are
// flagged.
func GetSeatsByShow(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)
	userId := helper.GetUserIdFromToken(c)

	var show model.Show
	if err := database.DB.First(&show, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Show not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Error fetching show", err)
	}

	var seats []model.Seat
	if err := database.DB.
		Where("show_id = ?", show.ID).
		Order("id asc").
		Find(&seats).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Error fetching seats", err)
	}

	views := make([]SeatView, 0, len(seats))
	for _, s := range seats {
		views = append(views, SeatView{
			ID:         s.ID,
			SeatNumber: s.SeatNumber,
			Category:   s.Category,
			Price:      s.Price,
			IsBooked:   s.IsBooked,
			IsMine:     userId != 0 && s.UserId != nil && *s.UserId == userId,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, views)
}
