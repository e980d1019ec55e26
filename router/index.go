package router

import (
	"movie_booking/handler"
	"movie_booking/middleware"
	"movie_booking/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App, hub *handler.SeatHub) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	bookings := handler.NewBookingHandler(hub)

	show := v1.Group("/shows")
	show.Get("/", handler.GetShows)
	show.Post("/", middleware.Protected(), validate.CreateShow(), handler.CreateShow)
	show.Get("/:showId/seats/live", websocket.New(hub.HandleConn))
	show.Get("/:showId/seats", middleware.OptionalJWT(), validate.GetById("showId"), handler.GetSeatsByShow)
	show.Get("/:showId", validate.GetById("showId"), handler.GetShowById)
	show.Delete("/:showId", middleware.Protected(), validate.GetById("showId"), handler.DeleteShow)

	booking := v1.Group("/bookings")
	booking.Post("/order", middleware.Protected(), validate.CreateOrder(), bookings.CreateOrder)
	booking.Post("/verify", middleware.Protected(), validate.VerifyPayment(), bookings.VerifyPayment)
	booking.Get("/my", middleware.Protected(), bookings.GetMyBookings)
	booking.Post("/:bookingId/cancel", middleware.Protected(), validate.GetById("bookingId"), bookings.CancelBooking)
	booking.Get("/:bookingId", middleware.Protected(), validate.GetById("bookingId"), bookings.GetBookingById)
}
