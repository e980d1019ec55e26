package main

import (
	"log"

	"movie_booking/config"
	"movie_booking/database"
	"movie_booking/handler"
	"movie_booking/helper"
	"movie_booking/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
)

func main() {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.ConfigOr("CORS_ORIGIN", "http://localhost:5173"),
		AllowMethods: "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Authorization, Accept",
		MaxAge:       600,
	}))

	database.ConnectDB()

	redisClient := redis.NewClient(&redis.Options{
		Addr: config.ConfigOr("REDIS_ADDR", "localhost:6379"),
	})

	hub := handler.NewSeatHub(redisClient)
	go hub.Run()
	defer hub.Stop()

	handler.StartHoldSweeper(hub)
	defer handler.StopHoldSweeper()
	helper.StartShowCleanupScheduler(database.DB)
	defer helper.StopShowCleanupScheduler()

	router.SetupRoutes(app, hub)

	log.Fatal(app.Listen(":" + config.ConfigOr("PORT", "8000")))
}
