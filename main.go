package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"registra/config"
	"registra/database"
	"registra/registry"
	authRoutes "registra/routers/authRoutes"
	courseRoutes "registra/routers/courseRoutes"
	studentRoutes "registra/routers/studentRoutes"
	"registra/utils"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	registry.Init(database.Database.Db)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	studentRoutes.SetupStudentRoutes(app)

	// Background seat-counter audit
	utils.StartReconcileScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
