package main

import (
	"log"

	"github.com/akshayrachakonda/course-enrollment/config"
	"github.com/akshayrachakonda/course-enrollment/database"
	analyticsRoutes "github.com/akshayrachakonda/course-enrollment/routers/analyticsRoutes"
	authRoutes "github.com/akshayrachakonda/course-enrollment/routers/authRoutes"
	courseRoutes "github.com/akshayrachakonda/course-enrollment/routers/courseRoutes"
	enrollmentRoutes "github.com/akshayrachakonda/course-enrollment/routers/enrollmentRoutes"
	userRoutes "github.com/akshayrachakonda/course-enrollment/routers/userRoutes"
	"github.com/akshayrachakonda/course-enrollment/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

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
	enrollmentRoutes.SetupEnrollmentRoutes(app)
	analyticsRoutes.SetupAnalyticsRoutes(app)
	userRoutes.SetupUserRoutes(app)

	utils.InitializeRosterReconciler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
