package authRoutes

import (
	authController "github.com/akshayrachakonda/course-enrollment/controllers/auth"
	authValidator "github.com/akshayrachakonda/course-enrollment/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", authValidator.Register(), authController.Register)
	authGroup.Post("/login", authValidator.Login(), authController.Login)
}
