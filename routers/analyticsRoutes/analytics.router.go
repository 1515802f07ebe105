package analyticsRoutes

import (
	analyticsController "github.com/akshayrachakonda/course-enrollment/controllers/analytics"
	"github.com/akshayrachakonda/course-enrollment/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAnalyticsRoutes(app *fiber.App) {
	analyticsGroup := app.Group("/analytics", middleware.JWTMiddleware, middleware.RequireInstructor)

	analyticsGroup.Get("/dashboard", analyticsController.GetDashboard)
}
