package enrollmentRoutes

import (
	controllers "github.com/akshayrachakonda/course-enrollment/controllers/course"
	"github.com/akshayrachakonda/course-enrollment/middleware"
	courseValidator "github.com/akshayrachakonda/course-enrollment/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupEnrollmentRoutes(app *fiber.App) {
	enrollGroup := app.Group("/enrollments", middleware.JWTMiddleware, middleware.RequireStudent)

	// Registered before /:id so "my-enrollments" is not read as an id.
	enrollGroup.Get("/my-enrollments", controllers.MyEnrollments)

	enrollGroup.Post("/:courseId", courseValidator.EnrollCourse(), controllers.EnrollInCourse)
	enrollGroup.Delete("/:id", courseValidator.DropEnrollment(), controllers.DropEnrollment)
}
