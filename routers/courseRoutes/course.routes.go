package courseRoutes

import (
	controllers "github.com/akshayrachakonda/course-enrollment/controllers/course"
	"github.com/akshayrachakonda/course-enrollment/middleware"
	courseValidator "github.com/akshayrachakonda/course-enrollment/validators/course"
	userValidator "github.com/akshayrachakonda/course-enrollment/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all course routes. Listing and single-course
// lookup are public; everything else runs behind the JWT middleware.
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")

	courseGroup.Get("/", controllers.GetAllCourses)
	courseGroup.Post("/", middleware.JWTMiddleware, middleware.RequireInstructor, courseValidator.CreateCourse(), controllers.CreateCourse)

	// Registered before /:id so "instructor" is not read as a course id.
	courseGroup.Get("/instructor/:id", middleware.JWTMiddleware, middleware.RequireInstructor, userValidator.UserID(), controllers.GetInstructorCourses)

	courseGroup.Get("/:id", courseValidator.CourseID(), controllers.GetCourseDetails)
	courseGroup.Put("/:id", middleware.JWTMiddleware, middleware.RequireInstructor, courseValidator.CourseID(), courseValidator.UpdateCourse(), controllers.UpdateCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireInstructor, courseValidator.CourseID(), controllers.DeleteCourse)

	// Ownership-gated roster view (full enrollment history)
	courseGroup.Get("/:id/enrollments", middleware.JWTMiddleware, middleware.RequireInstructor, courseValidator.CourseID(), controllers.GetCourseEnrollments)
}
