package userRoutes

import (
	controllers "github.com/akshayrachakonda/course-enrollment/controllers/course"
	userProfileController "github.com/akshayrachakonda/course-enrollment/controllers/userControllers"
	"github.com/akshayrachakonda/course-enrollment/middleware"
	userValidator "github.com/akshayrachakonda/course-enrollment/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/users", middleware.JWTMiddleware)

	userGroup.Get("/:id", userValidator.UserID(), userProfileController.GetUserProfile)
	userGroup.Put("/:id", userValidator.UserID(), userValidator.UpdateProfile(), userProfileController.UpdateUserProfile)

	// Instructor's own course list for the profile view
	userGroup.Get("/:id/courses", middleware.RequireInstructor, userValidator.UserID(), controllers.GetInstructorCourses)
}
