package courseValidator

import (
	"strconv"
	"strings"

	"github.com/akshayrachakonda/course-enrollment/middleware"

	"github.com/gofiber/fiber/v2"
)

func EnrollCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("courseId"))
		if courseIDStr == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Course ID is required")
		}

		// Validate CourseID is a valid integer
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid Course ID")
		}

		c.Locals("courseID", uint(courseID))
		return c.Next()
	}
}

// DropEnrollment validates the :id parameter of a drop request. The id
// is an enrollment id, or a course id as a fallback resolved by the
// state machine.
func DropEnrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid enrollment ID")
		}

		c.Locals("enrollmentID", uint(id))
		return c.Next()
	}
}
