package controllers

import (
	"errors"
	"log"

	"github.com/akshayrachakonda/course-enrollment/database"
	"github.com/akshayrachakonda/course-enrollment/middleware"
	"github.com/akshayrachakonda/course-enrollment/services/authz"
	"github.com/akshayrachakonda/course-enrollment/services/enrollment"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse enrolls the requesting student in a course.
func EnrollInCourse(c *fiber.Ctx) error {
	p := principal(c)

	if decision := authz.Authorize(p, authz.ActionEnroll, p.UserID); !decision.Allowed {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, decision.Reason)
	}

	courseID := c.Locals("courseID").(uint)

	record, err := enrollment.Enroll(c.UserContext(), database.Database.Db, p.UserID, courseID)
	if err != nil {
		switch {
		case errors.Is(err, enrollment.ErrCourseNotFound):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found")
		case errors.Is(err, enrollment.ErrAlreadyEnrolled):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Already enrolled in this course")
		default:
			log.Printf("Error enrolling in course: %v", err)
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Server error")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// DropEnrollment drops one of the requesting student's active
// enrollments.
func DropEnrollment(c *fiber.Ctx) error {
	p := principal(c)

	if decision := authz.Authorize(p, authz.ActionDrop, p.UserID); !decision.Allowed {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, decision.Reason)
	}

	enrollmentID := c.Locals("enrollmentID").(uint)

	if err := enrollment.Drop(c.UserContext(), database.Database.Db, enrollmentID, p.UserID); err != nil {
		switch {
		case errors.Is(err, enrollment.ErrEnrollmentNotFound):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Enrollment not found")
		case errors.Is(err, enrollment.ErrNotOwner):
			return middleware.ErrorResponse(c, fiber.StatusForbidden, "Not authorized to drop this course")
		case errors.Is(err, enrollment.ErrNotActive):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Enrollment is no longer active")
		default:
			log.Printf("Error dropping course: %v", err)
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Server error")
		}
	}

	return c.JSON(fiber.Map{"message": "Successfully dropped the course"})
}

// MyEnrollments lists the requesting student's active enrollments with
// course and instructor populated.
func MyEnrollments(c *fiber.Ctx) error {
	p := principal(c)

	if decision := authz.Authorize(p, authz.ActionViewOwnEnrollments, p.UserID); !decision.Allowed {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, decision.Reason)
	}

	records, err := enrollment.ListActiveForStudent(c.UserContext(), database.Database.Db, p.UserID)
	if err != nil {
		log.Printf("Error fetching enrollments: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Server error")
	}

	return c.JSON(records)
}
