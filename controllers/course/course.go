package controllers

import (
	"errors"
	"log"

	"github.com/akshayrachakonda/course-enrollment/database"
	"github.com/akshayrachakonda/course-enrollment/middleware"
	"github.com/akshayrachakonda/course-enrollment/models"
	"github.com/akshayrachakonda/course-enrollment/services/authz"
	"github.com/akshayrachakonda/course-enrollment/services/enrollment"
	courseValidator "github.com/akshayrachakonda/course-enrollment/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// principal builds the authz principal from the verified token locals.
// Zero value means unauthenticated.
func principal(c *fiber.Ctx) authz.Principal {
	p := authz.Principal{}
	if id, ok := c.Locals("userId").(uint); ok {
		p.UserID = id
	}
	if role, ok := c.Locals("role").(string); ok {
		p.Role = role
	}
	return p
}

// populateCourse fills the derived projections: instructor summary and
// the current roster.
func populateCourse(c *fiber.Ctx, db *gorm.DB, course *models.Course) error {
	var instructor models.User
	if err := db.First(&instructor, course.InstructorID).Error; err == nil {
		summary := instructor.Summary()
		course.InstructorInfo = &summary
	}

	members, err := enrollment.RosterMembers(c.UserContext(), db, course.ID)
	if err != nil {
		return err
	}
	if members == nil {
		members = []uint{}
	}
	course.EnrolledStudents = members
	return nil
}

// GetAllCourses lists every course with instructor name/email populated.
// Public, no credential required.
func GetAllCourses(c *fiber.Ctx) error {
	db := database.Database.Db

	courses := make([]models.Course, 0)
	if err := db.Order("created_at desc").Find(&courses).Error; err != nil {
		log.Printf("Error fetching courses: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Server error")
	}

	for i := range courses {
		if err := populateCourse(c, db, &courses[i]); err != nil {
			log.Printf("Error populating course %d: %v", courses[i].ID, err)
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Server error")
		}
	}

	return c.JSON(courses)
}

// GetCourseDetails returns a single course. Public.
func GetCourseDetails(c *fiber.Ctx) error {
	db := database.Database.Db
	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found")
		}
		log.Printf("Error fetching course: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Server error")
	}

	if err := populateCourse(c, db, &course); err != nil {
		log.Printf("Error populating course %d: %v", course.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Server error")
	}

	return c.JSON(course)
}

// CreateCourse creates a course owned by the requesting instructor.
func CreateCourse(c *fiber.Ctx) error {
	p := principal(c)

	if decision := authz.Authorize(p, authz.ActionCreateCourse, p.UserID); !decision.Allowed {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, decision.Reason)
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data")
	}

	course := models.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Category:     reqData.Category,
		InstructorID: p.UserID,
	}

	db := database.Database.Db
	if err := db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Server error")
	}

	course.EnrolledStudents = []uint{}
	if err := populateCourse(c, db, &course); err != nil {
		log.Printf("Error populating course %d: %v", course.ID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(course)
}

// UpdateCourse updates title/description/category. Owner only; the
// instructor reference itself is immutable.
func UpdateCourse(c *fiber.Ctx) error {
	db := database.Database.Db
	courseID := c.Locals("courseID").(uint)

	decision, course, err := authz.AuthorizeCourse(c.UserContext(), db, principal(c), authz.ActionUpdateCourse, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found")
		}
		log.Printf("Error fetching course: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Server error")
	}
	if !decision.Allowed {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "Not authorized to update this course")
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*courseValidator.UpdateCourseRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data")
	}

	if reqData.Title != "" {
		course.Title = reqData.Title
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.Category != "" {
		course.Category = reqData.Category
	}

	if err := db.Save(course).Error; err != nil {
		log.Printf("Error updating course: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Server error")
	}

	if err := populateCourse(c, db, course); err != nil {
		log.Printf("Error populating course %d: %v", course.ID, err)
	}

	return c.JSON(course)
}

// DeleteCourse deletes a course and cascades every active enrollment to
// dropped, so no student view or analytics row references a vanished
// course. Owner only.
func DeleteCourse(c *fiber.Ctx) error {
	db := database.Database.Db
	courseID := c.Locals("courseID").(uint)

	decision, course, err := authz.AuthorizeCourse(c.UserContext(), db, principal(c), authz.ActionDeleteCourse, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found")
		}
		log.Printf("Error fetching course: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Server error")
	}
	if !decision.Allowed {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "Not authorized to delete this course")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := enrollment.CascadeCourseDelete(c.UserContext(), tx, course.ID); err != nil {
			return err
		}
		return tx.Delete(course).Error
	})
	if err != nil {
		log.Printf("Error deleting course: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Server error while deleting course")
	}

	return c.JSON(fiber.Map{"message": "Course deleted successfully"})
}

// GetInstructorCourses lists the courses an instructor owns. Gated to
// the instructor's own id; an instructor with no courses gets an empty
// array, not an error.
func GetInstructorCourses(c *fiber.Ctx) error {
	p := principal(c)
	instructorID := c.Locals("targetUserID").(uint)

	if decision := authz.Authorize(p, authz.ActionViewInstructorCourses, instructorID); !decision.Allowed {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "Not authorized to view these courses")
	}

	db := database.Database.Db

	// An instructor with no courses is a valid empty state, not a 404.
	courses := make([]models.Course, 0)
	if err := db.Where("instructor_id = ?", instructorID).
		Order("created_at desc").Find(&courses).Error; err != nil {
		log.Printf("Error fetching instructor courses: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Server error")
	}

	for i := range courses {
		if err := populateCourse(c, db, &courses[i]); err != nil {
			log.Printf("Error populating course %d: %v", courses[i].ID, err)
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Server error")
		}
	}

	return c.JSON(courses)
}

// GetCourseEnrollments returns a course's full enrollment history with
// student identity, for the owning instructor's roster view.
func GetCourseEnrollments(c *fiber.Ctx) error {
	db := database.Database.Db
	courseID := c.Locals("courseID").(uint)

	decision, course, err := authz.AuthorizeCourse(c.UserContext(), db, principal(c), authz.ActionViewInstructorRoster, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found")
		}
		log.Printf("Error fetching course: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Server error")
	}
	if !decision.Allowed {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "Not authorized to view this roster")
	}

	records, err := enrollment.ListForCourse(c.UserContext(), db, course.ID)
	if err != nil {
		log.Printf("Error fetching course enrollments: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Server error")
	}

	return c.JSON(records)
}
