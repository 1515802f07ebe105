// Package enrollment owns the enrollment state machine: every creation
// and transition of an Enrollment record and the paired roster cache
// mutation on the course go through here.
//
// States: none -> active -> {dropped, completed}. Dropped and completed
// are terminal for a record; re-enrolling after a drop creates a new
// record instead of reviving the old one.
package enrollment

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/akshayrachakonda/course-enrollment/database"
	"github.com/akshayrachakonda/course-enrollment/models"

	"gorm.io/gorm"
)

// Enroll creates an active enrollment for (studentID, courseID) and adds
// the student to the course roster.
//
// Uniqueness is enforced by the partial unique index on the enrollments
// table, not by a read-then-write: the insert either commits or comes
// back as a duplicate-key error, so N concurrent enrolls for the same
// pair yield exactly one active record. The enrollment row is written
// before the roster row; if the roster write fails the inconsistency is
// logged and repaired by the reconciler (enrollments are ground truth).
func Enroll(ctx context.Context, db *gorm.DB, studentID, courseID uint) (*models.Enrollment, error) {
	ctx, cancel := database.StoreTimeout(ctx)
	defer cancel()
	tdb := db.WithContext(ctx)

	var course models.Course
	if err := tdb.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	record := models.Enrollment{
		StudentID:      studentID,
		CourseID:       courseID,
		EnrollmentDate: time.Now().UTC(),
		Status:         models.EnrollmentActive,
	}

	if err := tdb.Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, err
	}

	if err := AddRosterMember(ctx, db, courseID, studentID); err != nil {
		// Enrollment row committed, roster row did not: never swallowed,
		// the reconciler rebuilds the roster from enrollment records.
		log.Printf("[ENROLLMENT] roster add failed for course %d student %d: %v", courseID, studentID, err)
	}

	return &record, nil
}

// Drop transitions an active enrollment to dropped and removes the
// student from the course roster. id is an enrollment id; if no
// enrollment has that id, it is retried as a course id against the
// student's own active enrollments.
//
// A second drop on the same record fails with ErrNotActive rather than
// silently succeeding; callers must not retry blindly.
func Drop(ctx context.Context, db *gorm.DB, id, studentID uint) error {
	ctx, cancel := database.StoreTimeout(ctx)
	defer cancel()
	tdb := db.WithContext(ctx)

	var record models.Enrollment
	err := tdb.First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = tdb.Where("student_id = ? AND course_id = ? AND status = ?",
			studentID, id, models.EnrollmentActive).First(&record).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEnrollmentNotFound
		}
		return err
	}

	if record.StudentID != studentID {
		return ErrNotOwner
	}

	// Conditional update: only an active record transitions, so two
	// concurrent drops cannot both succeed.
	res := tdb.Model(&models.Enrollment{}).
		Where("id = ? AND status = ?", record.ID, models.EnrollmentActive).
		Update("status", models.EnrollmentDropped)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotActive
	}

	if err := RemoveRosterMember(ctx, db, record.CourseID, studentID); err != nil {
		log.Printf("[ENROLLMENT] roster remove failed for course %d student %d: %v", record.CourseID, studentID, err)
	}

	return nil
}

// CascadeCourseDelete transitions every active enrollment of a course
// out of active and clears its roster. Course deletion must call this
// so analytics and student views never reference a vanished course;
// historical records are kept, only their status changes.
func CascadeCourseDelete(ctx context.Context, db *gorm.DB, courseID uint) error {
	ctx, cancel := database.StoreTimeout(ctx)
	defer cancel()

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Enrollment{}).
			Where("course_id = ? AND status = ?", courseID, models.EnrollmentActive).
			Update("status", models.EnrollmentDropped).Error; err != nil {
			return err
		}
		return tx.Where("course_id = ?", courseID).Delete(&models.CourseRoster{}).Error
	})
}

// ActiveEnrollment pairs an active enrollment with its course and an
// instructor summary for the student's "my enrollments" view.
type ActiveEnrollment struct {
	models.Enrollment
	Instructor models.UserSummary `json:"instructor"`
}

// ListActiveForStudent returns the student's active enrollments with
// course and instructor populated. Enrollments whose course or
// instructor no longer resolves are skipped, not surfaced as broken
// records.
func ListActiveForStudent(ctx context.Context, db *gorm.DB, studentID uint) ([]ActiveEnrollment, error) {
	ctx, cancel := database.StoreTimeout(ctx)
	defer cancel()
	tdb := db.WithContext(ctx)

	var records []models.Enrollment
	if err := tdb.Where("student_id = ? AND status = ?", studentID, models.EnrollmentActive).
		Preload("Course").Order("created_at desc").Find(&records).Error; err != nil {
		return nil, err
	}

	result := make([]ActiveEnrollment, 0, len(records))
	for _, record := range records {
		if record.Course == nil {
			continue
		}
		var instructor models.User
		if err := tdb.First(&instructor, record.Course.InstructorID).Error; err != nil {
			continue
		}
		result = append(result, ActiveEnrollment{
			Enrollment: record,
			Instructor: instructor.Summary(),
		})
	}
	return result, nil
}

// EnrollmentWithStudent enriches an enrollment with student identity for
// ownership-gated roster views.
type EnrollmentWithStudent struct {
	models.Enrollment
	StudentName  string `json:"studentName"`
	StudentEmail string `json:"studentEmail"`
}

// ListForCourse returns the full enrollment history of a course, newest
// first, with student name/email populated.
func ListForCourse(ctx context.Context, db *gorm.DB, courseID uint) ([]EnrollmentWithStudent, error) {
	ctx, cancel := database.StoreTimeout(ctx)
	defer cancel()
	tdb := db.WithContext(ctx)

	var records []models.Enrollment
	if err := tdb.Where("course_id = ?", courseID).
		Order("created_at desc").Find(&records).Error; err != nil {
		return nil, err
	}

	result := make([]EnrollmentWithStudent, 0, len(records))
	for _, record := range records {
		var student models.User
		if err := tdb.First(&student, record.StudentID).Error; err != nil {
			continue
		}
		result = append(result, EnrollmentWithStudent{
			Enrollment:   record,
			StudentName:  student.Name,
			StudentEmail: student.Email,
		})
	}
	return result, nil
}
