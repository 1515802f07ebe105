package enrollment

import (
	"context"
	"log"

	"github.com/akshayrachakonda/course-enrollment/database"
	"github.com/akshayrachakonda/course-enrollment/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Roster cache operations. Membership is one row per (course, student)
// guarded by a unique index, so add and remove are single-row writes
// and concurrent enrolls never lose each other's update.

// AddRosterMember adds a student to a course roster. Idempotent: a row
// that already exists is left alone (ON CONFLICT DO NOTHING).
func AddRosterMember(ctx context.Context, db *gorm.DB, courseID, studentID uint) error {
	member := models.CourseRoster{CourseID: courseID, StudentID: studentID}
	return db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&member).Error
}

// RemoveRosterMember removes a student from a course roster.
func RemoveRosterMember(ctx context.Context, db *gorm.DB, courseID, studentID uint) error {
	return db.WithContext(ctx).
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		Delete(&models.CourseRoster{}).Error
}

// RosterMembers returns the student ids currently on a course roster.
func RosterMembers(ctx context.Context, db *gorm.DB, courseID uint) ([]uint, error) {
	ctx, cancel := database.StoreTimeout(ctx)
	defer cancel()

	var ids []uint
	err := db.WithContext(ctx).Model(&models.CourseRoster{}).
		Where("course_id = ?", courseID).
		Order("student_id").
		Pluck("student_id", &ids).Error
	return ids, err
}

// RosterSize returns the current roster size of a course.
func RosterSize(ctx context.Context, db *gorm.DB, courseID uint) (int64, error) {
	ctx, cancel := database.StoreTimeout(ctx)
	defer cancel()

	var n int64
	err := db.WithContext(ctx).Model(&models.CourseRoster{}).
		Where("course_id = ?", courseID).Count(&n).Error
	return n, err
}

// RebuildRoster replays a course's active enrollment records into the
// roster cache. This is the documented recovery path when a roster
// write was lost: enrollments, not the cache, are ground truth.
func RebuildRoster(ctx context.Context, db *gorm.DB, courseID uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", courseID).Delete(&models.CourseRoster{}).Error; err != nil {
			return err
		}

		var studentIDs []uint
		if err := tx.Model(&models.Enrollment{}).
			Where("course_id = ? AND status = ?", courseID, models.EnrollmentActive).
			Pluck("student_id", &studentIDs).Error; err != nil {
			return err
		}

		if len(studentIDs) == 0 {
			return nil
		}

		members := make([]models.CourseRoster, 0, len(studentIDs))
		for _, id := range studentIDs {
			members = append(members, models.CourseRoster{CourseID: courseID, StudentID: id})
		}
		return tx.Create(&members).Error
	})
}

// RebuildAllRosters reconciles every course roster against enrollment
// records and drops roster rows whose course no longer exists.
func RebuildAllRosters(ctx context.Context, db *gorm.DB) error {
	var courseIDs []uint
	if err := db.WithContext(ctx).Model(&models.Course{}).Pluck("id", &courseIDs).Error; err != nil {
		return err
	}

	for _, id := range courseIDs {
		if err := RebuildRoster(ctx, db, id); err != nil {
			log.Printf("[ENROLLMENT] roster rebuild failed for course %d: %v", id, err)
		}
	}

	// Orphaned rows from deleted courses.
	return db.WithContext(ctx).
		Where("course_id NOT IN (?)", db.Model(&models.Course{}).Select("id")).
		Delete(&models.CourseRoster{}).Error
}
