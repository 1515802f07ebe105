// Package analytics derives instructor dashboard metrics from current
// course and enrollment state. Read-only, no side effects.
package analytics

import (
	"context"
	"time"

	"github.com/akshayrachakonda/course-enrollment/database"
	"github.com/akshayrachakonda/course-enrollment/models"
	"github.com/akshayrachakonda/course-enrollment/services/enrollment"

	"gorm.io/gorm"
)

const trendWindowDays = 30

type CourseStats struct {
	ID               uint   `json:"id"`
	Title            string `json:"title"`
	Category         string `json:"category"`
	EnrolledStudents int64  `json:"enrolledStudents"`
}

type DashboardStats struct {
	TotalStudents int64 `json:"totalStudents"`
	TotalCourses  int   `json:"totalCourses"`
	// Calendar date (UTC, YYYY-MM-DD) -> active enrollments created that
	// day within the trailing window. Dates with no enrollments are
	// absent, consumers treat them as zero.
	EnrollmentTrends map[string]int `json:"enrollmentTrends"`
	Courses          []CourseStats  `json:"courses"`
}

// Dashboard aggregates metrics over the instructor's courses. A student
// enrolled in two of the instructor's courses counts twice: the total
// is per-enrollment, not per-unique-student. An instructor with no
// courses gets zeros and empty collections, not an error.
func Dashboard(ctx context.Context, db *gorm.DB, instructorID uint) (*DashboardStats, error) {
	ctx, cancel := database.StoreTimeout(ctx)
	defer cancel()
	tdb := db.WithContext(ctx)

	var courses []models.Course
	if err := tdb.Where("instructor_id = ?", instructorID).
		Order("created_at desc").Find(&courses).Error; err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalCourses:     len(courses),
		EnrollmentTrends: make(map[string]int),
		Courses:          make([]CourseStats, 0, len(courses)),
	}

	courseIDs := make([]uint, 0, len(courses))
	for _, course := range courses {
		size, err := enrollment.RosterSize(ctx, db, course.ID)
		if err != nil {
			return nil, err
		}
		stats.TotalStudents += size
		stats.Courses = append(stats.Courses, CourseStats{
			ID:               course.ID,
			Title:            course.Title,
			Category:         course.Category,
			EnrolledStudents: size,
		})
		courseIDs = append(courseIDs, course.ID)
	}

	if len(courseIDs) == 0 {
		return stats, nil
	}

	windowStart := time.Now().UTC().AddDate(0, 0, -trendWindowDays)

	var recent []models.Enrollment
	if err := tdb.Select("created_at").
		Where("course_id IN ? AND status = ? AND created_at >= ?",
			courseIDs, models.EnrollmentActive, windowStart).
		Find(&recent).Error; err != nil {
		return nil, err
	}

	// Bucket by calendar date in the application, same on every SQL
	// dialect, truncating time-of-day.
	for _, record := range recent {
		day := record.CreatedAt.UTC().Format("2006-01-02")
		stats.EnrollmentTrends[day]++
	}

	return stats, nil
}
