package analytics

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/akshayrachakonda/course-enrollment/models"
	"github.com/akshayrachakonda/course-enrollment/services/enrollment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Enrollment{},
		&models.CourseRoster{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name, email, role string) *models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, Password: "x", Role: role}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createCourse(t *testing.T, db *gorm.DB, title string, instructorID uint) *models.Course {
	t.Helper()
	course := models.Course{Title: title, Description: "d", Category: "cat", InstructorID: instructorID}
	require.NoError(t, db.Create(&course).Error)
	return &course
}

func TestDashboardCountsAndPerCourse(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	instructor := createUser(t, db, "Ana", "ana@example.com", models.RoleInstructor)
	s1 := createUser(t, db, "Ben", "ben@example.com", models.RoleStudent)
	s2 := createUser(t, db, "Cid", "cid@example.com", models.RoleStudent)
	s3 := createUser(t, db, "Dee", "dee@example.com", models.RoleStudent)
	s4 := createUser(t, db, "Eli", "eli@example.com", models.RoleStudent)

	busy := createCourse(t, db, "Go Basics", instructor.ID)
	empty := createCourse(t, db, "Advanced Go", instructor.ID)

	for _, s := range []*models.User{s1, s2, s3} {
		_, err := enrollment.Enroll(ctx, db, s.ID, busy.ID)
		require.NoError(t, err)
	}
	record, err := enrollment.Enroll(ctx, db, s4.ID, busy.ID)
	require.NoError(t, err)
	require.NoError(t, enrollment.Drop(ctx, db, record.ID, s4.ID))

	stats, err := Dashboard(ctx, db, instructor.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalCourses)
	assert.Equal(t, int64(3), stats.TotalStudents)

	require.Len(t, stats.Courses, 2)
	sizes := map[string]int64{}
	ids := map[string]uint{}
	for _, cs := range stats.Courses {
		sizes[cs.Title] = cs.EnrolledStudents
		ids[cs.Title] = cs.ID
		assert.Equal(t, "cat", cs.Category)
	}
	assert.Equal(t, int64(3), sizes["Go Basics"])
	assert.Equal(t, int64(0), sizes["Advanced Go"])
	assert.Equal(t, busy.ID, ids["Go Basics"])
	assert.Equal(t, empty.ID, ids["Advanced Go"])
}

func TestDashboardStudentInTwoCoursesCountsTwice(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	instructor := createUser(t, db, "Ana", "ana@example.com", models.RoleInstructor)
	student := createUser(t, db, "Ben", "ben@example.com", models.RoleStudent)
	c1 := createCourse(t, db, "Go Basics", instructor.ID)
	c2 := createCourse(t, db, "Advanced Go", instructor.ID)

	_, err := enrollment.Enroll(ctx, db, student.ID, c1.ID)
	require.NoError(t, err)
	_, err = enrollment.Enroll(ctx, db, student.ID, c2.ID)
	require.NoError(t, err)

	stats, err := Dashboard(ctx, db, instructor.ID)
	require.NoError(t, err)

	// Per-enrollment, not per-unique-student.
	assert.Equal(t, int64(2), stats.TotalStudents)
}

func TestDashboardTrendWindow(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	instructor := createUser(t, db, "Ana", "ana@example.com", models.RoleInstructor)
	course := createCourse(t, db, "Go Basics", instructor.ID)

	now := time.Now().UTC()

	// Two enrollments today, one five days ago, one outside the window,
	// one dropped inside the window. Distinct students keep the active
	// pair index satisfied.
	seed := []struct {
		email     string
		createdAt time.Time
		status    string
	}{
		{"a@example.com", now, models.EnrollmentActive},
		{"b@example.com", now, models.EnrollmentActive},
		{"c@example.com", now.AddDate(0, 0, -5), models.EnrollmentActive},
		{"d@example.com", now.AddDate(0, 0, -31), models.EnrollmentActive},
		{"e@example.com", now.AddDate(0, 0, -2), models.EnrollmentDropped},
	}
	for i, s := range seed {
		student := createUser(t, db, fmt.Sprintf("S%d", i), s.email, models.RoleStudent)
		record := models.Enrollment{
			StudentID:      student.ID,
			CourseID:       course.ID,
			EnrollmentDate: s.createdAt,
			Status:         s.status,
		}
		record.CreatedAt = s.createdAt
		require.NoError(t, db.Create(&record).Error)
	}

	stats, err := Dashboard(ctx, db, instructor.ID)
	require.NoError(t, err)

	today := now.Format("2006-01-02")
	fiveDaysAgo := now.AddDate(0, 0, -5).Format("2006-01-02")
	outside := now.AddDate(0, 0, -31).Format("2006-01-02")
	droppedDay := now.AddDate(0, 0, -2).Format("2006-01-02")

	assert.Equal(t, 2, stats.EnrollmentTrends[today])
	assert.Equal(t, 1, stats.EnrollmentTrends[fiveDaysAgo])
	assert.NotContains(t, stats.EnrollmentTrends, outside, "31-day-old enrollment excluded")
	assert.NotContains(t, stats.EnrollmentTrends, droppedDay, "dropped enrollment excluded")
}

func TestDashboardNoCourses(t *testing.T) {
	db := setupTestDB(t)

	instructor := createUser(t, db, "Ana", "ana@example.com", models.RoleInstructor)

	stats, err := Dashboard(context.Background(), db, instructor.ID)
	require.NoError(t, err)

	assert.Zero(t, stats.TotalCourses)
	assert.Zero(t, stats.TotalStudents)
	assert.Empty(t, stats.EnrollmentTrends)
	assert.Empty(t, stats.Courses)
}
