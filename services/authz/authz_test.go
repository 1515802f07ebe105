package authz

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/akshayrachakonda/course-enrollment/models"

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

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Course{}))
	return db
}

func TestAuthorizeRoleRules(t *testing.T) {
	student := Principal{UserID: 1, Role: models.RoleStudent}
	instructor := Principal{UserID: 2, Role: models.RoleInstructor}

	cases := []struct {
		name    string
		p       Principal
		action  Action
		owner   uint
		allowed bool
	}{
		{"student cannot create course", student, ActionCreateCourse, 1, false},
		{"instructor creates course", instructor, ActionCreateCourse, 2, true},
		{"instructor cannot enroll", instructor, ActionEnroll, 2, false},
		{"student enrolls", student, ActionEnroll, 1, true},
		{"student cannot view analytics", student, ActionViewAnalytics, 1, false},
		{"instructor views analytics", instructor, ActionViewAnalytics, 2, true},
		{"instructor cannot drop", instructor, ActionDrop, 2, false},
		{"student views own enrollments", student, ActionViewOwnEnrollments, 1, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision := Authorize(tc.p, tc.action, tc.owner)
			assert.Equal(t, tc.allowed, decision.Allowed)
			if !tc.allowed {
				assert.NotEmpty(t, decision.Reason)
			}
		})
	}
}

func TestAuthorizeOwnership(t *testing.T) {
	instructor := Principal{UserID: 2, Role: models.RoleInstructor}

	assert.True(t, Authorize(instructor, ActionViewInstructorCourses, 2).Allowed)
	assert.False(t, Authorize(instructor, ActionViewInstructorCourses, 3).Allowed)
	assert.False(t, Authorize(instructor, ActionUpdateCourse, 3).Allowed)
	assert.False(t, Authorize(instructor, ActionDeleteCourse, 3).Allowed)

	student := Principal{UserID: 1, Role: models.RoleStudent}
	assert.True(t, Authorize(student, ActionUpdateProfile, 1).Allowed)
	assert.False(t, Authorize(student, ActionUpdateProfile, 2).Allowed)
	// Reads are open to any authenticated user.
	assert.True(t, Authorize(student, ActionViewProfile, 2).Allowed)
}

func TestAuthorizeUnauthenticated(t *testing.T) {
	decision := Authorize(Principal{}, ActionEnroll, 0)
	assert.False(t, decision.Allowed)
	assert.Equal(t, "Unauthorized", decision.Reason)
}

func TestAuthorizeCourse(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := models.User{Name: "Ana", Email: "ana@example.com", Password: "x", Role: models.RoleInstructor}
	require.NoError(t, db.Create(&owner).Error)
	course := models.Course{Title: "Go Basics", InstructorID: owner.ID}
	require.NoError(t, db.Create(&course).Error)

	decision, got, err := AuthorizeCourse(ctx, db, Principal{UserID: owner.ID, Role: models.RoleInstructor}, ActionUpdateCourse, course.ID)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	require.NotNil(t, got)
	assert.Equal(t, course.ID, got.ID)

	decision, _, err = AuthorizeCourse(ctx, db, Principal{UserID: owner.ID + 1, Role: models.RoleInstructor}, ActionUpdateCourse, course.ID)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)

	_, _, err = AuthorizeCourse(ctx, db, Principal{UserID: owner.ID, Role: models.RoleInstructor}, ActionUpdateCourse, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
