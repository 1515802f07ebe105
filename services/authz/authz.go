// Package authz is the authorization gate: it maps an authenticated
// principal plus a requested action to an allow/deny decision. It has
// no side effects; callers translate a denial into their own error
// responses.
package authz

import (
	"context"

	"github.com/akshayrachakonda/course-enrollment/database"
	"github.com/akshayrachakonda/course-enrollment/models"

	"gorm.io/gorm"
)

// Principal is an authenticated identity presented for a decision.
type Principal struct {
	UserID uint
	Role   string
}

type Action string

const (
	ActionCreateCourse          Action = "createCourse"
	ActionUpdateCourse          Action = "updateCourse"
	ActionDeleteCourse          Action = "deleteCourse"
	ActionViewInstructorCourses Action = "viewInstructorCourses"
	ActionEnroll                Action = "enroll"
	ActionDrop                  Action = "drop"
	ActionViewOwnEnrollments    Action = "viewOwnEnrollments"
	ActionViewAnalytics         Action = "viewAnalytics"
	ActionUpdateProfile         Action = "updateProfile"
	ActionViewProfile           Action = "viewProfile"
	ActionViewInstructorRoster  Action = "viewInstructorRoster"
)

// Decision is a structured allow/deny outcome, never an error.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision        { return Decision{Allowed: true} }
func deny(r string) Decision { return Decision{Reason: r} }

var instructorActions = map[Action]bool{
	ActionCreateCourse:          true,
	ActionUpdateCourse:          true,
	ActionDeleteCourse:          true,
	ActionViewInstructorCourses: true,
	ActionViewAnalytics:         true,
	ActionViewInstructorRoster:  true,
}

var studentActions = map[Action]bool{
	ActionEnroll:             true,
	ActionDrop:               true,
	ActionViewOwnEnrollments: true,
}

// Actions whose target is owned: the principal must be the owner.
var ownedActions = map[Action]bool{
	ActionUpdateCourse:          true,
	ActionDeleteCourse:          true,
	ActionViewInstructorRoster:  true,
	ActionViewInstructorCourses: true,
	ActionUpdateProfile:         true,
}

// Authorize evaluates the gate rules in deny-wins order: authentication
// first, then role, then ownership. ownerID is the owner of the target
// (a course's instructor, or the user record being touched); pass the
// principal's own id for unowned actions.
func Authorize(p Principal, action Action, ownerID uint) Decision {
	if p.UserID == 0 {
		return deny("Unauthorized")
	}

	if instructorActions[action] && p.Role != models.RoleInstructor {
		return deny("Access denied. Instructor role required.")
	}
	if studentActions[action] && p.Role != models.RoleStudent {
		return deny("Access denied. Student role required.")
	}

	if ownedActions[action] && p.UserID != ownerID {
		return deny("Not authorized to access this resource")
	}

	return allow()
}

// AuthorizeCourse resolves the target course's owner from the store and
// evaluates the gate against it. Returns gorm.ErrRecordNotFound when
// the course does not exist so callers can answer 404 before 403.
func AuthorizeCourse(ctx context.Context, db *gorm.DB, p Principal, action Action, courseID uint) (Decision, *models.Course, error) {
	ctx, cancel := database.StoreTimeout(ctx)
	defer cancel()

	var course models.Course
	if err := db.WithContext(ctx).First(&course, courseID).Error; err != nil {
		return deny("Course not found"), nil, err
	}

	return Authorize(p, action, course.InstructorID), &course, nil
}
