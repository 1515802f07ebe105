package enrollment

import "errors"

// Structured outcomes of the state machine. Controllers translate these
// to the fixed HTTP codes; nothing storage-specific crosses that
// boundary.
var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrAlreadyEnrolled    = errors.New("already enrolled in this course")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrNotOwner           = errors.New("enrollment belongs to another student")
	ErrNotActive          = errors.New("enrollment is not active")
)
