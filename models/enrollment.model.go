package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses. An enrollment starts active and moves to exactly
// one of dropped or completed; both are terminal. Re-enrolling after a
// drop creates a fresh record, the old one is kept for history.
const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
	EnrollmentDropped   = "dropped"
)

// Enrollment is the source of truth for enrollment state. The partial
// unique index allows any number of historical (dropped/completed) rows
// per (student, course) pair but at most one active row, so concurrent
// enrolls race against the index instead of an application-level check.
type Enrollment struct {
	gorm.Model
	StudentID      uint      `json:"studentId" gorm:"uniqueIndex:idx_active_enrollment,where:status = 'active';not null"`
	CourseID       uint      `json:"courseId" gorm:"uniqueIndex:idx_active_enrollment,where:status = 'active';index;not null"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
	Status         string    `json:"status" gorm:"default:'active';index"`

	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}
