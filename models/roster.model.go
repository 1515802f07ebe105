package models

import "time"

// CourseRoster caches the set of actively enrolled students per course.
// One row per member keeps add/remove a single-row write (insert with
// ON CONFLICT DO NOTHING, delete by pair) so two simultaneous enrolls
// never clobber each other the way a read-modify-write of an array
// column would. Enrollment rows stay the ground truth: the whole table
// can be rebuilt from them, see services/enrollment.RebuildRoster.
//
// No gorm.Model here: membership rows are hard-deleted, a soft-deleted
// row would keep occupying the unique index.
type CourseRoster struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CourseID  uint      `json:"course_id" gorm:"uniqueIndex:idx_roster_member;not null"`
	StudentID uint      `json:"student_id" gorm:"uniqueIndex:idx_roster_member;not null"`
	CreatedAt time.Time `json:"created_at"`
}
