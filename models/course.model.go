package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	Title        string `json:"title" gorm:"not null"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	InstructorID uint   `json:"instructorId" gorm:"index;not null"`
	Instructor   User   `json:"-" gorm:"foreignKey:InstructorID"`

	// Populated projections, not stored columns. EnrolledStudents mirrors
	// the roster table; InstructorInfo mirrors the owning user.
	EnrolledStudents []uint       `json:"enrolledStudents" gorm:"-"`
	InstructorInfo   *UserSummary `json:"instructor,omitempty" gorm:"-"`
}
