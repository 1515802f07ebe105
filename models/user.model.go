package models

import "gorm.io/gorm"

// User roles. Role is fixed at registration and never changes.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
)

type User struct {
	gorm.Model
	Name     string `json:"name" gorm:"not null"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"` // stored lowercased
	Password string `json:"-" gorm:"not null"`
	Role     string `json:"role" gorm:"not null"`

	// Instructor-only fields
	Specialization string `json:"specialization,omitempty"`
	Experience     int    `json:"experience"`
	Bio            string `json:"bio,omitempty"`
}

// UserSummary is the public projection used when a user is embedded in
// course listings and roster views. Never carries the credential.
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
