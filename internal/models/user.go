package models

import "time"

// User represents an account in the tuition center: a teacher or a student.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Email      string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Role       string    `gorm:"size:16;not null" json:"role"`
	ClassGrade *int      `json:"class_grade"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

const (
	// RoleTeacher marks accounts that manage assignments and grading.
	RoleTeacher = "teacher"
	// RoleStudent marks enrolled learner accounts.
	RoleStudent = "student"
)

// IsTeacher reports whether the user holds the teacher role.
func (u User) IsTeacher() bool {
	return u.Role == RoleTeacher
}

// EnrolledIn reports whether a student belongs to the given class grade.
func (u User) EnrolledIn(classGrade int) bool {
	return u.Role == RoleStudent && u.ClassGrade != nil && *u.ClassGrade == classGrade
}
