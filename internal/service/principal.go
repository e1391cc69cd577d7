package service

import "github.com/noah-isme/tuition-go-api/internal/models"

// Principal is the authenticated caller as resolved from the JWT. Operations
// take a Principal instead of re-reading role strings so authorization checks
// live in one place per operation.
type Principal struct {
	ID         uint
	Role       string
	ClassGrade *int
}

// IsTeacher reports whether the caller holds the teacher role.
func (p Principal) IsTeacher() bool {
	return p.Role == models.RoleTeacher
}

// IsStudent reports whether the caller holds the student role.
func (p Principal) IsStudent() bool {
	return p.Role == models.RoleStudent
}

// EnrolledIn reports whether a student principal belongs to the class grade.
func (p Principal) EnrolledIn(classGrade int) bool {
	return p.IsStudent() && p.ClassGrade != nil && *p.ClassGrade == classGrade
}
