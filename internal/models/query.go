package models

import (
	"time"

	"gorm.io/datatypes"
)

// Query is a question posted by a student on the class Q&A forum.
type Query struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	ClassGrade int               `gorm:"not null;index" json:"class_grade"`
	StudentID  uint              `gorm:"not null" json:"student_id"`
	Subject    string            `gorm:"size:255;not null" json:"subject"`
	Content    string            `gorm:"type:text;not null" json:"content"`
	Resolved   bool              `gorm:"not null;default:false" json:"resolved"`
	Metadata   datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`

	Student User         `gorm:"foreignKey:StudentID" json:"student"`
	Replies []QueryReply `gorm:"foreignKey:QueryID;constraint:OnDelete:CASCADE" json:"replies"`
}

// QueryReply is an answer on a forum query. Teacher replies are flagged so the
// UI can highlight them.
type QueryReply struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	QueryID        uint      `gorm:"not null;index" json:"query_id"`
	AuthorID       uint      `gorm:"not null" json:"author_id"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	IsTeacherReply bool      `gorm:"not null" json:"is_teacher_reply"`
	CreatedAt      time.Time `json:"created_at"`

	Author User `gorm:"foreignKey:AuthorID" json:"author"`
}
