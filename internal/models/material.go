package models

import "time"

// LearningMaterial is study content uploaded by a teacher for a class grade.
type LearningMaterial struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ClassGrade  int       `gorm:"not null;index" json:"class_grade"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	FileURL     string    `gorm:"size:512;not null" json:"file_url"`
	FileType    string    `gorm:"size:64" json:"file_type"`
	UploadedBy  uint      `gorm:"not null" json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
