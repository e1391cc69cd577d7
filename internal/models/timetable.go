package models

import "time"

// TimetableEntry is one slot in a class grade's weekly schedule. DayOfWeek is
// stored as a 1-based Monday-first index so listings sort the way a week
// reads; StartTime and EndTime hold wall-clock "HH:MM" strings.
type TimetableEntry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ClassGrade int       `gorm:"not null;index" json:"class_grade"`
	DayOfWeek  int       `gorm:"not null" json:"day_of_week"`
	StartTime  string    `gorm:"size:5;not null" json:"start_time"`
	EndTime    string    `gorm:"size:5;not null" json:"end_time"`
	Notes      string    `gorm:"size:500" json:"notes"`
	CreatedBy  uint      `gorm:"not null" json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

var timetableDays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// DayOfWeekIndex maps a lowercase day name to its Monday-first 1-based index.
func DayOfWeekIndex(name string) (int, bool) {
	for i, day := range timetableDays {
		if day == name {
			return i + 1, true
		}
	}
	return 0, false
}

// DayOfWeekName returns the lowercase day name for a stored index.
func DayOfWeekName(index int) string {
	if index < 1 || index > len(timetableDays) {
		return ""
	}
	return timetableDays[index-1]
}
