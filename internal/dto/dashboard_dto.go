package dto

import "time"

// ProgressSummary aggregates a student's standing across all assignments.
type ProgressSummary struct {
	TotalAssignments int     `json:"total_assignments"`
	Submitted        int     `json:"submitted"`
	Graded           int     `json:"graded"`
	Pending          int     `json:"pending"`
	Overdue          int     `json:"overdue"`
	AveragePercent   float64 `json:"average_percent"`
}

// AssignmentProgress describes one assignment row on the student dashboard.
type AssignmentProgress struct {
	AssignmentID  uint      `json:"assignment_id"`
	Title         string    `json:"title"`
	DueDate       time.Time `json:"due_date"`
	DueDateLocal  string    `json:"due_date_local"`
	TotalMarks    int       `json:"total_marks"`
	Status        string    `json:"status"`
	SubmissionID  *uint     `json:"submission_id"`
	IsLate        bool      `json:"is_late"`
	MarksObtained *int      `json:"marks_obtained"`
	Feedback      string    `json:"feedback"`
	Overdue       bool      `json:"overdue"`
}

// StudentDashboardResponse is the aggregated dashboard payload.
type StudentDashboardResponse struct {
	Summary     ProgressSummary      `json:"summary"`
	Assignments []AssignmentProgress `json:"assignments"`
	GeneratedAt time.Time            `json:"generated_at"`
}
