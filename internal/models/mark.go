package models

import "time"

// Mark grade bounds. Grades follow the 5-point scale.
const (
	MinGrade = 1
	MaxGrade = 5
)

// Mark is a grade given to a student for a particular lesson.
type Mark struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"studentId"`
	ScheduleID string    `json:"scheduleId"`
	Grade      int       `json:"grade"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}
