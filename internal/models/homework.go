package models

import "time"

// Homework is an assignment attached to a timetable slot.
type Homework struct {
	ID          string    `json:"id"`
	ScheduleID  string    `json:"scheduleId"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	CreatedAt   time.Time `json:"createdAt"`
}
