package models

import "time"

// Attendance records whether a student was present at a lesson on a given day.
type Attendance struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"studentId"`
	ScheduleID string    `json:"scheduleId"`
	Attended   bool      `json:"attended"`
	AttendedOn time.Time `json:"attendedOn"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"createdAt"`
}
