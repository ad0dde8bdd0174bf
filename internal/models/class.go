package models

import "time"

// SchoolClass is a group of students taught together, e.g. grade 7, letter "B".
type SchoolClass struct {
	ID        string    `json:"id"`
	Grade     int       `json:"grade"`
	Title     string    `json:"title"`
	Classroom string    `json:"classroom"`
	TeacherID *string   `json:"teacherId,omitempty"` // Homeroom teacher
	CreatedAt time.Time `json:"createdAt"`
}
