package models

import "time"

// Schedule is a single timetable slot: a subject taught to a class by a
// teacher at a fixed day-of-week and lesson number within a quarter.
type Schedule struct {
	ID           string    `json:"id"`
	ClassID      string    `json:"classId"`
	SubjectID    string    `json:"subjectId"`
	TeacherID    string    `json:"teacherId"`
	DayOfWeek    int       `json:"dayOfWeek"`    // 1 = Monday ... 7 = Sunday
	LessonNumber int       `json:"lessonNumber"` // Position within the school day
	Quarter      int       `json:"quarter"`
	SchoolYear   string    `json:"schoolYear"` // e.g. "2025-2026"
	CreatedAt    time.Time `json:"createdAt"`
}
