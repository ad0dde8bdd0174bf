package models

import "time"

// Employee links a user account to a staff position. SubjectIDs lists the
// subjects the employee teaches (many-to-many).
type Employee struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Position   string    `json:"position"`
	Salary     *int64    `json:"salary,omitempty"`
	SubjectIDs []string  `json:"subjectIds"`
	CreatedAt  time.Time `json:"createdAt"`
}
