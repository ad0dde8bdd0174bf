package models

import "time"

// Student links a user account to a class and carries parent contact details.
type Student struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	ClassID     *string    `json:"classId,omitempty"`
	Birthday    *time.Time `json:"birthday,omitempty"`
	ParentName  string     `json:"parentName"`
	ParentPhone string     `json:"parentPhone"`
	CreatedAt   time.Time  `json:"createdAt"`
}
