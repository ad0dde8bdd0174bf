package models

import "time"

// Announcement is a school-wide or role-targeted notice. A nil PublishAt
// means publish immediately; a future PublishAt leaves the announcement as a
// draft until the background publisher promotes it.
type Announcement struct {
	ID           string     `json:"id"`
	AuthorID     string     `json:"authorId"`
	Title        string     `json:"title"`
	Body         string     `json:"body"`
	AudienceRole *string    `json:"audienceRole,omitempty"` // nil = everyone
	PublishAt    *time.Time `json:"publishAt,omitempty"`
	Recurrence   string     `json:"recurrence,omitempty"` // cron expression, empty = one-shot
	Published    bool       `json:"published"`
	CreatedAt    time.Time  `json:"createdAt"`
}
