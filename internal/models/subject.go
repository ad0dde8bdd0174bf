package models

// Subject is a taught discipline, e.g. Mathematics.
type Subject struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
