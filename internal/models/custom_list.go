package models

import "time"

// CustomList is a user-curated, ordered collection of books, independent of
// the four reading list statuses.
type CustomList struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Books     []*Book   `json:"books"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
