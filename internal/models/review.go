package models

import "time"

// Review is a user's rating (1-5) and optional text for a book. Each user
// can have at most one review per book.
type Review struct {
	ID         int64        `json:"id"`
	UserID     int64        `json:"user_id"`
	BookID     int64        `json:"book_id"`
	User       *UserSummary `json:"user,omitempty"`
	Book       *Book        `json:"book,omitempty"`
	Rating     int          `json:"rating"`
	ReviewText string       `json:"review_text"`
	Likes      []int64      `json:"likes"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}
