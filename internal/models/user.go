// This file defines the core data structures (models) for our application.
// These structs represent the users of the reading tracker and their
// relationships to each other.

package models

import "time"

// User represents a registered account.
type User struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"` // Never serialized in responses
	Bio             string    `json:"bio"`
	Avatar          string    `json:"avatar"`
	ReadingGoal     int       `json:"reading_goal"`
	ReadingGoalType string    `json:"reading_goal_type"` // "yearly" or "monthly"
	CreatedAt       time.Time `json:"created_at"`
}

// UserSummary is the slim user shape embedded in follower lists and reviews.
type UserSummary struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// PublicProfile is the response for another user's profile page. Email and
// password are never exposed here.
type PublicProfile struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Bio         string             `json:"bio"`
	Avatar      string             `json:"avatar"`
	Followers   []*UserSummary     `json:"followers"`
	Following   []*UserSummary     `json:"following"`
	Stats       ProfileStats       `json:"stats"`
	RecentBooks []*ReadingListItem `json:"recent_books"`
}

// ProfileStats are the per-status counts shown on a profile page.
type ProfileStats struct {
	ReadCount     int `json:"read_count"`
	ReadingCount  int `json:"reading_count"`
	WishlistCount int `json:"wishlist_count"`
}
