package models

import "time"

// Reading list item statuses. A book is on exactly one list per user.
const (
	StatusWishlist = "wishlist"
	StatusReading  = "reading"
	StatusComplete = "complete"
	StatusDropped  = "dropped"
)

// ReadingListItem is one user's relationship to one book: which list it is
// on, how far along they are, and when they started and finished it.
type ReadingListItem struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	BookID     int64      `json:"book_id"`
	Book       *Book      `json:"book,omitempty"` // omitempty hides it when not joined
	Status     string     `json:"status"`
	Progress   int        `json:"progress"` // 0-100
	StartDate  *time.Time `json:"start_date,omitempty"`
	FinishDate *time.Time `json:"finish_date,omitempty"`
	DropReason string     `json:"drop_reason,omitempty"`
	Notes      []*Note    `json:"notes,omitempty"`
	AddedAt    time.Time  `json:"added_at"`
}

// Note is a free-form annotation attached to a reading list item.
type Note struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"item_id"`
	Text      string    `json:"text"`
	Page      *int      `json:"page,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidStatus reports whether s is one of the four reading list statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusWishlist, StatusReading, StatusComplete, StatusDropped:
		return true
	}
	return false
}
