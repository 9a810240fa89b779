package testutil

import (
	"database/sql"
	"testing"
	"time"
)

// InsertBook adds a book row directly and returns its id.
func InsertBook(t *testing.T, db *sql.DB, title, author, genre string, year int, rating float64) int64 {
	t.Helper()
	res, err := db.Exec(`
		INSERT INTO books (title, author, genre, description, publication_year, average_rating, created_at)
		VALUES (?, ?, ?, '', ?, ?, ?)`,
		title, author, genre, year, rating, time.Now())
	if err != nil {
		t.Fatalf("Failed to insert book '%s': %v", title, err)
	}
	id, _ := res.LastInsertId()
	return id
}

// InsertInteraction adds a reading list row directly and returns its id.
func InsertInteraction(t *testing.T, db *sql.DB, userID, bookID int64, status string) int64 {
	t.Helper()
	res, err := db.Exec(
		"INSERT INTO reading_list (user_id, book_id, status, added_at) VALUES (?, ?, ?, ?)",
		userID, bookID, status, time.Now())
	if err != nil {
		t.Fatalf("Failed to insert reading list row: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

// SetInteractionDates stamps the start and finish dates on a reading list row.
func SetInteractionDates(t *testing.T, db *sql.DB, itemID int64, start, finish *time.Time) {
	t.Helper()
	var startArg, finishArg interface{}
	if start != nil {
		startArg = *start
	}
	if finish != nil {
		finishArg = *finish
	}
	_, err := db.Exec("UPDATE reading_list SET start_date = ?, finish_date = ? WHERE id = ?",
		startArg, finishArg, itemID)
	if err != nil {
		t.Fatalf("Failed to set interaction dates: %v", err)
	}
}
