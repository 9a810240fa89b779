package store_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/bookbuddy/bookbuddy-go/internal/auth"
	"github.com/bookbuddy/bookbuddy-go/internal/models"
	"github.com/bookbuddy/bookbuddy-go/internal/store"
	"github.com/bookbuddy/bookbuddy-go/internal/testutil"
)

func setupUserAndBook(t *testing.T, db *sql.DB, s *store.Store) (int64, int64) {
	t.Helper()
	passwordHash, _ := auth.HashPassword("password123")
	user, err := s.CreateUser("Reader", "reader@example.com", passwordHash)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	bookID := testutil.InsertBook(t, db, "Dune", "Frank Herbert", "SciFi", 1965, 4.5)
	return user.ID, bookID
}

func TestReadingListStore_AddAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)
	userID, bookID := setupUserAndBook(t, db, s)

	item, err := s.AddReadingListItem(userID, bookID, models.StatusWishlist)
	if err != nil {
		t.Fatalf("AddReadingListItem failed: %v", err)
	}
	if item.Status != models.StatusWishlist {
		t.Errorf("Expected status wishlist, got '%s'", item.Status)
	}
	if item.Book == nil || item.Book.Title != "Dune" {
		t.Errorf("Expected joined book, got %+v", item.Book)
	}

	// Same book twice is a conflict.
	if _, err := s.AddReadingListItem(userID, bookID, models.StatusReading); err != store.ErrDuplicate {
		t.Fatalf("Expected ErrDuplicate, got %v", err)
	}
}

func TestReadingListStore_SaveAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)
	userID, bookID := setupUserAndBook(t, db, s)

	item, _ := s.AddReadingListItem(userID, bookID, models.StatusWishlist)

	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	item.Status = models.StatusReading
	item.Progress = 40
	item.StartDate = &start
	if err := s.SaveReadingListItem(item); err != nil {
		t.Fatalf("SaveReadingListItem failed: %v", err)
	}

	fetched, err := s.GetReadingListItem(item.ID, userID)
	if err != nil {
		t.Fatalf("GetReadingListItem failed: %v", err)
	}
	if fetched.Status != models.StatusReading || fetched.Progress != 40 {
		t.Errorf("Item not saved correctly: %+v", fetched)
	}
	if fetched.StartDate == nil || !fetched.StartDate.Equal(start) {
		t.Errorf("Start date not saved correctly: %v", fetched.StartDate)
	}

	// Another user cannot see or delete the item.
	if _, err := s.GetReadingListItem(item.ID, userID+1); err != sql.ErrNoRows {
		t.Errorf("Expected sql.ErrNoRows for wrong owner, got %v", err)
	}
	if err := s.DeleteReadingListItem(item.ID, userID+1); err != sql.ErrNoRows {
		t.Errorf("Expected sql.ErrNoRows deleting as wrong owner, got %v", err)
	}

	if err := s.DeleteReadingListItem(item.ID, userID); err != nil {
		t.Fatalf("DeleteReadingListItem failed: %v", err)
	}
	if _, err := s.GetReadingListItem(item.ID, userID); err != sql.ErrNoRows {
		t.Errorf("Expected item to be gone, got %v", err)
	}
}

func TestReadingListStore_Notes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)
	userID, bookID := setupUserAndBook(t, db, s)

	item, _ := s.AddReadingListItem(userID, bookID, models.StatusReading)

	page := 42
	note, err := s.AddNote(item.ID, userID, "The spice must flow.", &page)
	if err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}
	if note.Text != "The spice must flow." || *note.Page != 42 {
		t.Errorf("Note not saved correctly: %+v", note)
	}

	// A note on someone else's item is rejected.
	if _, err := s.AddNote(item.ID, userID+1, "sneaky", nil); err != sql.ErrNoRows {
		t.Errorf("Expected sql.ErrNoRows for wrong owner, got %v", err)
	}

	items, err := s.ListReadingList(userID)
	if err != nil {
		t.Fatalf("ListReadingList failed: %v", err)
	}
	if len(items) != 1 || len(items[0].Notes) != 1 {
		t.Fatalf("Expected one item with one note, got %+v", items)
	}

	if err := s.DeleteNote(note.ID, userID); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}
	if err := s.DeleteNote(note.ID, userID); err != sql.ErrNoRows {
		t.Errorf("Expected sql.ErrNoRows deleting twice, got %v", err)
	}
}

func TestReadingListStore_CountByStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)
	userID, _ := setupUserAndBook(t, db, s)

	b1 := testutil.InsertBook(t, db, "A", "a", "Fantasy", 2000, 4)
	b2 := testutil.InsertBook(t, db, "B", "b", "Fantasy", 2001, 4)
	b3 := testutil.InsertBook(t, db, "C", "c", "Fantasy", 2002, 4)
	testutil.InsertInteraction(t, db, userID, b1, models.StatusComplete)
	testutil.InsertInteraction(t, db, userID, b2, models.StatusReading)
	testutil.InsertInteraction(t, db, userID, b3, models.StatusWishlist)

	stats, err := s.CountByStatus(userID)
	if err != nil {
		t.Fatalf("CountByStatus failed: %v", err)
	}
	if stats.ReadCount != 1 || stats.ReadingCount != 1 || stats.WishlistCount != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestReadingListStore_RecentCompleted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)
	userID, _ := setupUserAndBook(t, db, s)

	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	b1 := testutil.InsertBook(t, db, "Old Finish", "a", "Fantasy", 2000, 4)
	b2 := testutil.InsertBook(t, db, "New Finish", "b", "Fantasy", 2001, 4)
	b3 := testutil.InsertBook(t, db, "Still Reading", "c", "Fantasy", 2002, 4)
	i1 := testutil.InsertInteraction(t, db, userID, b1, models.StatusComplete)
	i2 := testutil.InsertInteraction(t, db, userID, b2, models.StatusComplete)
	testutil.InsertInteraction(t, db, userID, b3, models.StatusReading)
	testutil.SetInteractionDates(t, db, i1, nil, &older)
	testutil.SetInteractionDates(t, db, i2, nil, &newer)

	recent, err := s.RecentCompleted(userID, 5)
	if err != nil {
		t.Fatalf("RecentCompleted failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 completed books, got %d", len(recent))
	}
	if recent[0].Book.Title != "New Finish" {
		t.Errorf("Expected most recent finish first, got '%s'", recent[0].Book.Title)
	}
}
