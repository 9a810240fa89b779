package store_test

import (
	"testing"
	"time"

	"github.com/bookbuddy/bookbuddy-go/internal/models"
	"github.com/bookbuddy/bookbuddy-go/internal/store"
	"github.com/bookbuddy/bookbuddy-go/internal/testutil"
)

func TestAnalyticsStore_InteractionsForUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)
	userID, _ := setupUserAndBook(t, db, s)

	b1 := testutil.InsertBook(t, db, "A", "a", "SciFi", 2000, 4)
	b2 := testutil.InsertBook(t, db, "B", "b", "Fantasy", 2001, 4)
	i1 := testutil.InsertInteraction(t, db, userID, b1, models.StatusComplete)
	testutil.InsertInteraction(t, db, userID, b2, models.StatusWishlist)

	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	finish := time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)
	testutil.SetInteractionDates(t, db, i1, &start, &finish)

	interactions, err := s.InteractionsForUser(userID)
	if err != nil {
		t.Fatalf("InteractionsForUser failed: %v", err)
	}
	if len(interactions) != 2 {
		t.Fatalf("Expected 2 interactions, got %d", len(interactions))
	}

	byBook := make(map[int64]*models.Interaction)
	for _, in := range interactions {
		byBook[in.BookID] = in
	}
	completed := byBook[b1]
	if completed.Genre != "SciFi" {
		t.Errorf("Expected joined genre 'SciFi', got '%s'", completed.Genre)
	}
	if completed.StartDate == nil || completed.FinishDate == nil {
		t.Fatal("Expected both dates on the completed interaction")
	}
	if !completed.FinishDate.Equal(finish) {
		t.Errorf("Expected finish date %v, got %v", finish, completed.FinishDate)
	}
	wishlisted := byBook[b2]
	if wishlisted.StartDate != nil || wishlisted.FinishDate != nil {
		t.Error("Expected nil dates on the wishlist interaction")
	}
}
