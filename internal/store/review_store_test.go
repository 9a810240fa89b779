package store_test

import (
	"database/sql"
	"testing"

	"github.com/bookbuddy/bookbuddy-go/internal/auth"
	"github.com/bookbuddy/bookbuddy-go/internal/store"
	"github.com/bookbuddy/bookbuddy-go/internal/testutil"
)

func TestReviewStore_Upsert(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)
	userID, bookID := setupUserAndBook(t, db, s)

	review, created, err := s.UpsertReview(userID, bookID, 4, "Great read.")
	if err != nil {
		t.Fatalf("UpsertReview failed: %v", err)
	}
	if !created {
		t.Error("Expected first upsert to create a review")
	}
	if review.Rating != 4 {
		t.Errorf("Expected rating 4, got %d", review.Rating)
	}

	// A second upsert for the same book replaces, never duplicates.
	updated, created, err := s.UpsertReview(userID, bookID, 5, "Even better on reread.")
	if err != nil {
		t.Fatalf("Second UpsertReview failed: %v", err)
	}
	if created {
		t.Error("Expected second upsert to update, not create")
	}
	if updated.ID != review.ID || updated.Rating != 5 {
		t.Errorf("Expected same review with rating 5, got %+v", updated)
	}

	reviews, _ := s.ReviewsForBook(bookID)
	if len(reviews) != 1 {
		t.Errorf("Expected exactly one review for the book, got %d", len(reviews))
	}
	if reviews[0].User == nil || reviews[0].User.Name != "Reader" {
		t.Errorf("Expected reviewer info joined in, got %+v", reviews[0].User)
	}
}

func TestReviewStore_UpdateAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)
	userID, bookID := setupUserAndBook(t, db, s)

	review, _, _ := s.UpsertReview(userID, bookID, 3, "ok")

	if _, err := s.UpdateReview(review.ID, userID+1, 1, "not mine"); err != sql.ErrNoRows {
		t.Errorf("Expected sql.ErrNoRows updating as wrong owner, got %v", err)
	}

	updated, err := s.UpdateReview(review.ID, userID, 2, "changed my mind")
	if err != nil {
		t.Fatalf("UpdateReview failed: %v", err)
	}
	if updated.Rating != 2 || updated.ReviewText != "changed my mind" {
		t.Errorf("Review not updated correctly: %+v", updated)
	}

	if err := s.DeleteReview(review.ID, userID); err != nil {
		t.Fatalf("DeleteReview failed: %v", err)
	}
	if err := s.DeleteReview(review.ID, userID); err != sql.ErrNoRows {
		t.Errorf("Expected sql.ErrNoRows deleting twice, got %v", err)
	}
}

func TestReviewStore_ToggleLike(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)
	userID, bookID := setupUserAndBook(t, db, s)

	passwordHash, _ := auth.HashPassword("password123")
	liker, _ := s.CreateUser("Liker", "liker@example.com", passwordHash)

	review, _, _ := s.UpsertReview(userID, bookID, 5, "loved it")

	likes, err := s.ToggleLike(review.ID, liker.ID)
	if err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}
	if len(likes) != 1 || likes[0] != liker.ID {
		t.Errorf("Expected one like from liker, got %v", likes)
	}

	// Toggling again removes the like.
	likes, err = s.ToggleLike(review.ID, liker.ID)
	if err != nil {
		t.Fatalf("Second ToggleLike failed: %v", err)
	}
	if len(likes) != 0 {
		t.Errorf("Expected like to be removed, got %v", likes)
	}

	// Liking a review that doesn't exist fails.
	if _, err := s.ToggleLike(9999, liker.ID); err != sql.ErrNoRows {
		t.Errorf("Expected sql.ErrNoRows for missing review, got %v", err)
	}
}

func TestReviewStore_ReviewRatings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)
	userID, bookID := setupUserAndBook(t, db, s)

	otherBook := testutil.InsertBook(t, db, "Other", "o", "Fantasy", 2000, 4)
	s.UpsertReview(userID, bookID, 5, "")
	s.UpsertReview(userID, otherBook, 3, "")

	ratings, err := s.ReviewRatings(userID)
	if err != nil {
		t.Fatalf("ReviewRatings failed: %v", err)
	}
	if len(ratings) != 2 {
		t.Errorf("Expected 2 ratings, got %v", ratings)
	}
}
