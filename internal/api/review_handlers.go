package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleGetReviewsForBook(w http.ResponseWriter, r *http.Request) {
	bookID, _ := strconv.ParseInt(chi.URLParam(r, "bookID"), 10, 64)
	reviews, err := s.store.ReviewsForBook(bookID)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}
	RespondWithJSON(w, http.StatusOK, reviews)
}

func (s *Server) handleGetUserReviews(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	reviews, err := s.store.ReviewsByUser(user.ID)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}
	RespondWithJSON(w, http.StatusOK, reviews)
}

func (s *Server) handleCreateOrUpdateReview(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	var payload struct {
		BookID     int64  `json:"book_id"`
		Rating     int    `json:"rating"`
		ReviewText string `json:"review_text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Rating < 1 || payload.Rating > 5 {
		RespondWithError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}
	if _, err := s.store.GetBookByID(payload.BookID); err != nil {
		RespondWithError(w, http.StatusNotFound, "Book not found")
		return
	}

	review, created, err := s.store.UpsertReview(user.ID, payload.BookID, payload.Rating, payload.ReviewText)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to save review")
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	RespondWithJSON(w, status, review)
}

func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	reviewID, _ := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)

	var payload struct {
		Rating     int    `json:"rating"`
		ReviewText string `json:"review_text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Rating < 1 || payload.Rating > 5 {
		RespondWithError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	review, err := s.store.UpdateReview(reviewID, user.ID, payload.Rating, payload.ReviewText)
	if err != nil {
		if err == sql.ErrNoRows {
			RespondWithError(w, http.StatusNotFound, "Review not found")
			return
		}
		RespondWithError(w, http.StatusInternalServerError, "Failed to update review")
		return
	}
	RespondWithJSON(w, http.StatusOK, review)
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	reviewID, _ := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)

	if err := s.store.DeleteReview(reviewID, user.ID); err != nil {
		if err == sql.ErrNoRows {
			RespondWithError(w, http.StatusNotFound, "Review not found")
			return
		}
		RespondWithError(w, http.StatusInternalServerError, "Failed to delete review")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Review deleted"})
}

func (s *Server) handleLikeReview(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	reviewID, _ := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)

	likes, err := s.store.ToggleLike(reviewID, user.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			RespondWithError(w, http.StatusNotFound, "Review not found")
			return
		}
		RespondWithError(w, http.StatusInternalServerError, "Failed to update like")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]interface{}{"likes": likes})
}
