package store

import (
	"database/sql"
	"time"

	"github.com/bookbuddy/bookbuddy-go/internal/models"
)

func scanReview(row interface{ Scan(...interface{}) error }) (*models.Review, error) {
	var r models.Review
	err := row.Scan(&r.ID, &r.UserID, &r.BookID, &r.Rating, &r.ReviewText, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.Likes = []int64{}
	return &r, nil
}

const reviewColumns = "id, user_id, book_id, rating, review_text, created_at, updated_at"

// UpsertReview creates the user's review for a book, or replaces the rating
// and text of an existing one. The second return value reports whether a new
// review was created.
func (s *Store) UpsertReview(userID, bookID int64, rating int, text string) (*models.Review, bool, error) {
	var existingID int64
	err := s.db.QueryRow("SELECT id FROM reviews WHERE user_id = ? AND book_id = ?", userID, bookID).Scan(&existingID)
	if err == sql.ErrNoRows {
		res, err := s.db.Exec(
			"INSERT INTO reviews (user_id, book_id, rating, review_text, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			userID, bookID, rating, text, time.Now(), time.Now())
		if err != nil {
			return nil, false, err
		}
		id, _ := res.LastInsertId()
		review, err := s.GetReviewByID(id)
		return review, true, err
	}
	if err != nil {
		return nil, false, err
	}

	_, err = s.db.Exec("UPDATE reviews SET rating = ?, review_text = ?, updated_at = ? WHERE id = ?",
		rating, text, time.Now(), existingID)
	if err != nil {
		return nil, false, err
	}
	review, err := s.GetReviewByID(existingID)
	return review, false, err
}

// GetReviewByID fetches a single review with its likes.
func (s *Store) GetReviewByID(id int64) (*models.Review, error) {
	review, err := scanReview(s.db.QueryRow("SELECT "+reviewColumns+" FROM reviews WHERE id = ?", id))
	if err != nil {
		return nil, err
	}
	likes, err := s.reviewLikes(id)
	if err != nil {
		return nil, err
	}
	review.Likes = likes
	return review, nil
}

func (s *Store) reviewLikes(reviewID int64) ([]int64, error) {
	rows, err := s.db.Query("SELECT user_id FROM review_likes WHERE review_id = ?", reviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	likes := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		likes = append(likes, id)
	}
	return likes, rows.Err()
}

// ReviewsForBook returns every review of a book with the reviewer's name and
// avatar joined in.
func (s *Store) ReviewsForBook(bookID int64) ([]*models.Review, error) {
	query := `
		SELECT r.id, r.user_id, r.book_id, r.rating, r.review_text, r.created_at, r.updated_at,
			u.name, u.avatar
		FROM reviews r JOIN users u ON r.user_id = u.id
		WHERE r.book_id = ?
		ORDER BY r.created_at DESC`
	rows, err := s.db.Query(query, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []*models.Review{}
	for rows.Next() {
		var r models.Review
		var u models.UserSummary
		err := rows.Scan(&r.ID, &r.UserID, &r.BookID, &r.Rating, &r.ReviewText, &r.CreatedAt, &r.UpdatedAt, &u.Name, &u.Avatar)
		if err != nil {
			return nil, err
		}
		u.ID = r.UserID
		r.User = &u
		r.Likes = []int64{}
		reviews = append(reviews, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, s.attachLikes(reviews)
}

// ReviewsByUser returns the user's reviews with each book joined in.
func (s *Store) ReviewsByUser(userID int64) ([]*models.Review, error) {
	rows, err := s.db.Query(
		"SELECT "+reviewColumns+" FROM reviews WHERE user_id = ? ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []*models.Review{}
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, r := range reviews {
		book, err := s.GetBookByID(r.BookID)
		if err != nil {
			return nil, err
		}
		r.Book = book
	}
	return reviews, s.attachLikes(reviews)
}

func (s *Store) attachLikes(reviews []*models.Review) error {
	if len(reviews) == 0 {
		return nil
	}
	byID := make(map[int64]*models.Review, len(reviews))
	args := make([]interface{}, len(reviews))
	for i, r := range reviews {
		byID[r.ID] = r
		args[i] = r.ID
	}
	rows, err := s.db.Query(
		"SELECT review_id, user_id FROM review_likes WHERE review_id IN ("+placeholders(len(args))+")", args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var reviewID, userID int64
		if err := rows.Scan(&reviewID, &userID); err != nil {
			return err
		}
		byID[reviewID].Likes = append(byID[reviewID].Likes, userID)
	}
	return rows.Err()
}

// UpdateReview updates a review's rating and text, scoped to its owner.
func (s *Store) UpdateReview(id, userID int64, rating int, text string) (*models.Review, error) {
	res, err := s.db.Exec(
		"UPDATE reviews SET rating = ?, review_text = ?, updated_at = ? WHERE id = ? AND user_id = ?",
		rating, text, time.Now(), id, userID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, sql.ErrNoRows
	}
	return s.GetReviewByID(id)
}

// DeleteReview removes a review, scoped to its owner.
func (s *Store) DeleteReview(id, userID int64) error {
	res, err := s.db.Exec("DELETE FROM reviews WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ToggleLike likes the review on behalf of the user, or removes the like if
// it already exists. It returns the updated list of liker ids.
func (s *Store) ToggleLike(reviewID, userID int64) ([]int64, error) {
	// The review must exist before a like can be toggled.
	var exists int64
	if err := s.db.QueryRow("SELECT id FROM reviews WHERE id = ?", reviewID).Scan(&exists); err != nil {
		return nil, err
	}

	res, err := s.db.Exec("DELETE FROM review_likes WHERE review_id = ? AND user_id = ?", reviewID, userID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Nothing deleted, so this is a like rather than an unlike.
		_, err = s.db.Exec("INSERT INTO review_likes (review_id, user_id) VALUES (?, ?)", reviewID, userID)
		if err != nil {
			return nil, err
		}
	}
	return s.reviewLikes(reviewID)
}

// ReviewRatings returns the raw rating values of every review the user has
// written. The analytics aggregator computes the mean itself.
func (s *Store) ReviewRatings(userID int64) ([]int, error) {
	rows, err := s.db.Query("SELECT rating FROM reviews WHERE user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ratings := []int{}
	for rows.Next() {
		var r int
		if err := rows.Scan(&r); err != nil {
			return nil, err
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}
