package store

import (
	"database/sql"
	"time"

	"github.com/bookbuddy/bookbuddy-go/internal/models"
)

// InteractionGenres returns the genre of every book on the user's reading
// list, one entry per interaction regardless of status. Books without a
// genre are skipped.
func (s *Store) InteractionGenres(userID int64) ([]string, error) {
	query := `
		SELECT b.genre
		FROM reading_list rl JOIN books b ON rl.book_id = b.id
		WHERE rl.user_id = ? AND b.genre != ''`
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := []string{}
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// InteractionBookIDs returns the id of every book the user has any reading
// list entry for, in any status. These are the books recommendations must
// never contain.
func (s *Store) InteractionBookIDs(userID int64) ([]int64, error) {
	rows, err := s.db.Query("SELECT book_id FROM reading_list WHERE user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// BooksByGenres returns the highest-rated books in any of the given genres,
// excluding the given book ids.
func (s *Store) BooksByGenres(genres []string, exclude []int64, limit int) ([]*models.Book, error) {
	if len(genres) == 0 {
		return []*models.Book{}, nil
	}
	query := "SELECT " + bookColumns + " FROM books WHERE genre IN (" + placeholders(len(genres)) + ")"
	args := make([]interface{}, 0, len(genres)+len(exclude)+1)
	for _, g := range genres {
		args = append(args, g)
	}
	if len(exclude) > 0 {
		query += " AND id NOT IN (" + placeholders(len(exclude)) + ")"
		for _, id := range exclude {
			args = append(args, id)
		}
	}
	query += " ORDER BY average_rating DESC LIMIT ?"
	args = append(args, limit)
	return s.listBooks(query, args...)
}

// NewestBooks returns the most recently published books, excluding the given
// book ids. Books without a publication year sort last.
func (s *Store) NewestBooks(exclude []int64, limit int) ([]*models.Book, error) {
	query := "SELECT " + bookColumns + " FROM books"
	args := make([]interface{}, 0, len(exclude)+1)
	if len(exclude) > 0 {
		query += " WHERE id NOT IN (" + placeholders(len(exclude)) + ")"
		for _, id := range exclude {
			args = append(args, id)
		}
	}
	query += " ORDER BY publication_year DESC LIMIT ?"
	args = append(args, limit)
	return s.listBooks(query, args...)
}

// CachedRecommendations returns the user's cached recommendation list in
// display order together with the time it was computed. The second return
// value is false when no cache entry exists; freshness is the caller's call.
func (s *Store) CachedRecommendations(userID int64) ([]*models.Book, time.Time, bool, error) {
	var lastUpdated time.Time
	err := s.db.QueryRow("SELECT last_updated FROM recommendation_cache WHERE user_id = ?", userID).Scan(&lastUpdated)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, false, err
	}

	query := `
		SELECT ` + prefixedBookColumns("b") + `
		FROM recommendation_cache_books rcb JOIN books b ON rcb.book_id = b.id
		WHERE rcb.user_id = ?
		ORDER BY rcb.position ASC`
	books, err := s.listBooks(query, userID)
	if err != nil {
		return nil, time.Time{}, false, err
	}
	return books, lastUpdated, true, nil
}

// SaveRecommendations upserts the user's cache entry with the given ordered
// book ids, replacing any prior entry. Last write wins; there is no merge.
func (s *Store) SaveRecommendations(userID int64, bookIDs []int64, computedAt time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO recommendation_cache (user_id, last_updated) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET last_updated = excluded.last_updated`,
		userID, computedAt)
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM recommendation_cache_books WHERE user_id = ?", userID); err != nil {
		return err
	}
	stmt, err := tx.Prepare("INSERT INTO recommendation_cache_books (user_id, position, book_id) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, bookID := range bookIDs {
		if _, err := stmt.Exec(userID, i, bookID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// PruneExpiredRecommendations deletes cache entries computed before the
// cutoff. It backs the scheduled sweep that stands in for a storage-engine
// TTL; the read path applies its own freshness check either way.
func (s *Store) PruneExpiredRecommendations(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec("DELETE FROM recommendation_cache WHERE last_updated < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
