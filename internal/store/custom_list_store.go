package store

import (
	"database/sql"
	"time"

	"github.com/bookbuddy/bookbuddy-go/internal/models"
)

// ListCustomLists returns the user's curated lists, newest first, each with
// its books in display order.
func (s *Store) ListCustomLists(userID int64) ([]*models.CustomList, error) {
	rows, err := s.db.Query(
		"SELECT id, user_id, name, created_at, updated_at FROM custom_lists WHERE user_id = ? ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := []*models.CustomList{}
	for rows.Next() {
		var l models.CustomList
		if err := rows.Scan(&l.ID, &l.UserID, &l.Name, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, l := range lists {
		books, err := s.customListBooks(l.ID)
		if err != nil {
			return nil, err
		}
		l.Books = books
	}
	return lists, nil
}

// GetCustomList fetches one list, scoped to its owner.
func (s *Store) GetCustomList(id, userID int64) (*models.CustomList, error) {
	var l models.CustomList
	err := s.db.QueryRow(
		"SELECT id, user_id, name, created_at, updated_at FROM custom_lists WHERE id = ? AND user_id = ?",
		id, userID).Scan(&l.ID, &l.UserID, &l.Name, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	books, err := s.customListBooks(l.ID)
	if err != nil {
		return nil, err
	}
	l.Books = books
	return &l, nil
}

func (s *Store) customListBooks(listID int64) ([]*models.Book, error) {
	query := `
		SELECT ` + prefixedBookColumns("b") + `
		FROM custom_list_books clb JOIN books b ON clb.book_id = b.id
		WHERE clb.list_id = ?
		ORDER BY clb.position ASC`
	return s.listBooks(query, listID)
}

// CreateCustomList creates a named list with an initial ordered set of
// books. A reused name for the same user returns ErrDuplicate.
func (s *Store) CreateCustomList(userID int64, name string, bookIDs []int64) (*models.CustomList, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO custom_lists (user_id, name, created_at, updated_at) VALUES (?, ?, ?, ?)",
		userID, name, time.Now(), time.Now())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	id, _ := res.LastInsertId()
	if err := replaceListBooks(tx, id, bookIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.GetCustomList(id, userID)
}

// UpdateCustomList renames a list and replaces its book membership.
func (s *Store) UpdateCustomList(id, userID int64, name string, bookIDs []int64) (*models.CustomList, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"UPDATE custom_lists SET name = ?, updated_at = ? WHERE id = ? AND user_id = ?",
		name, time.Now(), id, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, sql.ErrNoRows
	}
	if err := replaceListBooks(tx, id, bookIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.GetCustomList(id, userID)
}

func replaceListBooks(tx *sql.Tx, listID int64, bookIDs []int64) error {
	if _, err := tx.Exec("DELETE FROM custom_list_books WHERE list_id = ?", listID); err != nil {
		return err
	}
	stmt, err := tx.Prepare("INSERT INTO custom_list_books (list_id, position, book_id) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, bookID := range bookIDs {
		if _, err := stmt.Exec(listID, i, bookID); err != nil {
			return err
		}
	}
	return nil
}

// DeleteCustomList removes a list, scoped to its owner.
func (s *Store) DeleteCustomList(id, userID int64) error {
	res, err := s.db.Exec("DELETE FROM custom_lists WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
