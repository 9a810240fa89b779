package store

import (
	"database/sql"
	"time"

	"github.com/bookbuddy/bookbuddy-go/internal/models"
)

func scanReadingListItem(row interface{ Scan(...interface{}) error }) (*models.ReadingListItem, error) {
	var item models.ReadingListItem
	var start, finish sql.NullTime
	err := row.Scan(
		&item.ID, &item.UserID, &item.BookID, &item.Status, &item.Progress,
		&start, &finish, &item.DropReason, &item.AddedAt,
	)
	if err != nil {
		return nil, err
	}
	if start.Valid {
		item.StartDate = &start.Time
	}
	if finish.Valid {
		item.FinishDate = &finish.Time
	}
	return &item, nil
}

// ListReadingList returns every reading list item for a user, newest added
// first, with its book and notes joined in.
func (s *Store) ListReadingList(userID int64) ([]*models.ReadingListItem, error) {
	query := `
		SELECT id, user_id, book_id, status, progress, start_date, finish_date, drop_reason, added_at
		FROM reading_list
		WHERE user_id = ?
		ORDER BY added_at DESC, id DESC`
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*models.ReadingListItem{}
	byID := make(map[int64]*models.ReadingListItem)
	for rows.Next() {
		item, err := scanReadingListItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		byID[item.ID] = item
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, item := range items {
		book, err := s.GetBookByID(item.BookID)
		if err != nil {
			return nil, err
		}
		item.Book = book
	}

	// Attach notes in one pass.
	noteRows, err := s.db.Query(`
		SELECT n.id, n.item_id, n.text, n.page, n.created_at
		FROM notes n JOIN reading_list rl ON n.item_id = rl.id
		WHERE rl.user_id = ?
		ORDER BY n.created_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer noteRows.Close()
	for noteRows.Next() {
		note, err := scanNote(noteRows)
		if err != nil {
			return nil, err
		}
		if item, ok := byID[note.ItemID]; ok {
			item.Notes = append(item.Notes, note)
		}
	}
	return items, noteRows.Err()
}

// AddReadingListItem puts a book on the user's list with the given status.
// Adding the same book twice returns ErrDuplicate.
func (s *Store) AddReadingListItem(userID, bookID int64, status string) (*models.ReadingListItem, error) {
	query := `
		INSERT INTO reading_list (user_id, book_id, status, added_at)
		VALUES (?, ?, ?, ?)`
	res, err := s.db.Exec(query, userID, bookID, status, time.Now())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	id, _ := res.LastInsertId()
	return s.GetReadingListItem(id, userID)
}

// GetReadingListItem fetches one item, scoped to its owner, with the book
// joined in.
func (s *Store) GetReadingListItem(id, userID int64) (*models.ReadingListItem, error) {
	query := `
		SELECT id, user_id, book_id, status, progress, start_date, finish_date, drop_reason, added_at
		FROM reading_list WHERE id = ? AND user_id = ?`
	item, err := scanReadingListItem(s.db.QueryRow(query, id, userID))
	if err != nil {
		return nil, err
	}
	book, err := s.GetBookByID(item.BookID)
	if err != nil {
		return nil, err
	}
	item.Book = book
	return item, nil
}

// SaveReadingListItem persists the mutable fields of an item. The caller is
// expected to have loaded the item through GetReadingListItem first.
func (s *Store) SaveReadingListItem(item *models.ReadingListItem) error {
	var start, finish interface{}
	if item.StartDate != nil {
		start = *item.StartDate
	}
	if item.FinishDate != nil {
		finish = *item.FinishDate
	}
	query := `
		UPDATE reading_list
		SET status = ?, progress = ?, start_date = ?, finish_date = ?, drop_reason = ?
		WHERE id = ? AND user_id = ?`
	res, err := s.db.Exec(query, item.Status, item.Progress, start, finish, item.DropReason, item.ID, item.UserID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteReadingListItem removes an item, scoped to its owner. Cascading
// deletes take its notes with it.
func (s *Store) DeleteReadingListItem(id, userID int64) error {
	res, err := s.db.Exec("DELETE FROM reading_list WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountByStatus returns the per-status counts shown on a profile page.
func (s *Store) CountByStatus(userID int64) (models.ProfileStats, error) {
	var stats models.ProfileStats
	query := `
		SELECT
			COUNT(CASE WHEN status = 'complete' THEN 1 END),
			COUNT(CASE WHEN status = 'reading' THEN 1 END),
			COUNT(CASE WHEN status = 'wishlist' THEN 1 END)
		FROM reading_list WHERE user_id = ?`
	err := s.db.QueryRow(query, userID).Scan(&stats.ReadCount, &stats.ReadingCount, &stats.WishlistCount)
	return stats, err
}

// RecentCompleted returns the user's most recently finished books, falling
// back to the added date for completions without a finish date.
func (s *Store) RecentCompleted(userID int64, limit int) ([]*models.ReadingListItem, error) {
	query := `
		SELECT id, user_id, book_id, status, progress, start_date, finish_date, drop_reason, added_at
		FROM reading_list
		WHERE user_id = ? AND status = 'complete'
		ORDER BY COALESCE(finish_date, added_at) DESC
		LIMIT ?`
	rows, err := s.db.Query(query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*models.ReadingListItem{}
	for rows.Next() {
		item, err := scanReadingListItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, item := range items {
		book, err := s.GetBookByID(item.BookID)
		if err != nil {
			return nil, err
		}
		item.Book = book
	}
	return items, nil
}

func scanNote(row interface{ Scan(...interface{}) error }) (*models.Note, error) {
	var note models.Note
	var page sql.NullInt64
	if err := row.Scan(&note.ID, &note.ItemID, &note.Text, &page, &note.CreatedAt); err != nil {
		return nil, err
	}
	if page.Valid {
		p := int(page.Int64)
		note.Page = &p
	}
	return &note, nil
}

// AddNote attaches a note to a reading list item. The item must belong to
// the user; otherwise sql.ErrNoRows is returned.
func (s *Store) AddNote(itemID, userID int64, text string, page *int) (*models.Note, error) {
	var owner int64
	err := s.db.QueryRow("SELECT user_id FROM reading_list WHERE id = ?", itemID).Scan(&owner)
	if err != nil {
		return nil, err
	}
	if owner != userID {
		return nil, sql.ErrNoRows
	}

	var pageArg interface{}
	if page != nil {
		pageArg = *page
	}
	res, err := s.db.Exec("INSERT INTO notes (item_id, text, page, created_at) VALUES (?, ?, ?, ?)",
		itemID, text, pageArg, time.Now())
	if err != nil {
		return nil, err
	}
	id, _ := res.LastInsertId()
	return scanNote(s.db.QueryRow("SELECT id, item_id, text, page, created_at FROM notes WHERE id = ?", id))
}

// DeleteNote removes a note from one of the user's reading list items.
func (s *Store) DeleteNote(noteID, userID int64) error {
	res, err := s.db.Exec(`
		DELETE FROM notes
		WHERE id = ? AND item_id IN (SELECT id FROM reading_list WHERE user_id = ?)`,
		noteID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
