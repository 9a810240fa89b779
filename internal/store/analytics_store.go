package store

import (
	"database/sql"

	"github.com/bookbuddy/bookbuddy-go/internal/models"
)

// InteractionsForUser returns the user's full interaction log with each
// book's genre already joined in. The analytics aggregations are computed
// over this flattened view and never see the join.
func (s *Store) InteractionsForUser(userID int64) ([]*models.Interaction, error) {
	query := `
		SELECT rl.book_id, rl.status, b.genre, rl.start_date, rl.finish_date
		FROM reading_list rl JOIN books b ON rl.book_id = b.id
		WHERE rl.user_id = ?`
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	interactions := []*models.Interaction{}
	for rows.Next() {
		var in models.Interaction
		var start, finish sql.NullTime
		if err := rows.Scan(&in.BookID, &in.Status, &in.Genre, &start, &finish); err != nil {
			return nil, err
		}
		if start.Valid {
			in.StartDate = &start.Time
		}
		if finish.Valid {
			in.FinishDate = &finish.Time
		}
		interactions = append(interactions, &in)
	}
	return interactions, rows.Err()
}
