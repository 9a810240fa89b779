package store

import (
	"database/sql"
	"strings"
	"time"

	"github.com/bookbuddy/bookbuddy-go/internal/models"
)

const bookColumns = `id, title, author, genre, description, publication_year,
	cover_image, external_id, source, average_rating, total_ratings, created_at`

// prefixedBookColumns returns bookColumns qualified with a table alias, for
// use in joins.
func prefixedBookColumns(alias string) string {
	cols := strings.Split(strings.ReplaceAll(bookColumns, "\n\t", " "), ", ")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}

func scanBook(row interface{ Scan(...interface{}) error }) (*models.Book, error) {
	var b models.Book
	var year sql.NullInt64
	var externalID sql.NullString
	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.Genre, &b.Description, &year,
		&b.CoverImage, &externalID, &b.Source, &b.AverageRating, &b.TotalRatings, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if year.Valid {
		y := int(year.Int64)
		b.PublicationYear = &y
	}
	if externalID.Valid {
		b.ExternalID = &externalID.String
	}
	return &b, nil
}

func (s *Store) listBooks(query string, args ...interface{}) ([]*models.Book, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []*models.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// CreateBook inserts a new local book into the catalog.
func (s *Store) CreateBook(b *models.Book) (*models.Book, error) {
	query := `
		INSERT INTO books (title, author, genre, description, publication_year, cover_image, external_id, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var year interface{}
	if b.PublicationYear != nil {
		year = *b.PublicationYear
	}
	var externalID interface{}
	if b.ExternalID != nil {
		externalID = *b.ExternalID
	}
	source := b.Source
	if source == "" {
		source = "local"
	}
	res, err := s.db.Exec(query, b.Title, b.Author, b.Genre, b.Description, year, b.CoverImage, externalID, source, time.Now())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	id, _ := res.LastInsertId()
	return s.GetBookByID(id)
}

// GetBookByID retrieves a single book by its primary key.
func (s *Store) GetBookByID(id int64) (*models.Book, error) {
	return scanBook(s.db.QueryRow("SELECT "+bookColumns+" FROM books WHERE id = ?", id))
}

// GetBookByExternalID retrieves a book previously imported from the external
// catalog.
func (s *Store) GetBookByExternalID(externalID string) (*models.Book, error) {
	return scanBook(s.db.QueryRow("SELECT "+bookColumns+" FROM books WHERE external_id = ?", externalID))
}

// ListBooks returns catalog books, newest first, optionally filtered by a
// title/author substring, an exact genre, and a publication year.
func (s *Store) ListBooks(search, genre string, year *int) ([]*models.Book, error) {
	query := "SELECT " + bookColumns + " FROM books WHERE 1=1"
	var args []interface{}
	if search != "" {
		query += " AND (title LIKE ? OR author LIKE ?)"
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	if genre != "" {
		query += " AND genre = ?"
		args = append(args, genre)
	}
	if year != nil {
		query += " AND publication_year = ?"
		args = append(args, *year)
	}
	query += " ORDER BY created_at DESC"
	return s.listBooks(query, args...)
}

// ImportExternalBook inserts a book from the external catalog, or returns
// the existing row when it was imported before.
func (s *Store) ImportExternalBook(eb *models.ExternalBook) (*models.Book, error) {
	existing, err := s.GetBookByExternalID(eb.ExternalID)
	if err == nil {
		return existing, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}
	externalID := eb.ExternalID
	return s.CreateBook(&models.Book{
		Title:           eb.Title,
		Author:          eb.Author,
		Genre:           eb.Genre,
		PublicationYear: eb.PublicationYear,
		CoverImage:      eb.CoverImage,
		ExternalID:      &externalID,
		Source:          "gutendex",
	})
}
