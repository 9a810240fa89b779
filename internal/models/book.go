package models

import "time"

// Book represents a single book in the catalog. Books imported from an
// external catalog carry their origin in ExternalID and Source.
type Book struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Genre           string    `json:"genre"`
	Description     string    `json:"description"`
	PublicationYear *int      `json:"publication_year,omitempty"`
	CoverImage      string    `json:"cover_image"`
	ExternalID      *string   `json:"external_id,omitempty"`
	Source          string    `json:"source"` // "local" or "gutendex"
	AverageRating   float64   `json:"average_rating"`
	TotalRatings    int       `json:"total_ratings"`
	CreatedAt       time.Time `json:"created_at"`
}

// ExternalBook is a search hit from the external public-domain catalog,
// before it has been imported into the local books table.
type ExternalBook struct {
	ExternalID      string `json:"external_id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Genre           string `json:"genre"`
	PublicationYear *int   `json:"publication_year,omitempty"`
	CoverImage      string `json:"cover_image"`
}
