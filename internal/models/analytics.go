package models

import "time"

// Interaction is the flattened view of a reading list row the analytics and
// recommendation pipelines consume: status, the two optional dates, and the
// genre of the joined book. The join is performed by the store; consumers
// never see how it happened.
type Interaction struct {
	BookID     int64
	Status     string
	Genre      string
	StartDate  *time.Time
	FinishDate *time.Time
}

// MonthCount is one bucket of the monthly completions chart, e.g.
// {Name: "Jan 2024", Count: 3}. Months with zero completions are omitted.
type MonthCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// GenreCount is one slice of the genre distribution chart.
type GenreCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// AnalyticsSummary combines every per-user aggregate the analytics endpoint
// returns. Zero values are the defined defaults for absent data, never null.
type AnalyticsSummary struct {
	BooksPerMonth     []MonthCount `json:"booksPerMonth"`
	GenreDistribution []GenreCount `json:"genreDistribution"`
	AverageRating     float64      `json:"averageRating"`
	TotalReviews      int          `json:"totalReviews"`
	TotalRead         int          `json:"totalRead"`
	AvgDaysToFinish   int          `json:"avgDaysToFinish"`
	CompletionRate    int          `json:"completionRate"`
	DropOffRate       int          `json:"dropOffRate"`
}
