// Package analytics computes a user's reading statistics: monthly
// completions, genre distribution, rating stats, totals, and behavior rates.
// Everything is derived from one read of the interaction log plus the user's
// review ratings; the five aggregations themselves are pure functions.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/bookbuddy/bookbuddy-go/internal/models"
)

// Store is the slice of the data layer the aggregator needs. *store.Store
// satisfies it; tests use a mock.
type Store interface {
	InteractionsForUser(userID int64) ([]*models.Interaction, error)
	ReviewRatings(userID int64) ([]int, error)
}

// Service computes per-user analytics summaries.
type Service struct {
	store Store
}

// NewService creates an analytics service backed by the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Summary computes every aggregate for one user. A store failure fails the
// whole call; there are no partial results. Absent data is never an error:
// every aggregate has a defined zero default.
func (s *Service) Summary(userID int64) (*models.AnalyticsSummary, error) {
	interactions, err := s.store.InteractionsForUser(userID)
	if err != nil {
		return nil, err
	}
	ratings, err := s.store.ReviewRatings(userID)
	if err != nil {
		return nil, err
	}

	summary := &models.AnalyticsSummary{
		BooksPerMonth:     monthlyCompletions(interactions),
		GenreDistribution: genreDistribution(interactions),
		TotalRead:         countByStatus(interactions, models.StatusComplete),
	}
	summary.AverageRating, summary.TotalReviews = ratingStats(ratings)
	summary.CompletionRate, summary.DropOffRate, summary.AvgDaysToFinish = behaviorStats(interactions)
	return summary, nil
}

// monthlyCompletions groups completed interactions by the (year, month) of
// their finish date, ascending. Months without completions are not
// synthesized; the chart only shows months with at least one finished book.
// TODO: fill zero-count months so charts don't skip gaps.
func monthlyCompletions(interactions []*models.Interaction) []models.MonthCount {
	type bucket struct {
		year  int
		month time.Month
	}
	counts := make(map[bucket]int)
	for _, in := range interactions {
		if in.Status != models.StatusComplete || in.FinishDate == nil {
			continue
		}
		counts[bucket{in.FinishDate.Year(), in.FinishDate.Month()}]++
	}

	buckets := make([]bucket, 0, len(counts))
	for b := range counts {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].year != buckets[j].year {
			return buckets[i].year < buckets[j].year
		}
		return buckets[i].month < buckets[j].month
	})

	result := make([]models.MonthCount, 0, len(buckets))
	for _, b := range buckets {
		label := time.Date(b.year, b.month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
		result = append(result, models.MonthCount{Name: label, Count: counts[b]})
	}
	return result
}

// genreDistribution counts completed books per genre.
func genreDistribution(interactions []*models.Interaction) []models.GenreCount {
	counts := make(map[string]int)
	for _, in := range interactions {
		if in.Status == models.StatusComplete {
			counts[in.Genre]++
		}
	}

	genres := make([]string, 0, len(counts))
	for g := range counts {
		genres = append(genres, g)
	}
	sort.Strings(genres)

	result := make([]models.GenreCount, 0, len(genres))
	for _, g := range genres {
		result = append(result, models.GenreCount{Name: g, Value: counts[g]})
	}
	return result
}

// ratingStats returns the mean and count of the user's review ratings.
// Zero reviews yields 0 and 0, not NaN.
func ratingStats(ratings []int) (float64, int) {
	if len(ratings) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings)), len(ratings)
}

func countByStatus(interactions []*models.Interaction, status string) int {
	n := 0
	for _, in := range interactions {
		if in.Status == status {
			n++
		}
	}
	return n
}

// behaviorStats derives the completion rate, drop-off rate and average
// days-to-finish from a single pass over the interaction log. "Started"
// means any status beyond wishlist. Completed books missing either date are
// excluded from the days-to-finish mean entirely; they do not count as
// zero-duration reads.
func behaviorStats(interactions []*models.Interaction) (completionRate, dropOffRate, avgDays int) {
	var started, completed, dropped, durationCount int
	var totalDuration time.Duration
	for _, in := range interactions {
		switch in.Status {
		case models.StatusReading:
			started++
		case models.StatusComplete:
			started++
			completed++
			if in.StartDate != nil && in.FinishDate != nil {
				totalDuration += in.FinishDate.Sub(*in.StartDate)
				durationCount++
			}
		case models.StatusDropped:
			started++
			dropped++
		}
	}

	if started > 0 {
		completionRate = int(math.Round(float64(completed) / float64(started) * 100))
		dropOffRate = int(math.Round(float64(dropped) / float64(started) * 100))
	}
	if durationCount > 0 {
		meanDays := totalDuration.Hours() / 24 / float64(durationCount)
		avgDays = int(math.Round(meanDays))
	}
	return completionRate, dropOffRate, avgDays
}
