// Package recommend computes per-user book recommendations: it infers a
// taste profile from the reading list, selects candidates by one of two
// policies, and caches the result with a fixed freshness window.
package recommend

import (
	"sort"
	"time"

	"github.com/bookbuddy/bookbuddy-go/internal/models"
)

const (
	// MaxResults bounds every recommendation list.
	MaxResults = 10
	// maxFavoriteGenres bounds the taste profile.
	maxFavoriteGenres = 3
)

// Store is the slice of the data layer the recommendation pipeline needs.
// *store.Store satisfies it; tests use a mock.
type Store interface {
	InteractionGenres(userID int64) ([]string, error)
	InteractionBookIDs(userID int64) ([]int64, error)
	BooksByGenres(genres []string, exclude []int64, limit int) ([]*models.Book, error)
	NewestBooks(exclude []int64, limit int) ([]*models.Book, error)
	CachedRecommendations(userID int64) ([]*models.Book, time.Time, bool, error)
	SaveRecommendations(userID int64, bookIDs []int64, computedAt time.Time) error
}

// Service serves recommendation lists through the cache.
type Service struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

// NewService creates a recommendation service with the given cache TTL.
func NewService(store Store, ttl time.Duration) *Service {
	return &Service{store: store, ttl: ttl, now: time.Now}
}

// FavoriteGenres derives a user's taste profile from the genre of every
// book on their reading list, wishlist entries included. Genres are ranked
// by frequency, ties broken alphabetically, and at most the top three are
// returned. No interactions means an empty profile, never an error.
func FavoriteGenres(genres []string) []string {
	if len(genres) == 0 {
		return []string{}
	}

	counts := make(map[string]int)
	for _, g := range genres {
		counts[g]++
	}

	ranked := make([]string, 0, len(counts))
	for g := range counts {
		ranked = append(ranked, g)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})

	if len(ranked) > maxFavoriteGenres {
		ranked = ranked[:maxFavoriteGenres]
	}
	return ranked
}

// Recommendations returns up to MaxResults books for the user, serving the
// cached list while it is inside the freshness window and recomputing
// otherwise. A freshly computed non-empty list is written back to the cache
// before it is returned.
func (s *Service) Recommendations(userID int64) ([]*models.Book, error) {
	cached, lastUpdated, ok, err := s.store.CachedRecommendations(userID)
	if err != nil {
		return nil, err
	}
	// An entry past its TTL is a miss, even if the scheduled sweep has not
	// removed it yet.
	if ok && s.now().Sub(lastUpdated) < s.ttl {
		return cached, nil
	}

	books, err := s.compute(userID)
	if err != nil {
		return nil, err
	}

	if len(books) > 0 {
		ids := make([]int64, len(books))
		for i, b := range books {
			ids[i] = b.ID
		}
		// Concurrent misses both land here; the last write wins, which is
		// fine because both computed from the same data.
		if err := s.store.SaveRecommendations(userID, ids, s.now()); err != nil {
			return nil, err
		}
	}
	return books, nil
}

// compute runs the two-policy candidate selection. Every book the user has
// any interaction with is excluded, wishlisted and dropped books included:
// "already known to the user" is the exclusion criterion, not "already read".
func (s *Service) compute(userID int64) ([]*models.Book, error) {
	genres, err := s.store.InteractionGenres(userID)
	if err != nil {
		return nil, err
	}
	profile := FavoriteGenres(genres)

	exclude, err := s.store.InteractionBookIDs(userID)
	if err != nil {
		return nil, err
	}

	if len(profile) > 0 {
		// Content-based: top-rated books in the user's favorite genres.
		return s.store.BooksByGenres(profile, exclude, MaxResults)
	}
	// Cold start: no history to infer taste from, recommend the newest
	// books globally.
	return s.store.NewestBooks(exclude, MaxResults)
}
