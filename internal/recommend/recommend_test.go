package recommend

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/bookbuddy/bookbuddy-go/internal/models"
)

// MockStore is a mock implementation of the Store interface.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) InteractionGenres(userID int64) ([]string, error) {
	args := m.Called(userID)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStore) InteractionBookIDs(userID int64) ([]int64, error) {
	args := m.Called(userID)
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockStore) BooksByGenres(genres []string, exclude []int64, limit int) ([]*models.Book, error) {
	args := m.Called(genres, exclude, limit)
	return args.Get(0).([]*models.Book), args.Error(1)
}

func (m *MockStore) NewestBooks(exclude []int64, limit int) ([]*models.Book, error) {
	args := m.Called(exclude, limit)
	return args.Get(0).([]*models.Book), args.Error(1)
}

func (m *MockStore) CachedRecommendations(userID int64) ([]*models.Book, time.Time, bool, error) {
	args := m.Called(userID)
	return args.Get(0).([]*models.Book), args.Get(1).(time.Time), args.Bool(2), args.Error(3)
}

func (m *MockStore) SaveRecommendations(userID int64, bookIDs []int64, computedAt time.Time) error {
	args := m.Called(userID, bookIDs, computedAt)
	return args.Error(0)
}

func books(ids ...int64) []*models.Book {
	result := make([]*models.Book, len(ids))
	for i, id := range ids {
		result[i] = &models.Book{ID: id}
	}
	return result
}

func TestFavoriteGenres(t *testing.T) {
	testCases := []struct {
		name   string
		genres []string
		want   []string
	}{
		{
			name:   "No Interactions",
			genres: []string{},
			want:   []string{},
		},
		{
			name:   "Single Genre",
			genres: []string{"Fantasy"},
			want:   []string{"Fantasy"},
		},
		{
			name:   "Ranked By Frequency",
			genres: []string{"SciFi", "Fantasy", "SciFi"},
			want:   []string{"SciFi", "Fantasy"},
		},
		{
			name:   "Ties Broken Alphabetically",
			genres: []string{"Mystery", "Fantasy", "Horror"},
			want:   []string{"Fantasy", "Horror", "Mystery"},
		},
		{
			name:   "At Most Three",
			genres: []string{"A", "A", "A", "B", "B", "C", "C", "D"},
			want:   []string{"A", "B", "C"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := FavoriteGenres(tc.genres)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("FavoriteGenres(%v) = %v, want %v", tc.genres, got, tc.want)
			}
		})
	}
}

func TestRecommendationsCacheHit(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	mockStore := new(MockStore)
	svc := NewService(mockStore, 24*time.Hour)
	svc.now = func() time.Time { return now }

	cached := books(1, 2, 3)
	// Cached one hour ago, well inside the freshness window.
	mockStore.On("CachedRecommendations", int64(7)).Return(cached, now.Add(-time.Hour), true, nil)

	got, err := svc.Recommendations(7)
	if err != nil {
		t.Fatalf("Recommendations returned error: %v", err)
	}
	if !reflect.DeepEqual(got, cached) {
		t.Errorf("Expected cached books to be returned, got %v", got)
	}
	// A cache hit must not touch the pipeline or write anything back.
	mockStore.AssertNotCalled(t, "InteractionGenres", mock.Anything)
	mockStore.AssertNotCalled(t, "SaveRecommendations", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecommendationsExpiredCacheRecomputes(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	mockStore := new(MockStore)
	svc := NewService(mockStore, 24*time.Hour)
	svc.now = func() time.Time { return now }

	stale := books(99)
	fresh := books(4, 5)
	// The entry still exists but is 25 hours old.
	mockStore.On("CachedRecommendations", int64(7)).Return(stale, now.Add(-25*time.Hour), true, nil)
	mockStore.On("InteractionGenres", int64(7)).Return([]string{"Fantasy"}, nil)
	mockStore.On("InteractionBookIDs", int64(7)).Return([]int64{1}, nil)
	mockStore.On("BooksByGenres", []string{"Fantasy"}, []int64{1}, MaxResults).Return(fresh, nil)
	mockStore.On("SaveRecommendations", int64(7), []int64{4, 5}, now).Return(nil)

	got, err := svc.Recommendations(7)
	if err != nil {
		t.Fatalf("Recommendations returned error: %v", err)
	}
	if !reflect.DeepEqual(got, fresh) {
		t.Errorf("Expected recomputed books, got %v", got)
	}
	mockStore.AssertExpectations(t)
}

func TestRecommendationsColdStart(t *testing.T) {
	mockStore := new(MockStore)
	svc := NewService(mockStore, 24*time.Hour)

	newest := books(10, 11)
	mockStore.On("CachedRecommendations", int64(3)).Return([]*models.Book(nil), time.Time{}, false, nil)
	mockStore.On("InteractionGenres", int64(3)).Return([]string{}, nil)
	mockStore.On("InteractionBookIDs", int64(3)).Return([]int64{}, nil)
	mockStore.On("NewestBooks", []int64{}, MaxResults).Return(newest, nil)
	mockStore.On("SaveRecommendations", int64(3), []int64{10, 11}, mock.Anything).Return(nil)

	got, err := svc.Recommendations(3)
	if err != nil {
		t.Fatalf("Recommendations returned error: %v", err)
	}
	if !reflect.DeepEqual(got, newest) {
		t.Errorf("Expected newest books for a user with no history, got %v", got)
	}
	// The genre policy must not run when the profile is empty.
	mockStore.AssertNotCalled(t, "BooksByGenres", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecommendationsEmptyResultNotCached(t *testing.T) {
	mockStore := new(MockStore)
	svc := NewService(mockStore, 24*time.Hour)

	mockStore.On("CachedRecommendations", int64(5)).Return([]*models.Book(nil), time.Time{}, false, nil)
	mockStore.On("InteractionGenres", int64(5)).Return([]string{"Romance"}, nil)
	mockStore.On("InteractionBookIDs", int64(5)).Return([]int64{1, 2}, nil)
	mockStore.On("BooksByGenres", []string{"Romance"}, []int64{1, 2}, MaxResults).Return([]*models.Book{}, nil)

	got, err := svc.Recommendations(5)
	if err != nil {
		t.Fatalf("Recommendations returned error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected empty result, got %v", got)
	}
	mockStore.AssertNotCalled(t, "SaveRecommendations", mock.Anything, mock.Anything, mock.Anything)
}
