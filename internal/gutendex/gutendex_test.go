package gutendex_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bookbuddy/bookbuddy-go/internal/gutendex"
)

const stubResponse = `{
	"count": 2,
	"results": [
		{
			"id": 84,
			"title": "Frankenstein",
			"authors": [{"name": "Shelley, Mary"}],
			"subjects": ["Horror tales", "Science fiction"],
			"formats": {"image/jpeg": "https://example.com/84.jpg"}
		},
		{
			"id": 1342,
			"title": "Pride and Prejudice",
			"authors": [],
			"subjects": [],
			"formats": {}
		}
	]
}`

func TestSearch(t *testing.T) {
	var gotQuery string
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(stubResponse))
	}))
	defer stub.Close()

	client := gutendex.NewWithBaseURL(stub.URL)
	result, err := client.Search("frankenstein", 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if gotQuery != "search=frankenstein" {
		t.Errorf("Unexpected query sent to API: %s", gotQuery)
	}
	if result.Count != 2 {
		t.Errorf("Expected count 2, got %d", result.Count)
	}
	if len(result.Books) != 2 {
		t.Fatalf("Expected 2 books, got %d", len(result.Books))
	}

	first := result.Books[0]
	if first.ExternalID != "84" || first.Title != "Frankenstein" {
		t.Errorf("First hit mapped incorrectly: %+v", first)
	}
	if first.Author != "Shelley, Mary" {
		t.Errorf("Expected first author, got '%s'", first.Author)
	}
	if first.Genre != "Horror tales" {
		t.Errorf("Expected first subject as genre, got '%s'", first.Genre)
	}
	if first.CoverImage != "https://example.com/84.jpg" {
		t.Errorf("Expected jpeg format as cover, got '%s'", first.CoverImage)
	}

	// Hits without authors or subjects fall back to defaults.
	second := result.Books[1]
	if second.Author != "Unknown Author" {
		t.Errorf("Expected author fallback, got '%s'", second.Author)
	}
	if second.Genre != "" || second.CoverImage != "" {
		t.Errorf("Expected empty genre and cover, got %+v", second)
	}
}

func TestSearchPagination(t *testing.T) {
	var gotQuery string
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"count": 0, "results": []}`))
	}))
	defer stub.Close()

	client := gutendex.NewWithBaseURL(stub.URL)
	if _, err := client.Search("", 3); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if gotQuery != "page=3" {
		t.Errorf("Expected page parameter only, got '%s'", gotQuery)
	}
}

func TestSearchUpstreamError(t *testing.T) {
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer stub.Close()

	client := gutendex.NewWithBaseURL(stub.URL)
	if _, err := client.Search("anything", 1); err == nil {
		t.Fatal("Expected error for upstream failure, got nil")
	}
}
