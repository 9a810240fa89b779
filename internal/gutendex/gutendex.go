// Package gutendex is a client for the Gutendex public-domain book catalog
// (https://gutendex.com/), used by the external book search endpoint.
package gutendex

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bookbuddy/bookbuddy-go/internal/models"
)

// Client talks to the Gutendex API.
type Client struct {
	client     *http.Client
	apiBaseURL string
}

// New creates a new Gutendex client.
func New() *Client {
	return &Client{
		client:     &http.Client{Timeout: 20 * time.Second},
		apiBaseURL: "https://gutendex.com",
	}
}

// NewWithBaseURL creates a client against a custom base URL, used in tests.
func NewWithBaseURL(baseURL string) *Client {
	c := New()
	c.apiBaseURL = baseURL
	return c
}

// SearchResult is one page of external catalog hits.
type SearchResult struct {
	Count int                    `json:"count"`
	Books []*models.ExternalBook `json:"books"`
}

type bookListResponse struct {
	Count   int `json:"count"`
	Results []struct {
		ID      int    `json:"id"`
		Title   string `json:"title"`
		Authors []struct {
			Name string `json:"name"`
		} `json:"authors"`
		Subjects []string          `json:"subjects"`
		Formats  map[string]string `json:"formats"`
	} `json:"results"`
}

// Search queries the catalog. Both parameters are optional: an empty query
// lists popular books and page 0 means the first page.
func (c *Client) Search(query string, page int) (*SearchResult, error) {
	req, err := http.NewRequest("GET", fmt.Sprintf("%s/books", c.apiBaseURL), nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	if query != "" {
		q.Add("search", query)
	}
	if page > 1 {
		q.Add("page", strconv.Itoa(page))
	}
	req.URL.RawQuery = q.Encode()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gutendex returned status %d", resp.StatusCode)
	}

	var apiResponse bookListResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, err
	}

	result := &SearchResult{Count: apiResponse.Count, Books: []*models.ExternalBook{}}
	for _, hit := range apiResponse.Results {
		author := "Unknown Author"
		if len(hit.Authors) > 0 {
			author = hit.Authors[0].Name
		}
		genre := ""
		if len(hit.Subjects) > 0 {
			genre = hit.Subjects[0]
		}
		result.Books = append(result.Books, &models.ExternalBook{
			ExternalID: strconv.Itoa(hit.ID),
			Title:      hit.Title,
			Author:     author,
			Genre:      genre,
			CoverImage: hit.Formats["image/jpeg"],
		})
	}
	return result, nil
}
