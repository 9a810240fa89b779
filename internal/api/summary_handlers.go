package api

import (
	"encoding/json"
	"net/http"
)

// handleGetBookSummary asks the configured language model for a short spoiler
// free description of a book. Returns 503 when no API key is configured.
func (s *Server) handleGetBookSummary(w http.ResponseWriter, r *http.Request) {
	if !s.summarizer.Available() {
		RespondWithError(w, http.StatusServiceUnavailable, "AI summaries are not configured")
		return
	}

	var payload struct {
		Title  string `json:"title"`
		Author string `json:"author"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Title == "" {
		RespondWithError(w, http.StatusBadRequest, "Title is required")
		return
	}

	text, err := s.summarizer.Summarize(r.Context(), payload.Title, payload.Author)
	if err != nil {
		RespondWithError(w, http.StatusBadGateway, "Failed to generate summary")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"summary": text})
}
