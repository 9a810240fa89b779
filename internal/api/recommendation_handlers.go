package api

import "net/http"

// handleGetRecommendations returns up to ten personalized book picks for the
// logged-in user. Results are served from the per-user cache while fresh and
// recomputed from the user's reading history once the cache expires.
func (s *Server) handleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	books, err := s.recs.Recommendations(user.ID)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to compute recommendations")
		return
	}
	RespondWithJSON(w, http.StatusOK, books)
}
