package api

import "net/http"

// handleGetAnalytics returns the user's reading statistics dashboard in a
// single response.
func (s *Server) handleGetAnalytics(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	summary, err := s.analytics.Summary(user.ID)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to compute analytics")
		return
	}
	RespondWithJSON(w, http.StatusOK, summary)
}
