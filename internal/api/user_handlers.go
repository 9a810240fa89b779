package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bookbuddy/bookbuddy-go/internal/images"
	"github.com/bookbuddy/bookbuddy-go/internal/models"
	"github.com/bookbuddy/bookbuddy-go/internal/store"
)

const maxAvatarUploadSize = 5 << 20 // 5 MB

func (s *Server) handleUpdateReadingGoal(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	var payload struct {
		Goal     int    `json:"goal"`
		GoalType string `json:"goal_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Goal < 0 {
		RespondWithError(w, http.StatusBadRequest, "Goal must not be negative")
		return
	}
	if payload.GoalType != "yearly" && payload.GoalType != "monthly" {
		RespondWithError(w, http.StatusBadRequest, "Goal type must be yearly or monthly")
		return
	}

	updated, err := s.store.UpdateReadingGoal(user.ID, payload.Goal, payload.GoalType)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to update reading goal")
		return
	}
	RespondWithJSON(w, http.StatusOK, updated)
}

// handleUpdateProfile accepts either a JSON body or a multipart form. The
// multipart form is used when an avatar image is uploaded alongside the
// profile fields.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var name, bio, avatar *string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxAvatarUploadSize); err != nil {
			RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		if v, ok := r.MultipartForm.Value["name"]; ok && len(v) > 0 {
			name = &v[0]
		}
		if v, ok := r.MultipartForm.Value["bio"]; ok && len(v) > 0 {
			bio = &v[0]
		}
		if file, _, err := r.FormFile("avatar"); err == nil {
			defer file.Close()
			data, err := io.ReadAll(io.LimitReader(file, maxAvatarUploadSize))
			if err != nil {
				RespondWithError(w, http.StatusBadRequest, "Failed to read avatar upload")
				return
			}
			dataURI, err := images.MakeAvatar(data)
			if err != nil {
				RespondWithError(w, http.StatusBadRequest, "Avatar must be a valid JPEG or PNG image")
				return
			}
			avatar = &dataURI
		}
	} else {
		var payload struct {
			Name *string `json:"name"`
			Bio  *string `json:"bio"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		name = payload.Name
		bio = payload.Bio
	}

	if name != nil && *name == "" {
		RespondWithError(w, http.StatusBadRequest, "Name must not be empty")
		return
	}

	updated, err := s.store.UpdateProfile(user.ID, name, bio, avatar)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	RespondWithJSON(w, http.StatusOK, updated)
}

const recentBooksLimit = 5

// handleGetUserProfile returns another user's public profile page: bio,
// follower lists, reading stats and their most recently finished books.
func (s *Server) handleGetUserProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)

	target, err := s.store.GetUserByID(userID)
	if err != nil {
		RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	followers, err := s.store.Followers(userID)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve profile")
		return
	}
	following, err := s.store.Following(userID)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve profile")
		return
	}
	stats, err := s.store.CountByStatus(userID)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve profile")
		return
	}
	recent, err := s.store.RecentCompleted(userID, recentBooksLimit)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve profile")
		return
	}

	RespondWithJSON(w, http.StatusOK, &models.PublicProfile{
		ID:          target.ID,
		Name:        target.Name,
		Bio:         target.Bio,
		Avatar:      target.Avatar,
		Followers:   followers,
		Following:   following,
		Stats:       stats,
		RecentBooks: recent,
	})
}

func (s *Server) handleFollowUser(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	targetID, _ := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)

	if targetID == user.ID {
		RespondWithError(w, http.StatusBadRequest, "You cannot follow yourself")
		return
	}
	if _, err := s.store.GetUserByID(targetID); err != nil {
		RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	if err := s.store.Follow(user.ID, targetID); err != nil {
		if err == store.ErrDuplicate {
			RespondWithError(w, http.StatusConflict, "Already following this user")
			return
		}
		RespondWithError(w, http.StatusInternalServerError, "Failed to follow user")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Now following"})
}

func (s *Server) handleUnfollowUser(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	targetID, _ := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)

	if err := s.store.Unfollow(user.ID, targetID); err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to unfollow user")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Unfollowed"})
}
