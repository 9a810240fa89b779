package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bookbuddy/bookbuddy-go/internal/store"
)

func (s *Server) handleGetCustomLists(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	lists, err := s.store.ListCustomLists(user.ID)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve lists")
		return
	}
	RespondWithJSON(w, http.StatusOK, lists)
}

func (s *Server) handleCreateCustomList(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	var payload struct {
		Name    string  `json:"name"`
		BookIDs []int64 `json:"book_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Name == "" {
		RespondWithError(w, http.StatusBadRequest, "List name is required")
		return
	}

	list, err := s.store.CreateCustomList(user.ID, payload.Name, payload.BookIDs)
	if err != nil {
		if err == store.ErrDuplicate {
			RespondWithError(w, http.StatusConflict, "A list with that name already exists")
			return
		}
		RespondWithError(w, http.StatusInternalServerError, "Failed to create list")
		return
	}
	RespondWithJSON(w, http.StatusCreated, list)
}

func (s *Server) handleUpdateCustomList(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	listID, _ := strconv.ParseInt(chi.URLParam(r, "listID"), 10, 64)

	var payload struct {
		Name    string  `json:"name"`
		BookIDs []int64 `json:"book_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Name == "" {
		RespondWithError(w, http.StatusBadRequest, "List name is required")
		return
	}

	list, err := s.store.UpdateCustomList(listID, user.ID, payload.Name, payload.BookIDs)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			RespondWithError(w, http.StatusNotFound, "List not found")
		case store.ErrDuplicate:
			RespondWithError(w, http.StatusConflict, "A list with that name already exists")
		default:
			RespondWithError(w, http.StatusInternalServerError, "Failed to update list")
		}
		return
	}
	RespondWithJSON(w, http.StatusOK, list)
}

func (s *Server) handleDeleteCustomList(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	listID, _ := strconv.ParseInt(chi.URLParam(r, "listID"), 10, 64)

	if err := s.store.DeleteCustomList(listID, user.ID); err != nil {
		if err == sql.ErrNoRows {
			RespondWithError(w, http.StatusNotFound, "List not found")
			return
		}
		RespondWithError(w, http.StatusInternalServerError, "Failed to delete list")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "List deleted"})
}
