package api

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bookbuddy/bookbuddy-go/internal/models"
	"github.com/bookbuddy/bookbuddy-go/internal/store"
)

func (s *Server) handleGetReadingList(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	items, err := s.store.ListReadingList(user.ID)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reading list")
		return
	}
	RespondWithJSON(w, http.StatusOK, items)
}

func (s *Server) handleAddToReadingList(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	var payload struct {
		BookID int64  `json:"book_id"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Status == "" {
		payload.Status = models.StatusWishlist
	}
	if !models.ValidStatus(payload.Status) {
		RespondWithError(w, http.StatusBadRequest, "Invalid status")
		return
	}
	if _, err := s.store.GetBookByID(payload.BookID); err != nil {
		RespondWithError(w, http.StatusNotFound, "Book not found")
		return
	}

	item, err := s.store.AddReadingListItem(user.ID, payload.BookID, payload.Status)
	if err != nil {
		if err == store.ErrDuplicate {
			RespondWithError(w, http.StatusConflict, "Book already in your list")
			return
		}
		RespondWithError(w, http.StatusInternalServerError, "Failed to add book to reading list")
		return
	}
	RespondWithJSON(w, http.StatusCreated, item)
}

func (s *Server) handleUpdateReadingListItem(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	itemID, _ := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)

	var payload struct {
		Status     *string    `json:"status"`
		Progress   *int       `json:"progress"`
		StartDate  *time.Time `json:"start_date"`
		FinishDate *time.Time `json:"finish_date"`
		DropReason *string    `json:"drop_reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Status != nil && !models.ValidStatus(*payload.Status) {
		RespondWithError(w, http.StatusBadRequest, "Invalid status")
		return
	}
	if payload.Progress != nil && (*payload.Progress < 0 || *payload.Progress > 100) {
		RespondWithError(w, http.StatusBadRequest, "Progress must be between 0 and 100")
		return
	}

	item, err := s.store.GetReadingListItem(itemID, user.ID)
	if err != nil {
		RespondWithError(w, http.StatusNotFound, "Reading list item not found")
		return
	}

	if payload.Status != nil && *payload.Status != item.Status {
		now := time.Now()
		switch *payload.Status {
		case models.StatusReading:
			if item.StartDate == nil {
				item.StartDate = &now
			}
		case models.StatusComplete:
			if item.FinishDate == nil {
				item.FinishDate = &now
			}
			item.Progress = 100
		}
		item.Status = *payload.Status
	}
	if payload.Progress != nil {
		item.Progress = *payload.Progress
	}
	// Explicit dates in the payload win over the automatic stamps.
	if payload.StartDate != nil {
		item.StartDate = payload.StartDate
	}
	if payload.FinishDate != nil {
		item.FinishDate = payload.FinishDate
	}
	if payload.DropReason != nil {
		item.DropReason = *payload.DropReason
	}

	if err := s.store.SaveReadingListItem(item); err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to update reading list item")
		return
	}
	RespondWithJSON(w, http.StatusOK, item)
}

func (s *Server) handleRemoveFromReadingList(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	itemID, _ := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)

	if err := s.store.DeleteReadingListItem(itemID, user.ID); err != nil {
		if err == sql.ErrNoRows {
			RespondWithError(w, http.StatusNotFound, "Reading list item not found")
			return
		}
		RespondWithError(w, http.StatusInternalServerError, "Failed to remove from reading list")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Removed from reading list"})
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	itemID, _ := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)

	var payload struct {
		Text string `json:"text"`
		Page *int   `json:"page"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Text == "" {
		RespondWithError(w, http.StatusBadRequest, "Note text is required")
		return
	}

	note, err := s.store.AddNote(itemID, user.ID, payload.Text, payload.Page)
	if err != nil {
		RespondWithError(w, http.StatusNotFound, "Reading list item not found")
		return
	}
	RespondWithJSON(w, http.StatusCreated, note)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	noteID, _ := strconv.ParseInt(chi.URLParam(r, "noteID"), 10, 64)

	if err := s.store.DeleteNote(noteID, user.ID); err != nil {
		RespondWithError(w, http.StatusNotFound, "Note not found")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Note deleted"})
}

// handleExportReadingList streams the user's reading list as a CSV download.
func (s *Server) handleExportReadingList(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	items, err := s.store.ListReadingList(user.ID)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reading list")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="reading-list.csv"`)

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write([]string{"Title", "Author", "Genre", "Status", "Progress", "Start Date", "Finish Date", "Added At"})
	for _, item := range items {
		writer.Write([]string{
			item.Book.Title,
			item.Book.Author,
			item.Book.Genre,
			item.Status,
			fmt.Sprintf("%d%%", item.Progress),
			formatDate(item.StartDate),
			formatDate(item.FinishDate),
			item.AddedAt.Format("2006-01-02"),
		})
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
