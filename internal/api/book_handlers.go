package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bookbuddy/bookbuddy-go/internal/models"
)

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	genre := r.URL.Query().Get("genre")

	var year *int
	if yearParam := r.URL.Query().Get("year"); yearParam != "" {
		y, err := strconv.Atoi(yearParam)
		if err != nil {
			RespondWithError(w, http.StatusBadRequest, "Invalid year filter")
			return
		}
		year = &y
	}

	books, err := s.store.ListBooks(search, genre, year)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve books")
		return
	}
	RespondWithJSON(w, http.StatusOK, books)
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	bookID, _ := strconv.ParseInt(chi.URLParam(r, "bookID"), 10, 64)
	book, err := s.store.GetBookByID(bookID)
	if err != nil {
		RespondWithError(w, http.StatusNotFound, "Book not found")
		return
	}
	RespondWithJSON(w, http.StatusOK, book)
}

func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title           string `json:"title"`
		Author          string `json:"author"`
		Genre           string `json:"genre"`
		Description     string `json:"description"`
		PublicationYear *int   `json:"publication_year"`
		CoverImage      string `json:"cover_image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Title == "" || payload.Author == "" || payload.Genre == "" {
		RespondWithError(w, http.StatusBadRequest, "Title, author, and genre are required")
		return
	}

	book, err := s.store.CreateBook(&models.Book{
		Title:           payload.Title,
		Author:          payload.Author,
		Genre:           payload.Genre,
		Description:     payload.Description,
		PublicationYear: payload.PublicationYear,
		CoverImage:      payload.CoverImage,
	})
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to create book")
		return
	}
	RespondWithJSON(w, http.StatusCreated, book)
}

func (s *Server) handleSearchExternalBooks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("search")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	result, err := s.catalog.Search(query, page)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to fetch data from external book service")
		return
	}
	RespondWithJSON(w, http.StatusOK, result)
}

func (s *Server) handleImportExternalBook(w http.ResponseWriter, r *http.Request) {
	var payload models.ExternalBook
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.ExternalID == "" || payload.Title == "" {
		RespondWithError(w, http.StatusBadRequest, "External id and title are required")
		return
	}

	book, err := s.store.ImportExternalBook(&payload)
	if err != nil && err != sql.ErrNoRows {
		RespondWithError(w, http.StatusInternalServerError, "Failed to import book")
		return
	}
	RespondWithJSON(w, http.StatusCreated, book)
}
