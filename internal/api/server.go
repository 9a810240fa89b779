// It defines the API server, sets up the routes (endpoints)
// using chi, and links them to the handler functions.

package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bookbuddy/bookbuddy-go/internal/analytics"
	"github.com/bookbuddy/bookbuddy-go/internal/core"
	"github.com/bookbuddy/bookbuddy-go/internal/gutendex"
	"github.com/bookbuddy/bookbuddy-go/internal/recommend"
	"github.com/bookbuddy/bookbuddy-go/internal/store"
	"github.com/bookbuddy/bookbuddy-go/internal/summary"
)

// Server holds the dependencies for our API.
type Server struct {
	app        *core.App
	db         *sql.DB
	store      *store.Store
	recs       *recommend.Service
	analytics  *analytics.Service
	catalog    *gutendex.Client
	summarizer *summary.Service
}

// Store returns the store instance.
func (s *Server) Store() *store.Store {
	return s.store
}

// SetCatalog swaps the external catalog client, used by tests to point at a
// local stub server.
func (s *Server) SetCatalog(c *gutendex.Client) {
	s.catalog = c
}

// NewServer creates a new Server instance.
func NewServer(app *core.App) *Server {
	storeInstance := store.New(app.DB)
	ttl := time.Duration(app.Config.Recommendations.TTLHours) * time.Hour
	return &Server{
		app:        app,
		db:         app.DB,
		store:      storeInstance,
		recs:       recommend.NewService(storeInstance, ttl),
		analytics:  analytics.NewService(storeInstance),
		catalog:    gutendex.New(),
		summarizer: summary.New(app.Config.OpenAIAPIKey),
	}
}

// Router sets up and returns the main router for the application.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)    // Logs requests to the console
	r.Use(middleware.Recoverer) // Recovers from panics
	r.Use(middleware.Timeout(60 * time.Second))

	// Public routes
	r.Post("/api/auth/signup", s.handleSignup)
	r.Post("/api/auth/login", s.handleLogin)
	r.Get("/api/books", s.handleListBooks)
	r.Get("/api/books/external", s.handleSearchExternalBooks)
	r.Get("/api/books/{bookID}", s.handleGetBook)
	r.Get("/api/reviews/book/{bookID}", s.handleGetReviewsForBook)

	r.Group(func(r chi.Router) {
		r.Use(s.AuthMiddleware)

		r.Post("/api/auth/logout", s.handleLogout)
		r.Get("/api/auth/me", s.handleGetMe)

		r.Route("/api", func(r chi.Router) {
			// Catalog
			r.Post("/books", s.handleCreateBook)
			r.Post("/books/import", s.handleImportExternalBook)

			// Reading List Routes
			r.Get("/reading-list", s.handleGetReadingList)
			r.Post("/reading-list", s.handleAddToReadingList)
			r.Get("/reading-list/export", s.handleExportReadingList)
			r.Put("/reading-list/{itemID}", s.handleUpdateReadingListItem)
			r.Delete("/reading-list/{itemID}", s.handleRemoveFromReadingList)
			r.Post("/reading-list/{itemID}/notes", s.handleAddNote)
			r.Delete("/reading-list/{itemID}/notes/{noteID}", s.handleDeleteNote)

			// Review Routes
			r.Post("/reviews", s.handleCreateOrUpdateReview)
			r.Get("/reviews/user", s.handleGetUserReviews)
			r.Put("/reviews/{reviewID}", s.handleUpdateReview)
			r.Delete("/reviews/{reviewID}", s.handleDeleteReview)
			r.Post("/reviews/{reviewID}/like", s.handleLikeReview)

			// Custom List Routes
			r.Get("/custom-lists", s.handleGetCustomLists)
			r.Post("/custom-lists", s.handleCreateCustomList)
			r.Put("/custom-lists/{listID}", s.handleUpdateCustomList)
			r.Delete("/custom-lists/{listID}", s.handleDeleteCustomList)

			// Recommendation and Analytics Routes
			r.Get("/recommendations", s.handleGetRecommendations)
			r.Get("/analytics", s.handleGetAnalytics)

			// User Routes
			r.Put("/users/goal", s.handleUpdateReadingGoal)
			r.Put("/users/profile", s.handleUpdateProfile)
			r.Get("/users/{userID}", s.handleGetUserProfile)
			r.Post("/users/{userID}/follow", s.handleFollowUser)
			r.Delete("/users/{userID}/follow", s.handleUnfollowUser)

			// AI Summary
			r.Post("/summary", s.handleGetBookSummary)
		})
	})

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		if err := s.db.Ping(); err != nil {
			RespondWithError(w, http.StatusServiceUnavailable, "Database connection failed")
			return
		}
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
