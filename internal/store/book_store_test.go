package store_test

import (
	"database/sql"
	"testing"

	"github.com/bookbuddy/bookbuddy-go/internal/models"
	"github.com/bookbuddy/bookbuddy-go/internal/store"
	"github.com/bookbuddy/bookbuddy-go/internal/testutil"
)

func TestBookStore_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)

	year := 1965
	book, err := s.CreateBook(&models.Book{
		Title:           "Dune",
		Author:          "Frank Herbert",
		Genre:           "SciFi",
		PublicationYear: &year,
	})
	if err != nil {
		t.Fatalf("CreateBook failed: %v", err)
	}
	if book.Source != "local" {
		t.Errorf("Expected default source 'local', got '%s'", book.Source)
	}

	fetched, err := s.GetBookByID(book.ID)
	if err != nil {
		t.Fatalf("GetBookByID failed: %v", err)
	}
	if fetched.Title != "Dune" || *fetched.PublicationYear != 1965 {
		t.Errorf("Fetched book does not match: %+v", fetched)
	}

	if _, err := s.GetBookByID(9999); err != sql.ErrNoRows {
		t.Errorf("Expected sql.ErrNoRows for missing book, got %v", err)
	}
}

func TestBookStore_ListFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)

	testutil.InsertBook(t, db, "Dune", "Frank Herbert", "SciFi", 1965, 4.5)
	testutil.InsertBook(t, db, "Dune Messiah", "Frank Herbert", "SciFi", 1969, 4.0)
	testutil.InsertBook(t, db, "The Hobbit", "J.R.R. Tolkien", "Fantasy", 1937, 4.8)

	t.Run("Search By Title Substring", func(t *testing.T) {
		books, err := s.ListBooks("Dune", "", nil)
		if err != nil {
			t.Fatalf("ListBooks failed: %v", err)
		}
		if len(books) != 2 {
			t.Errorf("Expected 2 books matching 'Dune', got %d", len(books))
		}
	})

	t.Run("Search By Author Substring", func(t *testing.T) {
		books, err := s.ListBooks("Tolkien", "", nil)
		if err != nil {
			t.Fatalf("ListBooks failed: %v", err)
		}
		if len(books) != 1 || books[0].Title != "The Hobbit" {
			t.Errorf("Expected The Hobbit, got %+v", books)
		}
	})

	t.Run("Filter By Genre And Year", func(t *testing.T) {
		year := 1969
		books, err := s.ListBooks("", "SciFi", &year)
		if err != nil {
			t.Fatalf("ListBooks failed: %v", err)
		}
		if len(books) != 1 || books[0].Title != "Dune Messiah" {
			t.Errorf("Expected Dune Messiah, got %+v", books)
		}
	})

	t.Run("No Filters Returns All", func(t *testing.T) {
		books, err := s.ListBooks("", "", nil)
		if err != nil {
			t.Fatalf("ListBooks failed: %v", err)
		}
		if len(books) != 3 {
			t.Errorf("Expected 3 books, got %d", len(books))
		}
	})
}

func TestBookStore_ImportExternalBook(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)

	external := &models.ExternalBook{
		ExternalID: "gutendex-84",
		Title:      "Frankenstein",
		Author:     "Mary Shelley",
		Genre:      "Horror",
	}

	book, err := s.ImportExternalBook(external)
	if err != nil {
		t.Fatalf("ImportExternalBook failed: %v", err)
	}
	if book.Source != "gutendex" {
		t.Errorf("Expected source 'gutendex', got '%s'", book.Source)
	}

	// Importing the same external id again returns the existing row.
	again, err := s.ImportExternalBook(external)
	if err != nil {
		t.Fatalf("Second ImportExternalBook failed: %v", err)
	}
	if again.ID != book.ID {
		t.Errorf("Expected idempotent import, got ids %d and %d", book.ID, again.ID)
	}
}
