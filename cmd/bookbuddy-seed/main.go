// bookbuddy-seed loads a JSON catalog file into the books table. It is meant
// for bootstrapping a fresh install with an initial set of books.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bookbuddy/bookbuddy-go/internal/assets"
	"github.com/bookbuddy/bookbuddy-go/internal/config"
	"github.com/bookbuddy/bookbuddy-go/internal/db"
	"github.com/bookbuddy/bookbuddy-go/internal/models"
	"github.com/bookbuddy/bookbuddy-go/internal/store"
)

func main() {
	catalogPath := flag.String("catalog", "catalog.json", "path to a JSON array of books")
	flag.Parse()

	// Load configuration from config.yml
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize the database connection
	database, err := db.InitDB(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Run database migrations
	if err := db.RunMigrations(database, assets.MigrationsFS); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	data, err := os.ReadFile(*catalogPath)
	if err != nil {
		log.Fatalf("Failed to read catalog file: %v", err)
	}

	var books []*models.Book
	if err := json.Unmarshal(data, &books); err != nil {
		log.Fatalf("Failed to parse catalog file: %v", err)
	}

	st := store.New(database)
	imported := 0
	for _, book := range books {
		if book.Title == "" || book.Author == "" {
			log.Printf("Skipping entry without title or author: %+v", book)
			continue
		}
		if _, err := st.CreateBook(book); err != nil {
			log.Fatalf("Failed to insert book '%s': %v", book.Title, err)
		}
		imported++
	}

	fmt.Printf("Seeded %d books from %s.\n", imported, *catalogPath)
}
