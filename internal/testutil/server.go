// Shared test server setup utility, which simplifies all API tests.

package testutil

import (
	"database/sql"
	"testing"

	"github.com/bookbuddy/bookbuddy-go/internal/api"
	"github.com/bookbuddy/bookbuddy-go/internal/config"
	"github.com/bookbuddy/bookbuddy-go/internal/core"
)

// SetupTestApp creates a core.App backed by an in-memory database.
func SetupTestApp(t *testing.T) *core.App {
	t.Helper()

	cfg := &config.Config{}
	cfg.Recommendations.TTLHours = 24

	return &core.App{
		Config: cfg,
		DB:     SetupTestDB(t),
	}
}

// SetupTestServer initializes a full core.App and api.Server for integration testing.
func SetupTestServer(t *testing.T) (*api.Server, *sql.DB) {
	t.Helper()
	app := SetupTestApp(t)
	server := api.NewServer(app)
	return server, app.DB
}
