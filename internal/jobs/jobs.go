// Package jobs runs the application's background maintenance tasks on a
// schedule.

package jobs

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/bookbuddy/bookbuddy-go/internal/core"
	"github.com/bookbuddy/bookbuddy-go/internal/store"
)

// StartJobs starts the background job scheduler.
func StartJobs(app *core.App) *gocron.Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	startRecommendationSweepJob(s, app)

	log.Println("Starting background job scheduler...")
	s.StartAsync()
	return s
}

func startRecommendationSweepJob(s *gocron.Scheduler, app *core.App) {
	interval := app.Config.Recommendations.SweepInterval
	if interval == 0 {
		log.Println("Recommendation sweep interval is 0, scheduled sweep is disabled.")
		return
	}

	jobID := "recommendation-cache-sweep"
	log.Printf("Scheduling job: '%s' to run every %d minutes.", jobID, interval)

	st := store.New(app.DB)
	ttl := time.Duration(app.Config.Recommendations.TTLHours) * time.Hour
	_, err := s.Every(interval).Minutes().Do(func() {
		log.Println("Scheduler is triggering job:", jobID)
		pruned, err := st.PruneExpiredRecommendations(time.Now().Add(-ttl))
		if err != nil {
			log.Printf("Scheduled job '%s' failed: %v", jobID, err)
			return
		}
		if pruned > 0 {
			log.Printf("Pruned %d expired recommendation caches.", pruned)
		}
	})
	if err != nil {
		log.Printf("Error scheduling '%s' job: %v", jobID, err)
	}
}
