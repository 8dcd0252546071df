package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"portalgambit/backend/internal/models"
)

const (
	// at minute 0 of every hour
	globalStatsSpec = "0 0 * * * *"
	// at 00:05 UTC, once the previous day is complete
	dailyStatsSpec = "0 5 0 * * *"

	jobTimeout = 2 * time.Minute
)

// StatsRefresher recomputes the cached analytics aggregates.
type StatsRefresher interface {
	RefreshGlobalStats(ctx context.Context) (models.GlobalStats, error)
	RefreshDailyStats(ctx context.Context, date time.Time) (models.DailyStats, error)
}

// Scheduler keeps the analytics caches warm.
type Scheduler struct {
	cron      *cron.Cron
	analytics StatsRefresher
	now       func() time.Time
}

func NewScheduler(analytics StatsRefresher) *Scheduler {
	// Create cron with seconds precision and logging
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(time.UTC),
		cron.WithLogger(cron.VerbosePrintfLogger(log.Default())),
	)

	return &Scheduler{
		cron:      c,
		analytics: analytics,
		now:       time.Now,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	log.Println("Starting cron scheduler...")

	if _, err := s.cron.AddFunc(globalStatsSpec, s.refreshGlobalStats); err != nil {
		log.Printf("Error scheduling global stats job: %v", err)
		return err
	}
	if _, err := s.cron.AddFunc(dailyStatsSpec, s.refreshPreviousDay); err != nil {
		log.Printf("Error scheduling daily stats job: %v", err)
		return err
	}

	s.cron.Start()
	log.Println("Cron scheduler started successfully")
	return nil
}

// Stop shuts the scheduler down and waits for running jobs.
func (s *Scheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	<-s.cron.Stop().Done()
	log.Println("Cron scheduler stopped")
}

// RunNow runs every job once, synchronously.
func (s *Scheduler) RunNow() {
	log.Println("Manually triggering analytics jobs...")
	s.refreshGlobalStats()
	s.refreshPreviousDay()
}

func (s *Scheduler) refreshGlobalStats() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	stats, err := s.analytics.RefreshGlobalStats(ctx)
	if err != nil {
		log.Printf("Error refreshing global stats: %v", err)
		return
	}
	log.Printf("Global stats refreshed over %d games", stats.TotalGames)
}

func (s *Scheduler) refreshPreviousDay() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	day := s.now().UTC().AddDate(0, 0, -1)
	stats, err := s.analytics.RefreshDailyStats(ctx, day)
	if err != nil {
		log.Printf("Error refreshing daily stats for %s: %v", day.Format("2006-01-02"), err)
		return
	}
	log.Printf("Daily stats for %s materialized: %d games", day.Format("2006-01-02"), stats.TotalGames)
}
