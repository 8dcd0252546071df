package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robfig/cron/v3"

	"portalgambit/backend/internal/models"
)

type recorder struct {
	global int
	days   []time.Time
	err    error
}

func (r *recorder) RefreshGlobalStats(context.Context) (models.GlobalStats, error) {
	r.global++
	return models.GlobalStats{}, r.err
}

func (r *recorder) RefreshDailyStats(_ context.Context, date time.Time) (models.DailyStats, error) {
	r.days = append(r.days, date)
	return models.DailyStats{}, r.err
}

func TestRunNowRefreshesPreviousDay(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(rec)
	s.now = func() time.Time { return time.Date(2024, 3, 1, 0, 5, 0, 0, time.UTC) }

	s.RunNow()
	if rec.global != 1 {
		t.Fatalf("expected one global refresh, got %d", rec.global)
	}
	if len(rec.days) != 1 || rec.days[0].Format("2006-01-02") != "2024-02-29" {
		t.Fatalf("expected refresh of 2024-02-29, got %v", rec.days)
	}

	rec.err = errors.New("store down")
	s.RunNow()
	if rec.global != 2 {
		t.Fatalf("failures must not stop later runs")
	}
}

func TestSchedules(t *testing.T) {
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	from := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

	global, err := parser.Parse(globalStatsSpec)
	if err != nil {
		t.Fatalf("parse global schedule: %v", err)
	}
	if next := global.Next(from); !next.Equal(time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected next global run %v", next)
	}

	daily, err := parser.Parse(dailyStatsSpec)
	if err != nil {
		t.Fatalf("parse daily schedule: %v", err)
	}
	if next := daily.Next(from); !next.Equal(time.Date(2024, 3, 2, 0, 5, 0, 0, time.UTC)) {
		t.Fatalf("unexpected next daily run %v", next)
	}
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(&recorder{})
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if n := len(s.cron.Entries()); n != 2 {
		t.Fatalf("expected 2 jobs, got %d", n)
	}
	s.Stop()
}
