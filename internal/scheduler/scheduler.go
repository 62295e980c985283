package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/historical-day/internal/calendar"
)

const defaultPurgeInterval = 15 * time.Minute

// Purger drops expired cache entries and reports how many it removed.
type Purger interface {
	Purge() int
}

// Warmer prefetches data for a date.
type Warmer interface {
	Warm(ctx context.Context, date calendar.Date) error
}

// Scheduler runs periodic cache maintenance and the daily warm-up.
type Scheduler struct {
	scheduler     *gocron.Scheduler
	purgers       map[string]Purger
	warmer        Warmer
	purgeInterval time.Duration
	warmupAt      string
}

// New creates a new Scheduler. An empty warmupAt or nil warmer disables the warm-up job.
func New(purgers map[string]Purger, purgeInterval time.Duration, warmer Warmer, warmupAt string) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler:     s,
		purgers:       purgers,
		warmer:        warmer,
		purgeInterval: purgeInterval,
		warmupAt:      warmupAt,
	}
}

// Start schedules the jobs and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	interval := s.purgeInterval
	if interval <= 0 {
		interval = defaultPurgeInterval
	}

	if _, err := s.scheduler.Every(interval).Do(s.purge); err != nil {
		return err
	}

	if s.warmer != nil && s.warmupAt != "" {
		if _, err := s.scheduler.Every(1).Day().At(s.warmupAt).Do(s.warm); err != nil {
			return err
		}
		// A fresh process should not wait for the next warm-up slot.
		go s.warm()
	} else {
		log.Println("scheduler: warm-up disabled")
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) purge() {
	for name, p := range s.purgers {
		if n := p.Purge(); n > 0 {
			log.Printf("scheduler: purged %d expired entries from %s cache", n, name)
		}
	}
}

func (s *Scheduler) warm() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	today := calendar.Today(time.UTC)
	log.Printf("scheduler: warming events for %s", today)
	if err := s.warmer.Warm(ctx, today); err != nil {
		log.Printf("scheduler: warm-up failed for %s: %v", today, err)
		return
	}
	log.Printf("scheduler: completed warm-up for %s", today)
}
