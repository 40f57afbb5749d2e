package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/ecoscope/home-assessment/internal/assessment"
)

// Scheduler periodically prewarms the assessment cache for configured
// locations so their first user request is served from cache instead of a
// 30-year archive pull.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *assessment.Service
	locations []string
	interval  time.Duration
}

// New creates a Scheduler.
func New(locations []string, interval time.Duration, service *assessment.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		locations: locations,
		interval:  interval,
	}
}

// Start schedules the periodic prewarm job and starts the underlying
// scheduler. The job also runs once at startup.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		log.Println("scheduler: no warm locations configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 360
	}

	job, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: running cache prewarm job")

		var wg sync.WaitGroup
		for _, loc := range s.locations {
			loc := loc
			wg.Add(1)
			go func() {
				defer wg.Done()

				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
				defer cancel()

				if err := s.service.WarmLocation(ctx, loc); err != nil {
					log.Printf("scheduler: prewarm failed for %q: %v", loc, err)
				}
			}()
		}
		wg.Wait()
		log.Println("scheduler: completed cache prewarm job")
	})
	if err != nil {
		return err
	}
	job.SingletonMode()

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
