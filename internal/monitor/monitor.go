package monitor

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/tempdash/temperature-dashboard/internal/analysis"
	"github.com/tempdash/temperature-dashboard/internal/store"
	"github.com/tempdash/temperature-dashboard/internal/weather"
)

// Monitor periodically fetches a live reading for each configured city
// and stores its classification against the seasonal baseline.
type Monitor struct {
	scheduler *gocron.Scheduler
	fetcher   weather.Fetcher
	store     *store.MemoryStore
	cities    []string
	interval  time.Duration
}

// New creates a Monitor. It does nothing until Start is called.
func New(cities []string, interval time.Duration, fetcher weather.Fetcher, st *store.MemoryStore) *Monitor {
	s := gocron.NewScheduler(time.UTC)
	return &Monitor{
		scheduler: s,
		fetcher:   fetcher,
		store:     st,
		cities:    cities,
		interval:  interval,
	}
}

// Start schedules the periodic check and starts the underlying scheduler.
func (m *Monitor) Start() error {
	if len(m.cities) == 0 {
		log.Println("monitor: no cities configured; nothing to schedule")
		return nil
	}

	minutes := int(m.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := m.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("monitor: running live temperature check")

		var wg sync.WaitGroup
		for _, city := range m.cities {
			city := city
			wg.Add(1)
			go func() {
				defer wg.Done()

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := m.checkCity(ctx, city); err != nil {
					log.Printf("monitor: live check failed for %s: %v", city, err)
				}
			}()
		}
		wg.Wait()
		log.Println("monitor: completed live temperature check")
	})
	if err != nil {
		return err
	}

	m.scheduler.StartAsync()
	return nil
}

// checkCity fetches one reading and classifies it against the city's
// most recent season in the loaded history.
func (m *Monitor) checkCity(ctx context.Context, city string) error {
	hist, err := m.store.Dataset()
	if err != nil {
		return err
	}

	temp, err := m.fetcher.FetchCurrent(ctx, city)
	if err != nil {
		return err
	}

	season := hist.LastSeason(city)
	lc := analysis.ClassifyReading(temp, city, season, hist)
	m.store.SaveLive(city, lc)

	log.Printf("monitor: %s now %.1f°C (%s season baseline): %s", city, temp, season, lc.Verdict)
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (m *Monitor) Stop() {
	if m.scheduler != nil {
		m.scheduler.Stop()
	}
}
