package signup

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Janitor periodically sweeps abandoned sign-up flows so the registry
// does not grow without bound.
type Janitor struct {
	registry *Registry
	ttl      time.Duration
	cron     *cron.Cron
}

func NewJanitor(registry *Registry, ttl time.Duration) *Janitor {
	return &Janitor{
		registry: registry,
		ttl:      ttl,
	}
}

// Start schedules the sweep every minute.
func (j *Janitor) Start() {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc("0 * * * * *", func() {
		if n := j.registry.SweepIdle(j.ttl); n > 0 {
			log.Printf("signup janitor: swept %d idle flow(s)", n)
		}
	})
	if err != nil {
		log.Printf("Failed to create janitor cron job: %v", err)
		return
	}

	j.cron = c
	c.Start()
	log.Printf("Signup janitor started (sweeping flows idle > %s)", j.ttl)
}

// Stop halts the schedule; a sweep already running finishes.
func (j *Janitor) Stop() {
	if j.cron != nil {
		j.cron.Stop()
	}
}
