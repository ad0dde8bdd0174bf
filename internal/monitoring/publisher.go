package monitoring

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/services"
)

// Publisher promotes due announcement drafts to published and re-arms
// recurring ones on their cron schedule.
type Publisher struct {
	announcementSvc services.AnnouncementServiceProvider
	ticker          *time.Ticker
	done            chan bool
}

// NewPublisher creates a new publisher instance.
func NewPublisher(announcementSvc services.AnnouncementServiceProvider) *Publisher {
	return &Publisher{
		announcementSvc: announcementSvc,
		done:            make(chan bool),
	}
}

// Run starts the publisher's ticking loop.
func (p *Publisher) Run() {
	log.Info().Msg("Starting announcement publisher")
	p.ticker = time.NewTicker(1 * time.Minute)
	defer p.ticker.Stop()

	// Run once immediately on start
	p.publishDue()

	for {
		select {
		case <-p.done:
			log.Info().Msg("Stopping announcement publisher")
			return
		case <-p.ticker.C:
			p.publishDue()
		}
	}
}

// Stop halts the publisher.
func (p *Publisher) Stop() {
	p.done <- true
}

// publishDue queries for due announcements and promotes them.
func (p *Publisher) publishDue() {
	now := time.Now()
	due, err := p.announcementSvc.GetDueAnnouncements(now)
	if err != nil {
		log.Error().Err(err).Msg("Publisher: failed to retrieve due announcements")
		return
	}

	for _, a := range due {
		if a.Recurrence == "" {
			if _, err := p.announcementSvc.Publish(a.ID); err != nil {
				log.Error().Err(err).Str("announcement_id", a.ID).Msg("Publisher: failed to publish announcement")
			}
			continue
		}

		cronSchedule, err := cron.ParseStandard(a.Recurrence)
		if err != nil {
			log.Error().Err(err).Str("announcement_id", a.ID).Msg("Publisher: invalid recurrence expression")
			continue
		}
		if err := p.announcementSvc.Reschedule(a.ID, cronSchedule.Next(now)); err != nil {
			log.Error().Err(err).Str("announcement_id", a.ID).Msg("Publisher: failed to reschedule announcement")
		}
	}
}
