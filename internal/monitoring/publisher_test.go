package monitoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
)

type stubAnnouncements struct {
	due         []models.Announcement
	published   []string
	rescheduled map[string]time.Time
}

func (s *stubAnnouncements) GetAllAnnouncements(bool) ([]models.Announcement, error) { return nil, nil }
func (s *stubAnnouncements) GetAnnouncementByID(string) (models.Announcement, error) {
	return models.Announcement{}, nil
}
func (s *stubAnnouncements) GetDueAnnouncements(time.Time) ([]models.Announcement, error) {
	return s.due, nil
}
func (s *stubAnnouncements) CreateAnnouncement(a models.Announcement) (models.Announcement, error) {
	return a, nil
}
func (s *stubAnnouncements) UpdateAnnouncement(_ string, a models.Announcement) (models.Announcement, error) {
	return a, nil
}
func (s *stubAnnouncements) DeleteAnnouncement(string) error { return nil }
func (s *stubAnnouncements) Publish(id string) (models.Announcement, error) {
	s.published = append(s.published, id)
	return models.Announcement{ID: id, Published: true}, nil
}
func (s *stubAnnouncements) Reschedule(id string, next time.Time) error {
	if s.rescheduled == nil {
		s.rescheduled = map[string]time.Time{}
	}
	s.rescheduled[id] = next
	return nil
}

func TestPublishDue_OneShotAndRecurring(t *testing.T) {
	stub := &stubAnnouncements{
		due: []models.Announcement{
			{ID: "one-shot"},
			{ID: "weekly", Recurrence: "0 8 * * MON"},
			{ID: "broken", Recurrence: "garbage"},
		},
	}

	NewPublisher(stub).publishDue()

	assert.Equal(t, []string{"one-shot"}, stub.published)
	next, ok := stub.rescheduled["weekly"]
	assert.True(t, ok, "recurring announcement must be rescheduled, not published")
	assert.True(t, next.After(time.Now()))
	assert.NotContains(t, stub.rescheduled, "broken")
}
