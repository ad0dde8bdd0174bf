package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/apperr"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
)

func newAnnouncementFixture(t *testing.T) (*AnnouncementService, string) {
	t.Helper()

	db := newTestDB(t)
	eventSvc := NewEventService(db)
	users := NewUserService(db, eventSvc)
	author := createTestUser(t, users, "principal", "pass", "director")

	return NewAnnouncementService(db, nil, eventSvc), author.ID
}

func TestCreateAnnouncement_ImmediatePublish(t *testing.T) {
	svc, authorID := newAnnouncementFixture(t)

	created, err := svc.CreateAnnouncement(models.Announcement{
		AuthorID: authorID,
		Title:    "Fire drill",
		Body:     "Assembly point is the yard.",
	})
	require.NoError(t, err)
	assert.True(t, created.Published, "no publish time means out immediately")
	assert.Nil(t, created.PublishAt)
}

func TestCreateAnnouncement_ScheduledStaysDraft(t *testing.T) {
	svc, authorID := newAnnouncementFixture(t)

	publishAt := time.Now().Add(time.Hour)
	created, err := svc.CreateAnnouncement(models.Announcement{
		AuthorID:  authorID,
		Title:     "Term dates",
		Body:      "Next term starts in September.",
		PublishAt: &publishAt,
	})
	require.NoError(t, err)
	assert.False(t, created.Published)

	due, err := svc.GetDueAnnouncements(time.Now())
	require.NoError(t, err)
	assert.Empty(t, due, "not due before its publish time")

	due, err = svc.GetDueAnnouncements(publishAt.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, created.ID, due[0].ID)
}

func TestCreateAnnouncement_AudienceRoleCanonicalized(t *testing.T) {
	svc, authorID := newAnnouncementFixture(t)

	role := "teacher"
	created, err := svc.CreateAnnouncement(models.Announcement{
		AuthorID:     authorID,
		Title:        "Staff meeting",
		Body:         "Room 101 after lessons.",
		AudienceRole: &role,
	})
	require.NoError(t, err)
	require.NotNil(t, created.AudienceRole)
	assert.Equal(t, models.RoleTeacher, *created.AudienceRole)
}

func TestCreateAnnouncement_Recurring(t *testing.T) {
	svc, authorID := newAnnouncementFixture(t)

	created, err := svc.CreateAnnouncement(models.Announcement{
		AuthorID:   authorID,
		Title:      "Weekly digest",
		Body:       "This week at school.",
		Recurrence: "0 8 * * MON",
	})
	require.NoError(t, err)
	assert.False(t, created.Published, "recurring notices never publish immediately")
	require.NotNil(t, created.PublishAt, "first occurrence is computed from the schedule")
	assert.True(t, created.PublishAt.After(time.Now()))
}

func TestCreateAnnouncement_BadRecurrence(t *testing.T) {
	svc, authorID := newAnnouncementFixture(t)

	_, err := svc.CreateAnnouncement(models.Announcement{
		AuthorID:   authorID,
		Title:      "Broken",
		Body:       "x",
		Recurrence: "not a cron line",
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestPublish_PromotesDraft(t *testing.T) {
	svc, authorID := newAnnouncementFixture(t)

	publishAt := time.Now().Add(time.Hour)
	created, err := svc.CreateAnnouncement(models.Announcement{
		AuthorID:  authorID,
		Title:     "Snow day",
		Body:      "School closed tomorrow.",
		PublishAt: &publishAt,
	})
	require.NoError(t, err)

	published, err := svc.Publish(created.ID)
	require.NoError(t, err)
	assert.True(t, published.Published)

	visible, err := svc.GetAllAnnouncements(true)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, created.ID, visible[0].ID)
}

func TestReschedule_MovesNextOccurrence(t *testing.T) {
	svc, authorID := newAnnouncementFixture(t)

	created, err := svc.CreateAnnouncement(models.Announcement{
		AuthorID:   authorID,
		Title:      "Weekly digest",
		Body:       "This week at school.",
		Recurrence: "0 8 * * MON",
	})
	require.NoError(t, err)

	next := time.Now().Add(7 * 24 * time.Hour).Truncate(time.Second)
	require.NoError(t, svc.Reschedule(created.ID, next))

	got, err := svc.GetAnnouncementByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PublishAt)
	assert.WithinDuration(t, next, *got.PublishAt, time.Second)
	assert.False(t, got.Published, "recurring notices stay schedulable")
}
