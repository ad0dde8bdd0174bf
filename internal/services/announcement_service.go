package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/apperr"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/websocket"
)

// AnnouncementServiceProvider defines the interface for announcement services.
type AnnouncementServiceProvider interface {
	GetAllAnnouncements(publishedOnly bool) ([]models.Announcement, error)
	GetAnnouncementByID(id string) (models.Announcement, error)
	GetDueAnnouncements(now time.Time) ([]models.Announcement, error)
	CreateAnnouncement(a models.Announcement) (models.Announcement, error)
	UpdateAnnouncement(id string, a models.Announcement) (models.Announcement, error)
	DeleteAnnouncement(id string) error
	Publish(id string) (models.Announcement, error)
	Reschedule(id string, next time.Time) error
}

// AnnouncementService provides business logic for notices. Published
// announcements are pushed to connected clients over the hub: to everyone,
// or to the audience role when one is set.
type AnnouncementService struct {
	db       *sql.DB
	hub      *websocket.Hub
	eventSvc EventServiceProvider
}

// NewAnnouncementService creates a new AnnouncementService.
func NewAnnouncementService(db *sql.DB, hub *websocket.Hub, eventSvc EventServiceProvider) *AnnouncementService {
	return &AnnouncementService{db: db, hub: hub, eventSvc: eventSvc}
}

const announcementColumns = "id, author_id, title, body, audience_role, publish_at, recurrence, published, created_at"

// GetAllAnnouncements retrieves announcements, optionally only published ones.
func (s *AnnouncementService) GetAllAnnouncements(publishedOnly bool) ([]models.Announcement, error) {
	query := "SELECT " + announcementColumns + " FROM announcements ORDER BY created_at DESC"
	if publishedOnly {
		query = "SELECT " + announcementColumns + " FROM announcements WHERE published = TRUE ORDER BY created_at DESC"
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.scanAnnouncements(rows)
}

// GetAnnouncementByID retrieves a single announcement.
func (s *AnnouncementService) GetAnnouncementByID(id string) (models.Announcement, error) {
	row := s.db.QueryRow("SELECT "+announcementColumns+" FROM announcements WHERE id = ?", id)
	return s.scanAnnouncement(row)
}

// GetDueAnnouncements retrieves unpublished announcements whose publish time
// has passed.
func (s *AnnouncementService) GetDueAnnouncements(now time.Time) ([]models.Announcement, error) {
	rows, err := s.db.Query(
		"SELECT "+announcementColumns+" FROM announcements WHERE published = FALSE AND publish_at IS NOT NULL AND publish_at <= ?", now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.scanAnnouncements(rows)
}

// CreateAnnouncement creates a notice. Without a publish time it goes out
// immediately; otherwise it stays a draft until the publisher promotes it.
func (s *AnnouncementService) CreateAnnouncement(a models.Announcement) (models.Announcement, error) {
	a.ID = uuid.New().String()
	if a.AudienceRole != nil {
		canonical := models.CanonicalRole(*a.AudienceRole)
		a.AudienceRole = &canonical
	}
	if a.Recurrence != "" {
		cronSchedule, err := cron.ParseStandard(a.Recurrence)
		if err != nil {
			return models.Announcement{}, fmt.Errorf("invalid recurrence expression: %w", apperr.ErrInvalidInput)
		}
		// A recurring announcement is never published immediately; it fires
		// on its cron schedule.
		if a.PublishAt == nil {
			next := cronSchedule.Next(time.Now())
			a.PublishAt = &next
		}
	}
	publishNow := a.PublishAt == nil

	stmt, err := s.db.Prepare(
		"INSERT INTO announcements (id, author_id, title, body, audience_role, publish_at, recurrence, published) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return models.Announcement{}, err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(a.ID, a.AuthorID, a.Title, a.Body, a.AudienceRole, a.PublishAt, a.Recurrence, publishNow); err != nil {
		return models.Announcement{}, err
	}

	created, err := s.GetAnnouncementByID(a.ID)
	if err != nil {
		return models.Announcement{}, err
	}
	if publishNow {
		s.push(created)
	}

	s.eventSvc.CreateEvent("announcement.create", "info", fmt.Sprintf("Announcement '%s' created.", a.Title), &a.ID)
	return created, nil
}

// UpdateAnnouncement updates a notice's content and targeting.
func (s *AnnouncementService) UpdateAnnouncement(id string, a models.Announcement) (models.Announcement, error) {
	if _, err := s.GetAnnouncementByID(id); err != nil {
		return models.Announcement{}, err
	}
	if a.AudienceRole != nil {
		canonical := models.CanonicalRole(*a.AudienceRole)
		a.AudienceRole = &canonical
	}

	_, err := s.db.Exec("UPDATE announcements SET title = ?, body = ?, audience_role = ?, publish_at = ?, recurrence = ? WHERE id = ?",
		a.Title, a.Body, a.AudienceRole, a.PublishAt, a.Recurrence, id)
	if err != nil {
		return models.Announcement{}, err
	}
	return s.GetAnnouncementByID(id)
}

// DeleteAnnouncement removes a notice.
func (s *AnnouncementService) DeleteAnnouncement(id string) error {
	a, err := s.GetAnnouncementByID(id)
	if err != nil {
		return err
	}

	_, err = s.db.Exec("DELETE FROM announcements WHERE id = ?", id)
	if err == nil {
		s.eventSvc.CreateEvent("announcement.delete", "warn", fmt.Sprintf("Announcement '%s' was deleted.", a.Title), &id)
	}
	return err
}

// Publish marks an announcement published and pushes it to its audience.
func (s *AnnouncementService) Publish(id string) (models.Announcement, error) {
	if _, err := s.GetAnnouncementByID(id); err != nil {
		return models.Announcement{}, err
	}

	if _, err := s.db.Exec("UPDATE announcements SET published = TRUE WHERE id = ?", id); err != nil {
		return models.Announcement{}, err
	}

	a, err := s.GetAnnouncementByID(id)
	if err != nil {
		return models.Announcement{}, err
	}
	s.push(a)

	s.eventSvc.CreateEvent("announcement.publish", "info", fmt.Sprintf("Announcement '%s' published.", a.Title), &id)
	return a, nil
}

// Reschedule moves a recurring announcement's next publish time and pushes
// the current occurrence to its audience.
func (s *AnnouncementService) Reschedule(id string, next time.Time) error {
	a, err := s.GetAnnouncementByID(id)
	if err != nil {
		return err
	}

	if _, err := s.db.Exec("UPDATE announcements SET publish_at = ? WHERE id = ?", next, id); err != nil {
		return err
	}
	s.push(a)

	s.eventSvc.CreateEvent("announcement.publish", "info", fmt.Sprintf("Recurring announcement '%s' fired.", a.Title), &id)
	return nil
}

func (s *AnnouncementService) push(a models.Announcement) {
	if s.hub == nil {
		return
	}
	msg := websocket.NewMessage("announcement", a)
	if a.AudienceRole != nil {
		s.hub.BroadcastToRole(*a.AudienceRole, msg)
		return
	}
	s.hub.Broadcast <- msg
}

func (s *AnnouncementService) scanAnnouncements(rows *sql.Rows) ([]models.Announcement, error) {
	var announcements []models.Announcement
	for rows.Next() {
		a, err := s.scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}
	return announcements, rows.Err()
}

func (s *AnnouncementService) scanAnnouncement(scanner interface{ Scan(...interface{}) error }) (models.Announcement, error) {
	var a models.Announcement
	err := scanner.Scan(&a.ID, &a.AuthorID, &a.Title, &a.Body, &a.AudienceRole, &a.PublishAt, &a.Recurrence, &a.Published, &a.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Announcement{}, fmt.Errorf("announcement: %w", apperr.ErrNotFound)
		}
		return models.Announcement{}, err
	}
	return a, nil
}
