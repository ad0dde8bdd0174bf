package services

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/apperr"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
)

// SubjectServiceProvider defines the interface for subject services.
type SubjectServiceProvider interface {
	GetAllSubjects() ([]models.Subject, error)
	GetSubjectByID(id string) (models.Subject, error)
	CreateSubject(subject models.Subject) (models.Subject, error)
	UpdateSubject(id string, subject models.Subject) (models.Subject, error)
	DeleteSubject(id string) error
}

// SubjectService provides business logic for subject management.
type SubjectService struct {
	db       *sql.DB
	eventSvc EventServiceProvider
}

// NewSubjectService creates a new SubjectService.
func NewSubjectService(db *sql.DB, eventSvc EventServiceProvider) *SubjectService {
	return &SubjectService{db: db, eventSvc: eventSvc}
}

// GetAllSubjects retrieves every subject.
func (s *SubjectService) GetAllSubjects() ([]models.Subject, error) {
	rows, err := s.db.Query("SELECT id, title, description FROM subjects ORDER BY title")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []models.Subject
	for rows.Next() {
		var subject models.Subject
		if err := rows.Scan(&subject.ID, &subject.Title, &subject.Description); err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

// GetSubjectByID retrieves a single subject.
func (s *SubjectService) GetSubjectByID(id string) (models.Subject, error) {
	var subject models.Subject
	err := s.db.QueryRow("SELECT id, title, description FROM subjects WHERE id = ?", id).
		Scan(&subject.ID, &subject.Title, &subject.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Subject{}, fmt.Errorf("subject: %w", apperr.ErrNotFound)
		}
		return models.Subject{}, err
	}
	return subject, nil
}

// CreateSubject creates a new subject.
func (s *SubjectService) CreateSubject(subject models.Subject) (models.Subject, error) {
	subject.ID = uuid.New().String()

	_, err := s.db.Exec("INSERT INTO subjects (id, title, description) VALUES (?, ?, ?)",
		subject.ID, subject.Title, subject.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Subject{}, fmt.Errorf("subject: %w", apperr.ErrAlreadyExists)
		}
		return models.Subject{}, err
	}

	s.eventSvc.CreateEvent("subject.create", "info", fmt.Sprintf("Subject '%s' created.", subject.Title), &subject.ID)
	return subject, nil
}

// UpdateSubject updates an existing subject.
func (s *SubjectService) UpdateSubject(id string, subject models.Subject) (models.Subject, error) {
	if _, err := s.GetSubjectByID(id); err != nil {
		return models.Subject{}, err
	}

	_, err := s.db.Exec("UPDATE subjects SET title = ?, description = ? WHERE id = ?",
		subject.Title, subject.Description, id)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Subject{}, fmt.Errorf("subject: %w", apperr.ErrAlreadyExists)
		}
		return models.Subject{}, err
	}
	return s.GetSubjectByID(id)
}

// DeleteSubject removes a subject.
func (s *SubjectService) DeleteSubject(id string) error {
	subject, err := s.GetSubjectByID(id)
	if err != nil {
		return err
	}

	_, err = s.db.Exec("DELETE FROM subjects WHERE id = ?", id)
	if err == nil {
		s.eventSvc.CreateEvent("subject.delete", "warn", fmt.Sprintf("Subject '%s' was deleted.", subject.Title), &id)
	}
	return err
}
