package services

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/apperr"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
)

// MarkServiceProvider defines the interface for mark services.
type MarkServiceProvider interface {
	GetMarkByID(id string) (models.Mark, error)
	GetMarksForStudent(studentID string) ([]models.Mark, error)
	CreateMark(mark models.Mark) (models.Mark, error)
	UpdateMark(id string, mark models.Mark) (models.Mark, error)
	DeleteMark(id string) error
}

// MarkService provides business logic for grading.
type MarkService struct {
	db       *sql.DB
	eventSvc EventServiceProvider
}

// NewMarkService creates a new MarkService.
func NewMarkService(db *sql.DB, eventSvc EventServiceProvider) *MarkService {
	return &MarkService{db: db, eventSvc: eventSvc}
}

const markColumns = "id, student_id, schedule_id, grade, comment, created_at"

// GetMarkByID retrieves a single mark.
func (s *MarkService) GetMarkByID(id string) (models.Mark, error) {
	row := s.db.QueryRow("SELECT "+markColumns+" FROM marks WHERE id = ?", id)
	return s.scanMark(row)
}

// GetMarksForStudent retrieves all marks of a student, newest first.
func (s *MarkService) GetMarksForStudent(studentID string) ([]models.Mark, error) {
	rows, err := s.db.Query("SELECT "+markColumns+" FROM marks WHERE student_id = ? ORDER BY created_at DESC", studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var marks []models.Mark
	for rows.Next() {
		mark, err := s.scanMark(rows)
		if err != nil {
			return nil, err
		}
		marks = append(marks, mark)
	}
	return marks, rows.Err()
}

// CreateMark records a grade for a student. Grades outside the 5-point scale
// are rejected.
func (s *MarkService) CreateMark(mark models.Mark) (models.Mark, error) {
	if err := validateGrade(mark.Grade); err != nil {
		return models.Mark{}, err
	}
	mark.ID = uuid.New().String()

	_, err := s.db.Exec("INSERT INTO marks (id, student_id, schedule_id, grade, comment) VALUES (?, ?, ?, ?, ?)",
		mark.ID, mark.StudentID, mark.ScheduleID, mark.Grade, mark.Comment)
	if err != nil {
		return models.Mark{}, err
	}

	s.eventSvc.CreateEvent("mark.create", "info", fmt.Sprintf("Mark %d recorded.", mark.Grade), &mark.StudentID)
	return s.GetMarkByID(mark.ID)
}

// UpdateMark corrects an existing mark.
func (s *MarkService) UpdateMark(id string, mark models.Mark) (models.Mark, error) {
	if err := validateGrade(mark.Grade); err != nil {
		return models.Mark{}, err
	}
	if _, err := s.GetMarkByID(id); err != nil {
		return models.Mark{}, err
	}

	_, err := s.db.Exec("UPDATE marks SET grade = ?, comment = ? WHERE id = ?", mark.Grade, mark.Comment, id)
	if err != nil {
		return models.Mark{}, err
	}
	return s.GetMarkByID(id)
}

// DeleteMark removes a mark.
func (s *MarkService) DeleteMark(id string) error {
	if _, err := s.GetMarkByID(id); err != nil {
		return err
	}

	_, err := s.db.Exec("DELETE FROM marks WHERE id = ?", id)
	if err == nil {
		s.eventSvc.CreateEvent("mark.delete", "warn", "Mark deleted.", &id)
	}
	return err
}

func validateGrade(grade int) error {
	if grade < models.MinGrade || grade > models.MaxGrade {
		return fmt.Errorf("grade %d out of range: %w", grade, apperr.ErrInvalidInput)
	}
	return nil
}

func (s *MarkService) scanMark(scanner interface{ Scan(...interface{}) error }) (models.Mark, error) {
	var mark models.Mark
	err := scanner.Scan(&mark.ID, &mark.StudentID, &mark.ScheduleID, &mark.Grade, &mark.Comment, &mark.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Mark{}, fmt.Errorf("mark: %w", apperr.ErrNotFound)
		}
		return models.Mark{}, err
	}
	return mark, nil
}
