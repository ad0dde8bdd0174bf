package services

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/apperr"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
)

// HomeworkServiceProvider defines the interface for homework services.
type HomeworkServiceProvider interface {
	GetHomeworkByID(id string) (models.Homework, error)
	GetHomeworkForSchedule(scheduleID string) ([]models.Homework, error)
	CreateHomework(hw models.Homework) (models.Homework, error)
	UpdateHomework(id string, hw models.Homework) (models.Homework, error)
	DeleteHomework(id string) error
}

// HomeworkService provides business logic for homework assignments.
type HomeworkService struct {
	db       *sql.DB
	eventSvc EventServiceProvider
}

// NewHomeworkService creates a new HomeworkService.
func NewHomeworkService(db *sql.DB, eventSvc EventServiceProvider) *HomeworkService {
	return &HomeworkService{db: db, eventSvc: eventSvc}
}

const homeworkColumns = "id, schedule_id, description, due_date, created_at"

// GetHomeworkByID retrieves a single assignment.
func (s *HomeworkService) GetHomeworkByID(id string) (models.Homework, error) {
	row := s.db.QueryRow("SELECT "+homeworkColumns+" FROM homework WHERE id = ?", id)
	return s.scanHomework(row)
}

// GetHomeworkForSchedule retrieves all assignments for a timetable slot.
func (s *HomeworkService) GetHomeworkForSchedule(scheduleID string) ([]models.Homework, error) {
	rows, err := s.db.Query("SELECT "+homeworkColumns+" FROM homework WHERE schedule_id = ? ORDER BY due_date", scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []models.Homework
	for rows.Next() {
		hw, err := s.scanHomework(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, hw)
	}
	return assignments, rows.Err()
}

// CreateHomework creates an assignment.
func (s *HomeworkService) CreateHomework(hw models.Homework) (models.Homework, error) {
	hw.ID = uuid.New().String()

	_, err := s.db.Exec("INSERT INTO homework (id, schedule_id, description, due_date) VALUES (?, ?, ?, ?)",
		hw.ID, hw.ScheduleID, hw.Description, hw.DueDate)
	if err != nil {
		return models.Homework{}, err
	}

	s.eventSvc.CreateEvent("homework.create", "info", "Homework assigned.", &hw.ScheduleID)
	return s.GetHomeworkByID(hw.ID)
}

// UpdateHomework updates an assignment.
func (s *HomeworkService) UpdateHomework(id string, hw models.Homework) (models.Homework, error) {
	if _, err := s.GetHomeworkByID(id); err != nil {
		return models.Homework{}, err
	}

	_, err := s.db.Exec("UPDATE homework SET description = ?, due_date = ? WHERE id = ?",
		hw.Description, hw.DueDate, id)
	if err != nil {
		return models.Homework{}, err
	}
	return s.GetHomeworkByID(id)
}

// DeleteHomework removes an assignment.
func (s *HomeworkService) DeleteHomework(id string) error {
	if _, err := s.GetHomeworkByID(id); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM homework WHERE id = ?", id)
	return err
}

func (s *HomeworkService) scanHomework(scanner interface{ Scan(...interface{}) error }) (models.Homework, error) {
	var hw models.Homework
	err := scanner.Scan(&hw.ID, &hw.ScheduleID, &hw.Description, &hw.DueDate, &hw.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Homework{}, fmt.Errorf("homework: %w", apperr.ErrNotFound)
		}
		return models.Homework{}, err
	}
	return hw, nil
}
