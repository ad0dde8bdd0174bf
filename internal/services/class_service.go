package services

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/apperr"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
)

// ClassServiceProvider defines the interface for class services.
type ClassServiceProvider interface {
	GetAllClasses() ([]models.SchoolClass, error)
	GetClassByID(id string) (models.SchoolClass, error)
	CreateClass(class models.SchoolClass) (models.SchoolClass, error)
	UpdateClass(id string, class models.SchoolClass) (models.SchoolClass, error)
	DeleteClass(id string) error
}

// ClassService provides business logic for class management.
type ClassService struct {
	db       *sql.DB
	eventSvc EventServiceProvider
}

// NewClassService creates a new ClassService.
func NewClassService(db *sql.DB, eventSvc EventServiceProvider) *ClassService {
	return &ClassService{db: db, eventSvc: eventSvc}
}

const classColumns = "id, grade, title, classroom, teacher_id, created_at"

// GetAllClasses retrieves every class ordered by grade.
func (s *ClassService) GetAllClasses() ([]models.SchoolClass, error) {
	rows, err := s.db.Query("SELECT " + classColumns + " FROM classes ORDER BY grade, title")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []models.SchoolClass
	for rows.Next() {
		class, err := s.scanClass(rows)
		if err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}
	return classes, rows.Err()
}

// GetClassByID retrieves a single class.
func (s *ClassService) GetClassByID(id string) (models.SchoolClass, error) {
	row := s.db.QueryRow("SELECT "+classColumns+" FROM classes WHERE id = ?", id)
	return s.scanClass(row)
}

// CreateClass creates a new class.
func (s *ClassService) CreateClass(class models.SchoolClass) (models.SchoolClass, error) {
	class.ID = uuid.New().String()

	_, err := s.db.Exec("INSERT INTO classes (id, grade, title, classroom, teacher_id) VALUES (?, ?, ?, ?, ?)",
		class.ID, class.Grade, class.Title, class.Classroom, class.TeacherID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.SchoolClass{}, fmt.Errorf("class: %w", apperr.ErrAlreadyExists)
		}
		return models.SchoolClass{}, err
	}

	s.eventSvc.CreateEvent("class.create", "info", fmt.Sprintf("Class %d%s created.", class.Grade, class.Title), &class.ID)
	return s.GetClassByID(class.ID)
}

// UpdateClass updates an existing class.
func (s *ClassService) UpdateClass(id string, class models.SchoolClass) (models.SchoolClass, error) {
	if _, err := s.GetClassByID(id); err != nil {
		return models.SchoolClass{}, err
	}

	_, err := s.db.Exec("UPDATE classes SET grade = ?, title = ?, classroom = ?, teacher_id = ? WHERE id = ?",
		class.Grade, class.Title, class.Classroom, class.TeacherID, id)
	if err != nil {
		if isUniqueViolation(err) {
			return models.SchoolClass{}, fmt.Errorf("class: %w", apperr.ErrAlreadyExists)
		}
		return models.SchoolClass{}, err
	}
	return s.GetClassByID(id)
}

// DeleteClass removes a class.
func (s *ClassService) DeleteClass(id string) error {
	class, err := s.GetClassByID(id)
	if err != nil {
		return err
	}

	_, err = s.db.Exec("DELETE FROM classes WHERE id = ?", id)
	if err == nil {
		s.eventSvc.CreateEvent("class.delete", "warn", fmt.Sprintf("Class %d%s was deleted.", class.Grade, class.Title), &id)
	}
	return err
}

func (s *ClassService) scanClass(scanner interface{ Scan(...interface{}) error }) (models.SchoolClass, error) {
	var class models.SchoolClass
	err := scanner.Scan(&class.ID, &class.Grade, &class.Title, &class.Classroom, &class.TeacherID, &class.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.SchoolClass{}, fmt.Errorf("class: %w", apperr.ErrNotFound)
		}
		return models.SchoolClass{}, err
	}
	return class, nil
}
