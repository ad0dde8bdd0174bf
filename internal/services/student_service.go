package services

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/apperr"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
)

// StudentServiceProvider defines the interface for student services.
type StudentServiceProvider interface {
	GetAllStudents() ([]models.Student, error)
	GetStudentByID(id string) (models.Student, error)
	GetStudentsByClass(classID string) ([]models.Student, error)
	CreateStudent(student models.Student) (models.Student, error)
	UpdateStudent(id string, student models.Student) (models.Student, error)
	DeleteStudent(id string) error
}

// StudentService provides business logic for student management.
type StudentService struct {
	db       *sql.DB
	eventSvc EventServiceProvider
}

// NewStudentService creates a new StudentService.
func NewStudentService(db *sql.DB, eventSvc EventServiceProvider) *StudentService {
	return &StudentService{db: db, eventSvc: eventSvc}
}

const studentColumns = "id, user_id, class_id, birthday, parent_name, parent_phone, created_at"

// GetAllStudents retrieves every student record.
func (s *StudentService) GetAllStudents() ([]models.Student, error) {
	rows, err := s.db.Query("SELECT " + studentColumns + " FROM students ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.scanStudents(rows)
}

// GetStudentByID retrieves a single student.
func (s *StudentService) GetStudentByID(id string) (models.Student, error) {
	row := s.db.QueryRow("SELECT "+studentColumns+" FROM students WHERE id = ?", id)
	return s.scanStudent(row)
}

// GetStudentsByClass retrieves the students assigned to a class.
func (s *StudentService) GetStudentsByClass(classID string) ([]models.Student, error) {
	rows, err := s.db.Query("SELECT "+studentColumns+" FROM students WHERE class_id = ?", classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.scanStudents(rows)
}

// CreateStudent creates a new student record for an existing user account.
func (s *StudentService) CreateStudent(student models.Student) (models.Student, error) {
	student.ID = uuid.New().String()

	stmt, err := s.db.Prepare(
		"INSERT INTO students (id, user_id, class_id, birthday, parent_name, parent_phone) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return models.Student{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(student.ID, student.UserID, student.ClassID, student.Birthday, student.ParentName, student.ParentPhone)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Student{}, fmt.Errorf("student: %w", apperr.ErrAlreadyExists)
		}
		return models.Student{}, err
	}

	s.eventSvc.CreateEvent("student.create", "info", "Student record created.", &student.ID)
	return s.GetStudentByID(student.ID)
}

// UpdateStudent updates an existing student record.
func (s *StudentService) UpdateStudent(id string, student models.Student) (models.Student, error) {
	if _, err := s.GetStudentByID(id); err != nil {
		return models.Student{}, err
	}

	_, err := s.db.Exec(
		"UPDATE students SET class_id = ?, birthday = ?, parent_name = ?, parent_phone = ? WHERE id = ?",
		student.ClassID, student.Birthday, student.ParentName, student.ParentPhone, id)
	if err != nil {
		return models.Student{}, err
	}
	return s.GetStudentByID(id)
}

// DeleteStudent removes a student record. The linked user account survives.
func (s *StudentService) DeleteStudent(id string) error {
	if _, err := s.GetStudentByID(id); err != nil {
		return err
	}

	_, err := s.db.Exec("DELETE FROM students WHERE id = ?", id)
	if err == nil {
		s.eventSvc.CreateEvent("student.delete", "warn", "Student record deleted.", &id)
	}
	return err
}

func (s *StudentService) scanStudents(rows *sql.Rows) ([]models.Student, error) {
	var students []models.Student
	for rows.Next() {
		student, err := s.scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

func (s *StudentService) scanStudent(scanner interface{ Scan(...interface{}) error }) (models.Student, error) {
	var student models.Student
	err := scanner.Scan(&student.ID, &student.UserID, &student.ClassID, &student.Birthday,
		&student.ParentName, &student.ParentPhone, &student.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Student{}, fmt.Errorf("student: %w", apperr.ErrNotFound)
		}
		return models.Student{}, err
	}
	return student, nil
}
