package services

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/apperr"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
)

// AttendanceServiceProvider defines the interface for attendance services.
type AttendanceServiceProvider interface {
	GetAttendanceByID(id string) (models.Attendance, error)
	GetAttendanceForStudent(studentID string) ([]models.Attendance, error)
	CreateAttendance(record models.Attendance) (models.Attendance, error)
	UpdateAttendance(id string, record models.Attendance) (models.Attendance, error)
	DeleteAttendance(id string) error
}

// AttendanceService provides business logic for attendance tracking.
type AttendanceService struct {
	db       *sql.DB
	eventSvc EventServiceProvider
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(db *sql.DB, eventSvc EventServiceProvider) *AttendanceService {
	return &AttendanceService{db: db, eventSvc: eventSvc}
}

const attendanceColumns = "id, student_id, schedule_id, attended, attended_on, note, created_at"

// GetAttendanceByID retrieves a single attendance record.
func (s *AttendanceService) GetAttendanceByID(id string) (models.Attendance, error) {
	row := s.db.QueryRow("SELECT "+attendanceColumns+" FROM attendance WHERE id = ?", id)
	return s.scanAttendance(row)
}

// GetAttendanceForStudent retrieves the attendance history of a student.
func (s *AttendanceService) GetAttendanceForStudent(studentID string) ([]models.Attendance, error) {
	rows, err := s.db.Query("SELECT "+attendanceColumns+" FROM attendance WHERE student_id = ? ORDER BY attended_on DESC", studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.Attendance
	for rows.Next() {
		record, err := s.scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// CreateAttendance records presence or absence at a lesson.
func (s *AttendanceService) CreateAttendance(record models.Attendance) (models.Attendance, error) {
	record.ID = uuid.New().String()

	_, err := s.db.Exec(
		"INSERT INTO attendance (id, student_id, schedule_id, attended, attended_on, note) VALUES (?, ?, ?, ?, ?, ?)",
		record.ID, record.StudentID, record.ScheduleID, record.Attended, record.AttendedOn, record.Note)
	if err != nil {
		return models.Attendance{}, err
	}

	if !record.Attended {
		s.eventSvc.CreateEvent("attendance.absent", "warn", "Absence recorded.", &record.StudentID)
	}
	return s.GetAttendanceByID(record.ID)
}

// UpdateAttendance corrects an existing record.
func (s *AttendanceService) UpdateAttendance(id string, record models.Attendance) (models.Attendance, error) {
	if _, err := s.GetAttendanceByID(id); err != nil {
		return models.Attendance{}, err
	}

	_, err := s.db.Exec("UPDATE attendance SET attended = ?, attended_on = ?, note = ? WHERE id = ?",
		record.Attended, record.AttendedOn, record.Note, id)
	if err != nil {
		return models.Attendance{}, err
	}
	return s.GetAttendanceByID(id)
}

// DeleteAttendance removes a record.
func (s *AttendanceService) DeleteAttendance(id string) error {
	if _, err := s.GetAttendanceByID(id); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM attendance WHERE id = ?", id)
	return err
}

func (s *AttendanceService) scanAttendance(scanner interface{ Scan(...interface{}) error }) (models.Attendance, error) {
	var record models.Attendance
	err := scanner.Scan(&record.ID, &record.StudentID, &record.ScheduleID, &record.Attended,
		&record.AttendedOn, &record.Note, &record.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Attendance{}, fmt.Errorf("attendance: %w", apperr.ErrNotFound)
		}
		return models.Attendance{}, err
	}
	return record, nil
}
