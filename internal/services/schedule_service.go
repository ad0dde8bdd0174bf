package services

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/apperr"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
)

// ScheduleServiceProvider defines the interface for timetable services.
type ScheduleServiceProvider interface {
	GetAllSchedules() ([]models.Schedule, error)
	GetScheduleByID(id string) (models.Schedule, error)
	GetSchedulesForClass(classID string) ([]models.Schedule, error)
	CreateSchedule(schedule models.Schedule) (models.Schedule, error)
	UpdateSchedule(id string, schedule models.Schedule) (models.Schedule, error)
	DeleteSchedule(id string) error
}

// ScheduleService provides business logic for timetable management.
type ScheduleService struct {
	db       *sql.DB
	eventSvc EventServiceProvider
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(db *sql.DB, eventSvc EventServiceProvider) *ScheduleService {
	return &ScheduleService{db: db, eventSvc: eventSvc}
}

const scheduleColumns = "id, class_id, subject_id, teacher_id, day_of_week, lesson_number, quarter, school_year, created_at"

// GetAllSchedules retrieves the full timetable.
func (s *ScheduleService) GetAllSchedules() ([]models.Schedule, error) {
	rows, err := s.db.Query("SELECT " + scheduleColumns + " FROM schedules ORDER BY day_of_week, lesson_number")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.scanSchedules(rows)
}

// GetScheduleByID retrieves a single timetable slot.
func (s *ScheduleService) GetScheduleByID(id string) (models.Schedule, error) {
	row := s.db.QueryRow("SELECT "+scheduleColumns+" FROM schedules WHERE id = ?", id)
	return s.scanSchedule(row)
}

// GetSchedulesForClass retrieves the timetable of one class.
func (s *ScheduleService) GetSchedulesForClass(classID string) ([]models.Schedule, error) {
	rows, err := s.db.Query("SELECT "+scheduleColumns+" FROM schedules WHERE class_id = ? ORDER BY day_of_week, lesson_number", classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.scanSchedules(rows)
}

// CreateSchedule creates a timetable slot after validating its bounds.
func (s *ScheduleService) CreateSchedule(schedule models.Schedule) (models.Schedule, error) {
	if err := validateSlot(schedule); err != nil {
		return models.Schedule{}, err
	}
	schedule.ID = uuid.New().String()

	stmt, err := s.db.Prepare(`
		INSERT INTO schedules (id, class_id, subject_id, teacher_id, day_of_week, lesson_number, quarter, school_year)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return models.Schedule{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(schedule.ID, schedule.ClassID, schedule.SubjectID, schedule.TeacherID,
		schedule.DayOfWeek, schedule.LessonNumber, schedule.Quarter, schedule.SchoolYear)
	if err != nil {
		return models.Schedule{}, err
	}

	s.eventSvc.CreateEvent("schedule.create", "info", "Timetable slot created.", &schedule.ID)
	return s.GetScheduleByID(schedule.ID)
}

// UpdateSchedule updates an existing timetable slot.
func (s *ScheduleService) UpdateSchedule(id string, schedule models.Schedule) (models.Schedule, error) {
	if err := validateSlot(schedule); err != nil {
		return models.Schedule{}, err
	}
	if _, err := s.GetScheduleByID(id); err != nil {
		return models.Schedule{}, err
	}

	_, err := s.db.Exec(`
		UPDATE schedules
		SET class_id = ?, subject_id = ?, teacher_id = ?, day_of_week = ?, lesson_number = ?, quarter = ?, school_year = ?
		WHERE id = ?`,
		schedule.ClassID, schedule.SubjectID, schedule.TeacherID, schedule.DayOfWeek,
		schedule.LessonNumber, schedule.Quarter, schedule.SchoolYear, id)
	if err != nil {
		return models.Schedule{}, err
	}
	return s.GetScheduleByID(id)
}

// DeleteSchedule removes a timetable slot.
func (s *ScheduleService) DeleteSchedule(id string) error {
	if _, err := s.GetScheduleByID(id); err != nil {
		return err
	}

	_, err := s.db.Exec("DELETE FROM schedules WHERE id = ?", id)
	if err == nil {
		s.eventSvc.CreateEvent("schedule.delete", "warn", "Timetable slot deleted.", &id)
	}
	return err
}

func validateSlot(schedule models.Schedule) error {
	if schedule.DayOfWeek < 1 || schedule.DayOfWeek > 7 {
		return fmt.Errorf("day of week out of range: %w", apperr.ErrInvalidInput)
	}
	if schedule.LessonNumber < 1 {
		return fmt.Errorf("lesson number out of range: %w", apperr.ErrInvalidInput)
	}
	if schedule.Quarter < 1 || schedule.Quarter > 4 {
		return fmt.Errorf("quarter out of range: %w", apperr.ErrInvalidInput)
	}
	return nil
}

func (s *ScheduleService) scanSchedules(rows *sql.Rows) ([]models.Schedule, error) {
	var schedules []models.Schedule
	for rows.Next() {
		schedule, err := s.scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}
	return schedules, rows.Err()
}

func (s *ScheduleService) scanSchedule(scanner interface{ Scan(...interface{}) error }) (models.Schedule, error) {
	var schedule models.Schedule
	err := scanner.Scan(&schedule.ID, &schedule.ClassID, &schedule.SubjectID, &schedule.TeacherID,
		&schedule.DayOfWeek, &schedule.LessonNumber, &schedule.Quarter, &schedule.SchoolYear, &schedule.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Schedule{}, fmt.Errorf("schedule: %w", apperr.ErrNotFound)
		}
		return models.Schedule{}, err
	}
	return schedule, nil
}
