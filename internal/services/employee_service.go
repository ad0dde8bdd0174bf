package services

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/apperr"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
)

// EmployeeServiceProvider defines the interface for employee services.
type EmployeeServiceProvider interface {
	GetAllEmployees() ([]models.Employee, error)
	GetEmployeeByID(id string) (models.Employee, error)
	CreateEmployee(employee models.Employee) (models.Employee, error)
	UpdateEmployee(id string, employee models.Employee) (models.Employee, error)
	DeleteEmployee(id string) error
}

// EmployeeService provides business logic for staff management.
type EmployeeService struct {
	db       *sql.DB
	eventSvc EventServiceProvider
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(db *sql.DB, eventSvc EventServiceProvider) *EmployeeService {
	return &EmployeeService{db: db, eventSvc: eventSvc}
}

// GetAllEmployees retrieves every employee with their subject links.
func (s *EmployeeService) GetAllEmployees() ([]models.Employee, error) {
	rows, err := s.db.Query("SELECT id, user_id, position, salary, created_at FROM employees ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		var employee models.Employee
		if err := rows.Scan(&employee.ID, &employee.UserID, &employee.Position, &employee.Salary, &employee.CreatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range employees {
		if employees[i].SubjectIDs, err = s.subjectsOf(employees[i].ID); err != nil {
			return nil, err
		}
	}
	return employees, nil
}

// GetEmployeeByID retrieves a single employee with their subject links.
func (s *EmployeeService) GetEmployeeByID(id string) (models.Employee, error) {
	var employee models.Employee
	row := s.db.QueryRow("SELECT id, user_id, position, salary, created_at FROM employees WHERE id = ?", id)
	err := row.Scan(&employee.ID, &employee.UserID, &employee.Position, &employee.Salary, &employee.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Employee{}, fmt.Errorf("employee: %w", apperr.ErrNotFound)
		}
		return models.Employee{}, err
	}

	employee.SubjectIDs, err = s.subjectsOf(id)
	if err != nil {
		return models.Employee{}, err
	}
	return employee, nil
}

func (s *EmployeeService) subjectsOf(employeeID string) ([]string, error) {
	rows, err := s.db.Query("SELECT subject_id FROM employee_subjects WHERE employee_id = ?", employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CreateEmployee creates an employee record and its subject links in one
// transaction.
func (s *EmployeeService) CreateEmployee(employee models.Employee) (models.Employee, error) {
	employee.ID = uuid.New().String()

	tx, err := s.db.Begin()
	if err != nil {
		return models.Employee{}, err
	}
	defer tx.Rollback()

	_, err = tx.Exec("INSERT INTO employees (id, user_id, position, salary) VALUES (?, ?, ?, ?)",
		employee.ID, employee.UserID, employee.Position, employee.Salary)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Employee{}, fmt.Errorf("employee: %w", apperr.ErrAlreadyExists)
		}
		return models.Employee{}, err
	}

	if err := replaceSubjectLinks(tx, employee.ID, employee.SubjectIDs); err != nil {
		return models.Employee{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Employee{}, err
	}

	s.eventSvc.CreateEvent("employee.create", "info", fmt.Sprintf("Employee hired as '%s'.", employee.Position), &employee.ID)
	return s.GetEmployeeByID(employee.ID)
}

// UpdateEmployee updates an employee and replaces its subject links.
func (s *EmployeeService) UpdateEmployee(id string, employee models.Employee) (models.Employee, error) {
	if _, err := s.GetEmployeeByID(id); err != nil {
		return models.Employee{}, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.Employee{}, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("UPDATE employees SET position = ?, salary = ? WHERE id = ?",
		employee.Position, employee.Salary, id); err != nil {
		return models.Employee{}, err
	}
	if err := replaceSubjectLinks(tx, id, employee.SubjectIDs); err != nil {
		return models.Employee{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Employee{}, err
	}
	return s.GetEmployeeByID(id)
}

// DeleteEmployee removes an employee record. The linked user account survives.
func (s *EmployeeService) DeleteEmployee(id string) error {
	if _, err := s.GetEmployeeByID(id); err != nil {
		return err
	}

	_, err := s.db.Exec("DELETE FROM employees WHERE id = ?", id)
	if err == nil {
		s.eventSvc.CreateEvent("employee.delete", "warn", "Employee record deleted.", &id)
	}
	return err
}

func replaceSubjectLinks(tx *sql.Tx, employeeID string, subjectIDs []string) error {
	if _, err := tx.Exec("DELETE FROM employee_subjects WHERE employee_id = ?", employeeID); err != nil {
		return err
	}
	for _, subjectID := range subjectIDs {
		if _, err := tx.Exec("INSERT INTO employee_subjects (employee_id, subject_id) VALUES (?, ?)", employeeID, subjectID); err != nil {
			return err
		}
	}
	return nil
}
