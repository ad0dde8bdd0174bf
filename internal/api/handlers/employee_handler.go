package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/services"
)

// EmployeeHandler handles HTTP requests for staff records.
type EmployeeHandler struct {
	service services.EmployeeServiceProvider
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(service services.EmployeeServiceProvider) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// EmployeePayload defines the structure for employee create/update requests.
type EmployeePayload struct {
	UserID     string   `json:"userId" validate:"required"`
	Position   string   `json:"position" validate:"required"`
	Salary     *int64   `json:"salary"`
	SubjectIDs []string `json:"subjectIds"`
}

// GetAll handles the request to list all employees.
func (h *EmployeeHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.GetAllEmployees()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, employees)
}

// Get handles retrieving an employee by ID.
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	employee, err := h.service.GetEmployeeByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, employee)
}

// Create handles hiring a new employee.
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload EmployeePayload
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	employee, err := h.service.CreateEmployee(models.Employee{
		UserID:     payload.UserID,
		Position:   payload.Position,
		Salary:     payload.Salary,
		SubjectIDs: payload.SubjectIDs,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", payload.UserID).Msg("Failed to create employee")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, employee)
}

// Update handles updating an employee record.
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var payload EmployeePayload
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	employee, err := h.service.UpdateEmployee(id, models.Employee{
		Position:   payload.Position,
		Salary:     payload.Salary,
		SubjectIDs: payload.SubjectIDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, employee)
}

// Delete handles removing an employee record.
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteEmployee(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
