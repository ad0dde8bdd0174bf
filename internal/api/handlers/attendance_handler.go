package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/services"
)

// AttendanceHandler handles HTTP requests for attendance tracking.
type AttendanceHandler struct {
	service services.AttendanceServiceProvider
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(service services.AttendanceServiceProvider) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

// AttendancePayload defines the structure for attendance create/update requests.
type AttendancePayload struct {
	StudentID  string    `json:"studentId" validate:"required"`
	ScheduleID string    `json:"scheduleId" validate:"required"`
	Attended   bool      `json:"attended"`
	AttendedOn time.Time `json:"attendedOn" validate:"required"`
	Note       string    `json:"note"`
}

// GetForStudent handles listing attendance of one student (?studentId=).
func (h *AttendanceHandler) GetForStudent(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.GetAttendanceForStudent(r.URL.Query().Get("studentId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// Get handles retrieving a record by ID.
func (h *AttendanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.GetAttendanceByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// Create handles recording presence or absence.
func (h *AttendanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload AttendancePayload
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	record, err := h.service.CreateAttendance(models.Attendance{
		StudentID:  payload.StudentID,
		ScheduleID: payload.ScheduleID,
		Attended:   payload.Attended,
		AttendedOn: payload.AttendedOn,
		Note:       payload.Note,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// Update handles correcting a record.
func (h *AttendanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var payload AttendancePayload
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	record, err := h.service.UpdateAttendance(id, models.Attendance{
		Attended:   payload.Attended,
		AttendedOn: payload.AttendedOn,
		Note:       payload.Note,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// Delete handles removing a record.
func (h *AttendanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAttendance(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
