package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/services"
)

// StudentHandler handles HTTP requests for student records.
type StudentHandler struct {
	service services.StudentServiceProvider
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(service services.StudentServiceProvider) *StudentHandler {
	return &StudentHandler{service: service}
}

// StudentPayload defines the structure for student create/update requests.
type StudentPayload struct {
	UserID      string     `json:"userId" validate:"required"`
	ClassID     *string    `json:"classId"`
	Birthday    *time.Time `json:"birthday"`
	ParentName  string     `json:"parentName"`
	ParentPhone string     `json:"parentPhone"`
}

// GetAll handles the request to list all students.
func (h *StudentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if classID := r.URL.Query().Get("classId"); classID != "" {
		students, err := h.service.GetStudentsByClass(classID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, students)
		return
	}

	students, err := h.service.GetAllStudents()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, students)
}

// Get handles retrieving a student by ID.
func (h *StudentHandler) Get(w http.ResponseWriter, r *http.Request) {
	student, err := h.service.GetStudentByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

// Create handles enrolling a new student.
func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload StudentPayload
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	student, err := h.service.CreateStudent(models.Student{
		UserID:      payload.UserID,
		ClassID:     payload.ClassID,
		Birthday:    payload.Birthday,
		ParentName:  payload.ParentName,
		ParentPhone: payload.ParentPhone,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", payload.UserID).Msg("Failed to create student")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, student)
}

// Update handles updating a student record.
func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var payload StudentPayload
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	student, err := h.service.UpdateStudent(id, models.Student{
		ClassID:     payload.ClassID,
		Birthday:    payload.Birthday,
		ParentName:  payload.ParentName,
		ParentPhone: payload.ParentPhone,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

// Delete handles removing a student record.
func (h *StudentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteStudent(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
