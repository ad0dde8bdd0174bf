package services

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/apperr"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
)

// RoleServiceProvider defines the interface for role management.
type RoleServiceProvider interface {
	GetAllRoles() ([]models.Role, error)
	GetRoleByID(id string) (models.Role, error)
	CreateRole(name string) (models.Role, error)
	DeleteRole(id string) error
}

// RoleService provides business logic for role management.
type RoleService struct {
	db       *sql.DB
	eventSvc EventServiceProvider
}

// NewRoleService creates a new RoleService.
func NewRoleService(db *sql.DB, eventSvc EventServiceProvider) *RoleService {
	return &RoleService{db: db, eventSvc: eventSvc}
}

// GetAllRoles retrieves every role.
func (s *RoleService) GetAllRoles() ([]models.Role, error) {
	rows, err := s.db.Query("SELECT id, name FROM roles ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// GetRoleByID retrieves a single role.
func (s *RoleService) GetRoleByID(id string) (models.Role, error) {
	var role models.Role
	err := s.db.QueryRow("SELECT id, name FROM roles WHERE id = ?", id).Scan(&role.ID, &role.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Role{}, fmt.Errorf("role: %w", apperr.ErrNotFound)
		}
		return models.Role{}, err
	}
	return role, nil
}

// CreateRole creates a role, normalizing the name to canonical form.
func (s *RoleService) CreateRole(name string) (models.Role, error) {
	role := models.Role{
		ID:   uuid.New().String(),
		Name: models.CanonicalRole(name),
	}

	_, err := s.db.Exec("INSERT INTO roles (id, name) VALUES (?, ?)", role.ID, role.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Role{}, fmt.Errorf("role: %w", apperr.ErrAlreadyExists)
		}
		return models.Role{}, err
	}

	s.eventSvc.CreateEvent("role.create", "info", fmt.Sprintf("Role '%s' created.", role.Name), &role.ID)
	return role, nil
}

// DeleteRole removes a role. User links go with it via cascade.
func (s *RoleService) DeleteRole(id string) error {
	role, err := s.GetRoleByID(id)
	if err != nil {
		return err
	}

	_, err = s.db.Exec("DELETE FROM roles WHERE id = ?", id)
	if err == nil {
		s.eventSvc.CreateEvent("role.delete", "warn", fmt.Sprintf("Role '%s' was deleted.", role.Name), &id)
	}
	return err
}
