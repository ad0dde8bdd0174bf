package services

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/apperr"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for the credential store.
type UserServiceProvider interface {
	GetUserByID(id string) (models.User, error)
	GetUserByUsername(username string) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
	GetAllUsers() ([]models.User, error)
	CreateUser(user models.User, password string, roleNames []string) (models.User, error)
	UpdateUser(id string, user models.User) (models.User, error)
	SetActive(id string, active bool) error
	UpdatePasswordHash(id, passwordHash string) error
}

// UserService provides business logic for user account management.
type UserService struct {
	db       *sql.DB
	eventSvc EventServiceProvider
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, eventSvc EventServiceProvider) *UserService {
	return &UserService{db: db, eventSvc: eventSvc}
}

// GetUserByID retrieves a single user with their roles.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	return s.getUser("id = ?", id)
}

// GetUserByUsername retrieves a single user with their roles.
func (s *UserService) GetUserByUsername(username string) (models.User, error) {
	return s.getUser("username = ?", username)
}

// GetUserByEmail retrieves a single user with their roles.
func (s *UserService) GetUserByEmail(email string) (models.User, error) {
	return s.getUser("email = ?", email)
}

func (s *UserService) getUser(where string, arg interface{}) (models.User, error) {
	var user models.User
	row := s.db.QueryRow(
		"SELECT id, username, email, phone, first_name, last_name, password_hash, is_active, created_at FROM users WHERE "+where, arg)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Phone, &user.FirstName,
		&user.LastName, &user.PasswordHash, &user.IsActive, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("user: %w", apperr.ErrNotFound)
		}
		return models.User{}, err
	}

	user.Roles, err = s.rolesOf(user.ID)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) rolesOf(userID string) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT r.name FROM roles r JOIN user_roles ur ON ur.role_id = r.id WHERE ur.user_id = ? ORDER BY r.name", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		roles = append(roles, name)
	}
	return roles, rows.Err()
}

// GetAllUsers retrieves every user account with roles.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	rows, err := s.db.Query(
		"SELECT id, username, email, phone, first_name, last_name, is_active, created_at FROM users ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.Phone,
			&user.FirstName, &user.LastName, &user.IsActive, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Roles, err = s.rolesOf(users[i].ID); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// CreateUser creates a new user with the given canonical role names, hashing
// the password. Role names must already exist; the user row and role links
// are written in a single transaction. Duplicate username/email/phone
// surfaces as apperr.ErrAlreadyExists.
func (s *UserService) CreateUser(user models.User, password string, roleNames []string) (models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	roleIDs := make([]string, 0, len(roleNames))
	for _, name := range roleNames {
		var roleID string
		err := s.db.QueryRow("SELECT id FROM roles WHERE name = ?", models.CanonicalRole(name)).Scan(&roleID)
		if err != nil {
			if err == sql.ErrNoRows {
				return models.User{}, fmt.Errorf("role %q: %w", name, apperr.ErrRoleNotFound)
			}
			return models.User{}, err
		}
		roleIDs = append(roleIDs, roleID)
	}

	user.ID = uuid.New().String()
	user.PasswordHash = string(hashedPassword)

	tx, err := s.db.Begin()
	if err != nil {
		return models.User{}, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO users (id, username, email, phone, first_name, last_name, password_hash, is_active) VALUES (?, ?, ?, ?, ?, ?, ?, TRUE)",
		user.ID, user.Username, user.Email, user.Phone, user.FirstName, user.LastName, user.PasswordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, fmt.Errorf("user: %w", apperr.ErrAlreadyExists)
		}
		return models.User{}, err
	}

	for _, roleID := range roleIDs {
		if _, err := tx.Exec("INSERT INTO user_roles (user_id, role_id) VALUES (?, ?)", user.ID, roleID); err != nil {
			return models.User{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.User{}, err
	}

	s.eventSvc.CreateEvent("user.create", "info", fmt.Sprintf("User '%s' created.", user.Username), &user.ID)
	return s.GetUserByID(user.ID)
}

// UpdateUser updates a user's non-sensitive profile information.
func (s *UserService) UpdateUser(id string, user models.User) (models.User, error) {
	_, err := s.db.Exec(
		"UPDATE users SET username = ?, email = ?, phone = ?, first_name = ?, last_name = ? WHERE id = ?",
		user.Username, user.Email, user.Phone, user.FirstName, user.LastName, id)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, fmt.Errorf("user: %w", apperr.ErrAlreadyExists)
		}
		return models.User{}, err
	}
	return s.GetUserByID(id)
}

// SetActive flips the active flag. Accounts are soft-disabled, never deleted,
// while dependent records reference them.
func (s *UserService) SetActive(id string, active bool) error {
	res, err := s.db.Exec("UPDATE users SET is_active = ? WHERE id = ?", active, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user: %w", apperr.ErrNotFound)
	}

	level, action := "info", "activated"
	if !active {
		level, action = "warn", "deactivated"
	}
	s.eventSvc.CreateEvent("user.active", level, fmt.Sprintf("User %s %s.", id, action), &id)
	return nil
}

// UpdatePasswordHash overwrites the stored password hash. Callers hash first.
func (s *UserService) UpdatePasswordHash(id, passwordHash string) error {
	res, err := s.db.Exec("UPDATE users SET password_hash = ? WHERE id = ?", passwordHash, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user: %w", apperr.ErrNotFound)
	}
	return nil
}

// isUniqueViolation reports whether err is a SQLite unique-constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
