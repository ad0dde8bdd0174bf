package services

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/auth"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/database"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
)

// newTestDB opens a fresh in-memory database with the schema applied and the
// built-in roles seeded. The pool is pinned to one connection so every query
// sees the same in-memory database.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New("file::memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedRoles(db, func() string { return uuid.New().String() },
		models.RoleAdmin, models.RoleDirector, models.RoleTeacher, models.RoleStudent, models.RoleParent))
	return db
}

func newTestIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer([]byte("test-signing-key"), time.Hour)
}

// createTestUser inserts a user through the service layer and returns it.
func createTestUser(t *testing.T, users *UserService, username, password string, roles ...string) models.User {
	t.Helper()

	user, err := users.CreateUser(models.User{
		Username:  username,
		Email:     username + "@school.test",
		Phone:     fmt.Sprintf("+7-%s", uuid.New().String()[:12]),
		FirstName: "Test",
		LastName:  "User",
	}, password, roles)
	require.NoError(t, err)
	return user
}

// schoolFixture is a minimal populated school: one class, one subject, one
// teacher and one enrolled student, joined by a single timetable slot.
type schoolFixture struct {
	db         *sql.DB
	users      *UserService
	studentID  string
	classID    string
	subjectID  string
	teacherID  string
	scheduleID string
}

func newSchoolFixture(t *testing.T) *schoolFixture {
	t.Helper()

	db := newTestDB(t)
	eventSvc := NewEventService(db)
	users := NewUserService(db, eventSvc)

	teacherUser := createTestUser(t, users, "teacher1", "pass", "teacher")
	studentUser := createTestUser(t, users, "student1", "pass", "student")

	class, err := NewClassService(db, eventSvc).CreateClass(models.SchoolClass{Grade: 7, Title: "B", Classroom: "204"})
	require.NoError(t, err)

	subject, err := NewSubjectService(db, eventSvc).CreateSubject(models.Subject{Title: "Mathematics"})
	require.NoError(t, err)

	teacher, err := NewEmployeeService(db, eventSvc).CreateEmployee(models.Employee{
		UserID:     teacherUser.ID,
		Position:   "Teacher",
		SubjectIDs: []string{subject.ID},
	})
	require.NoError(t, err)

	student, err := NewStudentService(db, eventSvc).CreateStudent(models.Student{
		UserID:  studentUser.ID,
		ClassID: &class.ID,
	})
	require.NoError(t, err)

	schedule, err := NewScheduleService(db, eventSvc).CreateSchedule(models.Schedule{
		ClassID:      class.ID,
		SubjectID:    subject.ID,
		TeacherID:    teacher.ID,
		DayOfWeek:    1,
		LessonNumber: 2,
		Quarter:      1,
		SchoolYear:   "2025-2026",
	})
	require.NoError(t, err)

	return &schoolFixture{
		db:         db,
		users:      users,
		studentID:  student.ID,
		classID:    class.ID,
		subjectID:  subject.ID,
		teacherID:  teacher.ID,
		scheduleID: schedule.ID,
	}
}

type sentMail struct {
	recipient string
	subject   string
	body      string
}

// fakeMailer records sent mail, or fails every send when fail is set.
type fakeMailer struct {
	sent []sentMail
	fail error
}

func (m *fakeMailer) Send(_ context.Context, recipient, subject, body string) error {
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, sentMail{recipient: recipient, subject: subject, body: body})
	return nil
}
