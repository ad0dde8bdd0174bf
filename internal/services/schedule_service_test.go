package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/apperr"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
)

func TestCreateSchedule_SlotValidation(t *testing.T) {
	fx := newSchoolFixture(t)
	schedules := NewScheduleService(fx.db, NewEventService(fx.db))

	valid := models.Schedule{
		ClassID:      fx.classID,
		SubjectID:    fx.subjectID,
		TeacherID:    fx.teacherID,
		DayOfWeek:    5,
		LessonNumber: 1,
		Quarter:      2,
		SchoolYear:   "2025-2026",
	}

	cases := []struct {
		name   string
		mutate func(*models.Schedule)
	}{
		{"day of week too low", func(s *models.Schedule) { s.DayOfWeek = 0 }},
		{"day of week too high", func(s *models.Schedule) { s.DayOfWeek = 8 }},
		{"lesson number zero", func(s *models.Schedule) { s.LessonNumber = 0 }},
		{"quarter too low", func(s *models.Schedule) { s.Quarter = 0 }},
		{"quarter too high", func(s *models.Schedule) { s.Quarter = 5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			slot := valid
			tc.mutate(&slot)
			_, err := schedules.CreateSchedule(slot)
			assert.ErrorIs(t, err, apperr.ErrInvalidInput)
		})
	}

	created, err := schedules.CreateSchedule(valid)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 5, created.DayOfWeek)
}

func TestGetSchedulesForClass(t *testing.T) {
	fx := newSchoolFixture(t)
	schedules := NewScheduleService(fx.db, NewEventService(fx.db))

	list, err := schedules.GetSchedulesForClass(fx.classID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, fx.scheduleID, list[0].ID)

	empty, err := schedules.GetSchedulesForClass("no-such-class")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
