package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/apperr"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
)

func TestCreateMark_AndListForStudent(t *testing.T) {
	fx := newSchoolFixture(t)
	marks := NewMarkService(fx.db, NewEventService(fx.db))

	created, err := marks.CreateMark(models.Mark{
		StudentID:  fx.studentID,
		ScheduleID: fx.scheduleID,
		Grade:      5,
		Comment:    "Excellent work",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 5, created.Grade)

	list, err := marks.GetMarksForStudent(fx.studentID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	other, err := marks.GetMarksForStudent("no-such-student")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestCreateMark_GradeBounds(t *testing.T) {
	fx := newSchoolFixture(t)
	marks := NewMarkService(fx.db, NewEventService(fx.db))

	for _, grade := range []int{0, 6, -1} {
		_, err := marks.CreateMark(models.Mark{StudentID: fx.studentID, ScheduleID: fx.scheduleID, Grade: grade})
		assert.ErrorIs(t, err, apperr.ErrInvalidInput, "grade %d must be rejected", grade)
	}

	for grade := models.MinGrade; grade <= models.MaxGrade; grade++ {
		_, err := marks.CreateMark(models.Mark{StudentID: fx.studentID, ScheduleID: fx.scheduleID, Grade: grade})
		assert.NoError(t, err, "grade %d must be accepted", grade)
	}
}

func TestUpdateMark_CorrectsGrade(t *testing.T) {
	fx := newSchoolFixture(t)
	marks := NewMarkService(fx.db, NewEventService(fx.db))

	created, err := marks.CreateMark(models.Mark{StudentID: fx.studentID, ScheduleID: fx.scheduleID, Grade: 3})
	require.NoError(t, err)

	updated, err := marks.UpdateMark(created.ID, models.Mark{Grade: 4, Comment: "Recounted"})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Grade)
	assert.Equal(t, "Recounted", updated.Comment)

	_, err = marks.UpdateMark(created.ID, models.Mark{Grade: 9})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestDeleteMark(t *testing.T) {
	fx := newSchoolFixture(t)
	marks := NewMarkService(fx.db, NewEventService(fx.db))

	created, err := marks.CreateMark(models.Mark{StudentID: fx.studentID, ScheduleID: fx.scheduleID, Grade: 2})
	require.NoError(t, err)

	require.NoError(t, marks.DeleteMark(created.ID))
	_, err = marks.GetMarkByID(created.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.ErrorIs(t, marks.DeleteMark(created.ID), apperr.ErrNotFound)
}
