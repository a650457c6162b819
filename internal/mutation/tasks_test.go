package mutation

import (
	"context"
	"testing"

	"release-desk/internal/apperr"
	"release-desk/internal/domain/tasks"
	"release-desk/internal/dto"
	"release-desk/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTask(t *testing.T) {
	db := testutil.SetupTestDB(t)
	c := NewCoordinator(db)

	for _, kind := range tasks.Kinds() {
		task, err := c.CreateTask(context.Background(), kind, dto.CreateTaskRequest{Text: "Master final track", DueDate: "2030-01-01"})
		require.NoError(t, err)
		assert.NotZero(t, task.ID)
		assert.Equal(t, "2030-01-01", task.DueDate)
		assert.False(t, task.Completed)

		undated, err := c.CreateTask(context.Background(), kind, dto.CreateTaskRequest{Text: "Someday"})
		require.NoError(t, err)
		assert.Equal(t, "", undated.DueDate)
	}
}

func TestCreateTask_EmptyTextWritesNothing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	c := NewCoordinator(db)

	_, err := c.CreateTask(context.Background(), tasks.KindMusic, dto.CreateTaskRequest{Text: "", DueDate: "2030-01-01"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = c.CreateTask(context.Background(), tasks.KindMusic, dto.CreateTaskRequest{Text: "x", DueDate: "01.01.2030"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	var n int64
	require.NoError(t, db.Table(tasks.KindMusic.Table()).Count(&n).Error)
	assert.Zero(t, n)
}

func TestUpdateTaskStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	c := NewCoordinator(db)
	task := testutil.CreateTestTask(t, db, tasks.KindPublishing, "Outline sequel", nil)

	require.NoError(t, c.UpdateTaskStatus(context.Background(), tasks.KindPublishing, task.ID, true))

	var got tasks.Task
	require.NoError(t, db.Table(tasks.KindPublishing.Table()).First(&got, task.ID).Error)
	assert.True(t, got.Completed)

	err := c.UpdateTaskStatus(context.Background(), tasks.KindMusic, task.ID, true)
	assert.True(t, apperr.Is(err, apperr.KindNotFound), "task ids are per table")
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)

	for _, bad := range []string{"", "0", "-1", "abc"} {
		_, err := ParseID(bad)
		assert.True(t, apperr.Is(err, apperr.KindValidation), "id %q", bad)
	}
}
