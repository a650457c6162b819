package mutation

import (
	"context"

	"release-desk/internal/apperr"
	"release-desk/internal/dashboard"
	"release-desk/internal/domain/tasks"
	"release-desk/internal/dto"
)

func (c *Coordinator) CreateTask(ctx context.Context, kind tasks.Kind, req dto.CreateTaskRequest) (dto.Task, error) {
	if blank(req.Text) {
		return dto.Task{}, apperr.Validation("Task text is required")
	}
	due, err := dashboard.ParseDate(req.DueDate)
	if err != nil {
		return dto.Task{}, apperr.Validation("dueDate must be YYYY-MM-DD")
	}

	task := tasks.Task{Text: req.Text, DueDate: due}
	if err := c.db.WithContext(ctx).Table(kind.Table()).Create(&task).Error; err != nil {
		return dto.Task{}, apperr.Persistence("Failed to create task", err)
	}
	return dashboard.TransformTask(task), nil
}

// UpdateTaskStatus is a single statement; no matching row is reported as not found.
func (c *Coordinator) UpdateTaskStatus(ctx context.Context, kind tasks.Kind, id uint, completed bool) error {
	res := c.db.WithContext(ctx).Table(kind.Table()).Where("id = ?", id).Update("completed", completed)
	if res.Error != nil {
		return apperr.Persistence("Failed to update task", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Task not found")
	}
	return nil
}
