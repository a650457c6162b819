// Package tasks serves the music and publishing to-do lists. One Handler is mounted per kind.
package tasks

import (
	"net/http"

	"release-desk/internal/apperr"
	"release-desk/internal/domain/tasks"
	"release-desk/internal/dto"
	"release-desk/internal/mutation"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	coord *mutation.Coordinator
	kind  tasks.Kind
}

func NewHandler(coord *mutation.Coordinator, kind tasks.Kind) *Handler {
	return &Handler{coord: coord, kind: kind}
}

// Create handles POST /<kind>/tasks
func (h *Handler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.Validation("Invalid request body: " + err.Error()))
		return
	}

	task, err := h.coord.CreateTask(c.Request.Context(), h.kind, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.TaskResponse{Success: true, Task: task})
}

// UpdateStatus handles PATCH /<kind>/tasks/:id
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := mutation.ParseID(c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req dto.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Completed == nil {
		_ = c.Error(apperr.Validation("completed is required"))
		return
	}

	if err := h.coord.UpdateTaskStatus(c.Request.Context(), h.kind, id, *req.Completed); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Task status updated"})
}
