package music

import (
	"net/http"

	"release-desk/internal/apperr"
	"release-desk/internal/dto"
	"release-desk/internal/mutation"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	coord *mutation.Coordinator
}

func NewHandler(coord *mutation.Coordinator) *Handler {
	return &Handler{coord: coord}
}

// ------------------------------
// POST /music/releases
// ------------------------------
func (h *Handler) CreateRelease(c *gin.Context) {
	var req dto.CreateReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.Validation("Invalid request body: " + err.Error()))
		return
	}

	rel, err := h.coord.CreateRelease(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.ReleaseResponse{Success: true, Release: rel})
}

// ------------------------------
// PATCH /music/releases/:id/splits
// ------------------------------
func (h *Handler) ReplaceSplits(c *gin.Context) {
	id, err := mutation.ParseID(c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req dto.ReplaceSplitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.Validation("Invalid request body: " + err.Error()))
		return
	}
	if req.Splits == nil {
		_ = c.Error(apperr.Validation("splits is required"))
		return
	}

	if err := h.coord.ReplaceReleaseSplits(c.Request.Context(), id, req.Splits); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Splits updated"})
}
