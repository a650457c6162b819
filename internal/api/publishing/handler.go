package publishing

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
// POST /publishing/books
// ------------------------------
func (h *Handler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.Validation("Invalid request body: " + err.Error()))
		return
	}

	book, err := h.coord.CreateBook(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.BookResponse{Success: true, Book: book})
}

// ------------------------------
// PATCH /publishing/books/:id
// ------------------------------
func (h *Handler) UpdateBook(c *gin.Context) {
	id, err := mutation.ParseID(c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.Validation("Invalid request body: " + err.Error()))
		return
	}

	if err := h.coord.UpdateBook(c.Request.Context(), id, req); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Book updated"})
}

// ------------------------------
// POST /publishing/books/:id/illustrations
// ------------------------------
func (h *Handler) AddIllustration(c *gin.Context) {
	id, err := mutation.ParseID(c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req dto.AddIllustrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.Validation("Invalid request body: " + err.Error()))
		return
	}

	il, err := h.coord.AddIllustration(c.Request.Context(), id, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.IllustrationResponse{Success: true, Illustration: il})
}
