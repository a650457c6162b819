// Package dashboard serves the aggregated dashboard payload and the onboarding flag.
package dashboard

import (
	"context"
	"net/http"

	"release-desk/internal/apperr"
	"release-desk/internal/dto"

	"github.com/gin-gonic/gin"
)

// Source is what the handler needs from the assembler.
type Source interface {
	FetchAppData(ctx context.Context) (*dto.AppData, error)
	SetOnboardingComplete(ctx context.Context, done bool) error
}

type Handler struct {
	src Source
}

func NewHandler(src Source) *Handler {
	return &Handler{src: src}
}

// GetData handles GET /data
func (h *Handler) GetData(c *gin.Context) {
	data, err := h.src.FetchAppData(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.AppDataResponse{Success: true, AppData: *data})
}

// SetOnboarding handles PUT /onboarding
func (h *Handler) SetOnboarding(c *gin.Context) {
	var req dto.OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OnboardingComplete == nil {
		_ = c.Error(apperr.Validation("onboardingComplete is required"))
		return
	}
	if err := h.src.SetOnboardingComplete(c.Request.Context(), *req.OnboardingComplete); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Onboarding state updated"})
}
