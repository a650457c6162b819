// Package ai proxies text and image generation to Gemini so the API key never reaches the browser.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"release-desk/internal/apperr"

	"github.com/gin-gonic/gin"
	"google.golang.org/genai"
)

const (
	DefaultTextModel  = "gemini-2.5-flash"
	DefaultImageModel = "imagen-4.0-generate-001"
)

// Generator is the subset of *genai.Models the proxy calls.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

type Handler struct {
	gen Generator
}

// NewHandler returns a handler that answers with an upstream error when gen is nil.
func NewHandler(gen Generator) *Handler {
	return &Handler{gen: gen}
}

type contentRequest struct {
	Model    string          `json:"model"`
	Contents json.RawMessage `json:"contents"`
	Config   json.RawMessage `json:"config"`
}

type imagesRequest struct {
	Model  string          `json:"model"`
	Prompt string          `json:"prompt"`
	Config json.RawMessage `json:"config"`
}

type contentResponse struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
}

type imagesResponse struct {
	Success         bool                     `json:"success"`
	GeneratedImages []*genai.GeneratedImage `json:"generatedImages"`
}

// GenerateContent handles POST /ai/generate-content
func (h *Handler) GenerateContent(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.Validation("Invalid request body: " + err.Error()))
		return
	}
	contents, err := decodeContents(req.Contents)
	if err != nil {
		_ = c.Error(err)
		return
	}
	var cfg *genai.GenerateContentConfig
	if err := decodeConfig(req.Config, &cfg); err != nil {
		_ = c.Error(err)
		return
	}
	if h.gen == nil {
		_ = c.Error(apperr.Upstream("AI generation is not configured", nil))
		return
	}

	resp, err := h.gen.GenerateContent(c.Request.Context(), orDefault(req.Model, DefaultTextModel), contents, cfg)
	if err != nil {
		_ = c.Error(upstream("Content generation failed", err))
		return
	}
	c.JSON(http.StatusOK, contentResponse{Success: true, Text: resp.Text()})
}

// GenerateImages handles POST /ai/generate-images
func (h *Handler) GenerateImages(c *gin.Context) {
	var req imagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.Validation("Invalid request body: " + err.Error()))
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		_ = c.Error(apperr.Validation("prompt is required"))
		return
	}
	var cfg *genai.GenerateImagesConfig
	if err := decodeConfig(req.Config, &cfg); err != nil {
		_ = c.Error(err)
		return
	}
	if h.gen == nil {
		_ = c.Error(apperr.Upstream("AI generation is not configured", nil))
		return
	}

	resp, err := h.gen.GenerateImages(c.Request.Context(), orDefault(req.Model, DefaultImageModel), req.Prompt, cfg)
	if err != nil {
		_ = c.Error(upstream("Image generation failed", err))
		return
	}
	images := resp.GeneratedImages
	if images == nil {
		images = []*genai.GeneratedImage{}
	}
	c.JSON(http.StatusOK, imagesResponse{Success: true, GeneratedImages: images})
}

// decodeContents accepts either a bare prompt string or a list of genai contents.
func decodeContents(raw json.RawMessage) ([]*genai.Content, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, apperr.Validation("contents is required")
	}
	if raw[0] == '"' {
		var prompt string
		if err := json.Unmarshal(raw, &prompt); err != nil || strings.TrimSpace(prompt) == "" {
			return nil, apperr.Validation("contents is required")
		}
		return genai.Text(prompt), nil
	}
	var contents []*genai.Content
	if err := json.Unmarshal(raw, &contents); err != nil {
		return nil, apperr.Validation("contents must be a string or a list of contents")
	}
	if len(contents) == 0 {
		return nil, apperr.Validation("contents is required")
	}
	return contents, nil
}

func decodeConfig[T any](raw json.RawMessage, dst **T) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	v := new(T)
	if err := json.Unmarshal(raw, v); err != nil {
		return apperr.Validation("Invalid config: " + err.Error())
	}
	*dst = v
	return nil
}

// upstream keeps the provider's own message when it sent one.
func upstream(fallback string, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apperr.Upstream(apiErr.Message, err)
	}
	return apperr.Upstream(fallback, err)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
