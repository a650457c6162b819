// Package apiclient talks to the dashboard REST API. *Client implements the store's
// DataSource and Assistant.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"release-desk/internal/domain/tasks"
	"release-desk/internal/dto"

	"github.com/tidwall/gjson"
)

const (
	textModel  = "gemini-2.5-flash"
	imageModel = "imagen-4.0-generate-001"
)

// Error is a non-2xx answer. Message is the server's own message when it sent one.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string { return e.Message }

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// New returns a client for the API mounted at baseURL, e.g. http://localhost:3001/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 2 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends body as JSON and decodes a 2xx answer into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func newError(status int, raw []byte) *Error {
	msg := gjson.GetBytes(raw, "message").String()
	if msg == "" {
		msg = gjson.GetBytes(raw, "error").String()
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP error! status: %d", status)
	}
	return &Error{StatusCode: status, Message: msg}
}

func idPath(format string, id uint) string {
	return fmt.Sprintf(format, strconv.FormatUint(uint64(id), 10))
}

func (c *Client) FetchAppData(ctx context.Context) (*dto.AppData, error) {
	var resp dto.AppDataResponse
	if err := c.do(ctx, http.MethodGet, "/data", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.AppData, nil
}

func (c *Client) CreateRelease(ctx context.Context, req dto.CreateReleaseRequest) (dto.Release, error) {
	var resp dto.ReleaseResponse
	err := c.do(ctx, http.MethodPost, "/music/releases", req, &resp)
	return resp.Release, err
}

func (c *Client) ReplaceReleaseSplits(ctx context.Context, releaseID uint, splits []dto.Split) error {
	if splits == nil {
		splits = []dto.Split{}
	}
	return c.do(ctx, http.MethodPatch, idPath("/music/releases/%s/splits", releaseID), dto.ReplaceSplitsRequest{Splits: splits}, nil)
}

func (c *Client) CreateBook(ctx context.Context, req dto.CreateBookRequest) (dto.Book, error) {
	var resp dto.BookResponse
	err := c.do(ctx, http.MethodPost, "/publishing/books", req, &resp)
	return resp.Book, err
}

func (c *Client) UpdateBook(ctx context.Context, bookID uint, req dto.UpdateBookRequest) error {
	return c.do(ctx, http.MethodPatch, idPath("/publishing/books/%s", bookID), req, nil)
}

func (c *Client) AddIllustration(ctx context.Context, bookID uint, req dto.AddIllustrationRequest) (dto.Illustration, error) {
	var resp dto.IllustrationResponse
	err := c.do(ctx, http.MethodPost, idPath("/publishing/books/%s/illustrations", bookID), req, &resp)
	return resp.Illustration, err
}

func (c *Client) CreateTask(ctx context.Context, kind tasks.Kind, req dto.CreateTaskRequest) (dto.Task, error) {
	var resp dto.TaskResponse
	err := c.do(ctx, http.MethodPost, "/"+string(kind)+"/tasks", req, &resp)
	return resp.Task, err
}

func (c *Client) UpdateTaskStatus(ctx context.Context, kind tasks.Kind, id uint, completed bool) error {
	return c.do(ctx, http.MethodPatch, idPath("/"+string(kind)+"/tasks/%s", id), dto.UpdateTaskStatusRequest{Completed: &completed}, nil)
}

func (c *Client) SetOnboardingComplete(ctx context.Context, done bool) error {
	return c.do(ctx, http.MethodPut, "/onboarding", dto.OnboardingRequest{OnboardingComplete: &done}, nil)
}

// PresignUpload asks the API for a direct upload URL and the address the file will have.
func (c *Client) PresignUpload(ctx context.Context, fileName, fileType string) (presignedURL, fileURL string, err error) {
	q := url.Values{"fileName": {fileName}, "fileType": {fileType}}
	var resp dto.PresignResponse
	if err := c.do(ctx, http.MethodGet, "/s3-presigned-url?"+q.Encode(), nil, &resp); err != nil {
		return "", "", err
	}
	return resp.PresignedURL, resp.FileURL, nil
}

// UploadFile PUTs the file body to a presigned URL.
func (c *Client) UploadFile(ctx context.Context, presignedURL, contentType string, body io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, presignedURL, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{StatusCode: resp.StatusCode, Message: "File upload failed."}
	}
	return nil
}

// GenerateText runs a single prompt through the text model.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	var resp struct {
		Text string `json:"text"`
	}
	body := map[string]any{"model": textModel, "contents": prompt}
	if err := c.do(ctx, http.MethodPost, "/ai/generate-content", body, &resp); err != nil {
		return "", err
	}
	return resp.Text, nil
}

// GenerateImage returns the first generated image as a data: URL.
func (c *Client) GenerateImage(ctx context.Context, prompt, aspectRatio string) (string, error) {
	body := map[string]any{
		"model":  imageModel,
		"prompt": prompt,
		"config": map[string]any{
			"numberOfImages": 1,
			"outputMimeType": "image/jpeg",
			"aspectRatio":    aspectRatio,
		},
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/ai/generate-images", body, &raw); err != nil {
		return "", err
	}

	img := gjson.GetBytes(raw, "generatedImages.0.image")
	data := img.Get("imageBytes").String()
	if data == "" {
		return "", &Error{StatusCode: http.StatusOK, Message: "No image was generated."}
	}
	mime := img.Get("mimeType").String()
	if mime == "" {
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + data, nil
}
