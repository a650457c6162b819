// Package dto holds the JSON shapes exchanged between the API and the client store.
package dto

// ---------- payloads

type Split struct {
	Name  string `json:"name"`
	Share Share  `json:"share"`
}

type Release struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Artist      string  `json:"artist"`
	Genre       string  `json:"genre"`
	Status      string  `json:"status"`
	ReleaseDate *string `json:"releaseDate,omitempty"`
	Splits      []Split `json:"splits"`
}

type Rights struct {
	Territorial bool `json:"territorial"`
	Translation bool `json:"translation"`
	Adaptation  bool `json:"adaptation"`
	Audio       bool `json:"audio"`
	DRM         bool `json:"drm"`
}

type Chapter struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Illustration struct {
	URL    string `json:"url"`
	Prompt string `json:"prompt"`
}

type Book struct {
	ID            uint           `json:"id"`
	Title         string         `json:"title"`
	Author        string         `json:"author"`
	Genre         string         `json:"genre"`
	Status        string         `json:"status"`
	Blurb         string         `json:"blurb"`
	Keywords      string         `json:"keywords"`
	CoverImageURL string         `json:"coverImageUrl"`
	Rights        Rights         `json:"rights"`
	Splits        []Split        `json:"splits"`
	Chapters      []Chapter      `json:"chapters"`
	Illustrations []Illustration `json:"illustrations"`
}

// Task.DueDate is "" when unset, unlike Release.ReleaseDate which is omitted.
type Task struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	DueDate   string `json:"dueDate"`
	Completed bool   `json:"completed"`
}

type MusicData struct {
	Releases []Release `json:"releases"`
	Tasks    []Task    `json:"tasks"`
}

type PublishingData struct {
	Books []Book `json:"books"`
	Tasks []Task `json:"tasks"`
}

type AppData struct {
	Music              MusicData      `json:"music"`
	Publishing         PublishingData `json:"publishing"`
	OnboardingComplete bool           `json:"onboardingComplete"`
}

// ---------- requests

type CreateReleaseRequest struct {
	Title       string  `json:"title"`
	Artist      string  `json:"artist"`
	Genre       string  `json:"genre"`
	ReleaseDate string  `json:"releaseDate,omitempty"`
	Splits      []Split `json:"splits,omitempty"`
}

type ReplaceSplitsRequest struct {
	Splits []Split `json:"splits"`
}

type CreateBookRequest struct {
	Title    string    `json:"title"`
	Author   string    `json:"author"`
	Genre    string    `json:"genre"`
	Rights   *Rights   `json:"rights,omitempty"`
	Splits   []Split   `json:"splits,omitempty"`
	Chapters []Chapter `json:"chapters,omitempty"`
}

// UpdateBookRequest applies only the fields that are present; a nil field is left alone.
type UpdateBookRequest struct {
	Title         *string   `json:"title,omitempty"`
	Blurb         *string   `json:"blurb,omitempty"`
	Keywords      *string   `json:"keywords,omitempty"`
	CoverImageURL *string   `json:"coverImageUrl,omitempty"`
	Status        *string   `json:"status,omitempty"`
	Rights        *Rights   `json:"rights,omitempty"`
	Splits        []Split   `json:"splits"`
	Chapters      []Chapter `json:"chapters"`
}

// Empty reports whether the request touches nothing.
func (r UpdateBookRequest) Empty() bool {
	return r.Title == nil && r.Blurb == nil && r.Keywords == nil && r.CoverImageURL == nil &&
		r.Status == nil && r.Rights == nil && r.Splits == nil && r.Chapters == nil
}

type AddIllustrationRequest struct {
	URL    string `json:"url"`
	Prompt string `json:"prompt"`
}

type CreateTaskRequest struct {
	Text    string `json:"text"`
	DueDate string `json:"dueDate,omitempty"`
}

type UpdateTaskStatusRequest struct {
	Completed *bool `json:"completed"`
}

type OnboardingRequest struct {
	OnboardingComplete *bool `json:"onboardingComplete"`
}

// ---------- responses

type ReleaseResponse struct {
	Success bool    `json:"success"`
	Release Release `json:"release"`
}

type BookResponse struct {
	Success bool `json:"success"`
	Book    Book `json:"book"`
}

type TaskResponse struct {
	Success bool `json:"success"`
	Task    Task `json:"task"`
}

type IllustrationResponse struct {
	Success      bool         `json:"success"`
	Illustration Illustration `json:"illustration"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the uniform failure body; Error carries the cause for server side failures.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type AppDataResponse struct {
	Success bool `json:"success"`
	AppData
}

type PresignResponse struct {
	Success      bool   `json:"success"`
	PresignedURL string `json:"presignedUrl"`
	FileURL      string `json:"fileUrl"`
}
