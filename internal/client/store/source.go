package store

import (
	"context"
	"io"

	"release-desk/internal/dashboard"
	"release-desk/internal/domain/tasks"
	"release-desk/internal/dto"
	"release-desk/internal/mutation"
)

// Fetcher loads the whole dashboard in one call.
type Fetcher interface {
	FetchAppData(ctx context.Context) (*dto.AppData, error)
}

// Mutator persists one change at a time.
type Mutator interface {
	CreateRelease(ctx context.Context, req dto.CreateReleaseRequest) (dto.Release, error)
	ReplaceReleaseSplits(ctx context.Context, releaseID uint, splits []dto.Split) error
	CreateBook(ctx context.Context, req dto.CreateBookRequest) (dto.Book, error)
	UpdateBook(ctx context.Context, bookID uint, req dto.UpdateBookRequest) error
	AddIllustration(ctx context.Context, bookID uint, req dto.AddIllustrationRequest) (dto.Illustration, error)
	CreateTask(ctx context.Context, kind tasks.Kind, req dto.CreateTaskRequest) (dto.Task, error)
	UpdateTaskStatus(ctx context.Context, kind tasks.Kind, id uint, completed bool) error
	SetOnboardingComplete(ctx context.Context, done bool) error
}

type DataSource interface {
	Fetcher
	Mutator
}

// Assistant generates copy and artwork. GenerateImage returns a URL the UI can show
// directly, usually a data: URL.
type Assistant interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateImage(ctx context.Context, prompt, aspectRatio string) (string, error)
}

// InProcess serves the store straight from the database layer, without HTTP.
type InProcess struct {
	*dashboard.Assembler
	*mutation.Coordinator
}

var _ DataSource = InProcess{}

// Uploader moves a file straight to object storage through a presigned URL.
type Uploader interface {
	PresignUpload(ctx context.Context, fileName, fileType string) (presignedURL, fileURL string, err error)
	UploadFile(ctx context.Context, presignedURL, contentType string, body io.Reader) error
}
