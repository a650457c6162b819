package store

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"release-desk/internal/domain/tasks"
	"release-desk/internal/dto"
)

var errBackendDown = errors.New("backend down")

// fakeSource is an in-memory DataSource. failOn makes the named method return its error.
type fakeSource struct {
	mu     sync.Mutex
	data   dto.AppData
	nextID uint
	failOn map[string]error
	calls  []string

	updates []dto.UpdateBookRequest
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		data: dto.AppData{
			Music:      dto.MusicData{Releases: []dto.Release{}, Tasks: []dto.Task{}},
			Publishing: dto.PublishingData{Books: []dto.Book{}, Tasks: []dto.Task{}},
		},
		nextID: 100,
		failOn: map[string]error{},
	}
}

func (f *fakeSource) call(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return f.failOn[name]
}

func (f *fakeSource) id() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return f.nextID
}

func (f *fakeSource) FetchAppData(context.Context) (*dto.AppData, error) {
	if err := f.call("FetchAppData"); err != nil {
		return nil, err
	}
	d := f.data
	return &d, nil
}

func (f *fakeSource) CreateRelease(_ context.Context, req dto.CreateReleaseRequest) (dto.Release, error) {
	if err := f.call("CreateRelease"); err != nil {
		return dto.Release{}, err
	}
	splits := req.Splits
	if splits == nil {
		splits = []dto.Split{}
	}
	return dto.Release{ID: f.id(), Title: req.Title, Artist: req.Artist, Genre: req.Genre, Status: "Submitted", Splits: splits}, nil
}

func (f *fakeSource) ReplaceReleaseSplits(context.Context, uint, []dto.Split) error {
	return f.call("ReplaceReleaseSplits")
}

func (f *fakeSource) CreateBook(_ context.Context, req dto.CreateBookRequest) (dto.Book, error) {
	if err := f.call("CreateBook"); err != nil {
		return dto.Book{}, err
	}
	return dto.Book{
		ID: f.id(), Title: req.Title, Author: req.Author, Genre: req.Genre, Status: "Draft",
		Splits: []dto.Split{}, Chapters: req.Chapters, Illustrations: []dto.Illustration{},
	}, nil
}

func (f *fakeSource) UpdateBook(_ context.Context, _ uint, req dto.UpdateBookRequest) error {
	f.mu.Lock()
	f.updates = append(f.updates, req)
	f.mu.Unlock()
	return f.call("UpdateBook")
}

func (f *fakeSource) AddIllustration(_ context.Context, _ uint, req dto.AddIllustrationRequest) (dto.Illustration, error) {
	if err := f.call("AddIllustration"); err != nil {
		return dto.Illustration{}, err
	}
	return dto.Illustration{URL: req.URL, Prompt: req.Prompt}, nil
}

func (f *fakeSource) CreateTask(_ context.Context, _ tasks.Kind, req dto.CreateTaskRequest) (dto.Task, error) {
	if err := f.call("CreateTask"); err != nil {
		return dto.Task{}, err
	}
	return dto.Task{ID: f.id(), Text: req.Text, DueDate: req.DueDate}, nil
}

func (f *fakeSource) UpdateTaskStatus(context.Context, tasks.Kind, uint, bool) error {
	return f.call("UpdateTaskStatus")
}

func (f *fakeSource) SetOnboardingComplete(context.Context, bool) error {
	return f.call("SetOnboardingComplete")
}

func (f *fakeSource) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

type fakeAssistant struct {
	text    string
	image   string
	err     error
	prompts []string
	ratios  []string

	// during runs inside the call, used to observe loading flags
	during func()
}

func (a *fakeAssistant) GenerateText(_ context.Context, prompt string) (string, error) {
	a.prompts = append(a.prompts, prompt)
	if a.during != nil {
		a.during()
	}
	return a.text, a.err
}

func (a *fakeAssistant) GenerateImage(_ context.Context, prompt, ratio string) (string, error) {
	a.prompts = append(a.prompts, prompt)
	a.ratios = append(a.ratios, ratio)
	if a.during != nil {
		a.during()
	}
	return a.image, a.err
}

// fakeClock is advanced by hand.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type fakeUploader struct {
	presignErr error
	uploadErr  error
	uploaded   []byte
}

func (u *fakeUploader) PresignUpload(_ context.Context, fileName, _ string) (string, string, error) {
	if u.presignErr != nil {
		return "", "", u.presignErr
	}
	return "https://signed.example/" + fileName, "https://bucket.s3.eu-central-1.amazonaws.com/" + fileName, nil
}

func (u *fakeUploader) UploadFile(_ context.Context, _, _ string, body io.Reader) error {
	if u.uploadErr != nil {
		return u.uploadErr
	}
	b, err := io.ReadAll(body)
	u.uploaded = b
	return err
}
