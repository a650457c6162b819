package store

import (
	"context"
	"fmt"
	"io"
	"math"
	"slices"

	"release-desk/internal/domain/tasks"
	"release-desk/internal/dto"
)

// Initialize loads everything once. The store counts as initialized even when the fetch
// fails so the UI can leave its loading screen and show the error.
func (s *Store) Initialize(ctx context.Context) error {
	data, err := s.src.FetchAppData(ctx)
	if err != nil {
		s.mu.Lock()
		s.state.Initialized = true
		s.mu.Unlock()
		return s.fail("initialize", "Could not load data from the server. Make sure the backend is running.", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{
		Releases:           data.Music.Releases,
		MusicTasks:         data.Music.Tasks,
		Books:              data.Publishing.Books,
		PublishingTasks:    data.Publishing.Tasks,
		OnboardingComplete: data.OnboardingComplete,
		Initialized:        true,
	}
	return nil
}

func (s *Store) AddRelease(ctx context.Context, req dto.CreateReleaseRequest) error {
	rel, err := s.src.CreateRelease(ctx, req)
	if err != nil {
		return s.fail("add_release", errorMessage(err), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Releases = append(slices.Clone(s.state.Releases), rel)
	return nil
}

func (s *Store) UpdateReleaseSplits(ctx context.Context, releaseID uint, splits []dto.Split) error {
	if err := s.src.ReplaceReleaseSplits(ctx, releaseID, splits); err != nil {
		return s.fail("update_release_splits", errorMessage(err), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	releases := slices.Clone(s.state.Releases)
	for i := range releases {
		if releases[i].ID == releaseID {
			releases[i].Splits = normalizeShares(splits)
		}
	}
	s.state.Releases = releases
	return nil
}

func (s *Store) AddTask(ctx context.Context, kind tasks.Kind, text, dueDate string) error {
	task, err := s.src.CreateTask(ctx, kind, dto.CreateTaskRequest{Text: text, DueDate: dueDate})
	if err != nil {
		return s.fail("add_task", errorMessage(err), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.tasks(kind)
	*list = append(slices.Clone(*list), task)
	return nil
}

// ToggleTask flips the completed flag of a task.
func (s *Store) ToggleTask(ctx context.Context, kind tasks.Kind, id uint) error {
	s.mu.Lock()
	list := *s.tasks(kind)
	i := slices.IndexFunc(list, func(t dto.Task) bool { return t.ID == id })
	var next bool
	if i >= 0 {
		next = !list[i].Completed
	}
	s.mu.Unlock()
	if i < 0 {
		return s.fail("toggle_task", "Task not found.", fmt.Errorf("task %d: %w", id, ErrUnknownTask))
	}

	if err := s.src.UpdateTaskStatus(ctx, kind, id, next); err != nil {
		return s.fail("toggle_task", errorMessage(err), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.tasks(kind)
	updated := slices.Clone(*p)
	for j := range updated {
		if updated[j].ID == id {
			updated[j].Completed = next
		}
	}
	*p = updated
	return nil
}

// tasks returns the list for kind; must be called with s.mu held.
func (s *Store) tasks(kind tasks.Kind) *[]dto.Task {
	if kind == tasks.KindPublishing {
		return &s.state.PublishingTasks
	}
	return &s.state.MusicTasks
}

// AddBook returns the new book's id.
func (s *Store) AddBook(ctx context.Context, req dto.CreateBookRequest) (uint, error) {
	book, err := s.src.CreateBook(ctx, req)
	if err != nil {
		return 0, s.fail("add_book", errorMessage(err), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Books = append(slices.Clone(s.state.Books), book)
	return book.ID, nil
}

// UpdateBook persists the present fields of req and merges them into the local book.
func (s *Store) UpdateBook(ctx context.Context, bookID uint, req dto.UpdateBookRequest) error {
	if err := s.updateBook(ctx, bookID, req); err != nil {
		return s.fail("update_book", errorMessage(err), err)
	}
	return nil
}

func (s *Store) updateBook(ctx context.Context, bookID uint, req dto.UpdateBookRequest) error {
	if err := s.src.UpdateBook(ctx, bookID, req); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceBook(bookID, func(b dto.Book) dto.Book { return mergeBook(b, req) })
	return nil
}

func mergeBook(b dto.Book, req dto.UpdateBookRequest) dto.Book {
	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Blurb != nil {
		b.Blurb = *req.Blurb
	}
	if req.Keywords != nil {
		b.Keywords = *req.Keywords
	}
	if req.CoverImageURL != nil {
		b.CoverImageURL = *req.CoverImageURL
	}
	if req.Status != nil {
		b.Status = *req.Status
	}
	if req.Rights != nil {
		b.Rights = *req.Rights
	}
	if req.Splits != nil {
		b.Splits = normalizeShares(req.Splits)
	}
	if req.Chapters != nil {
		b.Chapters = slices.Clone(req.Chapters)
	}
	return b
}

// normalizeShares renders shares the way the server echoes them back, "50.0" as "50".
// Unparseable shares are kept as sent.
func normalizeShares(splits []dto.Split) []dto.Split {
	out := slices.Clone(splits)
	for i := range out {
		if f, err := out[i].Share.Float(); err == nil {
			out[i].Share = dto.FormatShare(f)
		}
	}
	return out
}

// SharesTotal sums split shares; unparseable shares make the total NaN.
func SharesTotal(splits []dto.Split) float64 {
	var total float64
	for _, sp := range splits {
		f, err := sp.Share.Float()
		if err != nil {
			return math.NaN()
		}
		total += f
	}
	return total
}

// UpdateBookSplits refuses locally, without a round trip, unless shares add up to 100.
func (s *Store) UpdateBookSplits(ctx context.Context, bookID uint, splits []dto.Split) error {
	if total := SharesTotal(splits); math.IsNaN(total) || math.Abs(total-100) > 0.01 {
		err := fmt.Errorf("shares total %v, want 100", total)
		return s.fail("update_book_splits", "Shares must add up to 100%.", err)
	}
	if splits == nil {
		splits = []dto.Split{}
	}
	return s.UpdateBook(ctx, bookID, dto.UpdateBookRequest{Splits: splits})
}

func (s *Store) ReplaceBookChapters(ctx context.Context, bookID uint, chapters []dto.Chapter) error {
	if chapters == nil {
		chapters = []dto.Chapter{}
	}
	return s.UpdateBook(ctx, bookID, dto.UpdateBookRequest{Chapters: chapters})
}

// AddChapter appends an empty "Chapter N" to the book.
func (s *Store) AddChapter(ctx context.Context, bookID uint) error {
	b, err := s.lookupBook("add_chapter", bookID)
	if err != nil {
		return err
	}
	chapters := append(slices.Clone(b.Chapters), dto.Chapter{Title: fmt.Sprintf("Chapter %d", len(b.Chapters)+1)})
	return s.ReplaceBookChapters(ctx, bookID, chapters)
}

// UpdateChapterContent edits the chapter locally first and then saves the whole chapter
// list. A failed save keeps the local edit.
func (s *Store) UpdateChapterContent(ctx context.Context, bookID uint, index int, content string) error {
	s.mu.Lock()
	b, ok := s.book(bookID)
	if !ok {
		s.mu.Unlock()
		return s.fail("update_chapter_content", "Book not found.", ErrUnknownBook)
	}
	if index < 0 || index >= len(b.Chapters) {
		s.mu.Unlock()
		return s.fail("update_chapter_content", "Chapter not found.", ErrUnknownChapter)
	}
	chapters := slices.Clone(b.Chapters)
	chapters[index].Content = content
	s.replaceBook(bookID, func(b dto.Book) dto.Book {
		b.Chapters = chapters
		return b
	})
	s.mu.Unlock()

	if err := s.src.UpdateBook(ctx, bookID, dto.UpdateBookRequest{Chapters: chapters}); err != nil {
		return s.fail("update_chapter_content", "Failed to save chapter.", err)
	}
	return nil
}

// SaveIllustration adds a generated illustration to the book's gallery.
func (s *Store) SaveIllustration(ctx context.Context, bookID uint, il dto.Illustration) error {
	saved, err := s.src.AddIllustration(ctx, bookID, dto.AddIllustrationRequest{URL: il.URL, Prompt: il.Prompt})
	if err != nil {
		return s.fail("save_illustration", errorMessage(err), err)
	}

	s.mu.Lock()
	s.replaceBook(bookID, func(b dto.Book) dto.Book {
		b.Illustrations = append(slices.Clone(b.Illustrations), saved)
		return b
	})
	s.mu.Unlock()

	s.succeed("Illustration saved.")
	return nil
}

// CompleteOnboarding ends the guided tour for good.
func (s *Store) CompleteOnboarding(ctx context.Context) error {
	if err := s.src.SetOnboardingComplete(ctx, true); err != nil {
		return s.fail("complete_onboarding", errorMessage(err), err)
	}

	s.mu.Lock()
	s.state.OnboardingComplete = true
	s.mu.Unlock()

	s.succeed("You're all set! Feel free to explore.")
	return nil
}

// UploadCover sends a cover image to storage and points the book at it.
func (s *Store) UploadCover(ctx context.Context, bookID uint, fileName, fileType string, body io.Reader) error {
	if _, err := s.lookupBook("upload_cover", bookID); err != nil {
		return err
	}
	if s.uploader == nil {
		return s.fail("upload_cover", ErrNoUploader.Error(), ErrNoUploader)
	}

	defer s.setLoading(LoadingBookCover)()

	presigned, fileURL, err := s.uploader.PresignUpload(ctx, fileName, fileType)
	if err != nil {
		return s.fail("upload_cover", errorMessage(err), err)
	}
	if err := s.uploader.UploadFile(ctx, presigned, fileType, body); err != nil {
		return s.fail("upload_cover", errorMessage(err), err)
	}
	if err := s.updateBook(ctx, bookID, dto.UpdateBookRequest{CoverImageURL: &fileURL}); err != nil {
		return s.fail("upload_cover", errorMessage(err), err)
	}
	s.succeed("Cover uploaded.")
	return nil
}
