// Package store is the client side state container: it mirrors the dashboard data, tracks
// in-flight AI work and queues user notifications. Every action talks to a DataSource and
// only touches local state once that call succeeds.
package store

import (
	"errors"
	"slices"
	"sync"
	"time"

	"release-desk/internal/apperr"
	"release-desk/internal/dto"

	"go.uber.org/zap"
)

// LoadingKey names a long running action the UI shows a spinner for.
type LoadingKey string

const (
	LoadingBlurb        LoadingKey = "blurb"
	LoadingKeywords     LoadingKey = "keywords"
	LoadingBookCover    LoadingKey = "bookCover"
	LoadingIllustration LoadingKey = "illustration"
)

var (
	ErrUnknownBook    = errors.New("book not found")
	ErrUnknownChapter = errors.New("chapter not found")
	ErrUnknownTask    = errors.New("task not found")
	ErrEmptyPrompt    = errors.New("illustration prompt is empty")
	ErrNoAssistant    = errors.New("AI assistant is not configured")
	ErrNoUploader     = errors.New("file uploads are not configured")
)

// State is a copy of the store's data at one point in time.
type State struct {
	Releases           []dto.Release
	MusicTasks         []dto.Task
	Books              []dto.Book
	PublishingTasks    []dto.Task
	OnboardingComplete bool
	Initialized        bool
}

type Store struct {
	src      DataSource
	ai       Assistant
	uploader Uploader
	logger   *zap.Logger
	now      func() time.Time

	mu         sync.Mutex
	state      State
	loading    map[LoadingKey]int
	notes      []Notification
	nextNoteID int64
}

type Option func(*Store)

func WithAssistant(a Assistant) Option { return func(s *Store) { s.ai = a } }

func WithUploader(u Uploader) Option { return func(s *Store) { s.uploader = u } }

func WithLogger(l *zap.Logger) Option { return func(s *Store) { s.logger = l } }

// WithClock replaces time.Now, used for notification expiry.
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

func New(src DataSource, opts ...Option) *Store {
	s := &Store{
		src:     src,
		logger:  zap.NewNop(),
		now:     time.Now,
		loading: map[LoadingKey]int{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current state. Collections are copied; callers may not mutate
// nested slices.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Releases = slices.Clone(st.Releases)
	st.MusicTasks = slices.Clone(st.MusicTasks)
	st.Books = slices.Clone(st.Books)
	st.PublishingTasks = slices.Clone(st.PublishingTasks)
	return st
}

// Loading reports whether any action holding key is still running.
func (s *Store) Loading(key LoadingKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading[key] > 0
}

// setLoading marks key busy and returns the func that releases it. Actions sharing a
// key are counted, so the flag stays set until the last one finishes.
func (s *Store) setLoading(key LoadingKey) func() {
	s.mu.Lock()
	s.loading[key]++
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.loading[key]--
		if s.loading[key] <= 0 {
			delete(s.loading, key)
		}
		s.mu.Unlock()
	}
}

// fail logs err and queues exactly one error notification for it.
func (s *Store) fail(action string, msg string, err error) error {
	s.logger.Warn("action failed", zap.String("action", action), zap.Error(err))
	s.mu.Lock()
	s.notify(msg, NotifyError)
	s.mu.Unlock()
	return err
}

func (s *Store) succeed(msg string) {
	s.mu.Lock()
	s.notify(msg, NotifySuccess)
	s.mu.Unlock()
}

// errorMessage is the text shown to the user for err.
func errorMessage(err error) string {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}

// book returns a copy of the book with id; must be called with s.mu held.
func (s *Store) book(id uint) (dto.Book, bool) {
	i := slices.IndexFunc(s.state.Books, func(b dto.Book) bool { return b.ID == id })
	if i < 0 {
		return dto.Book{}, false
	}
	return s.state.Books[i], true
}

// replaceBook applies fn to the book with id; must be called with s.mu held.
func (s *Store) replaceBook(id uint, fn func(b dto.Book) dto.Book) {
	books := slices.Clone(s.state.Books)
	for i := range books {
		if books[i].ID == id {
			books[i] = fn(books[i])
		}
	}
	s.state.Books = books
}

// lookupBook fails action with a notification when the book is not in local state.
func (s *Store) lookupBook(action string, id uint) (dto.Book, error) {
	s.mu.Lock()
	b, ok := s.book(id)
	s.mu.Unlock()
	if !ok {
		return dto.Book{}, s.fail(action, "Book not found.", ErrUnknownBook)
	}
	return b, nil
}
