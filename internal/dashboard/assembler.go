// Package dashboard assembles the nested dashboard payload from the normalised tables.
package dashboard

import (
	"context"
	"errors"
	"slices"

	"release-desk/internal/apperr"
	"release-desk/internal/domain/appconfig"
	"release-desk/internal/domain/music"
	"release-desk/internal/domain/publishing"
	"release-desk/internal/domain/tasks"
	"release-desk/internal/dto"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Assembler struct {
	db *gorm.DB
}

func NewAssembler(db *gorm.DB) *Assembler {
	return &Assembler{db: db}
}

// rows holds the raw result of every independent read.
type rows struct {
	releases      []music.Release
	releaseSplits []music.ReleaseSplit
	musicTasks    []tasks.Task

	books         []publishing.Book
	bookSplits    []publishing.BookSplit
	chapters      []publishing.BookChapter
	illustrations []publishing.BookIllustration
	pubTasks      []tasks.Task

	onboardingComplete bool
}

// FetchAppData runs the nine reads concurrently and assembles them. Any failing read
// fails the whole call; there is no partial result.
func (a *Assembler) FetchAppData(ctx context.Context) (*dto.AppData, error) {
	var r rows

	g, gctx := errgroup.WithContext(ctx)
	db := func() *gorm.DB { return a.db.WithContext(gctx) }

	g.Go(func() error { return db().Order("id ASC").Find(&r.releases).Error })
	g.Go(func() error { return db().Order("id ASC").Find(&r.releaseSplits).Error })
	g.Go(func() error { return db().Table(tasks.KindMusic.Table()).Order("id ASC").Find(&r.musicTasks).Error })
	g.Go(func() error { return db().Order("id ASC").Find(&r.books).Error })
	g.Go(func() error { return db().Order("id ASC").Find(&r.bookSplits).Error })
	g.Go(func() error {
		return db().Order("book_id ASC, chapter_order ASC").Find(&r.chapters).Error
	})
	g.Go(func() error { return db().Order("id ASC").Find(&r.illustrations).Error })
	g.Go(func() error {
		return db().Table(tasks.KindPublishing.Table()).Order("id ASC").Find(&r.pubTasks).Error
	})
	g.Go(func() error {
		var cfg appconfig.AppConfig
		err := db().First(&cfg, appconfig.SingletonID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		r.onboardingComplete = cfg.OnboardingComplete
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, apperr.Persistence("Failed to load dashboard data", err)
	}

	return assemble(r), nil
}

func assemble(r rows) *dto.AppData {
	releaseSplits := map[uint][]music.ReleaseSplit{}
	for _, s := range r.releaseSplits {
		releaseSplits[s.ReleaseID] = append(releaseSplits[s.ReleaseID], s)
	}
	bookSplits := map[uint][]publishing.BookSplit{}
	for _, s := range r.bookSplits {
		bookSplits[s.BookID] = append(bookSplits[s.BookID], s)
	}
	chapters := map[uint][]publishing.BookChapter{}
	for _, c := range r.chapters {
		chapters[c.BookID] = append(chapters[c.BookID], c)
	}
	illustrations := map[uint][]publishing.BookIllustration{}
	for _, il := range r.illustrations {
		illustrations[il.BookID] = append(illustrations[il.BookID], il)
	}

	out := &dto.AppData{
		Music: dto.MusicData{
			Releases: make([]dto.Release, 0, len(r.releases)),
			Tasks:    transformTasks(r.musicTasks),
		},
		Publishing: dto.PublishingData{
			Books: make([]dto.Book, 0, len(r.books)),
			Tasks: transformTasks(r.pubTasks),
		},
		OnboardingComplete: r.onboardingComplete,
	}

	for _, rel := range r.releases {
		rel.Splits = releaseSplits[rel.ID]
		out.Music.Releases = append(out.Music.Releases, ToReleaseDTO(rel))
	}

	for _, b := range r.books {
		b.Splits = bookSplits[b.ID]
		b.Chapters = sortChapters(chapters[b.ID])
		b.Illustrations = illustrations[b.ID]
		out.Publishing.Books = append(out.Publishing.Books, ToBookDTO(b))
	}

	return out
}

// sortChapters orders by chapter_order regardless of the order rows arrived in.
func sortChapters(cs []publishing.BookChapter) []publishing.BookChapter {
	slices.SortStableFunc(cs, func(a, b publishing.BookChapter) int {
		return a.ChapterOrder - b.ChapterOrder
	})
	return cs
}

func transformTasks(rows []tasks.Task) []dto.Task {
	out := make([]dto.Task, 0, len(rows))
	for _, t := range rows {
		out = append(out, TransformTask(t))
	}
	return out
}

// SetOnboardingComplete upserts the singleton config row.
func (a *Assembler) SetOnboardingComplete(ctx context.Context, done bool) error {
	row := appconfig.AppConfig{ID: appconfig.SingletonID, OnboardingComplete: done}
	err := a.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"onboarding_complete"}),
	}).Create(&row).Error
	if err != nil {
		return apperr.Persistence("Failed to update onboarding state", err)
	}
	return nil
}
