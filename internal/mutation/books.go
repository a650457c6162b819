package mutation

import (
	"context"

	"release-desk/internal/apperr"
	"release-desk/internal/dashboard"
	"release-desk/internal/domain/publishing"
	"release-desk/internal/dto"

	"gorm.io/gorm"
)

// CreateBook inserts a Draft book with its splits and chapters in one transaction.
// Chapters take their position in the request as chapter_order.
func (c *Coordinator) CreateBook(ctx context.Context, req dto.CreateBookRequest) (dto.Book, error) {
	if blank(req.Title) || blank(req.Author) {
		return dto.Book{}, apperr.Validation("Title and author are required")
	}
	splits, err := parseSplits(req.Splits)
	if err != nil {
		return dto.Book{}, err
	}

	var rights dto.Rights
	if req.Rights != nil {
		rights = *req.Rights
	}

	book := publishing.Book{
		Title:             req.Title,
		Author:            req.Author,
		Genre:             req.Genre,
		Status:            publishing.StatusDraft,
		RightsTerritorial: rights.Territorial,
		RightsTranslation: rights.Translation,
		RightsAdaptation:  rights.Adaptation,
		RightsAudio:       rights.Audio,
		RightsDRM:         rights.DRM,
	}

	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Splits", "Chapters", "Illustrations").Create(&book).Error; err != nil {
			return err
		}
		var err error
		if book.Chapters, err = insertChapters(tx, book.ID, req.Chapters); err != nil {
			return err
		}
		book.Splits, err = insertBookSplits(tx, book.ID, splits)
		return err
	})
	if err != nil {
		return dto.Book{}, txError("Failed to create book", err)
	}

	return dashboard.ToBookDTO(book), nil
}

// UpdateBook applies every present field of req to the book. The whole call is one
// transaction: a failing statement leaves the book exactly as it was.
func (c *Coordinator) UpdateBook(ctx context.Context, bookID uint, req dto.UpdateBookRequest) error {
	if req.Title != nil && blank(*req.Title) {
		return apperr.Validation("Title cannot be empty")
	}
	if req.Status != nil && !publishing.BookStatus(*req.Status).Valid() {
		return apperr.Validation("Unknown book status " + *req.Status)
	}
	var splits []parsedSplit
	if req.Splits != nil {
		var err error
		if splits, err = parseSplits(req.Splits); err != nil {
			return err
		}
	}

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book publishing.Book
		if err := forUpdate(tx).Select("id").First(&book, bookID).Error; err != nil {
			return notFoundOr(err, "Book")
		}

		q := func() *gorm.DB { return tx.Model(&publishing.Book{}).Where("id = ?", bookID) }

		scalars := []struct {
			column string
			value  *string
		}{
			{"title", req.Title},
			{"blurb", req.Blurb},
			{"keywords", req.Keywords},
			{"cover_image_url", req.CoverImageURL},
			{"status", req.Status},
		}
		for _, f := range scalars {
			if f.value == nil {
				continue
			}
			if err := q().Update(f.column, *f.value).Error; err != nil {
				return err
			}
		}

		if r := req.Rights; r != nil {
			err := q().Updates(map[string]any{
				"rights_territorial": r.Territorial,
				"rights_translation": r.Translation,
				"rights_adaptation":  r.Adaptation,
				"rights_audio":       r.Audio,
				"rights_drm":         r.DRM,
			}).Error
			if err != nil {
				return err
			}
		}

		if req.Splits != nil {
			if err := tx.Where("book_id = ?", bookID).Delete(&publishing.BookSplit{}).Error; err != nil {
				return err
			}
			if _, err := insertBookSplits(tx, bookID, splits); err != nil {
				return err
			}
		}

		if req.Chapters != nil {
			if err := tx.Where("book_id = ?", bookID).Delete(&publishing.BookChapter{}).Error; err != nil {
				return err
			}
			if _, err := insertChapters(tx, bookID, req.Chapters); err != nil {
				return err
			}
		}
		return nil
	})
	return txError("Failed to update book", err)
}

// AddIllustration appends one generated image to a book's gallery.
func (c *Coordinator) AddIllustration(ctx context.Context, bookID uint, req dto.AddIllustrationRequest) (dto.Illustration, error) {
	if blank(req.URL) {
		return dto.Illustration{}, apperr.Validation("Illustration url is required")
	}

	row := publishing.BookIllustration{BookID: bookID, URL: req.URL, Prompt: req.Prompt}
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book publishing.Book
		if err := tx.Select("id").First(&book, bookID).Error; err != nil {
			return notFoundOr(err, "Book")
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return dto.Illustration{}, txError("Failed to save illustration", err)
	}
	return dto.Illustration{URL: row.URL, Prompt: row.Prompt}, nil
}

// insertChapters numbers chapters 0..N-1 in the order given.
func insertChapters(tx *gorm.DB, bookID uint, chapters []dto.Chapter) ([]publishing.BookChapter, error) {
	rows := make([]publishing.BookChapter, 0, len(chapters))
	for i, ch := range chapters {
		rows = append(rows, publishing.BookChapter{BookID: bookID, ChapterOrder: i, Title: ch.Title, Content: ch.Content})
	}
	if len(rows) == 0 {
		return rows, nil
	}
	if err := tx.Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func insertBookSplits(tx *gorm.DB, bookID uint, splits []parsedSplit) ([]publishing.BookSplit, error) {
	rows := make([]publishing.BookSplit, 0, len(splits))
	for _, s := range splits {
		rows = append(rows, publishing.BookSplit{BookID: bookID, Name: s.name, Share: s.share})
	}
	if len(rows) == 0 {
		return rows, nil
	}
	if err := tx.Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
