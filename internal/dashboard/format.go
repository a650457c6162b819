package dashboard

import (
	"time"

	"release-desk/internal/domain/music"
	"release-desk/internal/domain/publishing"
	"release-desk/internal/domain/tasks"
	"release-desk/internal/dto"
)

const dateLayout = "2006-01-02"

// formatDate renders a stored date as YYYY-MM-DD. Missing or zero dates yield nil so the
// JSON field is omitted.
func formatDate(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.UTC().Format(dateLayout)
	return &s
}

// ParseDate is the inverse used for request input: "" means no date.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// TransformTask maps a task row to its client shape; an unset due date becomes "".
func TransformTask(t tasks.Task) dto.Task {
	due := ""
	if d := formatDate(t.DueDate); d != nil {
		due = *d
	}
	return dto.Task{
		ID:        t.ID,
		Text:      t.Text,
		DueDate:   due,
		Completed: t.Completed,
	}
}

func ReleaseSplitsDTO(rows []music.ReleaseSplit) []dto.Split {
	out := make([]dto.Split, 0, len(rows))
	for _, s := range rows {
		out = append(out, dto.Split{Name: s.Name, Share: dto.FormatShare(s.Share)})
	}
	return out
}

func BookSplitsDTO(rows []publishing.BookSplit) []dto.Split {
	out := make([]dto.Split, 0, len(rows))
	for _, s := range rows {
		out = append(out, dto.Split{Name: s.Name, Share: dto.FormatShare(s.Share)})
	}
	return out
}

// ToReleaseDTO expects r.Splits to already hold the release's splits.
func ToReleaseDTO(r music.Release) dto.Release {
	return dto.Release{
		ID:          r.ID,
		Title:       r.Title,
		Artist:      r.Artist,
		Genre:       r.Genre,
		Status:      string(r.Status),
		ReleaseDate: formatDate(r.ReleaseDate),
		Splits:      ReleaseSplitsDTO(r.Splits),
	}
}

func RightsDTO(b publishing.Book) dto.Rights {
	return dto.Rights{
		Territorial: b.RightsTerritorial,
		Translation: b.RightsTranslation,
		Adaptation:  b.RightsAdaptation,
		Audio:       b.RightsAudio,
		DRM:         b.RightsDRM,
	}
}

// ToBookDTO expects b's child collections to be loaded; chapters must already be in order.
func ToBookDTO(b publishing.Book) dto.Book {
	chapters := make([]dto.Chapter, 0, len(b.Chapters))
	for _, c := range b.Chapters {
		chapters = append(chapters, dto.Chapter{Title: c.Title, Content: c.Content})
	}
	illustrations := make([]dto.Illustration, 0, len(b.Illustrations))
	for _, il := range b.Illustrations {
		illustrations = append(illustrations, dto.Illustration{URL: il.URL, Prompt: il.Prompt})
	}

	return dto.Book{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Genre:         b.Genre,
		Status:        string(b.Status),
		Blurb:         b.Blurb,
		Keywords:      b.Keywords,
		CoverImageURL: b.CoverImageURL,
		Rights:        RightsDTO(b),
		Splits:        BookSplitsDTO(b.Splits),
		Chapters:      chapters,
		Illustrations: illustrations,
	}
}
