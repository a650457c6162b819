package dashboard

import (
	"context"
	"testing"
	"time"

	"release-desk/internal/apperr"
	"release-desk/internal/domain/music"
	"release-desk/internal/domain/publishing"
	"release-desk/internal/domain/tasks"
	"release-desk/internal/dto"
	"release-desk/internal/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchAppData_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)

	data, err := NewAssembler(db).FetchAppData(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, data.Music.Releases)
	assert.Empty(t, data.Music.Releases)
	assert.NotNil(t, data.Publishing.Books)
	assert.Empty(t, data.Music.Tasks)
	assert.Empty(t, data.Publishing.Tasks)
	assert.False(t, data.OnboardingComplete, "missing config row means not complete")
}

func TestFetchAppData_ReleaseSplitsAttached(t *testing.T) {
	db := testutil.SetupTestDB(t)
	first := testutil.CreateTestRelease(t, db, "Cybernetic Dreams", map[string]float64{"Void Runner": 60, "Neon": 25, "Ghost": 15})
	second := testutil.CreateTestRelease(t, db, "Solo", nil)

	data, err := NewAssembler(db).FetchAppData(context.Background())
	require.NoError(t, err)
	require.Len(t, data.Music.Releases, 2)

	got := data.Music.Releases[0]
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "Submitted", got.Status)
	assert.ElementsMatch(t, []dto.Split{
		{Name: "Void Runner", Share: "60"},
		{Name: "Neon", Share: "25"},
		{Name: "Ghost", Share: "15"},
	}, got.Splits)

	assert.Equal(t, second.ID, data.Music.Releases[1].ID)
	assert.NotNil(t, data.Music.Releases[1].Splits)
	assert.Empty(t, data.Music.Releases[1].Splits)
}

func TestFetchAppData_ReleaseDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	dated := music.Release{Title: "Dated", Artist: "A", Genre: "G", Status: music.StatusLive, ReleaseDate: testutil.Date(2023, 10, 26)}
	require.NoError(t, db.Create(&dated).Error)
	testutil.CreateTestRelease(t, db, "Undated", nil)

	data, err := NewAssembler(db).FetchAppData(context.Background())
	require.NoError(t, err)
	require.Len(t, data.Music.Releases, 2)

	require.NotNil(t, data.Music.Releases[0].ReleaseDate)
	assert.Equal(t, "2023-10-26", *data.Music.Releases[0].ReleaseDate)
	assert.Nil(t, data.Music.Releases[1].ReleaseDate)
}

func TestFetchAppData_BookDetails(t *testing.T) {
	db := testutil.SetupTestDB(t)

	book := publishing.Book{
		Title: "The Last Datastream", Author: "Alex Chen", Genre: "Sci-Fi", Status: publishing.StatusPublished,
		Blurb: "A hacker uncovers a conspiracy.", Keywords: "cyberpunk, neon",
		RightsTerritorial: true, RightsDRM: true,
		Splits: []publishing.BookSplit{{Name: "Alex Chen", Share: 100}},
		// inserted out of order on purpose
		Chapters: []publishing.BookChapter{
			{ChapterOrder: 2, Title: "Three", Content: "c"},
			{ChapterOrder: 0, Title: "One", Content: "a"},
			{ChapterOrder: 1, Title: "Two", Content: "b"},
		},
		Illustrations: []publishing.BookIllustration{{URL: "https://cdn/x.jpg", Prompt: "neon rain"}},
	}
	require.NoError(t, db.Create(&book).Error)
	bare := testutil.CreateTestBook(t, db, "Bare")

	data, err := NewAssembler(db).FetchAppData(context.Background())
	require.NoError(t, err)
	require.Len(t, data.Publishing.Books, 2)

	want := dto.Book{
		ID: book.ID, Title: "The Last Datastream", Author: "Alex Chen", Genre: "Sci-Fi", Status: "Published",
		Blurb: "A hacker uncovers a conspiracy.", Keywords: "cyberpunk, neon",
		Rights:        dto.Rights{Territorial: true, DRM: true},
		Splits:        []dto.Split{{Name: "Alex Chen", Share: "100"}},
		Chapters:      []dto.Chapter{{Title: "One", Content: "a"}, {Title: "Two", Content: "b"}, {Title: "Three", Content: "c"}},
		Illustrations: []dto.Illustration{{URL: "https://cdn/x.jpg", Prompt: "neon rain"}},
	}
	if diff := cmp.Diff(want, data.Publishing.Books[0]); diff != "" {
		t.Errorf("book mismatch (-want +got):\n%s", diff)
	}

	empty := data.Publishing.Books[1]
	assert.Equal(t, bare.ID, empty.ID)
	assert.NotNil(t, empty.Splits)
	assert.NotNil(t, empty.Chapters)
	assert.NotNil(t, empty.Illustrations)
	assert.Equal(t, dto.Rights{}, empty.Rights)
}

func TestFetchAppData_TasksAndOnboarding(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CreateTestTask(t, db, tasks.KindMusic, "Master final track", testutil.Date(2030, 1, 1))
	testutil.CreateTestTask(t, db, tasks.KindPublishing, "Outline sequel", nil)

	a := NewAssembler(db)
	require.NoError(t, a.SetOnboardingComplete(context.Background(), true))

	data, err := a.FetchAppData(context.Background())
	require.NoError(t, err)

	require.Len(t, data.Music.Tasks, 1)
	assert.Equal(t, "Master final track", data.Music.Tasks[0].Text)
	assert.Equal(t, "2030-01-01", data.Music.Tasks[0].DueDate)
	assert.False(t, data.Music.Tasks[0].Completed)

	require.Len(t, data.Publishing.Tasks, 1)
	assert.Equal(t, "", data.Publishing.Tasks[0].DueDate, "missing due date is an empty string")
	assert.True(t, data.OnboardingComplete)

	require.NoError(t, a.SetOnboardingComplete(context.Background(), false))
	data, err = a.FetchAppData(context.Background())
	require.NoError(t, err)
	assert.False(t, data.OnboardingComplete)
}

func TestFetchAppData_ReadFailureAbortsWhole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CreateTestRelease(t, db, "Cybernetic Dreams", nil)
	require.NoError(t, db.Migrator().DropTable(&publishing.BookIllustration{}))

	data, err := NewAssembler(db).FetchAppData(context.Background())

	assert.Nil(t, data)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindPersistence))
}

func TestFetchAppData_CancelledContext(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAssembler(db).FetchAppData(ctx)
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	assert.Nil(t, formatDate(nil), "null release_date is omitted, not an error")

	var zero time.Time
	assert.Nil(t, formatDate(&zero))

	got := formatDate(testutil.Date(2024, 2, 29))
	require.NotNil(t, got)
	assert.Equal(t, "2024-02-29", *got)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseDate("2030-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2030-01-01", *formatDate(d))

	_, err = ParseDate("01/02/2030")
	assert.Error(t, err)
}

func TestSortChaptersIsStableByOrder(t *testing.T) {
	in := []publishing.BookChapter{
		{ChapterOrder: 1, Title: "b"},
		{ChapterOrder: 0, Title: "a"},
		{ChapterOrder: 2, Title: "c"},
	}
	out := sortChapters(in)
	assert.Equal(t, []string{"a", "b", "c"}, []string{out[0].Title, out[1].Title, out[2].Title})
}
