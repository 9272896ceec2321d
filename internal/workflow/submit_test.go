package workflow

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	journalmodels "io.globetrek.app/internal/models/journal"
)

type fakeMediaStore struct {
	uploads  []string // paths in upload order
	failOn   string   // file name that should fail, "" for none
	uploaded int
}

func (f *fakeMediaStore) Upload(ctx context.Context, path string, file File) (string, error) {
	if f.failOn != "" && file.Name == f.failOn {
		return "", errors.New("connection reset")
	}
	f.uploads = append(f.uploads, path)
	f.uploaded++
	return "https://media.globetrek.app/" + path, nil
}

type fakeJournalStore struct {
	inserted    []*journalmodels.JournalEntry
	insertError error
}

func (f *fakeJournalStore) Insert(ctx context.Context, entry *journalmodels.JournalEntry) error {
	if f.insertError != nil {
		return f.insertError
	}
	f.inserted = append(f.inserted, entry)
	return nil
}

func newTestSubmitter(media *fakeMediaStore, journals *fakeJournalStore) *Submitter {
	s := NewSubmitter(media, journals)
	s.now = func() time.Time { return time.Date(2025, 6, 14, 10, 30, 0, 0, time.UTC) }
	s.newID = func() string { return "entry-1" }
	return s
}

func validInput(files ...File) SubmissionInput {
	return SubmissionInput{
		Title:       "Crossing the Atlas",
		Location:    "Marrakesh, Morocco",
		Date:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Description: "Two days of switchbacks and mint tea.",
		Mishaps:     "Lost a sandal in the pass.",
		Files:       files,
	}
}

func testFile(name string) File {
	return File{Name: name, ContentType: "image/jpeg", Data: strings.NewReader("jpegdata")}
}

func TestSubmitWithoutFiles(t *testing.T) {
	media := &fakeMediaStore{}
	journals := &fakeJournalStore{}
	s := newTestSubmitter(media, journals)

	entry, err := s.Submit(context.Background(), Identity{ID: "user-1"}, validInput())
	require.NoError(t, err)

	require.Len(t, journals.inserted, 1)
	assert.Equal(t, "user-1", entry.OwnerID)
	assert.Equal(t, "Crossing the Atlas", entry.Title)
	assert.Empty(t, entry.MediaURLs)
	assert.NotNil(t, entry.MediaURLs)
	assert.Equal(t, 0, media.uploaded)
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestSubmitUploadsPreserveFileOrder(t *testing.T) {
	media := &fakeMediaStore{}
	journals := &fakeJournalStore{}
	s := newTestSubmitter(media, journals)

	input := validInput(testFile("a.jpg"), testFile("b.jpg"), testFile("c.jpg"))
	entry, err := s.Submit(context.Background(), Identity{ID: "user-1"}, input)
	require.NoError(t, err)

	require.Len(t, entry.MediaURLs, 3)
	for i, name := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		assert.True(t, strings.HasSuffix(entry.MediaURLs[i], name), "url %d should reference %s", i, name)
	}
}

func TestSubmitUploadPathsAreNamespaced(t *testing.T) {
	media := &fakeMediaStore{}
	journals := &fakeJournalStore{}
	s := newTestSubmitter(media, journals)

	_, err := s.Submit(context.Background(), Identity{ID: "user-1"}, validInput(testFile("beach.png")))
	require.NoError(t, err)

	require.Len(t, media.uploads, 1)
	assert.True(t, strings.HasPrefix(media.uploads[0], "user-1/"), "path should start with the user id")
	assert.True(t, strings.HasSuffix(media.uploads[0], "_beach.png"), "path should end with the file name")
}

func TestSubmitAbortsOnUploadFailure(t *testing.T) {
	media := &fakeMediaStore{failOn: "b.jpg"}
	journals := &fakeJournalStore{}
	s := newTestSubmitter(media, journals)

	input := validInput(testFile("a.jpg"), testFile("b.jpg"), testFile("c.jpg"))
	entry, err := s.Submit(context.Background(), Identity{ID: "user-1"}, input)

	require.Error(t, err)
	assert.Nil(t, entry)

	var uploadErr *UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Equal(t, "b.jpg", uploadErr.FileName)

	// Only the file before the failure was uploaded; nothing after it was
	// attempted and no record was written.
	assert.Equal(t, 1, media.uploaded)
	assert.Empty(t, journals.inserted)
}

func TestSubmitPersistFailureLeavesUploads(t *testing.T) {
	media := &fakeMediaStore{}
	journals := &fakeJournalStore{insertError: errors.New("duplicate key")}
	s := newTestSubmitter(media, journals)

	entry, err := s.Submit(context.Background(), Identity{ID: "user-1"}, validInput(testFile("a.jpg")))

	require.Error(t, err)
	assert.Nil(t, entry)

	var persistErr *PersistError
	require.ErrorAs(t, err, &persistErr)

	// The upload already happened and is now orphaned; the workflow does
	// not attempt cleanup.
	assert.Equal(t, 1, media.uploaded)
	assert.Empty(t, journals.inserted)
}

func TestSubmitUnauthenticated(t *testing.T) {
	media := &fakeMediaStore{}
	journals := &fakeJournalStore{}
	s := newTestSubmitter(media, journals)

	entry, err := s.Submit(context.Background(), Identity{}, validInput(testFile("a.jpg")))

	require.ErrorIs(t, err, ErrUnauthenticated)
	assert.Nil(t, entry)
	assert.Equal(t, 0, media.uploaded)
	assert.Empty(t, journals.inserted)
}

func TestSubmitValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SubmissionInput)
		field  string
	}{
		{"missing title", func(in *SubmissionInput) { in.Title = "" }, "title"},
		{"blank title", func(in *SubmissionInput) { in.Title = "   " }, "title"},
		{"missing location", func(in *SubmissionInput) { in.Location = "" }, "location"},
		{"missing date", func(in *SubmissionInput) { in.Date = time.Time{} }, "date"},
		{"missing description", func(in *SubmissionInput) { in.Description = "" }, "description"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			media := &fakeMediaStore{}
			journals := &fakeJournalStore{}
			s := newTestSubmitter(media, journals)

			input := validInput(testFile("a.jpg"))
			tc.mutate(&input)

			entry, err := s.Submit(context.Background(), Identity{ID: "user-1"}, input)
			require.Error(t, err)
			assert.Nil(t, entry)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.field, validationErr.Field)

			// Validation failures never reach a collaborator.
			assert.Equal(t, 0, media.uploaded)
			assert.Empty(t, journals.inserted)
		})
	}
}

func TestSubmitMishapsOptional(t *testing.T) {
	media := &fakeMediaStore{}
	journals := &fakeJournalStore{}
	s := newTestSubmitter(media, journals)

	input := validInput()
	input.Mishaps = ""

	entry, err := s.Submit(context.Background(), Identity{ID: "user-1"}, input)
	require.NoError(t, err)
	assert.Empty(t, entry.Mishaps)
}
