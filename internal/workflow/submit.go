package workflow

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	journalmodels "io.globetrek.app/internal/models/journal"
)

// Identity is the authenticated user a submission runs on behalf of. It is
// passed explicitly by the caller rather than read from ambient state.
type Identity struct {
	ID    string
	Email string
}

// File is one attachment selected by the user.
type File struct {
	Name        string
	ContentType string
	Data        io.Reader
}

// SubmissionInput carries the user-entered form fields plus attachments.
type SubmissionInput struct {
	Title       string
	Location    string
	Date        time.Time
	Description string
	Mishaps     string
	Files       []File
}

// MediaStore persists a binary attachment under a path and returns its
// publicly resolvable URL.
type MediaStore interface {
	Upload(ctx context.Context, path string, file File) (string, error)
}

// JournalStore persists one journal entry record.
type JournalStore interface {
	Insert(ctx context.Context, entry *journalmodels.JournalEntry) error
}

// Submitter runs the journal submission workflow: validate the input,
// upload each attachment in order, then persist exactly one entry. Any
// failure aborts the rest of the sequence, so readers only ever see
// entries whose record write completed.
type Submitter struct {
	media    MediaStore
	journals JournalStore

	now   func() time.Time
	newID func() string
}

// NewSubmitter creates a submitter backed by the given collaborators.
func NewSubmitter(media MediaStore, journals JournalStore) *Submitter {
	return &Submitter{
		media:    media,
		journals: journals,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// Submit validates the input, uploads the attachments one at a time in
// input order, and persists a single journal entry referencing the
// uploaded URLs. On any upload failure the remaining uploads are skipped
// and nothing is persisted. If the record write fails after uploads
// succeeded, the uploaded files are left orphaned in the media store;
// there is no compensation step.
func (s *Submitter) Submit(ctx context.Context, user Identity, input SubmissionInput) (*journalmodels.JournalEntry, error) {
	if user.ID == "" {
		return nil, ErrUnauthenticated
	}

	if err := validateInput(input); err != nil {
		return nil, err
	}

	// Namespace uploads by user and submission time so repeated attempts
	// with the same file names never collide.
	stamp := s.now().UnixMilli()

	mediaURLs := make([]string, 0, len(input.Files))
	for _, file := range input.Files {
		path := fmt.Sprintf("%s/%d_%s", user.ID, stamp, file.Name)
		url, err := s.media.Upload(ctx, path, file)
		if err != nil {
			return nil, &UploadError{FileName: file.Name, Err: err}
		}
		mediaURLs = append(mediaURLs, url)
	}

	entry := &journalmodels.JournalEntry{
		ID:          s.newID(),
		OwnerID:     user.ID,
		Title:       input.Title,
		Location:    input.Location,
		Date:        input.Date,
		Description: input.Description,
		Mishaps:     input.Mishaps,
		MediaURLs:   mediaURLs,
		CreatedAt:   s.now(),
	}

	if err := s.journals.Insert(ctx, entry); err != nil {
		return nil, &PersistError{Err: err}
	}

	return entry, nil
}

// validateInput checks the required fields in form order and reports the
// first one missing.
func validateInput(input SubmissionInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return &ValidationError{Field: "title"}
	}
	if strings.TrimSpace(input.Location) == "" {
		return &ValidationError{Field: "location"}
	}
	if input.Date.IsZero() {
		return &ValidationError{Field: "date"}
	}
	if strings.TrimSpace(input.Description) == "" {
		return &ValidationError{Field: "description"}
	}
	return nil
}
