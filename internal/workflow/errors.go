package workflow

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned when a submission is attempted without an
// authenticated user. No collaborator is contacted in that case.
var ErrUnauthenticated = errors.New("user is not authenticated")

// ValidationError reports the first required field found missing.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// UploadError reports the file whose upload failed. Files uploaded earlier
// in the same attempt are left behind in the media store.
type UploadError struct {
	FileName string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("failed to upload %s: %v", e.FileName, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// PersistError reports a failed journal record write.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to save journal entry: %v", e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
