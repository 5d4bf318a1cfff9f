package sweep

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrNoSamples is returned when the delay column holds no values
var ErrNoSamples = errors.New("no delay samples")

// MissingSummaryFileError means a result directory has no summary file.
// It matches fs.ErrNotExist with errors.Is.
type MissingSummaryFileError struct {
	Dir  string
	Path string
}

func (e *MissingSummaryFileError) Error() string {
	return fmt.Sprintf("expected %s in %s", e.Path, e.Dir)
}

func (e *MissingSummaryFileError) Unwrap() error { return fs.ErrNotExist }

// MissingColumnError means the summary file lacks the delay column
type MissingColumnError struct {
	Column string
	Path   string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%q column missing in %s", e.Column, e.Path)
}
