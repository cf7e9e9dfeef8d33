package adlocalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/adlocalize-go/pkg/adlocalize/platform"
)

// ErrNoInput indicates that no source was left to parse.
var ErrNoInput = errors.New("no input to parse")

// MalformedInputError reports a source whose header has no key column or
// holds a locale that cannot name an output file.
type MalformedInputError struct {
	Source string
	Err    error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input %q: %v", e.Source, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// IOError reports a source that cannot be read or a file that cannot be
// written.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("cannot %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// UnsupportedPlatformError reports a requested platform with no formatter.
type UnsupportedPlatformError struct {
	Platform string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform %q (supported: %s)", e.Platform, supportedList())
}

func (e *UnsupportedPlatformError) Unwrap() error {
	return platform.ErrUnsupportedPlatform
}

// EmptyDatasetWarning reports a source that has no records. It is recorded
// in the report; nothing is exported for that source.
type EmptyDatasetWarning struct {
	Source string
}

func (e *EmptyDatasetWarning) Error() string {
	return fmt.Sprintf("no data found in %q, check that the file has a key column and rows", e.Source)
}

// PlatformFailure is one platform that failed to export a dataset.
type PlatformFailure struct {
	Source   string
	Platform platform.Platform
	Err      error
}

// ExportError lists every platform export that failed in a run.
type ExportError struct {
	Failures []PlatformFailure
}

func (e *ExportError) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		msgs[i] = fmt.Sprintf("%s export of %q failed: %v", f.Platform, f.Source, f.Err)
	}
	return strings.Join(msgs, "; ")
}

func (e *ExportError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}

func supportedList() string {
	all := platform.All()
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
