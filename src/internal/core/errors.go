package core

import (
	"errors"
	"fmt"
	"sync"
)

// ErrorKind identifies the stage of a copy that failed.
type ErrorKind int

// Error kinds for classification
const (
	KindUnknown ErrorKind = iota
	KindInvalidArgument
	KindSourceOpen
	KindSourceStat
	KindDestinationOpen
	KindRead
	KindWrite
	KindVerify
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindSourceOpen:
		return "SourceOpenFailure"
	case KindSourceStat:
		return "SourceStatFailure"
	case KindDestinationOpen:
		return "DestinationOpenFailure"
	case KindRead:
		return "ReadFailure"
	case KindWrite:
		return "WriteFailure"
	case KindVerify:
		return "VerifyFailure"
	default:
		return "Unknown"
	}
}

// ErrEmptyPath is returned when a source or destination path is empty.
var ErrEmptyPath = errors.New("path must not be empty")

// ErrIsDirectory is returned when the source path names a directory.
var ErrIsDirectory = errors.New("source is a directory")

// ErrChecksumMismatch is returned when verification finds differing content.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// CopyError describes a failed copy.
type CopyError struct {
	Kind ErrorKind
	Op   string
	Path string
	Err  error
}

func (ce *CopyError) Error() string {
	return fmt.Sprintf("[%s] %s %s: %v", ce.Kind, ce.Op, ce.Path, ce.Err)
}

func (ce *CopyError) Unwrap() error {
	return ce.Err
}

func newCopyError(kind ErrorKind, op, path string, err error) *CopyError {
	return &CopyError{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// KindOf returns the ErrorKind carried by err, KindUnknown when err is not a
// CopyError.
func KindOf(err error) ErrorKind {
	var copyErr *CopyError
	if errors.As(err, &copyErr) {
		return copyErr.Kind
	}

	return KindUnknown
}

// ErrorHandler collects copy errors across many invocations. It is safe for
// concurrent use.
type ErrorHandler struct {
	mu        sync.Mutex
	errors    []*CopyError
	maxErrors int
}

// NewErrorHandler creates a new error handler with the specified maximum error count.
func NewErrorHandler(maxErrors int) *ErrorHandler {
	if maxErrors <= 0 {
		maxErrors = 1000
	}

	return &ErrorHandler{
		errors:    make([]*CopyError, 0),
		maxErrors: maxErrors,
	}
}

// AddError records err. Errors that are not a CopyError are recorded as KindUnknown.
func (eh *ErrorHandler) AddError(err error) {
	if err == nil {
		return
	}

	var copyErr *CopyError
	if !errors.As(err, &copyErr) {
		copyErr = newCopyError(KindUnknown, "copy", "", err)
	}

	eh.mu.Lock()
	defer eh.mu.Unlock()

	if len(eh.errors) >= eh.maxErrors {
		// Remove oldest error to make room
		eh.errors = eh.errors[1:]
	}

	eh.errors = append(eh.errors, copyErr)
}

// GetErrors returns all collected errors.
func (eh *ErrorHandler) GetErrors() []*CopyError {
	eh.mu.Lock()
	defer eh.mu.Unlock()

	result := make([]*CopyError, len(eh.errors))
	copy(result, eh.errors)

	return result
}

// HasErrors returns true if any errors have been collected.
func (eh *ErrorHandler) HasErrors() bool {
	eh.mu.Lock()
	defer eh.mu.Unlock()

	return len(eh.errors) > 0
}

// GetSummary returns a count of errors by kind.
func (eh *ErrorHandler) GetSummary() map[ErrorKind]int {
	eh.mu.Lock()
	defer eh.mu.Unlock()

	summary := make(map[ErrorKind]int)
	for _, err := range eh.errors {
		summary[err.Kind]++
	}

	return summary
}
