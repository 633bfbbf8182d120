package core

import (
	"io"
	"os"
	"time"
)

// SourceFile is a read-only handle on the file being copied.
type SourceFile interface {
	io.ReadCloser
	Stat() (os.FileInfo, error)
}

// DestinationFile is a write handle on the file being produced.
type DestinationFile interface {
	io.WriteCloser
	Name() string
}

// FileSystem is the set of file operations the copier needs. The default
// implementation is backed by package os.
type FileSystem interface {
	Open(name string) (SourceFile, error)
	OpenFile(name string, flag int, perm os.FileMode) (DestinationFile, error)
	CreateTemp(dir, pattern string, perm os.FileMode) (DestinationFile, error)
	Rename(oldPath, newPath string) error
	Remove(name string) error
}

// Sink receives tagged diagnostic lines.
type Sink interface {
	Debugf(tag, format string, args ...any)
	Errorf(tag, format string, args ...any)
}

type nopSink struct{}

func (nopSink) Debugf(string, string, ...any) {}
func (nopSink) Errorf(string, string, ...any) {}

// ChangeEvent represents a change to a watched source file.
type ChangeEvent struct {
	Type      ChangeType `json:"type"`
	Path      string     `json:"path"`
	Timestamp time.Time  `json:"timestamp"`
}

// ChangeType represents the type of file system change.
type ChangeType int

// File system change types
const (
	ChangeCreate ChangeType = iota
	ChangeModify
	ChangeDelete
	ChangeRename
)

func (ct ChangeType) String() string {
	switch ct {
	case ChangeCreate:
		return "create"
	case ChangeModify:
		return "modify"
	case ChangeDelete:
		return "delete"
	case ChangeRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Job is one source/destination pair.
type Job struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// JobResult is the outcome of copying one Job.
type JobResult struct {
	Job      Job           `json:"job"`
	Bytes    int64         `json:"bytes"`
	Err      error         `json:"-"`
	Duration time.Duration `json:"duration"`
}

// OK reports whether the job copied successfully.
func (jr JobResult) OK() bool {
	return jr.Err == nil
}

// BatchStats contains statistics about a batch of copies.
type BatchStats struct {
	Jobs             int64         `json:"jobs"`
	Succeeded        int64         `json:"succeeded"`
	Failed           int64         `json:"failed"`
	BytesTransferred int64         `json:"bytesTransferred"`
	StartTime        time.Time     `json:"startTime"`
	EndTime          time.Time     `json:"endTime,omitempty"`
	Duration         time.Duration `json:"duration"`
}
