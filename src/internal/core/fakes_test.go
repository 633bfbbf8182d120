package core

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

type fakeInfo struct {
	name  string
	size  int64
	isDir bool
}

func (fi fakeInfo) Name() string       { return fi.name }
func (fi fakeInfo) Size() int64        { return fi.size }
func (fi fakeInfo) Mode() os.FileMode  { return 0o644 }
func (fi fakeInfo) ModTime() time.Time { return time.Time{} }
func (fi fakeInfo) IsDir() bool        { return fi.isDir }
func (fi fakeInfo) Sys() any           { return nil }

type fakeSource struct {
	reader   io.Reader
	statErr  error
	isDir    bool
	closeErr error
	closed   int
}

func (fs *fakeSource) Read(p []byte) (int, error) {
	return fs.reader.Read(p)
}

func (fs *fakeSource) Stat() (os.FileInfo, error) {
	if fs.statErr != nil {
		return nil, fs.statErr
	}

	return fakeInfo{name: "source", isDir: fs.isDir}, nil
}

func (fs *fakeSource) Close() error {
	fs.closed++
	return fs.closeErr
}

type fakeDestination struct {
	name     string
	buf      bytes.Buffer
	write    func(p []byte) (int, error)
	closeErr error
	closed   int
}

func (fd *fakeDestination) Write(p []byte) (int, error) {
	if fd.write != nil {
		return fd.write(p)
	}

	return fd.buf.Write(p)
}

func (fd *fakeDestination) Close() error {
	fd.closed++
	return fd.closeErr
}

func (fd *fakeDestination) Name() string {
	return fd.name
}

// fakeFileSystem hands out a single source and destination. A nil source
// falls through to the real file system.
type fakeFileSystem struct {
	source      *fakeSource
	destination *fakeDestination
	openErr     error
	createErr   error
	renameErr   error

	openFileCalls int
	createCalls   int
	renamed       [][2]string
	removed       []string
}

func (ffs *fakeFileSystem) Open(name string) (SourceFile, error) {
	if ffs.openErr != nil {
		return nil, ffs.openErr
	}

	if ffs.source == nil {
		return OSFileSystem().Open(name)
	}

	return ffs.source, nil
}

func (ffs *fakeFileSystem) OpenFile(name string, _ int, _ os.FileMode) (DestinationFile, error) {
	ffs.openFileCalls++

	if ffs.createErr != nil {
		return nil, ffs.createErr
	}

	ffs.destination.name = name

	return ffs.destination, nil
}

func (ffs *fakeFileSystem) CreateTemp(dir, pattern string, _ os.FileMode) (DestinationFile, error) {
	ffs.createCalls++

	if ffs.createErr != nil {
		return nil, ffs.createErr
	}

	ffs.destination.name = fmt.Sprintf("%s/%s", dir, pattern)

	return ffs.destination, nil
}

func (ffs *fakeFileSystem) Rename(oldPath, newPath string) error {
	if ffs.renameErr != nil {
		return ffs.renameErr
	}

	ffs.renamed = append(ffs.renamed, [2]string{oldPath, newPath})

	return nil
}

func (ffs *fakeFileSystem) Remove(name string) error {
	ffs.removed = append(ffs.removed, name)
	return nil
}

type recordingSink struct {
	mu     sync.Mutex
	debugs []string
	errors []string
}

func (rs *recordingSink) Debugf(tag, format string, args ...any) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.debugs = append(rs.debugs, "["+tag+"] "+fmt.Sprintf(format, args...))
}

func (rs *recordingSink) Errorf(tag, format string, args ...any) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.errors = append(rs.errors, "["+tag+"] "+fmt.Sprintf(format, args...))
}

func (rs *recordingSink) snapshot() ([]string, []string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	return append([]string(nil), rs.debugs...), append([]string(nil), rs.errors...)
}
