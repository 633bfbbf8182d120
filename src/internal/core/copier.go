// Package core provides the file duplication primitive and the helpers built on it.
package core

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/howmanysmall/dupe/src/internal/config"
)

// TransferBufferSize is the capacity of the buffer moved between source and destination.
const TransferBufferSize = 4096

// DestinationMode is the permission used when the destination is created (rw-r--r--).
const DestinationMode os.FileMode = 0o644

const logTag = "FileCopier"

// FileCopier copies a single regular file to a destination path through a
// fixed-size buffer. A FileCopier holds no per-call state, so one instance may
// serve concurrent copies of distinct path pairs once configured.
type FileCopier struct {
	fs       FileSystem
	sink     Sink
	atomic   bool
	verifier *Checksummer
}

// NewFileCopier creates a copier writing diagnostics to sink. A nil sink discards them.
func NewFileCopier(sink Sink) *FileCopier {
	if sink == nil {
		sink = nopSink{}
	}

	return &FileCopier{
		fs:   OSFileSystem(),
		sink: sink,
	}
}

// NewFileCopierFromConfig creates a copier with the options in cfg applied.
func NewFileCopierFromConfig(cfg *config.CopyConfig, sink Sink) (*FileCopier, error) {
	fc := NewFileCopier(sink)
	if cfg == nil {
		return fc, nil
	}

	fc.SetAtomic(cfg.Atomic)

	if cfg.Verify {
		if err := fc.SetVerify(cfg.ChecksumAlgo); err != nil {
			return nil, err
		}
	}

	return fc, nil
}

// SetAtomic makes the copier stage into a temporary file next to the
// destination and rename it into place on success.
func (fc *FileCopier) SetAtomic(atomic bool) {
	fc.atomic = atomic
}

// SetVerify enables post-copy checksum comparison with the named algorithm.
// An empty algo selects blake3.
func (fc *FileCopier) SetVerify(algo string) error {
	checksummer, err := NewChecksummer(algo)
	if err != nil {
		return err
	}

	fc.verifier = checksummer

	return nil
}

// SetFileSystem replaces the file operations used by the copier.
func (fc *FileCopier) SetFileSystem(fs FileSystem) {
	if fs != nil {
		fc.fs = fs
	}
}

// CopyFile copies the contents of src to dst, creating or truncating dst.
// It returns the number of bytes written. Any failure is a *CopyError.
func (fc *FileCopier) CopyFile(src, dst string) (int64, error) {
	if src == "" {
		return 0, fc.fail(newCopyError(KindInvalidArgument, "validate", "source", ErrEmptyPath))
	}

	if dst == "" {
		return 0, fc.fail(newCopyError(KindInvalidArgument, "validate", "destination", ErrEmptyPath))
	}

	var (
		written int64
		err     error
	)

	if fc.atomic {
		written, err = fc.copyStaged(src, dst)
	} else {
		written, err = fc.copyInPlace(src, dst)
	}

	if err != nil {
		return written, fc.fail(err)
	}

	if fc.verifier != nil {
		if err := fc.verifier.Compare(src, dst); err != nil {
			return written, fc.fail(newCopyError(KindVerify, "verify", dst, err))
		}
	}

	fc.sink.Debugf(logTag, "copied %d bytes from %s to %s", written, src, dst)

	return written, nil
}

func (fc *FileCopier) fail(err error) error {
	fc.sink.Errorf(logTag, "%v", err)
	return err
}

func (fc *FileCopier) copyInPlace(src, dst string) (written int64, err error) {
	source, err := fc.fs.Open(src)
	if err != nil {
		return 0, newCopyError(KindSourceOpen, "open", src, err)
	}

	defer release(source, KindRead, src, &err)

	if statErr := checkSource(source, src); statErr != nil {
		return 0, statErr
	}

	destination, err := fc.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, DestinationMode)
	if err != nil {
		return 0, newCopyError(KindDestinationOpen, "open", dst, err)
	}

	defer release(destination, KindWrite, dst, &err)

	return transfer(source, destination, src, dst)
}

func (fc *FileCopier) copyStaged(src, dst string) (written int64, err error) {
	source, err := fc.fs.Open(src)
	if err != nil {
		return 0, newCopyError(KindSourceOpen, "open", src, err)
	}

	defer release(source, KindRead, src, &err)

	if statErr := checkSource(source, src); statErr != nil {
		return 0, statErr
	}

	staging, err := fc.fs.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".dupe-*", DestinationMode)
	if err != nil {
		return 0, newCopyError(KindDestinationOpen, "create", dst, err)
	}

	stagingPath := staging.Name()

	defer func() {
		if err != nil {
			_ = fc.fs.Remove(stagingPath)
		}
	}()

	// The staging file must be closed before the rename, so it is released
	// here rather than deferred.
	written, err = transfer(source, staging, src, stagingPath)
	closeErr := staging.Close()

	if err != nil {
		return written, err
	}

	if closeErr != nil {
		return written, newCopyError(KindWrite, "close", stagingPath, closeErr)
	}

	if renameErr := fc.fs.Rename(stagingPath, dst); renameErr != nil {
		return written, newCopyError(KindWrite, "rename", dst, renameErr)
	}

	return written, nil
}

// checkSource stats the open source. The size is not used by the copy loop.
func checkSource(source SourceFile, path string) error {
	info, err := source.Stat()
	if err != nil {
		return newCopyError(KindSourceStat, "stat", path, err)
	}

	if info.IsDir() {
		return newCopyError(KindSourceStat, "stat", path, ErrIsDirectory)
	}

	return nil
}

// release closes c and records a close failure in *errp unless an earlier
// error is already set.
func release(c io.Closer, kind ErrorKind, path string, errp *error) {
	if cerr := c.Close(); cerr != nil && *errp == nil {
		*errp = newCopyError(kind, "close", path, cerr)
	}
}

func transfer(src io.Reader, dst io.Writer, srcPath, dstPath string) (int64, error) {
	buffer := make([]byte, TransferBufferSize)

	var totalBytes int64

	for {
		bytesRead, err := src.Read(buffer)
		if bytesRead < 0 || bytesRead > len(buffer) {
			return totalBytes, newCopyError(KindRead, "read", srcPath,
				fmt.Errorf("invalid read count %d", bytesRead))
		}

		if bytesRead > 0 {
			bytesWritten, writeErr := dst.Write(buffer[:bytesRead])
			if bytesWritten > 0 {
				totalBytes += int64(bytesWritten)
			}

			if writeErr != nil {
				return totalBytes, newCopyError(KindWrite, "write", dstPath, writeErr)
			}

			if bytesWritten != bytesRead {
				return totalBytes, newCopyError(KindWrite, "write", dstPath,
					fmt.Errorf("%w: expected %d, wrote %d", io.ErrShortWrite, bytesRead, bytesWritten))
			}
		}

		if err == io.EOF {
			return totalBytes, nil
		}

		if err != nil {
			return totalBytes, newCopyError(KindRead, "read", srcPath, err)
		}
	}
}
