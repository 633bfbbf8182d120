package core

import (
	"fmt"
	"os"
)

type osFileSystem struct{}

// OSFileSystem returns the FileSystem backed by the local operating system.
func OSFileSystem() FileSystem {
	return osFileSystem{}
}

func (osFileSystem) Open(name string) (SourceFile, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	return f, nil
}

func (osFileSystem) OpenFile(name string, flag int, perm os.FileMode) (DestinationFile, error) {
	f, err := os.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// CreateTemp creates the file with os.CreateTemp and then applies perm,
// since os.CreateTemp always uses 0600.
func (osFileSystem) CreateTemp(dir, pattern string, perm os.FileMode) (DestinationFile, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, err
	}

	if err := f.Chmod(perm); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())

		return nil, fmt.Errorf("failed to set mode on %s: %w", f.Name(), err)
	}

	return f, nil
}

func (osFileSystem) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

func (osFileSystem) Remove(name string) error {
	return os.Remove(name)
}
