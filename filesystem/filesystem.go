package filesystem

import (
	"fmt"
	"os"
)

var (
	ErrFileNotFound = fmt.Errorf("filesystem: file not found")
	ErrInvalidPath  = fmt.Errorf("filesystem: invalid path")
)

// Filesystem is the read-side file access the http package serves static
// content through. Implementations may be backed by anything that can resolve
// a path to bytes.
type Filesystem interface {
	ReadFile(path string) ([]byte, error)
	FileExists(path string) (bool, error)
	FileSize(path string) (int64, error)
	IsFile(path string) (bool, error)
}

type localFilesystem struct {
}

func NewLocalFilesystem() Filesystem {
	return &localFilesystem{}
}

func (filesystem *localFilesystem) FileExists(path string) (bool, error) {
	if path == "" {
		return false, ErrInvalidPath
	}

	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (filesystem *localFilesystem) IsFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

func (filesystem *localFilesystem) FileSize(path string) (int64, error) {
	exists, err := filesystem.FileExists(path)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrFileNotFound
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}

	return info.Size(), nil
}

func (filesystem *localFilesystem) ReadFile(path string) ([]byte, error) {
	exists, err := filesystem.FileExists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrFileNotFound
	}

	return os.ReadFile(path)
}
