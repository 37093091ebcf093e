package utils

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileManager abstracts the filesystem operations the organizer performs,
// so the driver can be exercised in tests without touching the disk.
type FileManager interface {
	ReadFile(name string) ([]byte, error)
	MkdirAll(path string, perm os.FileMode) error
	Stat(name string) (os.FileInfo, error)
	Glob(pattern string) ([]string, error)
	CopyFile(src, dst string) error
}

// OSFileManager is the FileManager backed by the operating system.
type OSFileManager struct{}

func (OSFileManager) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (OSFileManager) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (OSFileManager) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (OSFileManager) Glob(pattern string) ([]string, error) {
	return filepath.Glob(pattern)
}

// CopyFile copies src to dst preserving the source file mode. dst must not
// exist; the organizer resolves collisions before calling.
func (osfm OSFileManager) CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "opening %s", src)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return errors.Wrapf(err, "stat %s", src)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return errors.Wrapf(err, "creating %s", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, "copying %s to %s", src, dst)
	}

	if err := out.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", dst)
	}

	return nil
}
