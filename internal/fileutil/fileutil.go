package fileutil

import (
	"errors"
	"io"
	"os"
	"syscall"
)

// Exists reports whether path names an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CopyFile streams src to dst using io.Copy with default permissions (0o644).
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// MoveFile renames src to dst, falling back to copy-and-remove when the
// rename crosses filesystem boundaries.
func MoveFile(src, dst string) error {
	renameErr := os.Rename(src, dst)
	if renameErr == nil {
		return nil
	}
	var linkErr *os.LinkError
	if errors.As(renameErr, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
		if err := CopyFile(src, dst); err != nil {
			return err
		}
		return os.Remove(src)
	}
	return renameErr
}
