package main

import (
	"errors"
	"fmt"
	"io/fs"
)

// Error kinds surfaced to the user. Callers wrap them with context and
// check with errors.Is.
var (
	ErrNotFound     = errors.New("path not found")
	ErrPermission   = errors.New("permission denied")
	ErrInvalidInput = errors.New("invalid input")
	ErrWrite        = errors.New("report could not be written")
)

// classifyFSError tags a filesystem error with the matching kind so the shell
// can pick a message. Errors that are neither missing nor permission related
// are returned unchanged.
func classifyFSError(path string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermission, path, err)
	default:
		return err
	}
}
