package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrPathIsDirectory is returned when the path provided to the Fetcher points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// Fetcher implements config.Source for a file on disk.
// The file is read on every Fetch; nothing touches the filesystem before that.
type Fetcher struct {
	filepath string
}

// NewFetcher returns a Fetcher for fpath.
func NewFetcher(fpath string) *Fetcher {
	return &Fetcher{filepath: fpath}
}

// Name returns the path the Fetcher was created with. It is used for format
// guessing, so it is not cleaned.
func (f *Fetcher) Name() string {
	return f.filepath
}

// Fetch reads the whole file. I/O errors are returned as produced by the os
// package so their text reaches the caller unchanged.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	err := ctx.Err()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	cleanPath := filepath.Clean(f.filepath)

	stat, err := os.Stat(cleanPath)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if stat.IsDir() {
		return nil, fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
	}

	data, err := os.ReadFile(cleanPath) // #nosec G304 -- reading caller supplied files is the purpose
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return data, nil
}
