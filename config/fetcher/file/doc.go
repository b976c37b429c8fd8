// Package file provides a file-based config.Source.
//
// The file is read when Fetch is called, never at construction, so building a
// Fetcher for a path that is never used has no side effects.
//
// Usage:
//
//	fetcher := file.NewFetcher("/path/to/config.yaml")
//	data, err := fetcher.Fetch(ctx)
//	if err != nil {
//	    // not found, permission denied, name too long, path is a directory, ...
//	}
//
// Error Handling:
//   - I/O errors are the *fs.PathError values produced by the os package
//   - Use errors.Is(err, fs.ErrNotExist) to check for missing files
//   - Use errors.Is(err, file.ErrPathIsDirectory) to check for directory errors
package file
