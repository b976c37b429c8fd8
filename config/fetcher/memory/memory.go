package memory

import "context"

// Fetcher implements config.Source for content that is already in memory,
// such as an HTTP request body.
type Fetcher struct {
	name string
	data []byte
}

// NewFetcher returns a Fetcher serving data under the given file name.
func NewFetcher(name string, data []byte) *Fetcher {
	return &Fetcher{name: name, data: data}
}

// Name returns the file name used for format guessing.
func (f *Fetcher) Name() string {
	return f.name
}

// Fetch returns a copy of the data.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	err := ctx.Err()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}
