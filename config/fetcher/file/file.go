package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// ErrPathIsDirectory is returned when the path given to a Fetcher points to a directory.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// Fetcher implements config.DataFetcher for catalog and settings files.
// The file is read once when the Fetcher is constructed and the contents cached.
type Fetcher struct {
	source string
	data   []byte
}

// NewFetcher returns a constructor for a Fetcher reading fpath from the local filesystem.
// The constructor fails when the file cannot be read or fpath is a directory.
func NewFetcher(fpath string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		cleanPath := filepath.Clean(fpath)

		return read(cleanPath, os.Stat, os.ReadFile)
	}
}

// NewFSFetcher returns a constructor for a Fetcher reading name from fsys.
// It is used for the resources embedded in the binary.
func NewFSFetcher(fsys fs.FS, name string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		cleanName := path.Clean(name)

		return read(cleanName,
			func(name string) (fs.FileInfo, error) { return fs.Stat(fsys, name) },
			func(name string) ([]byte, error) { return fs.ReadFile(fsys, name) },
		)
	}
}

func read(
	source string,
	stat func(string) (fs.FileInfo, error),
	readFile func(string) ([]byte, error),
) (*Fetcher, error) {
	info, err := stat(source)
	if err != nil {
		return nil, fmt.Errorf("stat file %q: %w", source, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("path %q: %w", source, ErrPathIsDirectory)
	}

	data, err := readFile(source) // #nosec G304 -- path is cleaned and checked above
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", source, err)
	}

	return &Fetcher{
		source: source,
		data:   data,
	}, nil
}

// Source returns the cleaned path the data was read from.
func (f *Fetcher) Source() string {
	return f.source
}

// Fetch returns a copy of the cached file contents.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}
