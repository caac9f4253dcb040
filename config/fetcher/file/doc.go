// Package file provides config.DataFetcher implementations backed by files.
//
// NewFetcher reads from the local filesystem and NewFSFetcher from any fs.FS,
// such as the catalog resources embedded in the binary. Both read the file
// once at construction and serve copies of the cached bytes afterwards:
//
//	fetcher, err := file.NewFetcher("/etc/registry/providers.yml")()
//	if err != nil {
//	    // file missing, unreadable, or a directory
//	}
//	data, err := fetcher.Fetch()
//
// Use errors.Is(err, file.ErrPathIsDirectory) to detect directory paths.
package file
