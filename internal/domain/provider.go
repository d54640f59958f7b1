package domain

import "context"

// ProgressFunc receives the bytes written so far and the expected total,
// which is -1 when the server did not announce a length.
type ProgressFunc func(written, total int64)

type Lister interface {
	ListRepositories(ctx context.Context) ([]ListingEntry, error)
}

type RequirementsSource interface {
	FetchRequirements(ctx context.Context, name string) ([]string, error)
}

type Downloader interface {
	Download(ctx context.Context, repo Repository, destDir string, progress ProgressFunc) (*Archive, error)
}

type Provider interface {
	Lister
	RequirementsSource
	Downloader

	GetSource() ListingSource
}
