package ports

import "context"

// FetchResult is a fetched remote source.
type FetchResult struct {
	Source      string
	ContentType string
}

// Fetcher retrieves remote component source over the network.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// Fetch downloads the source at url. It honors ctx cancellation and
	// returns ErrUnsupportedContentType for non-script responses.
	Fetch(ctx context.Context, url string) (FetchResult, error)
}
