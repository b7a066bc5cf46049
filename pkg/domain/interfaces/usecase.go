package interfaces

import (
	"context"

	"github.com/secmon-lab/ghcrawl/pkg/domain/model"
)

// PageFetcher fetches one page of results for a query.
type PageFetcher[Q, T any] interface {
	FetchPage(ctx context.Context, q Q, page int) (*model.Page[T], error)
}

// ContentInspector decides whether a file body matches a lexical pattern.
type ContentInspector interface {
	Inspect(content string) bool
}
