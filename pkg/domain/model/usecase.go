package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ghcrawl/pkg/domain/types"
)

type CrawlInput struct {
	RepositoryQuery
	SearchToken types.SearchToken

	// CorroborateToken, if set, must also appear in a file before it counts as a hit.
	CorroborateToken types.SearchToken
}

func (x *CrawlInput) Validate() error {
	if err := x.RepositoryQuery.Validate(); err != nil {
		return err
	}
	if x.SearchToken == "" {
		return goerr.Wrap(types.ErrValidationFailed, "search token is empty")
	}
	return nil
}

// CrawlSummary counts what a crawl went through.
type CrawlSummary struct {
	Repositories     int
	Dominant         int
	InspectedFiles   int
	Findings         int
	Windows          []WindowStat
	TruncatedWindows int
}
