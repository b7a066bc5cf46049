package usecase

import (
	"context"

	"github.com/secmon-lab/ghcrawl/pkg/domain/interfaces"
	"github.com/secmon-lab/ghcrawl/pkg/domain/model"
)

// RepositoryPages fetches repository search pages through the GitHub API.
type RepositoryPages struct {
	api interfaces.GitHubAPI
}

var _ interfaces.PageFetcher[model.RepositoryQuery, model.Repository] = (*RepositoryPages)(nil)

func NewRepositoryPages(api interfaces.GitHubAPI) *RepositoryPages {
	return &RepositoryPages{api: api}
}

func (x *RepositoryPages) FetchPage(ctx context.Context, q model.RepositoryQuery, page int) (*model.Page[model.Repository], error) {
	return x.api.SearchRepositories(ctx, q, page)
}

// CodePages fetches code search pages through the GitHub API.
type CodePages struct {
	api interfaces.GitHubAPI
}

var _ interfaces.PageFetcher[model.CodeOccurrenceQuery, model.CodeOccurrence] = (*CodePages)(nil)

func NewCodePages(api interfaces.GitHubAPI) *CodePages {
	return &CodePages{api: api}
}

func (x *CodePages) FetchPage(ctx context.Context, q model.CodeOccurrenceQuery, page int) (*model.Page[model.CodeOccurrence], error) {
	return x.api.SearchCode(ctx, q, page)
}
