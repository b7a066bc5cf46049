package usecase

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ghcrawl/pkg/domain/interfaces"
	"github.com/secmon-lab/ghcrawl/pkg/domain/model"
	"github.com/secmon-lab/ghcrawl/pkg/domain/types"
	"github.com/secmon-lab/ghcrawl/pkg/infra"
)

type UseCase struct {
	clients   *infra.Clients
	inspector interfaces.ContentInspector
}

type Option func(*UseCase)

// WithInspector replaces the content check applied to code occurrences.
func WithInspector(inspector interfaces.ContentInspector) Option {
	return func(x *UseCase) {
		x.inspector = inspector
	}
}

func New(clients *infra.Clients, options ...Option) *UseCase {
	uc := &UseCase{
		clients:   clients,
		inspector: &TaggedUnionInspector{},
	}

	for _, opt := range options {
		opt(uc)
	}

	return uc
}

// Repositories returns a cursor over repositories matching q.
func (x *UseCase) Repositories(q model.RepositoryQuery) (*RepositoryCursor, error) {
	api := x.clients.GitHubAPI()
	if api == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "GitHub API client is not configured")
	}
	return EnumerateRepositories(q, NewRepositoryPages(api)), nil
}

// CodeOccurrences returns a cursor over files matching q.
func (x *UseCase) CodeOccurrences(q model.CodeOccurrenceQuery) (*CodeCursor, error) {
	api := x.clients.GitHubAPI()
	if api == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "GitHub API client is not configured")
	}
	return EnumerateCodeOccurrences(q, NewCodePages(api)), nil
}
