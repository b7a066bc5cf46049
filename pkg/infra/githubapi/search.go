package githubapi

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ghcrawl/pkg/domain/model"
	"github.com/secmon-lab/ghcrawl/pkg/domain/types"
)

// SearchRepositories fetches one page of /search/repositories for the star window q.
func (x *Client) SearchRepositories(ctx context.Context, q model.RepositoryQuery, page int) (*model.Page[model.Repository], error) {
	x.log(ctx).Info("Getting repositories",
		slog.Int("min_stars", q.MinStars),
		slog.Int("max_stars", q.MaxStars),
		slog.String("language", q.Language.String()),
		slog.Int("page", page),
	)

	params := []Param{
		{Key: "q", Value: url.QueryEscape(q.SearchQuery())},
		{Key: "order", Value: "stars"},
		{Key: "page", Value: strconv.Itoa(page)},
		{Key: "per_page", Value: strconv.Itoa(model.PerPage)},
	}

	result, err := fetchJSON[github.RepositoriesSearchResult](ctx, x, "search/repositories", params)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search repositories", goerr.V("query", q), goerr.V("page", page))
	}

	resp := &model.Page[model.Repository]{
		Items:      make([]model.Repository, 0, len(result.Repositories)),
		Total:      result.GetTotal(),
		Incomplete: result.GetIncompleteResults(),
	}
	for _, repo := range result.Repositories {
		resp.Items = append(resp.Items, model.Repository{
			FullName:        repo.GetFullName(),
			StargazersCount: repo.GetStargazersCount(),
		})
	}
	return resp, nil
}

// SearchCode fetches one page of /search/code for q.
func (x *Client) SearchCode(ctx context.Context, q model.CodeOccurrenceQuery, page int) (*model.Page[model.CodeOccurrence], error) {
	params := []Param{
		{Key: "q", Value: url.QueryEscape(q.SearchQuery())},
		{Key: "page", Value: strconv.Itoa(page)},
		{Key: "per_page", Value: strconv.Itoa(model.PerPage)},
	}

	result, err := fetchJSON[github.CodeSearchResult](ctx, x, "search/code", params)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search code", goerr.V("query", q), goerr.V("page", page))
	}

	resp := &model.Page[model.CodeOccurrence]{
		Items:      make([]model.CodeOccurrence, 0, len(result.CodeResults)),
		Total:      result.GetTotal(),
		Incomplete: result.GetIncompleteResults(),
	}
	for _, code := range result.CodeResults {
		resp.Items = append(resp.Items, model.CodeOccurrence{Path: code.GetPath()})
	}
	return resp, nil
}

// GetRepositoryLanguages returns bytes of code per language for repo ("owner/name").
func (x *Client) GetRepositoryLanguages(ctx context.Context, repo string) (model.LanguageStats, error) {
	path, err := repoPath(repo, "languages")
	if err != nil {
		return nil, err
	}

	result, err := fetchJSON[map[string]int](ctx, x, path, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get repository languages", goerr.V("repo", repo))
	}
	return model.LanguageStats(*result), nil
}

// GetFileContent returns the encoded content of a file in the default branch of repo.
func (x *Client) GetFileContent(ctx context.Context, repo, path string) (*model.FileContent, error) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i := range segments {
		segments[i] = url.PathEscape(segments[i])
	}

	apiPath, err := repoPath(repo, "contents/"+strings.Join(segments, "/"))
	if err != nil {
		return nil, err
	}

	result, err := fetchJSON[github.RepositoryContent](ctx, x, apiPath, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get file content", goerr.V("repo", repo), goerr.V("path", path))
	}
	if result.Content == nil {
		return nil, goerr.Wrap(types.ErrInvalidResponse, "content is missing, path may be a directory",
			goerr.V("repo", repo),
			goerr.V("path", path),
		)
	}

	return &model.FileContent{
		Encoding: result.GetEncoding(),
		Content:  *result.Content,
	}, nil
}

func repoPath(repo, suffix string) (string, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return "", goerr.Wrap(types.ErrValidationFailed, "repository must be owner/name", goerr.V("repo", repo))
	}
	return "repos/" + url.PathEscape(owner) + "/" + url.PathEscape(name) + "/" + suffix, nil
}
