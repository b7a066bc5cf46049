package usecase

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ghcrawl/pkg/domain/interfaces"
	"github.com/secmon-lab/ghcrawl/pkg/domain/model"
	"github.com/secmon-lab/ghcrawl/pkg/domain/types"
	"github.com/secmon-lab/ghcrawl/pkg/utils/logging"
)

// Crawl walks repositories of the star range whose code is mostly written in the
// requested language and reports those holding a file that passes the content
// inspection. Each finding is sent to every configured writer and to BigQuery.
func (x *UseCase) Crawl(ctx context.Context, input *model.CrawlInput) (*model.CrawlSummary, error) {
	if err := input.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid crawl input")
	}
	api := x.clients.GitHubAPI()
	if api == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "GitHub API client is not configured")
	}

	logger := logging.From(ctx)
	logger.Info("Start crawling",
		slog.Int("min_stars", input.MinStars),
		slog.Int("max_stars", input.MaxStars),
		slog.String("language", input.Language.String()),
		slog.String("token", input.SearchToken.String()),
	)

	var table *findingTable
	if bq := x.clients.BigQuery(); bq != nil {
		schema, schemaUpdated, err := createOrUpdateBigQueryTable(ctx, bq, &model.Finding{})
		if err != nil {
			return nil, err
		}
		table = &findingTable{client: bq, schema: schema, schemaUpdated: schemaUpdated}
	}

	summary := &model.CrawlSummary{}
	repos := EnumerateRepositories(input.RepositoryQuery, NewRepositoryPages(api))
	for repo, err := range repos.All(ctx) {
		if err != nil {
			return nil, goerr.Wrap(err, "failed to enumerate repositories")
		}
		summary.Repositories++

		finding, err := x.inspectRepository(ctx, api, input, repo, summary)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to inspect repository", goerr.V("repo", repo.FullName))
		}
		if finding == nil {
			continue
		}

		if err := x.emit(ctx, table, finding); err != nil {
			return nil, err
		}
		summary.Findings++
	}

	summary.Windows = repos.Windows()
	for _, w := range summary.Windows {
		if w.Truncated {
			summary.TruncatedWindows++
		}
	}

	logger.Info("Crawl finished",
		slog.Int("repositories", summary.Repositories),
		slog.Int("dominant", summary.Dominant),
		slog.Int("inspected_files", summary.InspectedFiles),
		slog.Int("findings", summary.Findings),
		slog.Int("windows", len(summary.Windows)),
		slog.Int("truncated_windows", summary.TruncatedWindows),
	)

	return summary, nil
}

// inspectRepository returns a finding for the first file of repo that passes the
// inspection, or nil if there is none.
func (x *UseCase) inspectRepository(ctx context.Context, api interfaces.GitHubAPI, input *model.CrawlInput, repo model.Repository, summary *model.CrawlSummary) (*model.Finding, error) {
	logger := logging.From(ctx).With(slog.String("repo", repo.FullName))

	langs, err := api.GetRepositoryLanguages(ctx, repo.FullName)
	if err != nil {
		return nil, err
	}
	if !langs.Dominant(input.Language) {
		logger.Debug("Skip repository, language is not dominant",
			slog.Int("language_bytes", langs.Bytes(input.Language)),
			slog.Int("total_bytes", langs.Total()),
		)
		return nil, nil
	}
	summary.Dominant++

	codePages := NewCodePages(api)
	q := model.CodeOccurrenceQuery{
		Repo:     repo.FullName,
		Language: input.Language,
		Token:    input.SearchToken,
	}

	for occurrence, err := range EnumerateCodeOccurrences(q, codePages).All(ctx) {
		if err != nil {
			return nil, err
		}

		content, err := api.GetFileContent(ctx, repo.FullName, occurrence.Path)
		if err != nil {
			return nil, err
		}
		if content.Encoding != "base64" {
			// the contents API returns no body for files over 1MB
			logger.Warn("Skip file without inline content",
				slog.String("path", occurrence.Path),
				slog.String("encoding", content.Encoding),
			)
			continue
		}
		body, err := content.Decode()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to decode file content", goerr.V("path", occurrence.Path))
		}
		summary.InspectedFiles++

		if !x.inspector.Inspect(body) {
			continue
		}

		if input.CorroborateToken != "" {
			ok, err := Corroborate(ctx, codePages, q, occurrence, input.CorroborateToken)
			if err != nil {
				return nil, err
			}
			if !ok {
				logger.Debug("Hit not corroborated",
					slog.String("path", occurrence.Path),
					slog.String("token", input.CorroborateToken.String()),
				)
				continue
			}
		}

		logger.Info("Found matching file", slog.String("path", occurrence.Path))
		return &model.Finding{
			ID:            types.NewFindingID(),
			Timestamp:     logging.CtxTime(ctx).UTC(),
			Repository:    repo.FullName,
			Stars:         repo.StargazersCount,
			Language:      input.Language,
			LanguageBytes: langs.Bytes(input.Language),
			TotalBytes:    langs.Total(),
			Path:          occurrence.Path,
		}, nil
	}

	return nil, nil
}

func (x *UseCase) emit(ctx context.Context, table *findingTable, finding *model.Finding) error {
	for _, w := range x.clients.FindingWriters() {
		if err := w.Write(ctx, finding); err != nil {
			return goerr.Wrap(err, "failed to write finding", goerr.V("repo", finding.Repository))
		}
	}

	if table != nil {
		if err := table.client.Insert(ctx, table.schema, finding.Record(), interfaces.WithRetry(table.schemaUpdated)); err != nil {
			return goerr.Wrap(err, "failed to insert finding to BigQuery", goerr.V("repo", finding.Repository))
		}
	}

	return nil
}
