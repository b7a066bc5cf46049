package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . BigQuery GitHubAPI FindingWriter

import (
	"context"

	"cloud.google.com/go/bigquery"

	"github.com/secmon-lab/ghcrawl/pkg/domain/model"
)

type BigQueryInsertOption func(*BigQueryInsertConfig)

type BigQueryInsertConfig struct {
	EnableRetry bool
}

// WithRetry retries an insert rejected because the write stream has not caught up with
// a schema update yet.
func WithRetry(retry bool) BigQueryInsertOption {
	return func(c *BigQueryInsertConfig) {
		c.EnableRetry = retry
	}
}

type BigQuery interface {
	Insert(ctx context.Context, schema bigquery.Schema, data any, opts ...BigQueryInsertOption) error

	GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error)
	UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error
	CreateTable(ctx context.Context, md *bigquery.TableMetadata) error
}

// GitHubAPI is the subset of the GitHub REST API the crawler talks to. Search methods
// fetch exactly one page; page numbers start at 1.
type GitHubAPI interface {
	SearchRepositories(ctx context.Context, q model.RepositoryQuery, page int) (*model.Page[model.Repository], error)
	SearchCode(ctx context.Context, q model.CodeOccurrenceQuery, page int) (*model.Page[model.CodeOccurrence], error)
	GetRepositoryLanguages(ctx context.Context, repo string) (model.LanguageStats, error)
	GetFileContent(ctx context.Context, repo, path string) (*model.FileContent, error)
}

// FindingWriter receives findings as soon as they are confirmed.
type FindingWriter interface {
	Write(ctx context.Context, finding *model.Finding) error
}
