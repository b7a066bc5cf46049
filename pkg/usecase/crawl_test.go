package usecase_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ghcrawl/pkg/domain/interfaces"
	"github.com/secmon-lab/ghcrawl/pkg/domain/mock"
	"github.com/secmon-lab/ghcrawl/pkg/domain/model"
	"github.com/secmon-lab/ghcrawl/pkg/domain/types"
	"github.com/secmon-lab/ghcrawl/pkg/infra"
	"github.com/secmon-lab/ghcrawl/pkg/infra/report"
	"github.com/secmon-lab/ghcrawl/pkg/repository/memory"
	"github.com/secmon-lab/ghcrawl/pkg/usecase"
	"github.com/secmon-lab/ghcrawl/pkg/utils/logging"
)

var crawlNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func crawlCtx() context.Context {
	return logging.CtxWithTime(context.Background(), func() time.Time { return crawlNow })
}

func encodedFile(body string) *model.FileContent {
	return &model.FileContent{
		Encoding: "base64",
		Content:  base64.StdEncoding.EncodeToString([]byte(body)),
	}
}

func newCrawlInput() *model.CrawlInput {
	return &model.CrawlInput{
		RepositoryQuery: model.RepositoryQuery{MinStars: 1000, MaxStars: 1500, Language: "C"},
		SearchToken:     "union",
	}
}

// newCrawlAPI serves three repositories: alpha/vm is mostly C and holds a tagged union,
// beta/web is mostly JavaScript and gamma/lib is half C without a tagged union.
func newCrawlAPI() *mock.GitHubAPIMock {
	files := map[string]*model.FileContent{
		"alpha/vm:src/a.c":     encodedFile("int main(void) { return 0; }\n"),
		"alpha/vm:src/value.h": encodedFile(taggedUnionSource),
		"gamma/lib:lib.c":      encodedFile("union {\n  int a;\n};\n"),
	}

	return &mock.GitHubAPIMock{
		SearchRepositoriesFunc: func(ctx context.Context, q model.RepositoryQuery, page int) (*model.Page[model.Repository], error) {
			if q.MinStars != 1000 || q.MaxStars != 1500 || page != 1 {
				return &model.Page[model.Repository]{}, nil
			}
			return &model.Page[model.Repository]{
				Total: 3,
				Items: []model.Repository{
					{FullName: "alpha/vm", StargazersCount: 1400},
					{FullName: "beta/web", StargazersCount: 1200},
					{FullName: "gamma/lib", StargazersCount: 1100},
				},
			}, nil
		},
		GetRepositoryLanguagesFunc: func(ctx context.Context, repo string) (model.LanguageStats, error) {
			switch repo {
			case "alpha/vm":
				return model.LanguageStats{"C": 900, "Python": 100}, nil
			case "beta/web":
				return model.LanguageStats{"C": 10, "JavaScript": 990}, nil
			default:
				return model.LanguageStats{"C": 500, "Makefile": 500}, nil
			}
		},
		SearchCodeFunc: func(ctx context.Context, q model.CodeOccurrenceQuery, page int) (*model.Page[model.CodeOccurrence], error) {
			if q.Token != "union" {
				return &model.Page[model.CodeOccurrence]{}, nil
			}
			switch q.Repo {
			case "alpha/vm":
				return &model.Page[model.CodeOccurrence]{Items: []model.CodeOccurrence{{Path: "src/a.c"}, {Path: "src/value.h"}}}, nil
			case "gamma/lib":
				return &model.Page[model.CodeOccurrence]{Items: []model.CodeOccurrence{{Path: "lib.c"}}}, nil
			}
			return &model.Page[model.CodeOccurrence]{}, nil
		},
		GetFileContentFunc: func(ctx context.Context, repo, path string) (*model.FileContent, error) {
			if f, ok := files[repo+":"+path]; ok {
				return f, nil
			}
			return nil, errors.New("unexpected file " + repo + ":" + path)
		},
	}
}

func TestCrawl(t *testing.T) {
	t.Run("emit findings to every writer", func(t *testing.T) {
		api := newCrawlAPI()
		mem := memory.New()
		var buf bytes.Buffer

		uc := usecase.New(infra.New(
			infra.WithGitHubAPI(api),
			infra.WithFindingWriter(mem),
			infra.WithFindingWriter(report.New(&buf, report.FormatText)),
		))

		summary, err := uc.Crawl(crawlCtx(), newCrawlInput())
		gt.NoError(t, err)

		gt.V(t, summary.Repositories).Equal(3)
		gt.V(t, summary.Dominant).Equal(2)
		gt.V(t, summary.InspectedFiles).Equal(3)
		gt.V(t, summary.Findings).Equal(1)
		gt.V(t, summary.TruncatedWindows).Equal(0)
		gt.V(t, len(summary.Windows)).Equal(1)

		gt.V(t, buf.String()).Equal("alpha/vm 1400 900\n")

		findings, err := mem.List(context.Background())
		gt.NoError(t, err)
		gt.V(t, len(findings)).Equal(1)
		gt.V(t, findings[0].Repository).Equal("alpha/vm")
		gt.V(t, findings[0].Stars).Equal(1400)
		gt.V(t, findings[0].Language).Equal(types.Language("C"))
		gt.V(t, findings[0].LanguageBytes).Equal(900)
		gt.V(t, findings[0].TotalBytes).Equal(1000)
		gt.V(t, findings[0].Path).Equal("src/value.h")
		gt.True(t, findings[0].Timestamp.Equal(crawlNow))
		gt.V(t, findings[0].ID).NotEqual(types.FindingID(""))

		// non-dominant repository is never searched
		for _, call := range api.SearchCodeCalls() {
			gt.V(t, call.Q.Repo).NotEqual("beta/web")
		}
	})

	t.Run("hit must be corroborated", func(t *testing.T) {
		api := newCrawlAPI()
		mem := memory.New()
		uc := usecase.New(infra.New(infra.WithGitHubAPI(api), infra.WithFindingWriter(mem)))

		input := newCrawlInput()
		input.CorroborateToken = "type"
		summary, err := uc.Crawl(crawlCtx(), input)
		gt.NoError(t, err)
		gt.V(t, summary.Findings).Equal(0)
		gt.V(t, mem.Len()).Equal(0)

		var narrowed []model.CodeOccurrenceQuery
		for _, call := range api.SearchCodeCalls() {
			if call.Q.Token == "type" {
				narrowed = append(narrowed, call.Q)
			}
		}
		gt.V(t, len(narrowed)).Equal(1)
		gt.V(t, narrowed[0].Repo).Equal("alpha/vm")
		gt.V(t, narrowed[0].Path).Equal("src")
		gt.V(t, narrowed[0].Filename).Equal("value.h")
	})

	t.Run("corroborated hit is reported", func(t *testing.T) {
		api := newCrawlAPI()
		searchCode := api.SearchCodeFunc
		api.SearchCodeFunc = func(ctx context.Context, q model.CodeOccurrenceQuery, page int) (*model.Page[model.CodeOccurrence], error) {
			if q.Token == "type" && q.Filename == "value.h" {
				return &model.Page[model.CodeOccurrence]{Items: []model.CodeOccurrence{{Path: "src/value.h"}}}, nil
			}
			return searchCode(ctx, q, page)
		}
		mem := memory.New()
		uc := usecase.New(infra.New(infra.WithGitHubAPI(api), infra.WithFindingWriter(mem)))

		input := newCrawlInput()
		input.CorroborateToken = "type"
		summary, err := uc.Crawl(crawlCtx(), input)
		gt.NoError(t, err)
		gt.V(t, summary.Findings).Equal(1)
		gt.V(t, gt.R1(mem.Get(context.Background(), "alpha/vm")).NoError(t).Path).Equal("src/value.h")
	})

	t.Run("corroboration in another file is not a hit", func(t *testing.T) {
		api := newCrawlAPI()
		searchCode := api.SearchCodeFunc
		api.SearchCodeFunc = func(ctx context.Context, q model.CodeOccurrenceQuery, page int) (*model.Page[model.CodeOccurrence], error) {
			if q.Token == "type" {
				return &model.Page[model.CodeOccurrence]{Items: []model.CodeOccurrence{{Path: "src/vendor/value.h"}}}, nil
			}
			return searchCode(ctx, q, page)
		}
		mem := memory.New()
		uc := usecase.New(infra.New(infra.WithGitHubAPI(api), infra.WithFindingWriter(mem)))

		input := newCrawlInput()
		input.CorroborateToken = "type"
		summary, err := uc.Crawl(crawlCtx(), input)
		gt.NoError(t, err)
		gt.V(t, summary.Findings).Equal(0)
		gt.V(t, mem.Len()).Equal(0)
	})

	t.Run("file without inline content is skipped", func(t *testing.T) {
		api := newCrawlAPI()
		api.GetFileContentFunc = func(ctx context.Context, repo, path string) (*model.FileContent, error) {
			return &model.FileContent{Encoding: "none"}, nil
		}
		mem := memory.New()
		uc := usecase.New(infra.New(infra.WithGitHubAPI(api), infra.WithFindingWriter(mem)))

		summary, err := uc.Crawl(crawlCtx(), newCrawlInput())
		gt.NoError(t, err)
		gt.V(t, summary.InspectedFiles).Equal(0)
		gt.V(t, summary.Findings).Equal(0)
	})

	t.Run("custom inspector", func(t *testing.T) {
		mem := memory.New()
		uc := usecase.New(
			infra.New(infra.WithGitHubAPI(newCrawlAPI()), infra.WithFindingWriter(mem)),
			usecase.WithInspector(inspectFunc(func(content string) bool { return true })),
		)

		summary, err := uc.Crawl(crawlCtx(), newCrawlInput())
		gt.NoError(t, err)
		gt.V(t, summary.Findings).Equal(2)

		findings := gt.R1(mem.List(context.Background())).NoError(t)
		gt.V(t, findings[0].Path).Equal("src/a.c")
		gt.V(t, findings[1].Repository).Equal("gamma/lib")
	})
}

type inspectFunc func(content string) bool

func (f inspectFunc) Inspect(content string) bool { return f(content) }

func TestCrawlBigQuery(t *testing.T) {
	t.Run("create table and insert finding", func(t *testing.T) {
		mockBQ := &mock.BigQueryMock{
			GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
				return nil, nil
			},
			CreateTableFunc: func(ctx context.Context, md *bigquery.TableMetadata) error {
				return nil
			},
			InsertFunc: func(ctx context.Context, schema bigquery.Schema, data any, opts ...interfaces.BigQueryInsertOption) error {
				return nil
			},
		}
		uc := usecase.New(infra.New(infra.WithGitHubAPI(newCrawlAPI()), infra.WithBigQuery(mockBQ)))

		_, err := uc.Crawl(crawlCtx(), newCrawlInput())
		gt.NoError(t, err)

		gt.V(t, len(mockBQ.CreateTableCalls())).Equal(1)
		calls := mockBQ.InsertCalls()
		gt.V(t, len(calls)).Equal(1)

		record, ok := calls[0].Data.(*model.FindingRecord)
		gt.True(t, ok)
		gt.V(t, record.Repository).Equal("alpha/vm")
		gt.V(t, record.Timestamp).Equal(crawlNow.UnixMicro())

		var cfg interfaces.BigQueryInsertConfig
		for _, opt := range calls[0].Opts {
			opt(&cfg)
		}
		gt.False(t, cfg.EnableRetry)
	})

	t.Run("schema update enables insert retry", func(t *testing.T) {
		mockBQ := &mock.BigQueryMock{
			GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
				return &bigquery.TableMetadata{
					Schema: bigquery.Schema{{Name: "id", Type: bigquery.StringFieldType}},
					ETag:   "etag-1",
				}, nil
			},
			UpdateTableFunc: func(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error {
				return nil
			},
			InsertFunc: func(ctx context.Context, schema bigquery.Schema, data any, opts ...interfaces.BigQueryInsertOption) error {
				return nil
			},
		}
		uc := usecase.New(infra.New(infra.WithGitHubAPI(newCrawlAPI()), infra.WithBigQuery(mockBQ)))

		_, err := uc.Crawl(crawlCtx(), newCrawlInput())
		gt.NoError(t, err)

		updates := mockBQ.UpdateTableCalls()
		gt.V(t, len(updates)).Equal(1)
		gt.V(t, updates[0].ETag).Equal("etag-1")

		var cfg interfaces.BigQueryInsertConfig
		for _, opt := range mockBQ.InsertCalls()[0].Opts {
			opt(&cfg)
		}
		gt.True(t, cfg.EnableRetry)
	})

	t.Run("insert failure aborts crawl", func(t *testing.T) {
		mockBQ := &mock.BigQueryMock{
			GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
				return nil, nil
			},
			CreateTableFunc: func(ctx context.Context, md *bigquery.TableMetadata) error {
				return nil
			},
			InsertFunc: func(ctx context.Context, schema bigquery.Schema, data any, opts ...interfaces.BigQueryInsertOption) error {
				return errors.New("quota exceeded")
			},
		}
		uc := usecase.New(infra.New(infra.WithGitHubAPI(newCrawlAPI()), infra.WithBigQuery(mockBQ)))

		_, err := uc.Crawl(crawlCtx(), newCrawlInput())
		gt.Error(t, err)
	})
}

func TestCrawlErrors(t *testing.T) {
	t.Run("GitHub API is required", func(t *testing.T) {
		uc := usecase.New(infra.New())
		_, err := uc.Crawl(crawlCtx(), newCrawlInput())
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("search token is required", func(t *testing.T) {
		uc := usecase.New(infra.New(infra.WithGitHubAPI(newCrawlAPI())))
		input := newCrawlInput()
		input.SearchToken = ""
		_, err := uc.Crawl(crawlCtx(), input)
		gt.True(t, errors.Is(err, types.ErrValidationFailed))
	})

	t.Run("languages failure aborts crawl", func(t *testing.T) {
		errBroken := errors.New("broken")
		api := newCrawlAPI()
		api.GetRepositoryLanguagesFunc = func(ctx context.Context, repo string) (model.LanguageStats, error) {
			return nil, errBroken
		}
		uc := usecase.New(infra.New(infra.WithGitHubAPI(api)))

		_, err := uc.Crawl(crawlCtx(), newCrawlInput())
		gt.True(t, errors.Is(err, errBroken))
	})

	t.Run("writer failure aborts crawl", func(t *testing.T) {
		errFull := errors.New("disk full")
		writer := &mock.FindingWriterMock{
			WriteFunc: func(ctx context.Context, finding *model.Finding) error {
				return errFull
			},
		}
		uc := usecase.New(infra.New(infra.WithGitHubAPI(newCrawlAPI()), infra.WithFindingWriter(writer)))

		_, err := uc.Crawl(crawlCtx(), newCrawlInput())
		gt.True(t, errors.Is(err, errFull))
		gt.V(t, len(writer.WriteCalls())).Equal(1)
	})
}
