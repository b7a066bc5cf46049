package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/gots/slice"
	"github.com/secmon-lab/ghcrawl/pkg/cli/config"
	"github.com/secmon-lab/ghcrawl/pkg/domain/model"
	"github.com/secmon-lab/ghcrawl/pkg/domain/types"
	"github.com/secmon-lab/ghcrawl/pkg/infra"
	"github.com/secmon-lab/ghcrawl/pkg/infra/report"
	"github.com/secmon-lab/ghcrawl/pkg/repository/memory"
	"github.com/secmon-lab/ghcrawl/pkg/usecase"
	"github.com/secmon-lab/ghcrawl/pkg/utils/logging"
	"github.com/secmon-lab/ghcrawl/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func crawlCommand() *cli.Command {
	var (
		github           config.GitHub
		bigQuery         config.BigQuery
		output           outputFlags
		query            repositoryQueryFlags
		token            string
		corroborateToken string
	)

	return &cli.Command{
		Name:  "crawl",
		Usage: "Find repositories mostly written in a language whose code matches the inspection",
		Flags: slice.Flatten([]cli.Flag{
			&cli.StringFlag{
				Name:        "token",
				Aliases:     []string{"t"},
				Usage:       "Token searched in code of each repository",
				Value:       "union",
				Destination: &token,
				Sources:     cli.EnvVars("GHCRAWL_TOKEN"),
			},
			&cli.StringFlag{
				Name:        "corroborate-token",
				Usage:       "Token that must also be found in a matched file",
				Destination: &corroborateToken,
				Sources:     cli.EnvVars("GHCRAWL_CORROBORATE_TOKEN"),
			},
		}, query.Flags(), output.Flags(), github.Flags(), bigQuery.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.From(ctx).Debug("Start crawl command",
				slog.Any("github", github),
				slog.Any("bigQuery", bigQuery),
			)

			input := &model.CrawlInput{
				RepositoryQuery:  query.query(),
				SearchToken:      types.SearchToken(token),
				CorroborateToken: types.SearchToken(corroborateToken),
			}
			return runCrawl(ctx, input, &github, &bigQuery, &output)
		},
	}
}

func runCrawl(ctx context.Context, input *model.CrawlInput, github *config.GitHub, bigQuery *config.BigQuery, output *outputFlags) error {
	if err := input.Validate(); err != nil {
		return err
	}

	api, err := github.NewClient(ctx)
	if err != nil {
		return err
	}

	w, format, closeOutput, err := output.open()
	if err != nil {
		return err
	}
	defer closeOutput()

	store := memory.New()
	options := []infra.Option{
		infra.WithGitHubAPI(api),
		infra.WithFindingWriter(report.New(w, format)),
		infra.WithFindingWriter(store),
	}

	bqClient, err := bigQuery.NewClient(ctx)
	if err != nil {
		return err
	}
	if bqClient != nil {
		defer safe.Close(bqClient)
		options = append(options, infra.WithBigQuery(bqClient))
	}

	uc := usecase.New(infra.New(options...))
	summary, err := uc.Crawl(ctx, input)
	if err != nil {
		return err
	}

	logging.From(ctx).Info("Findings written",
		slog.String("output", output.path),
		slog.Int("findings", summary.Findings),
		slog.Int("unique_repositories", store.Len()),
		slog.Bool("bigquery", bqClient != nil),
	)

	return nil
}
