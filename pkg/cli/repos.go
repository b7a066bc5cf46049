package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/secmon-lab/ghcrawl/pkg/cli/config"
	"github.com/secmon-lab/ghcrawl/pkg/domain/model"
	"github.com/secmon-lab/ghcrawl/pkg/infra"
	"github.com/secmon-lab/ghcrawl/pkg/infra/report"
	"github.com/secmon-lab/ghcrawl/pkg/usecase"
	"github.com/secmon-lab/ghcrawl/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func reposCommand() *cli.Command {
	var (
		github config.GitHub
		output outputFlags
		query  repositoryQueryFlags
	)

	return &cli.Command{
		Name:  "repos",
		Usage: "List every repository of a star range, splitting it into windows below the result cap",
		Flags: slice.Flatten(query.Flags(), output.Flags(), github.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			return runRepos(ctx, query.query(), &github, &output)
		},
	}
}

func runRepos(ctx context.Context, q model.RepositoryQuery, github *config.GitHub, output *outputFlags) error {
	if err := q.Validate(); err != nil {
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

	cursor, err := usecase.New(infra.New(infra.WithGitHubAPI(api))).Repositories(q)
	if err != nil {
		return err
	}

	var count int
	for repo, err := range cursor.All(ctx) {
		if err != nil {
			return err
		}
		if err := writeRepository(w, format, repo); err != nil {
			return err
		}
		count++
	}

	logger := logging.From(ctx)
	for _, stat := range cursor.Windows() {
		logger.Debug("Window",
			slog.String("window", stat.Window.String()),
			slog.Int("pages", stat.Pages),
			slog.Int("items", stat.Items),
			slog.Int("total", stat.Total),
			slog.Bool("truncated", stat.Truncated),
		)
	}
	logger.Info("Repositories listed",
		slog.Int("count", count),
		slog.Int("windows", len(cursor.Windows())),
		slog.Bool("truncated", cursor.Truncated()),
	)

	return nil
}

func writeRepository(w io.Writer, format report.Format, repo model.Repository) error {
	switch format {
	case report.FormatJSON:
		if err := json.NewEncoder(w).Encode(repo); err != nil {
			return goerr.Wrap(err, "failed to write repository", goerr.V("repo", repo.FullName))
		}
	default:
		if _, err := fmt.Fprintf(w, "%s %d\n", repo.FullName, repo.StargazersCount); err != nil {
			return goerr.Wrap(err, "failed to write repository", goerr.V("repo", repo.FullName))
		}
	}
	return nil
}
