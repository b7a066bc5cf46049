package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/secmon-lab/ghcrawl/pkg/cli/config"
	"github.com/secmon-lab/ghcrawl/pkg/domain/model"
	"github.com/secmon-lab/ghcrawl/pkg/domain/types"
	"github.com/secmon-lab/ghcrawl/pkg/infra"
	"github.com/secmon-lab/ghcrawl/pkg/infra/report"
	"github.com/secmon-lab/ghcrawl/pkg/usecase"
	"github.com/secmon-lab/ghcrawl/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func codeCommand() *cli.Command {
	var (
		github config.GitHub
		output outputFlags
		repo   string
		token  string
		lang   string
		path   string
		name   string
	)

	return &cli.Command{
		Name:  "code",
		Usage: "List files of a repository containing a token",
		Flags: slice.Flatten([]cli.Flag{
			&cli.StringFlag{
				Name:        "repo",
				Aliases:     []string{"r"},
				Usage:       "Repository as owner/name",
				Required:    true,
				Destination: &repo,
			},
			&cli.StringFlag{
				Name:        "token",
				Aliases:     []string{"t"},
				Usage:       "Token searched in code",
				Value:       "union",
				Destination: &token,
				Sources:     cli.EnvVars("GHCRAWL_TOKEN"),
			},
			&cli.StringFlag{
				Name:        "language",
				Usage:       "Code language",
				Value:       "c",
				Destination: &lang,
				Sources:     cli.EnvVars("GHCRAWL_LANGUAGE"),
			},
			&cli.StringFlag{
				Name:        "path",
				Usage:       "Restrict the search to a directory",
				Destination: &path,
			},
			&cli.StringFlag{
				Name:        "filename",
				Usage:       "Restrict the search to a file name",
				Destination: &name,
			},
		}, output.Flags(), github.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			q := model.CodeOccurrenceQuery{
				Repo:     repo,
				Path:     path,
				Filename: name,
				Language: types.Language(lang),
				Token:    types.SearchToken(token),
			}
			return runCode(ctx, q, &github, &output)
		},
	}
}

func runCode(ctx context.Context, q model.CodeOccurrenceQuery, github *config.GitHub, output *outputFlags) error {
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

	cursor, err := usecase.New(infra.New(infra.WithGitHubAPI(api))).CodeOccurrences(q)
	if err != nil {
		return err
	}

	var count int
	for occurrence, err := range cursor.All(ctx) {
		if err != nil {
			return err
		}

		switch format {
		case report.FormatJSON:
			err = json.NewEncoder(w).Encode(occurrence)
		default:
			_, err = fmt.Fprintln(w, occurrence.Path)
		}
		if err != nil {
			return goerr.Wrap(err, "failed to write code occurrence", goerr.V("path", occurrence.Path))
		}
		count++
	}

	logging.From(ctx).Info("Code occurrences listed",
		slog.String("query", q.SearchQuery()),
		slog.Int("count", count),
		slog.Int("pages", cursor.Pages()),
	)
	return nil
}
