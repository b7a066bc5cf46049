package cli

import (
	"context"

	"github.com/m-mizutani/gots/slice"
	"github.com/secmon-lab/ghcrawl/pkg/cli/config"
	"github.com/secmon-lab/ghcrawl/pkg/utils/errutil"
	"github.com/secmon-lab/ghcrawl/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// ConfigureLogging is exported for testing purposes
var ConfigureLogging = logging.Configure

type CLI struct {
}

func New() *CLI {
	return &CLI{}
}

func (x *CLI) Run(argv []string) error {
	var (
		logLevel  string
		logFormat string
		logOutput string

		sentry config.Sentry
	)
	flush := func() {}

	app := &cli.Command{
		Name:  "ghcrawl",
		Usage: "Enumerate GitHub search results beyond the 1000 result cap",
		Flags: slice.Flatten([]cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Log level [debug|info|warn|error]",
				Aliases:     []string{"l"},
				Sources:     cli.EnvVars("GHCRAWL_LOG_LEVEL"),
				Destination: &logLevel,
				Value:       "info",
			},
			&cli.StringFlag{
				Name:        "log-format",
				Usage:       "Log format [text|json]",
				Sources:     cli.EnvVars("GHCRAWL_LOG_FORMAT"),
				Destination: &logFormat,
				Value:       "text",
			},
			&cli.StringFlag{
				Name:        "log-output",
				Usage:       "Log output [-|stdout|stderr|<file>]",
				Sources:     cli.EnvVars("GHCRAWL_LOG_OUTPUT"),
				Destination: &logOutput,
				Value:       "-",
			},
		}, sentry.Flags()),
		Commands: []*cli.Command{
			crawlCommand(),
			reposCommand(),
			codeCommand(),
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := ConfigureLogging(logFormat, logLevel, logOutput); err != nil {
				return ctx, err
			}

			reqID, ctx := logging.CtxRequestID(ctx)
			ctx = logging.With(ctx, logging.Default().With("request_id", reqID))

			f, err := sentry.Configure(ctx)
			if err != nil {
				return ctx, err
			}
			flush = f

			return ctx, nil
		},
	}

	ctx := context.Background()
	err := app.Run(ctx, argv)
	if err != nil {
		errutil.HandleError(ctx, "fatal error", err)
	}
	flush()

	return err
}
