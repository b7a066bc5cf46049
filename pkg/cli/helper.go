package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ghcrawl/pkg/domain/model"
	"github.com/secmon-lab/ghcrawl/pkg/domain/types"
	"github.com/secmon-lab/ghcrawl/pkg/infra/report"
	"github.com/secmon-lab/ghcrawl/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// openOutput returns stdout for "-", or else a newly created file. The returned
// function closes the file.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}

	fd, err := os.Create(filepath.Clean(path))
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to create output file", goerr.V("path", path))
	}
	return fd, func() { safe.Close(fd) }, nil
}

type outputFlags struct {
	path   string
	format string
}

func (x *outputFlags) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output file, '-' for stdout",
			Value:       "-",
			Destination: &x.path,
			Sources:     cli.EnvVars("GHCRAWL_OUTPUT"),
		},
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Output format [text|json]",
			Value:       string(report.FormatText),
			Destination: &x.format,
			Sources:     cli.EnvVars("GHCRAWL_FORMAT"),
		},
	}
}

// open parses the format before creating the output file.
func (x *outputFlags) open() (io.Writer, report.Format, func(), error) {
	format, err := report.ParseFormat(x.format)
	if err != nil {
		return nil, "", nil, err
	}
	w, closer, err := openOutput(x.path)
	if err != nil {
		return nil, "", nil, err
	}
	return w, format, closer, nil
}

type repositoryQueryFlags struct {
	minStars int64
	maxStars int64
	language string
}

func (x *repositoryQueryFlags) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "min-stars",
			Usage:       "Lower bound of the star range (inclusive)",
			Value:       1000,
			Destination: &x.minStars,
			Sources:     cli.EnvVars("GHCRAWL_MIN_STARS"),
		},
		&cli.Int64Flag{
			Name:        "max-stars",
			Usage:       "Upper bound of the star range (inclusive)",
			Value:       128000,
			Destination: &x.maxStars,
			Sources:     cli.EnvVars("GHCRAWL_MAX_STARS"),
		},
		&cli.StringFlag{
			Name:        "language",
			Usage:       "Repository language",
			Value:       "c",
			Destination: &x.language,
			Sources:     cli.EnvVars("GHCRAWL_LANGUAGE"),
		},
	}
}

func (x *repositoryQueryFlags) query() model.RepositoryQuery {
	return model.RepositoryQuery{
		MinStars: int(x.minStars),
		MaxStars: int(x.maxStars),
		Language: types.Language(x.language),
	}
}
