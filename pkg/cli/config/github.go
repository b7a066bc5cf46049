package config

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ghcrawl/pkg/domain/types"
	"github.com/secmon-lab/ghcrawl/pkg/infra/ghapp"
	"github.com/secmon-lab/ghcrawl/pkg/infra/githubapi"
	"github.com/secmon-lab/ghcrawl/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// GitHub holds credentials and transport settings of the GitHub API. Either a token or
// a GitHub App is required.
type GitHub struct {
	token      types.GitHubToken `masq:"secret"`
	tokenFile  string
	appID      types.GitHubAppID
	installID  types.GitHubAppInstallID
	appOwner   string
	privateKey types.GitHubAppPrivateKey `masq:"secret"`
	apiURL     string
	userAgent  string
	rateLimit  float64
}

func (x *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token",
			Category:    "GitHub",
			Destination: (*string)(&x.token),
			Sources:     cli.EnvVars("GHCRAWL_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-token-file",
			Usage:       "Path to a file holding the GitHub token",
			Category:    "GitHub",
			Destination: &x.tokenFile,
			Sources:     cli.EnvVars("GHCRAWL_GITHUB_TOKEN_FILE"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID, used instead of a token",
			Category:    "GitHub App",
			Destination: (*int64)(&x.appID),
			Sources:     cli.EnvVars("GHCRAWL_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-app-install-id",
			Usage:       "GitHub App installation ID",
			Category:    "GitHub App",
			Destination: (*int64)(&x.installID),
			Sources:     cli.EnvVars("GHCRAWL_GITHUB_APP_INSTALL_ID"),
		},
		&cli.StringFlag{
			Name:        "github-app-owner",
			Usage:       "Look up the installation ID on this organization or user",
			Category:    "GitHub App",
			Destination: &x.appOwner,
			Sources:     cli.EnvVars("GHCRAWL_GITHUB_APP_OWNER"),
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "GitHub App private key (PEM)",
			Category:    "GitHub App",
			Destination: (*string)(&x.privateKey),
			Sources:     cli.EnvVars("GHCRAWL_GITHUB_APP_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "api-url",
			Usage:       "GitHub API base URL",
			Category:    "GitHub",
			Value:       githubapi.DefaultBaseURL,
			Destination: &x.apiURL,
			Sources:     cli.EnvVars("GHCRAWL_API_URL"),
		},
		&cli.StringFlag{
			Name:        "user-agent",
			Usage:       "User-Agent header of API requests",
			Category:    "GitHub",
			Value:       githubapi.DefaultUserAgent,
			Destination: &x.userAgent,
			Sources:     cli.EnvVars("GHCRAWL_USER_AGENT"),
		},
		&cli.FloatFlag{
			Name:        "rate-limit",
			Usage:       "Max API requests per second, 0 for no throttling",
			Category:    "GitHub",
			Destination: &x.rateLimit,
			Sources:     cli.EnvVars("GHCRAWL_RATE_LIMIT"),
		},
	}
}

// Token returns the token given by flag, or else read from the token file.
func (x *GitHub) Token() (types.GitHubToken, error) {
	if x.token != "" {
		return x.token, nil
	}
	if x.tokenFile == "" {
		return "", nil
	}

	raw, err := os.ReadFile(filepath.Clean(x.tokenFile))
	if err != nil {
		return "", goerr.Wrap(err, "failed to read GitHub token file", goerr.V("path", x.tokenFile))
	}
	return types.GitHubToken(strings.TrimSpace(string(raw))), nil
}

// NewClient builds an API client authenticated as the GitHub App when an app ID is set,
// or with the token otherwise.
func (x *GitHub) NewClient(ctx context.Context) (*githubapi.Client, error) {
	options := []githubapi.Option{
		githubapi.WithBaseURL(x.apiURL),
		githubapi.WithUserAgent(x.userAgent),
		githubapi.WithRateLimit(x.rateLimit),
		githubapi.WithLogger(logging.From(ctx)),
	}

	if x.appID != 0 {
		httpClient, err := x.appHTTPClient(ctx)
		if err != nil {
			return nil, err
		}
		return githubapi.New("", append(options, githubapi.WithHTTPClient(httpClient))...), nil
	}

	token, err := x.Token()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "GitHub token or GitHub App is required")
	}

	return githubapi.New(token, options...), nil
}

func (x *GitHub) appHTTPClient(ctx context.Context) (*http.Client, error) {
	var appOptions []ghapp.Option
	if x.apiURL != "" && x.apiURL != githubapi.DefaultBaseURL {
		appOptions = append(appOptions, ghapp.WithBaseURL(x.apiURL))
	}

	app, err := ghapp.New(x.appID, x.privateKey, appOptions...)
	if err != nil {
		return nil, err
	}

	installID := x.installID
	if installID == 0 {
		if x.appOwner == "" {
			return nil, goerr.Wrap(types.ErrInvalidOption, "GitHub App installation ID or owner is required")
		}
		id, err := app.GetInstallationIDForOwner(ctx, x.appOwner)
		if err != nil {
			return nil, err
		}
		installID = id
	}

	logging.From(ctx).Debug("Use GitHub App installation",
		slog.Any("app", app),
		slog.Any("installID", installID),
	)

	return app.HTTPClient(installID)
}

func (x GitHub) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("token.len", len(x.token)),
		slog.String("tokenFile", x.tokenFile),
		slog.Int64("appID", int64(x.appID)),
		slog.Int64("installID", int64(x.installID)),
		slog.String("appOwner", x.appOwner),
		slog.Int("privateKey.len", len(x.privateKey)),
		slog.String("apiURL", x.apiURL),
		slog.String("userAgent", x.userAgent),
		slog.Float64("rateLimit", x.rateLimit),
	)
}
