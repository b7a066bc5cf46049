package ghapp

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ghcrawl/pkg/domain/types"
	"github.com/secmon-lab/ghcrawl/pkg/utils/logging"
)

// Client authenticates as a GitHub App. Search requests made through an installation
// client count against the installation's quota instead of a user's.
type Client struct {
	appID   types.GitHubAppID
	pem     types.GitHubAppPrivateKey
	baseURL string
}

type Option func(*Client)

// WithBaseURL sets the API origin for GitHub Enterprise Server.
func WithBaseURL(baseURL string) Option {
	return func(x *Client) {
		x.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

func New(appID types.GitHubAppID, pem types.GitHubAppPrivateKey, options ...Option) (*Client, error) {
	if appID == 0 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "appID is empty")
	}
	if pem == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "pem is empty")
	}

	client := &Client{
		appID: appID,
		pem:   pem,
	}
	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

func (x *Client) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("appID", x.appID),
		slog.Any("privateKey", x.pem),
		slog.String("baseURL", x.baseURL),
	)
}

// HTTPClient returns a client that authorizes every request with an installation token.
// Tokens are refreshed by the transport before they expire.
func (x *Client) HTTPClient(installID types.GitHubAppInstallID) (*http.Client, error) {
	itr, err := ghinstallation.New(http.DefaultTransport, int64(x.appID), int64(installID), []byte(x.pem))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create installation transport",
			goerr.V("appID", x.appID),
			goerr.V("installID", installID),
		)
	}
	if x.baseURL != "" {
		itr.BaseURL = x.baseURL
	}

	return &http.Client{Transport: itr}, nil
}

func (x *Client) buildAppClient() (*github.Client, error) {
	itr, err := ghinstallation.NewAppsTransport(http.DefaultTransport, int64(x.appID), []byte(x.pem))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create app transport")
	}

	httpClient := &http.Client{Transport: itr}
	if x.baseURL == "" {
		return github.NewClient(httpClient), nil
	}

	itr.BaseURL = x.baseURL
	client, err := github.NewEnterpriseClient(x.baseURL, x.baseURL, httpClient)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create enterprise client", goerr.V("baseURL", x.baseURL))
	}
	return client, nil
}

// GetInstallationIDForOwner looks up the installation of the app on an organization or,
// failing that, on a user account.
func (x *Client) GetInstallationIDForOwner(ctx context.Context, owner string) (types.GitHubAppInstallID, error) {
	client, err := x.buildAppClient()
	if err != nil {
		return 0, err
	}

	installation, resp, orgErr := client.Apps.FindOrganizationInstallation(ctx, owner)
	if orgErr == nil && installation != nil {
		logging.From(ctx).Info("Found organization installation",
			slog.String("owner", owner),
			slog.Int64("installID", installation.GetID()),
		)
		return types.GitHubAppInstallID(installation.GetID()), nil
	}

	if resp != nil && resp.StatusCode == http.StatusNotFound {
		installation, _, userErr := client.Apps.FindUserInstallation(ctx, owner)
		if userErr != nil {
			return 0, goerr.Wrap(userErr, "failed to find user installation for owner",
				goerr.V("owner", owner),
			)
		}

		if installation != nil {
			logging.From(ctx).Info("Found user installation",
				slog.String("owner", owner),
				slog.Int64("installID", installation.GetID()),
			)
			return types.GitHubAppInstallID(installation.GetID()), nil
		}
	}

	if orgErr != nil {
		return 0, goerr.Wrap(orgErr, "failed to find organization installation for owner",
			goerr.V("owner", owner),
		)
	}

	return 0, goerr.Wrap(types.ErrInvalidResponse, "installation not found for owner",
		goerr.V("owner", owner),
	)
}
