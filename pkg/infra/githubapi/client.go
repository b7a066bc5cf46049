package githubapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/secmon-lab/ghcrawl/pkg/domain/interfaces"
	"github.com/secmon-lab/ghcrawl/pkg/domain/types"
	"github.com/secmon-lab/ghcrawl/pkg/utils/logging"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://api.github.com/"
	DefaultUserAgent = "ghcrawl"
)

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Client issues authenticated GET requests to the GitHub REST API and retries them until
// rate limits are lifted. A Client holds no per-query state and may be shared by
// independent cursors.
type Client struct {
	baseURL    string
	userAgent  string
	token      types.GitHubToken
	httpClient *http.Client
	logger     *slog.Logger
	sleep      SleepFunc
	limiter    *rate.Limiter
}

var _ interfaces.GitHubAPI = (*Client)(nil)

type Option func(*Client)

// WithBaseURL replaces the API origin, e.g. for GitHub Enterprise or a test server.
func WithBaseURL(baseURL string) Option {
	return func(x *Client) {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		x.baseURL = baseURL
	}
}

func WithUserAgent(userAgent string) Option {
	return func(x *Client) {
		x.userAgent = userAgent
	}
}

// WithHTTPClient sets the underlying HTTP client. When the client already authenticates
// requests (e.g. a GitHub App installation transport), pass an empty token to New.
func WithHTTPClient(client *http.Client) Option {
	return func(x *Client) {
		x.httpClient = client
	}
}

// WithLogger sets the logger receiving one line per attempt. Without it the logger is
// taken from the request context.
func WithLogger(logger *slog.Logger) Option {
	return func(x *Client) {
		x.logger = logger
	}
}

func WithSleep(sleep SleepFunc) Option {
	return func(x *Client) {
		x.sleep = sleep
	}
}

// WithRateLimit throttles attempts to rps requests per second. Zero disables throttling.
func WithRateLimit(rps float64) Option {
	return func(x *Client) {
		if rps > 0 {
			x.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		} else {
			x.limiter = nil
		}
	}
}

func New(token types.GitHubToken, options ...Option) *Client {
	client := &Client{
		baseURL:    DefaultBaseURL,
		userAgent:  DefaultUserAgent,
		token:      token,
		httpClient: http.DefaultClient,
		sleep:      sleepContext,
	}

	for _, opt := range options {
		opt(client)
	}

	if token != "" {
		base := client.httpClient
		client.httpClient = &http.Client{
			Transport: &oauth2.Transport{
				Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: string(token)}),
				Base:   base.Transport,
			},
			Timeout:       base.Timeout,
			CheckRedirect: base.CheckRedirect,
			Jar:           base.Jar,
		}
	}

	return client
}

func (x *Client) log(ctx context.Context) *slog.Logger {
	if x.logger != nil {
		return x.logger
	}
	return logging.From(ctx)
}

func (x *Client) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("baseURL", x.baseURL),
		slog.String("userAgent", x.userAgent),
		slog.Any("token", x.token),
		slog.Bool("throttled", x.limiter != nil),
	)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
