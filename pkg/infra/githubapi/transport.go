package githubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ghcrawl/pkg/domain/types"
	"github.com/secmon-lab/ghcrawl/pkg/utils/logging"
	"github.com/secmon-lab/ghcrawl/pkg/utils/safe"
)

const (
	// HeaderRateReset carries the epoch second at which the primary quota resets.
	HeaderRateReset = "X-RateLimit-Reset"

	// SecondaryLimitWait is the cool-down applied on secondary (abuse) limits, which
	// come without a reset time.
	SecondaryLimitWait = 60 * time.Second

	// ResetMargin is added to the primary reset wait.
	ResetMargin = time.Second
)

var secondaryLimitMarkers = [][]byte{
	[]byte("secondary"),
	[]byte("abuse"),
}

// Param is one query parameter. Value must already be escaped.
type Param struct {
	Key   string
	Value string
}

type outcome int

const (
	outcomeSuccess outcome = iota
	outcomePrimaryLimited
	outcomeSecondaryLimited
)

func (x outcome) String() string {
	switch x {
	case outcomeSuccess:
		return "success"
	case outcomePrimaryLimited:
		return "primary_limited"
	case outcomeSecondaryLimited:
		return "secondary_limited"
	default:
		return "unknown"
	}
}

type attemptResult struct {
	outcome outcome
	status  int
	body    []byte
	wait    time.Duration
}

func (x *Client) buildURL(path string, params []Param) string {
	var b strings.Builder
	b.WriteString(x.baseURL)
	b.WriteString(strings.TrimPrefix(path, "/"))
	for i, p := range params {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(p.Value)
	}
	return b.String()
}

// attempt issues one GET request and classifies the response. A returned error is fatal.
func (x *Client) attempt(ctx context.Context, url string) (*attemptResult, error) {
	if x.limiter != nil {
		if err := x.limiter.Wait(ctx); err != nil {
			return nil, goerr.Wrap(err, "failed to wait for throttle", goerr.V("url", url))
		}
	}

	x.log(ctx).Info("GET", slog.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request", goerr.V("url", url))
	}
	req.Header.Set("User-Agent", x.userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to send request", goerr.V("url", url))
	}
	defer safe.Close(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read response body", goerr.V("url", url), goerr.V("status", resp.StatusCode))
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &attemptResult{outcome: outcomeSuccess, status: resp.StatusCode, body: body}, nil
	}

	for _, marker := range secondaryLimitMarkers {
		if bytes.Contains(body, marker) {
			return &attemptResult{
				outcome: outcomeSecondaryLimited,
				status:  resp.StatusCode,
				wait:    SecondaryLimitWait,
			}, nil
		}
	}

	return &attemptResult{
		outcome: outcomePrimaryLimited,
		status:  resp.StatusCode,
		wait:    primaryLimitWait(logging.CtxTime(ctx), resp.Header),
	}, nil
}

// primaryLimitWait computes the wait until the quota resets. A missing or broken header
// is treated as a reset at epoch 1, i.e. already passed.
func primaryLimitWait(now time.Time, header http.Header) time.Duration {
	reset := int64(1)
	if v, err := strconv.ParseInt(header.Get(HeaderRateReset), 10, 64); err == nil {
		reset = v
	}

	seconds := max(reset-now.Unix(), 0)
	return time.Duration(seconds)*time.Second + ResetMargin
}

// fetchJSON retries GET path?params until it succeeds and decodes the body into T.
// Rate limits are never surfaced; there is no retry ceiling because GitHub always lifts
// them eventually. Only a broken connection, an undecodable body or ctx cancellation
// end the loop with an error.
func fetchJSON[T any](ctx context.Context, x *Client, path string, params []Param) (*T, error) {
	url := x.buildURL(path, params)

	for {
		result, err := x.attempt(ctx, url)
		if err != nil {
			return nil, err
		}

		switch result.outcome {
		case outcomeSuccess:
			var v T
			if err := json.Unmarshal(result.body, &v); err != nil {
				return nil, goerr.Wrap(types.ErrInvalidResponse, "failed to decode response",
					goerr.V("url", url),
					goerr.V("error", err.Error()),
				)
			}
			return &v, nil

		case outcomePrimaryLimited:
			x.log(ctx).Info("Rate limit exceeded",
				slog.String("url", url),
				slog.Int("status", result.status),
				slog.Float64("wait_seconds", result.wait.Seconds()),
			)

		case outcomeSecondaryLimited:
			x.log(ctx).Info("Secondary limit exceeded",
				slog.String("url", url),
				slog.Int("status", result.status),
				slog.Float64("wait_seconds", result.wait.Seconds()),
			)
		}

		if err := x.sleep(ctx, result.wait); err != nil {
			return nil, goerr.Wrap(err, "interrupted while waiting for rate limit", goerr.V("url", url))
		}
	}
}
