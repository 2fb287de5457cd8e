// Package github fetches public GitHub profile and repository data.
//
// Every lookup degrades instead of failing: an unreachable or unknown
// account yields deterministic placeholder attributes and repository
// failures yield an empty list, so callers never have to handle a hard
// error from this package.
package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"go.uber.org/zap"
)

const (
	apiURL  = "https://api.github.com"
	siteURL = "https://github.com"

	userAgent  = "crushhub/1.0"
	acceptJSON = "application/vnd.github.v3+json"

	// maxBodySize bounds how much of any upstream response is read.
	maxBodySize = 1 << 20

	requestAttempts = 2
	retryDelay      = 200 * time.Millisecond
	retryJitter     = 100 * time.Millisecond
)

// Client talks to the GitHub REST API.
type Client struct {
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
	SiteURL    string
}

// New creates a GitHub client with a bounded request timeout.
func New(logger *zap.Logger) *Client {
	return &Client{
		logger: logger,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		UserAgent: userAgent,
		APIURL:    apiURL,
		SiteURL:   siteURL,
	}
}

// HTTPError reports a non-2xx upstream response.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// getJSON fetches the URL and returns the raw body, retrying transient
// failures once before giving up.
func (c *Client) getJSON(ctx context.Context, url string) ([]byte, error) {
	return retry.DoWithData(
		func() ([]byte, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
			if err != nil {
				return nil, err
			}
			req.Header.Set("Accept", acceptJSON)
			req.Header.Set("User-Agent", c.UserAgent)

			resp, err := c.HTTPClient.Do(req)
			if err != nil {
				return nil, err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return nil, &HTTPError{StatusCode: resp.StatusCode, URL: url}
			}

			return io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		},
		retry.Context(ctx),
		retry.Attempts(requestAttempts),
		retry.Delay(retryDelay),
		retry.MaxJitter(retryJitter),
		retry.RetryIf(isRetryableError),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("retrying github request",
				zap.Uint("attempt", n+1),
				zap.String("url", url),
				zap.Error(err),
			)
		}),
	)
}

// isRetryableError returns true for transient errors worth a second attempt.
func isRetryableError(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}
	// Network errors and timeouts are retryable.
	return true
}
