// Package activity estimates how active a GitHub account has been this
// year by scraping the public profile page. The page is not an API and may
// change shape at any time, so parsing is best-effort and every failure
// path lands on a deterministic hash-seeded estimate.
package activity

import (
	"context"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/r3dd404/crushhub/internal/github"
)

const (
	profileURL = "https://github.com"

	// A browser User-Agent: the profile page serves the contribution
	// calendar markup to browsers only.
	browserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:146.0) Gecko/20100101 Firefox/146.0"

	maxBodySize = 1 << 20
)

// Report describes recent contribution volume and derived streaks.
type Report struct {
	Contributions int `json:"contributions"`
	LongestStreak int `json:"longest_streak"`
	CurrentStreak int `json:"current_streak"`
}

// Estimator scrapes contribution activity from public profile pages.
type Estimator struct {
	logger     *zap.Logger
	HTTPClient *http.Client
	BaseURL    string
	UserAgent  string
}

// NewEstimator creates an Estimator with a bounded request timeout.
func NewEstimator(logger *zap.Logger) *Estimator {
	return &Estimator{
		logger: logger,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		BaseURL:   profileURL,
		UserAgent: browserAgent,
	}
}

// Estimate returns the contribution report for a login. It never fails:
// when the page cannot be fetched or no matcher finds a count, the report
// is derived deterministically from the login hash.
func (e *Estimator) Estimate(ctx context.Context, login string) Report {
	doc, err := e.fetch(ctx, login)
	if err != nil {
		e.logger.Debug("profile page fetch failed, estimating activity",
			zap.String("login", login),
			zap.Error(err),
		)
		return fallbackReport(login)
	}

	count, strategy, ok := bestContributionCount(doc)
	if !ok {
		e.logger.Debug("no contribution count found, estimating activity",
			zap.String("login", login),
		)
		return fallbackReport(login)
	}

	e.logger.Debug("parsed contribution count",
		zap.String("login", login),
		zap.String("strategy", strategy),
		zap.Int("contributions", count),
	)

	return Report{
		Contributions: count,
		LongestStreak: count / 10,
		CurrentStreak: count / 20,
	}
}

func (e *Estimator) fetch(ctx context.Context, login string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.BaseURL+"/"+login, http.NoBody)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", e.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &github.HTTPError{StatusCode: resp.StatusCode, URL: req.URL.String()}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// fallbackReport mirrors the placeholder attribute derivation: same hash,
// stable output for the same login.
func fallbackReport(login string) Report {
	contributions := 50 + int(github.Seed(login)%300)

	return Report{
		Contributions: contributions,
		LongestStreak: contributions / 15,
		CurrentStreak: contributions / 25,
	}
}
