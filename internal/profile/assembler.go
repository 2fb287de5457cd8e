package profile

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/r3dd404/crushhub/internal/activity"
	"github.com/r3dd404/crushhub/internal/github"
)

// Assembler builds Profiles by combining the GitHub data source and the
// activity estimator.
type Assembler struct {
	github   *github.Client
	activity *activity.Estimator
	logger   *zap.Logger

	now func() time.Time
}

// NewAssembler wires an Assembler from its data sources.
func NewAssembler(gh *github.Client, est *activity.Estimator, logger *zap.Logger) *Assembler {
	return &Assembler{
		github:   gh,
		activity: est,
		logger:   logger,
		now:      time.Now,
	}
}

// Assemble validates the raw identifier and builds a Profile for it. The
// only possible error is ErrInvalidHandle: every upstream failure past
// validation is absorbed into a per-field fallback.
func (a *Assembler) Assemble(ctx context.Context, raw string) (*Profile, error) {
	handle, err := NormalizeHandle(raw)
	if err != nil {
		return nil, err
	}

	return a.assemble(ctx, handle), nil
}

// AssemblePair builds two Profiles concurrently. Both identifiers are
// validated before any fetch begins; after that each assembly runs its own
// fallback chain and cannot taint the other.
func (a *Assembler) AssemblePair(ctx context.Context, rawA, rawB string) (*Profile, *Profile, error) {
	handleA, err := NormalizeHandle(rawA)
	if err != nil {
		return nil, nil, err
	}

	handleB, err := NormalizeHandle(rawB)
	if err != nil {
		return nil, nil, err
	}

	var (
		wg       sync.WaitGroup
		profileA *Profile
		profileB *Profile
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		profileA = a.assemble(ctx, handleA)
	}()
	go func() {
		defer wg.Done()
		profileB = a.assemble(ctx, handleB)
	}()
	wg.Wait()

	return profileA, profileB, nil
}

// assemble runs the three independent fetches concurrently and composes
// the results.
func (a *Assembler) assemble(ctx context.Context, handle string) *Profile {
	var (
		wg     sync.WaitGroup
		user   *github.User
		repos  []github.Repo
		report activity.Report
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		user = a.github.User(ctx, handle)
	}()
	go func() {
		defer wg.Done()
		repos = a.github.Repos(ctx, handle)
	}()
	go func() {
		defer wg.Done()
		report = a.activity.Estimate(ctx, handle)
	}()
	wg.Wait()

	p := &Profile{
		Handle:                handle,
		DisplayName:           user.Name,
		AvatarURL:             user.AvatarURL,
		Bio:                   user.Bio,
		PublicRepos:           clampNonNegative(user.PublicRepos),
		Followers:             clampNonNegative(user.Followers),
		TopLanguages:          TopLanguages(repos),
		DaysSinceLastPush:     daysSincePush(repos, a.now()),
		ContributionsThisYear: clampNonNegative(report.Contributions),
		LongestStreak:         clampNonNegative(report.LongestStreak),
		CurrentStreak:         clampNonNegative(report.CurrentStreak),
	}

	if p.DisplayName == "" {
		p.DisplayName = handle
	}
	if p.AvatarURL == "" {
		p.AvatarURL = a.github.SiteURL + "/" + handle + ".png"
	}

	a.logger.Debug("assembled profile",
		zap.String("handle", handle),
		zap.Int("public_repos", p.PublicRepos),
		zap.Int("followers", p.Followers),
		zap.Strings("top_languages", p.TopLanguages),
		zap.Int("contributions", p.ContributionsThisYear),
	)

	return p
}

// daysSincePush derives whole days since the most recently updated
// repository, or nil when no repository carries a usable timestamp.
func daysSincePush(repos []github.Repo, now time.Time) *int {
	var latest time.Time
	for _, repo := range repos {
		if repo.UpdatedAt.After(latest) {
			latest = repo.UpdatedAt
		}
	}

	if latest.IsZero() {
		return nil
	}

	days := int(now.Sub(latest).Hours() / 24)
	if days < 0 {
		days = 0
	}

	return &days
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
