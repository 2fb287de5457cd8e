package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/r3dd404/crushhub/internal/activity"
	"github.com/r3dd404/crushhub/internal/github"
)

// newTestSources points a client and an estimator at an httptest handler.
func newTestSources(t *testing.T, handler http.Handler) (*github.Client, *activity.Estimator, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	gh := github.New(zap.NewNop())
	gh.APIURL = server.URL
	gh.SiteURL = server.URL

	est := activity.NewEstimator(zap.NewNop())
	est.BaseURL = server.URL

	return gh, est, server
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encoding response: %v", err)
	}
}

func TestAssembleComposesAllSources(t *testing.T) {
	updated := time.Now().Add(-49 * time.Hour).UTC().Format(time.RFC3339)

	mux := http.NewServeMux()
	mux.HandleFunc("/users/alice", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"login":        "alice",
			"name":         "Alice Smith",
			"avatar_url":   "https://example.test/alice.png",
			"bio":          "likes compilers",
			"public_repos": 12,
			"followers":    34,
		})
	})
	mux.HandleFunc("/users/alice/repos", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{
			{"name": "one", "language": "Go", "updated_at": updated},
			{"name": "two", "language": "Go", "updated_at": updated},
			{"name": "three", "language": "Rust", "updated_at": updated},
		})
	})
	mux.HandleFunc("/alice", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><h2>1,234 contributions in the last year</h2></html>`)
	})

	gh, est, _ := newTestSources(t, mux)
	assembler := NewAssembler(gh, est, zap.NewNop())

	p, err := assembler.Assemble(context.Background(), " alice ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Handle != "alice" || p.DisplayName != "Alice Smith" {
		t.Fatalf("unexpected identity: %+v", p)
	}

	if p.PublicRepos != 12 || p.Followers != 34 {
		t.Fatalf("unexpected counts: %+v", p)
	}

	if diff := cmp.Diff([]string{"Go", "Rust"}, p.TopLanguages); diff != "" {
		t.Fatalf("unexpected languages (-want +got):\n%s", diff)
	}

	if p.DaysSinceLastPush == nil || *p.DaysSinceLastPush != 2 {
		t.Fatalf("expected 2 days since last push, got %v", p.DaysSinceLastPush)
	}

	if p.ContributionsThisYear != 1234 {
		t.Fatalf("expected scraped contributions, got %d", p.ContributionsThisYear)
	}

	if p.LongestStreak != 123 || p.CurrentStreak != 61 {
		t.Fatalf("unexpected streaks: %+v", p)
	}
}

func TestAssembleDegradesPerField(t *testing.T) {
	// Core attributes resolve, everything else is unreachable.
	mux := http.NewServeMux()
	mux.HandleFunc("/users/bob", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"login":        "bob",
			"public_repos": -3,
			"followers":    -1,
		})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	gh, est, server := newTestSources(t, mux)
	assembler := NewAssembler(gh, est, zap.NewNop())

	p, err := assembler.Assemble(context.Background(), "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Name and avatar fall back to handle-derived defaults.
	if p.DisplayName != "bob" {
		t.Fatalf("expected display name fallback, got %q", p.DisplayName)
	}

	if p.AvatarURL != server.URL+"/bob.png" {
		t.Fatalf("unexpected avatar fallback: %q", p.AvatarURL)
	}

	// Negative upstream counts are clamped.
	if p.PublicRepos != 0 || p.Followers != 0 {
		t.Fatalf("expected clamped counts, got %+v", p)
	}

	// Repository-derived fields degrade to their empty defaults.
	if len(p.TopLanguages) != 0 {
		t.Fatalf("expected no languages, got %v", p.TopLanguages)
	}

	if p.DaysSinceLastPush != nil {
		t.Fatalf("expected unknown last push, got %v", *p.DaysSinceLastPush)
	}

	// Activity lands on the deterministic estimate.
	expected := 50 + int(github.Seed("bob")%300)
	if p.ContributionsThisYear != expected {
		t.Fatalf("expected estimated contributions %d, got %d", expected, p.ContributionsThisYear)
	}
}

func TestAssemblePairIsolatesFailures(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/gooduser", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"login":        "gooduser",
			"name":         "Good User",
			"bio":          "hello",
			"public_repos": 5,
			"followers":    7,
		})
	})
	mux.HandleFunc("/users/gooduser/repos", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{{"name": "repo", "language": "Go"}})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	gh, est, _ := newTestSources(t, mux)
	assembler := NewAssembler(gh, est, zap.NewNop())

	a, b, err := assembler.AssemblePair(context.Background(), "gooduser", "ghostuser")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The reachable side is untouched by the other side's fallbacks.
	if a.DisplayName != "Good User" || a.PublicRepos != 5 {
		t.Fatalf("reachable profile corrupted: %+v", a)
	}

	// The unreachable side carries its deterministic placeholder.
	seed := github.Seed("ghostuser")
	if b.PublicRepos != 15+int(seed%50) || b.Followers != 10+int(seed%100) {
		t.Fatalf("unexpected placeholder counts: %+v", b)
	}

	if b.Bio == "" {
		t.Fatalf("expected placeholder bio")
	}
}

func TestAssemblePairValidatesBeforeFetching(t *testing.T) {
	requests := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.NotFound(w, r)
	})

	gh, est, _ := newTestSources(t, handler)
	assembler := NewAssembler(gh, est, zap.NewNop())

	_, _, err := assembler.AssemblePair(context.Background(), "okname", "bad name!")
	if err == nil {
		t.Fatal("expected validation error")
	}

	if requests != 0 {
		t.Fatalf("expected no fetches before validation, got %d", requests)
	}
}

func TestDaysSincePush(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	if got := daysSincePush(nil, now); got != nil {
		t.Fatalf("expected nil for no repositories, got %v", *got)
	}

	zeroStamps := []github.Repo{{Name: "a"}, {Name: "b"}}
	if got := daysSincePush(zeroStamps, now); got != nil {
		t.Fatalf("expected nil for zero timestamps, got %v", *got)
	}

	repos := []github.Repo{
		{UpdatedAt: now.Add(-100 * 24 * time.Hour)},
		{UpdatedAt: now.Add(-36 * time.Hour)},
	}
	if got := daysSincePush(repos, now); got == nil || *got != 1 {
		t.Fatalf("expected 1 day, got %v", got)
	}

	future := []github.Repo{{UpdatedAt: now.Add(2 * time.Hour)}}
	if got := daysSincePush(future, now); got == nil || *got != 0 {
		t.Fatalf("expected clamp to 0 for future timestamps, got %v", got)
	}
}

func TestAssembleRejectsInvalidHandle(t *testing.T) {
	gh, est, _ := newTestSources(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	assembler := NewAssembler(gh, est, zap.NewNop())

	_, err := assembler.Assemble(context.Background(), "no spaces allowed")
	if err == nil || !strings.Contains(err.Error(), "invalid github handle") {
		t.Fatalf("expected invalid handle error, got %v", err)
	}
}
