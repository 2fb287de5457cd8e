package profile

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/r3dd404/crushhub/internal/github"
)

func reposWithLanguages(langs ...string) []github.Repo {
	repos := make([]github.Repo, 0, len(langs))
	for _, lang := range langs {
		repos = append(repos, github.Repo{Language: lang})
	}
	return repos
}

func TestTopLanguages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		repos  []github.Repo
		expect []string
	}{
		{
			name:   "ordered by count with stable ties",
			repos:  reposWithLanguages("Go", "Rust", "Go", "Python", "Rust", "Go"),
			expect: []string{"Go", "Rust", "Python"},
		},
		{
			name:   "all ties keep encounter order",
			repos:  reposWithLanguages("C", "B", "A"),
			expect: []string{"C", "B", "A"},
		},
		{
			name:   "caps at three",
			repos:  reposWithLanguages("Go", "Go", "Rust", "Rust", "Python", "TypeScript"),
			expect: []string{"Go", "Rust", "Python"},
		},
		{
			name:   "blank languages ignored",
			repos:  reposWithLanguages("", "Go", "  ", "Go", ""),
			expect: []string{"Go"},
		},
		{
			name:   "no repositories",
			repos:  nil,
			expect: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := TopLanguages(tt.repos)
			if diff := cmp.Diff(tt.expect, got); diff != "" {
				t.Fatalf("unexpected top languages (-want +got):\n%s", diff)
			}
		})
	}
}
