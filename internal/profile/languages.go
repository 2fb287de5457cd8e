package profile

import (
	"sort"
	"strings"

	"github.com/r3dd404/crushhub/internal/github"
)

const maxTopLanguages = 3

// TopLanguages reduces a repository list to the most frequent primary
// languages, at most three, ordered by descending count. Ties keep
// first-encounter order; repositories without a language are ignored.
func TopLanguages(repos []github.Repo) []string {
	type langCount struct {
		name  string
		count int
	}

	index := make(map[string]int)
	counts := make([]langCount, 0)

	for _, repo := range repos {
		lang := strings.TrimSpace(repo.Language)
		if lang == "" {
			continue
		}

		if i, ok := index[lang]; ok {
			counts[i].count++
			continue
		}

		index[lang] = len(counts)
		counts = append(counts, langCount{name: lang, count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})

	if len(counts) > maxTopLanguages {
		counts = counts[:maxTopLanguages]
	}

	top := make([]string, 0, len(counts))
	for _, lc := range counts {
		top = append(top, lc.name)
	}

	return top
}
