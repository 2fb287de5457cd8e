package activity

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// matcher extracts a contribution count from the profile document. The
// document's structure is not contractually stable, so several independent
// strategies are tried in order.
type matcher interface {
	Name() string
	Extract(doc string) (int, bool)
}

var matchers = []matcher{
	headingMatcher{},
	patternMatcher{
		name:    "yearly_contributions",
		pattern: regexp.MustCompile(`(?i)(\d+(?:,\d+)*)\s+contributions?\s+in\s+(?:the\s+last\s+year|\d{4})`),
	},
	patternMatcher{
		name:    "any_contributions",
		pattern: regexp.MustCompile(`(?i)(\d+(?:,\d+)*)\s+contributions?`),
	},
}

// bestContributionCount applies every matcher in order and keeps the
// highest count found, reporting which strategy produced it. A later
// candidate only replaces an earlier one when it is strictly greater.
func bestContributionCount(doc string) (int, string, bool) {
	best := 0
	winner := ""
	found := false

	for _, m := range matchers {
		n, ok := m.Extract(doc)
		if !ok || n < 0 {
			continue
		}
		if !found || n > best {
			best = n
			winner = m.Name()
			found = true
		}
	}

	return best, winner, found
}

// headingMatcher reads the contribution heading GitHub renders above the
// contribution calendar, e.g. "1,337 contributions in the last year".
type headingMatcher struct{}

var headingCount = regexp.MustCompile(`\d+(?:,\d+)*`)

func (headingMatcher) Name() string { return "calendar_heading" }

func (headingMatcher) Extract(doc string) (int, bool) {
	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return 0, false
	}

	best := 0
	found := false

	parsed.Find("h2").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if !strings.Contains(strings.ToLower(text), "contribution") {
			return
		}

		n, ok := parseCount(headingCount.FindString(text))
		if ok && (!found || n > best) {
			best = n
			found = true
		}
	})

	return best, found
}

// patternMatcher scans the raw document with a regular expression.
type patternMatcher struct {
	name    string
	pattern *regexp.Regexp
}

func (m patternMatcher) Name() string { return m.name }

func (m patternMatcher) Extract(doc string) (int, bool) {
	match := m.pattern.FindStringSubmatch(doc)
	if len(match) < 2 {
		return 0, false
	}

	return parseCount(match[1])
}

func parseCount(raw string) (int, bool) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		return 0, false
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}

	return n, true
}
