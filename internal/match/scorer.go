// Package match turns two assembled profiles into a compatibility score
// and composes the final result record.
package match

import (
	"math"
	"math/rand"
	"strings"

	"github.com/r3dd404/crushhub/internal/profile"
)

const (
	baseScore = 50

	languageWeight = 30
	perLanguage    = 10
	followerWeight = 20
	repoWeight     = 15
	bioBonus       = 10
	activityBonus  = 10
	noiseWeight    = 15

	minScore = 1
	maxScore = 100

	selfScoreFloor = 80
	selfScoreSpan  = 20
)

// Scorer computes compatibility scores. Apart from the noise term it is a
// pure function of the two profiles.
type Scorer struct {
	// noise returns a uniform value in [0,1). Injected so tests can pin
	// the one non-deterministic input.
	noise func() float64
}

// NewScorer creates a Scorer backed by math/rand.
func NewScorer() *Scorer {
	return &Scorer{noise: rand.Float64}
}

// Breakdown exposes the weighted sub-scores for debug logging.
type Breakdown struct {
	Language float64 `json:"language"`
	Follower float64 `json:"follower"`
	Repo     float64 `json:"repo"`
	Bio      float64 `json:"bio"`
	Activity float64 `json:"activity"`
	Noise    float64 `json:"noise"`
}

// Outcome is the scorer's verdict on a pairing.
type Outcome struct {
	Score           int
	SharedLanguages []string
	SelfMatch       bool
	Breakdown       Breakdown
}

// Score compares two profiles. Identical handles (case-insensitive) skip
// the heuristic entirely: self-comparison always reads as a strong match,
// uniform in [80,100).
func (s *Scorer) Score(a, b *profile.Profile) Outcome {
	shared := sharedLanguages(a.TopLanguages, b.TopLanguages)

	if strings.EqualFold(a.Handle, b.Handle) {
		return Outcome{
			Score:           selfScoreFloor + int(s.noise()*selfScoreSpan),
			SharedLanguages: shared,
			SelfMatch:       true,
		}
	}

	breakdown := Breakdown{
		Language: math.Min(languageWeight, float64(len(shared)*perLanguage)),
		Follower: similarity(a.Followers, b.Followers, followerWeight),
		Repo:     similarity(a.PublicRepos, b.PublicRepos, repoWeight),
		Noise:    s.noise() * noiseWeight,
	}

	if a.HasBio() == b.HasBio() {
		breakdown.Bio = bioBonus
	}

	if a.PublicRepos > 0 && b.PublicRepos > 0 {
		breakdown.Activity = activityBonus
	}

	raw := baseScore +
		breakdown.Language +
		breakdown.Follower +
		breakdown.Repo +
		breakdown.Bio +
		breakdown.Activity +
		breakdown.Noise

	return Outcome{
		Score:           int(math.Round(clamp(raw, minScore, maxScore))),
		SharedLanguages: shared,
		Breakdown:       breakdown,
	}
}

// sharedLanguages intersects the two top-language lists, preserving the
// first profile's order.
func sharedLanguages(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, lang := range b {
		inB[lang] = true
	}

	shared := make([]string, 0, len(a))
	for _, lang := range a {
		if inB[lang] {
			shared = append(shared, lang)
		}
	}

	return shared
}

// similarity scores how close two counts are, scaled by weight. Two
// accounts with zero each are a perfect match, not a division by zero.
func similarity(a, b int, weight float64) float64 {
	if a == 0 && b == 0 {
		return weight
	}

	max := a
	if b > max {
		max = b
	}

	diff := a - b
	if diff < 0 {
		diff = -diff
	}

	return weight * math.Max(0, 1-float64(diff)/float64(max))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
