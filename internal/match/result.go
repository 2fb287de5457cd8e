package match

import (
	"github.com/r3dd404/crushhub/internal/ai"
	"github.com/r3dd404/crushhub/internal/profile"
)

// Result is the final record handed to the presentation layer. It owns the
// two profiles; nothing else holds a reference once it is composed.
type Result struct {
	Score           int              `json:"score"`
	SharedLanguages []string         `json:"shared_languages"`
	Caption         string           `json:"caption"`
	Verdict         string           `json:"verdict"`
	ProfileA        *profile.Profile `json:"profile_a"`
	ProfileB        *profile.Profile `json:"profile_b"`
}

// Compose merges the scorer outcome with the generated commentary.
func Compose(outcome Outcome, commentary *ai.Commentary, a, b *profile.Profile) *Result {
	return &Result{
		Score:           outcome.Score,
		SharedLanguages: outcome.SharedLanguages,
		Caption:         commentary.Caption,
		Verdict:         commentary.Verdict,
		ProfileA:        a,
		ProfileB:        b,
	}
}
