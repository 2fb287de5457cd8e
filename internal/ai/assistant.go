package ai

import (
	"context"

	"github.com/r3dd404/crushhub/internal/profile"
)

// Commentary is the generated text for a pairing. Caption and Verdict are
// non-empty by contract: every provider failure is absorbed into a
// fallback pair before it reaches the caller.
type Commentary struct {
	Caption string `json:"caption"`
	Verdict string `json:"verdict"`

	// Score is the model's own informal estimate when it volunteered
	// one, clamped into range. Zero means none was provided. The scorer
	// output, not this value, decides the final score.
	Score int `json:"score,omitempty"`
}

// Captioner produces a humorous caption and verdict for two profiles. The
// precomputed score only sets the generation tone.
type Captioner interface {
	Caption(ctx context.Context, a, b *profile.Profile, score int, shared []string) *Commentary
}
