// Package profile assembles normalized per-account records from the
// GitHub data source and the activity estimator.
package profile

// Profile is the normalized record describing one account's public
// attributes and derived signals. It is assembled fresh per comparison and
// discarded with the result; nothing is persisted.
type Profile struct {
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	Bio         string `json:"bio,omitempty"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`

	// TopLanguages holds at most three languages, most frequent first.
	TopLanguages []string `json:"top_languages"`

	// DaysSinceLastPush is nil when the account has no repositories or
	// no usable timestamps.
	DaysSinceLastPush *int `json:"days_since_last_push,omitempty"`

	ContributionsThisYear int `json:"contributions_this_year"`
	LongestStreak         int `json:"longest_streak"`
	CurrentStreak         int `json:"current_streak"`
}

// HasBio reports whether the profile carries a non-empty bio. Symmetry of
// this signal between two profiles feeds the scoring.
func (p *Profile) HasBio() bool {
	return p != nil && p.Bio != ""
}
