package github

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Repo is the slice of repository metadata the pipeline cares about.
type Repo struct {
	Name      string    `json:"name"`
	Language  string    `json:"language"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repos fetches up to 100 most-recently-updated public repositories for a
// login. Any failure yields an empty list: language and recency signals
// degrade to their defaults instead of aborting profile assembly.
func (c *Client) Repos(ctx context.Context, login string) []Repo {
	url := c.APIURL + "/users/" + login + "/repos?per_page=100&sort=updated"

	body, err := c.getJSON(ctx, url)
	if err != nil {
		c.logger.Warn("repository list fetch failed, continuing without it",
			zap.String("login", login),
			zap.Error(err),
		)
		return nil
	}

	var repos []Repo
	if err := json.Unmarshal(body, &repos); err != nil {
		c.logger.Warn("repository list unparseable, continuing without it",
			zap.String("login", login),
			zap.Error(err),
		)
		return nil
	}

	return repos
}
