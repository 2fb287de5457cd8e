package github

import (
	"context"
	"encoding/json"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

const placeholderBio = "A mysterious developer"

// User holds the core attributes of a GitHub account.
type User struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	AvatarURL   string `json:"avatar_url"`
	Bio         string `json:"bio"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
}

// User fetches the core attributes for a login. A not-found account, a
// rate-limited API or any transport failure produces deterministic
// placeholder attributes instead of an error.
func (c *Client) User(ctx context.Context, login string) *User {
	body, err := c.getJSON(ctx, c.APIURL+"/users/"+login)
	if err != nil {
		c.logger.Warn("user fetch failed, synthesizing placeholder",
			zap.String("login", login),
			zap.Error(err),
		)
		return c.placeholderUser(login)
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		c.logger.Warn("user response unparseable, synthesizing placeholder",
			zap.String("login", login),
			zap.Error(err),
		)
		return c.placeholderUser(login)
	}

	if user.Login == "" {
		user.Login = login
	}

	return &user
}

// placeholderUser derives stable fake attributes from the login hash so
// that two lookups of the same unreachable account are identical.
func (c *Client) placeholderUser(login string) *User {
	seed := Seed(login)

	return &User{
		Login:       login,
		Name:        placeholderName(login),
		AvatarURL:   c.SiteURL + "/" + login + ".png",
		Bio:         placeholderBio,
		PublicRepos: 15 + int(seed%50),
		Followers:   10 + int(seed%100),
	}
}

// placeholderName turns a login into something resembling a display name:
// digits dropped, first letter capitalized.
func placeholderName(login string) string {
	var b strings.Builder
	for i, r := range login {
		if unicode.IsDigit(r) {
			continue
		}
		if i == 0 {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
	}

	if b.Len() == 0 {
		return login
	}

	return b.String()
}
