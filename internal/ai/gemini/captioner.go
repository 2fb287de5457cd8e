package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/r3dd404/crushhub/internal/ai"
	"github.com/r3dd404/crushhub/internal/profile"
	"github.com/r3dd404/crushhub/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

// The model's informal score, when present, is clamped into this range
// before being trusted.
const (
	aiScoreFloor = 20
	aiScoreCeil  = 100
)

// Caption/verdict pairs used whenever generation soft-fails. The caller
// never sees a caption error, only usable text.
var fallbackCommentary = []ai.Commentary{
	{
		Caption: "Even AI thinks your repos are meant to be together",
		Verdict: "Code chemistry confirmed",
	},
	{
		Caption: "Your GitHub profiles have better compatibility than most apps",
		Verdict: "Repository match made",
	},
	{
		Caption: "AI crashed trying to compute this much coding chemistry",
		Verdict: "System overload detected",
	},
}

// Self-comparison gets its own fixed lines and never calls the model.
var (
	selfCaptions = []string{
		"Looks like someone's got a serious case of self-love... at least your repos match perfectly!",
		"10/10 would recommend dating yourself, your bio already knows all your flaws",
		"Your biggest competition in love is... yourself. That's actually kinda deep.",
		"Plot twist: you ARE the crush. Self-love era activated!",
		"Found your perfect match... it's you. Your bio doesn't lie.",
	}
	selfVerdicts = []string{
		"Ultimate self-love",
		"You + You = Perfection",
		"Solo dev forever",
		"Self-shipped successfully",
	}
)

// Captioner asks Gemini for a roast caption and short verdict. All failure
// modes collapse into the fallback set.
type Captioner struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int

	// pick selects a random index in [0,n); injectable for tests.
	pick func(n int) int
}

// NewCaptioner wires a Captioner around a content generator.
func NewCaptioner(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Captioner {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Captioner{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
		pick:      rand.Intn,
	}
}

// Caption produces commentary for the pairing. The precomputed score only
// sets the tone of the prompt. Caption and Verdict in the returned
// commentary are always non-empty.
func (c *Captioner) Caption(ctx context.Context, a, b *profile.Profile, score int, shared []string) *ai.Commentary {
	if strings.EqualFold(a.Handle, b.Handle) {
		return &ai.Commentary{
			Caption: selfCaptions[c.pick(len(selfCaptions))],
			Verdict: selfVerdicts[c.pick(len(selfVerdicts))],
			Score:   score,
		}
	}

	prompt := buildPrompt(a, b, score, shared)

	c.logger.Debug("gemini caption request",
		zap.String("model", c.generator.Model()),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, c.maxLogLen)),
	)

	raw, err := c.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return c.fallback("generate content", err)
	}

	c.logger.Debug("gemini caption response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, c.maxLogLen)),
	)

	commentary, err := parseCommentary(raw)
	if err != nil {
		return c.fallback("parse response", err)
	}

	return commentary
}

func (c *Captioner) fallback(stage string, err error) *ai.Commentary {
	c.logger.Warn("caption generation failed, using fallback",
		zap.String("stage", stage),
		zap.Error(err),
	)

	picked := fallbackCommentary[c.pick(len(fallbackCommentary))]
	return &picked
}

func buildPrompt(a, b *profile.Profile, score int, shared []string) string {
	prompt := strings.ReplaceAll(promptTemplate, "{{USER}}", summarize(a))
	prompt = strings.ReplaceAll(prompt, "{{CRUSH}}", summarize(b))
	prompt = strings.ReplaceAll(prompt, "{{SHARED_LANGUAGES}}", orNone(strings.Join(shared, ", ")))
	prompt = strings.ReplaceAll(prompt, "{{SCORE}}", strconv.Itoa(score))
	prompt = strings.ReplaceAll(prompt, "{{TONE}}", tone(score))
	return prompt
}

func summarize(p *profile.Profile) string {
	languages := p.TopLanguages
	if len(languages) > 2 {
		languages = languages[:2]
	}

	bio := p.Bio
	if bio == "" {
		bio = "No bio provided"
	}

	return fmt.Sprintf("%s (%s) - %d repos, %d followers\nBio: %q",
		p.Handle,
		orNone(strings.Join(languages, ", ")),
		p.PublicRepos,
		p.Followers,
		bio,
	)
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "none"
	}
	return s
}

// tone maps the computed score to a generation register: high scores get
// wholesome chaos, low scores get the full roast.
func tone(score int) string {
	switch {
	case score >= 85:
		return "disgustingly sweet with a teasing edge"
	case score >= 60:
		return "playful and mischievous"
	default:
		return "savage, maximum roast"
	}
}

func parseCommentary(raw string) (*ai.Commentary, error) {
	payload, ok := extractJSON(raw)
	if !ok {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	caption := coerceString(data["roast"])
	if caption == "" {
		caption = coerceString(data["caption"])
	}
	verdict := coerceString(data["verdict"])

	if caption == "" || verdict == "" {
		return nil, fmt.Errorf("caption or verdict missing in response")
	}

	score := 0
	if n, ok := coerceInt(data["score"]); ok {
		score = clampScore(n)
	}

	return &ai.Commentary{
		Caption: caption,
		Verdict: verdict,
		Score:   score,
	}, nil
}

// extractJSON returns the first brace-delimited object in the reply, which
// models wrap in prose or code fences more often than not.
func extractJSON(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return "", false
	}

	return raw[start : end+1], true
}

func clampScore(score int) int {
	if score < aiScoreFloor {
		return aiScoreFloor
	}
	if score > aiScoreCeil {
		return aiScoreCeil
	}
	return score
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		return ""
	}
}

func coerceInt(v any) (int, bool) {
	switch val := v.(type) {
	case float64:
		return int(val), true
	case int:
		return val, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
