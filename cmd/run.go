package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/r3dd404/crushhub/internal/activity"
	"github.com/r3dd404/crushhub/internal/ai"
	"github.com/r3dd404/crushhub/internal/ai/gemini"
	"github.com/r3dd404/crushhub/internal/github"
	"github.com/r3dd404/crushhub/internal/logger"
	"github.com/r3dd404/crushhub/internal/match"
	"github.com/r3dd404/crushhub/internal/profile"
	"github.com/r3dd404/crushhub/internal/secrets"
)

const (
	outputCard = "card"
	outputJSON = "json"
)

var runCmd = &cobra.Command{
	Use:   "run [user] [crush]",
	Short: "Fetch both profiles, score the pairing and generate a verdict",
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("output", "o", outputCard, "output format: card or json")
}

// run is the main command for the cli.
func run(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting crushhub", zap.String("version", version))

	rawA, rawB, err := resolveHandles(args)
	if err != nil {
		logger.Fatal("reading usernames", zap.Error(err))
	}

	// Both identifiers must be valid before anything goes on the wire.
	handleA, err := profile.NormalizeHandle(rawA)
	if err != nil {
		logger.Fatal("invalid username",
			zap.String("username", rawA),
			zap.Error(err),
			zap.String("hint", "GitHub usernames may only contain letters, digits, '-' and '_'"),
		)
	}

	handleB, err := profile.NormalizeHandle(rawB)
	if err != nil {
		logger.Fatal("invalid username",
			zap.String("username", rawB),
			zap.Error(err),
			zap.String("hint", "GitHub usernames may only contain letters, digits, '-' and '_'"),
		)
	}

	captioner, err := newCaptioner(ctx, config, logger)
	if err != nil {
		logger.Fatal(
			"building caption generator",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY, GEMINI_API_KEY_FILE or the 'gemini' section in the configuration file"),
		)
	}

	gh := github.New(logger)
	if config.UserAgent != "" {
		gh.UserAgent = config.UserAgent
	}

	assembler := profile.NewAssembler(gh, activity.NewEstimator(logger), logger)

	logger.Info("assembling profiles", zap.String("user", handleA), zap.String("crush", handleB))

	profileA, profileB, err := assembler.AssemblePair(ctx, handleA, handleB)
	if err != nil {
		logger.Fatal("assembling profiles", zap.Error(err))
	}

	outcome := match.NewScorer().Score(profileA, profileB)

	logger.Debug("scored pairing",
		zap.Int("score", outcome.Score),
		zap.Bool("self_match", outcome.SelfMatch),
		zap.Strings("shared_languages", outcome.SharedLanguages),
		zap.Any("breakdown", outcome.Breakdown),
	)

	commentary := captioner.Caption(ctx, profileA, profileB, outcome.Score, outcome.SharedLanguages)

	result := match.Compose(outcome, commentary, profileA, profileB)

	if err := render(cmd.Flag("output").Value.String(), result); err != nil {
		logger.Fatal("rendering result", zap.Error(err))
	}
}

// resolveHandles takes the usernames from positional arguments, prompting
// interactively for whichever is missing.
func resolveHandles(args []string) (string, string, error) {
	if len(args) >= 2 {
		return args[0], args[1], nil
	}

	validate := func(input string) error {
		_, err := profile.NormalizeHandle(input)
		return err
	}

	handles := make([]string, 2)
	copy(handles, args)

	labels := []string{"Your GitHub username", "Your crush's GitHub username"}
	for i := len(args); i < 2; i++ {
		prompt := promptui.Prompt{
			Label:    labels[i],
			Validate: validate,
		}

		value, err := prompt.Run()
		if err != nil {
			return "", "", err
		}
		handles[i] = value
	}

	return handles[0], handles[1], nil
}

func newCaptioner(ctx context.Context, config *Config, logger *zap.Logger) (ai.Captioner, error) {
	key, err := resolveGeminiKey(config)
	if err != nil {
		return nil, err
	}

	generator, err := gemini.NewGenerator(ctx, key, config.Gemini.Model, config.Gemini.MaxRetries, logger)
	if err != nil {
		return nil, err
	}

	captionerLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", generator.Model()),
	)

	return gemini.NewCaptioner(generator, config.Gemini.MaxLogLength, captionerLogger), nil
}

func resolveGeminiKey(config *Config) (string, error) {
	value := strings.TrimSpace(config.Gemini.APIKey)
	if value == "" {
		value = strings.TrimSpace(viper.GetString("gemini.api-key"))
	}

	file := strings.TrimSpace(config.Gemini.APIKeyFile)
	if file == "" {
		file = strings.TrimSpace(viper.GetString("gemini.api-key-file"))
	}

	return secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: value,
		File:  file,
	})
}

func render(format string, result *match.Result) error {
	switch format {
	case outputJSON:
		pretty, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(pretty))
		return nil
	case outputCard:
		printCard(result)
		return nil
	default:
		return fmt.Errorf("invalid output format: %s", format)
	}
}

func printCard(result *match.Result) {
	shared := strings.Join(result.SharedLanguages, ", ")
	if shared == "" {
		shared = "none"
	}

	fmt.Println()
	fmt.Printf("  %s x %s\n", result.ProfileA.DisplayName, result.ProfileB.DisplayName)
	fmt.Printf("  Compatibility: %d%%\n", result.Score)
	fmt.Printf("  Shared languages: %s\n", shared)
	fmt.Println()
	fmt.Printf("  %q\n", result.Caption)
	fmt.Printf("  Verdict: %s\n", result.Verdict)
	fmt.Println()
}
