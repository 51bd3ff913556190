package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spigell/cv-matcher/internal/ai"
	"github.com/spigell/cv-matcher/internal/ai/gemini"
	"github.com/spigell/cv-matcher/internal/ai/openai"
	"github.com/spigell/cv-matcher/internal/classify"
	"github.com/spigell/cv-matcher/internal/engine"
	"github.com/spigell/cv-matcher/internal/loader"
	"github.com/spigell/cv-matcher/internal/logger"
	"github.com/spigell/cv-matcher/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptAskQuestion    = "Ask a question"
	PromptShowCandidates = "Show candidates"
	PromptExit           = "Exit"
)

var errExit = errors.New("exit requested")

var actionPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptAskQuestion, PromptShowCandidates, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build the matching engine from a directory of CV text files and answer questions interactively",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("documents", "D", "", "directory with CV text files. Overrides documents-dir from the config.")

	viper.BindPFlag("documents-dir", runCmd.Flags().Lookup("documents"))
}

// run is the main command for the cli.
func run(_ *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the cv-matcher", zap.String("version", version))

	if config == nil {
		logger.Fatal("config is required")
	}

	dir := strings.TrimSpace(config.DocumentsDir)
	if dir == "" {
		logger.Fatal("documents directory is required under documents-dir to load CVs")
	}

	documents, err := loader.LoadDocuments(dir)
	if err != nil {
		logger.Fatal("loading documents", zap.Error(err))
	}

	logger.Info("loading documents", zap.String("dir", dir), zap.Int("count", len(documents)))

	generator, embedder, err := newAIProvider(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building ai provider", zap.Error(err))
	}

	eng, err := engine.Build(ctx, engineConfig(config), engine.Deps{
		Generator:  generator,
		Embedder:   embedder,
		Classifier: classify.NewCached(classify.NewPatternClassifier(), 0),
		Logger:     logger,
	}, documents)
	if err != nil {
		logger.Fatal("building the engine", zap.Error(err))
	}

	logger.Info("engine ready",
		zap.Int("candidates", eng.CandidateCount()),
		zap.Int("fragments", eng.FragmentCount()),
	)

	for {
		_, action, err := actionPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(ctx, action, eng, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, eng *engine.Engine, logger *zap.Logger) error {
	switch action {
	case PromptAskQuestion:
		return askQuestion(ctx, eng, logger)
	case PromptShowCandidates:
		for i, candidate := range eng.Candidates() {
			fmt.Printf("%d. %s (%s)\n", i+1, candidate.DisplayName, candidate.ID)
		}
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func askQuestion(ctx context.Context, eng *engine.Engine, logger *zap.Logger) error {
	questionPrompt := promptui.Prompt{Label: "Job requirement or question"}

	query, err := questionPrompt.Run()
	if err != nil {
		return err
	}

	answer, err := eng.Answer(ctx, query)
	if err != nil {
		return fmt.Errorf("answering query: %w", err)
	}

	printAnswer(answer)

	if answer.Kind == engine.KindUnavailable {
		logger.Warn("analysis was unavailable", zap.Error(answer.Err))
	}

	return nil
}

func printAnswer(answer *engine.Answer) {
	switch answer.Kind {
	case engine.KindAnalysis:
		for _, result := range answer.Results {
			fmt.Printf("\n%s — %s (matched fragments: %d)\n",
				result.Candidate.DisplayName, result.Tier, result.FragmentCount)
			for _, quote := range result.Quotes {
				fmt.Printf("  > %s\n", quote)
			}
		}
		fmt.Println()
	default:
		fmt.Printf("\n%s\n\n", answer.Text)
	}
}

func engineConfig(config *Config) engine.Config {
	cfg := engine.DefaultConfig()

	if config.Engine != nil {
		if config.Engine.ChunkSize > 0 {
			cfg.ChunkSize = config.Engine.ChunkSize
		}
		if config.Engine.ChunkOverlap > 0 {
			cfg.ChunkOverlap = config.Engine.ChunkOverlap
		}
		if config.Engine.RetrieverK > 0 {
			cfg.RetrieverK = config.Engine.RetrieverK
		}
		if config.Engine.MinDocuments > 0 {
			cfg.MinDocuments = config.Engine.MinDocuments
		}
		if config.Engine.MaxDocuments > 0 {
			cfg.MaxDocuments = config.Engine.MaxDocuments
		}
	}

	if config.AI != nil && config.AI.GenerationTimeout > 0 {
		cfg.GenerationTimeout = config.AI.GenerationTimeout
	}

	return cfg
}

func newAIProvider(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Generator, ai.Embedder, error) {
	provider := "gemini"
	if cfg != nil && strings.TrimSpace(cfg.Provider) != "" {
		provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	}

	switch provider {
	case "gemini":
		var gcfg GeminiConfig
		if cfg != nil && cfg.Gemini != nil {
			gcfg = *cfg.Gemini
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: gcfg.APIKeyFile,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
		}

		client, err := gemini.NewClient(ctx, apiKey, gcfg.Model, gcfg.EmbeddingModel)
		if err != nil {
			return nil, nil, err
		}

		logger.Info("using gemini provider",
			zap.String("model", client.Model()),
			zap.String("embedding_model", client.Embedding().Model()),
		)

		return client, client.Embedding(), nil
	case "openai":
		var ocfg OpenAIConfig
		if cfg != nil && cfg.OpenAI != nil {
			ocfg = *cfg.OpenAI
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name: "openai api key",
			File: ocfg.APIKeyFile,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("%w (set ai.openai.api-key-file or OPENAI_API_KEY_FILE)", err)
		}

		client, err := openai.NewClient(apiKey, ocfg.Model, ocfg.EmbeddingModel)
		if err != nil {
			return nil, nil, err
		}

		logger.Info("using openai provider",
			zap.String("model", client.Model()),
			zap.String("embedding_model", client.Embedding().Model()),
		)

		return client, client.Embedding(), nil
	default:
		return nil, nil, fmt.Errorf("unsupported ai provider: %s", provider)
	}
}
