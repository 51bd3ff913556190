package cmd

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "cv-matcher"
)

type Config struct {
	DocumentsDir string        `mapstructure:"documents-dir"`
	Engine       *EngineConfig `mapstructure:"engine"`
	AI           *AIConfig     `mapstructure:"ai"`
}

type EngineConfig struct {
	ChunkSize    int `mapstructure:"chunk-size"`
	ChunkOverlap int `mapstructure:"chunk-overlap"`
	RetrieverK   int `mapstructure:"retriever-k"`
	MinDocuments int `mapstructure:"min-documents"`
	MaxDocuments int `mapstructure:"max-documents"`
}

type AIConfig struct {
	Provider          string        `mapstructure:"provider"`
	GenerationTimeout time.Duration `mapstructure:"generation-timeout"`
	Gemini            *GeminiConfig `mapstructure:"gemini"`
	OpenAI            *OpenAIConfig `mapstructure:"openai"`
}

type GeminiConfig struct {
	APIKeyFile     string `mapstructure:"api-key-file"`
	Model          string `mapstructure:"model"`
	EmbeddingModel string `mapstructure:"embedding-model"`
}

type OpenAIConfig struct {
	APIKeyFile     string `mapstructure:"api-key-file"`
	Model          string `mapstructure:"model"`
	EmbeddingModel string `mapstructure:"embedding-model"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "cv-matcher matches candidate CVs against a job requirement using retrieval-augmented generation",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Pick up GEMINI_API_KEY_FILE and friends from a local .env when present.
	_ = godotenv.Load()

	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.openai.api-key-file", "OPENAI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding OPENAI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is cv-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &config,
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(viper.AllSettings()); err != nil {
		return nil, err
	}

	return config, nil
}
