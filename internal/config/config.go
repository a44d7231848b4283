package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/build-herald/internal/core"
	"github.com/sevigo/build-herald/internal/logger"
)

// Config holds the application's configuration values. All secrets
// (webhook credentials, GitHub token) come exclusively from the
// environment or the CI platform's secret inputs.
type Config struct {
	SourcePath       string
	SourceURL        string
	CompilerURL      string
	CompilationLevel string
	LanguageLevel    string
	WebhookURL       string
	WebhookKey       string
	WebhookToken     string
	RepoFullName     string
	Ref              string
	GitHubToken      string
	WorkspacePath    string
	NotifyImageURL   string
	HTTPTimeout      time.Duration
	Logger           logger.Config
}

// LoadConfig reads configuration from environment variables and a .env file,
// sets sensible defaults, and validates required fields. It uses the Viper
// library to handle configuration loading and precedence. Environment
// variables carry the HERALD_ prefix, e.g. HERALD_SOURCE_PATH.
func LoadConfig() (*Config, error) {
	viper.SetEnvPrefix("HERALD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.SetConfigFile(".env")

	viper.SetDefault("SOURCE_PATH", "")
	viper.SetDefault("COMPILATION_LEVEL", core.LevelSimple)
	viper.SetDefault("LANGUAGE_LEVEL", "ECMASCRIPT_2020")
	viper.SetDefault("WORKSPACE_PATH", ".")
	viper.SetDefault("HTTP_TIMEOUT", "30s")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("LOG_OUTPUT", "stderr")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Debug("no .env file loaded", "error", err)
		}
	}

	if viper.GetString("COMPILER_URL") == "" {
		return nil, fmt.Errorf("COMPILER_URL must be set")
	}
	if viper.GetString("CHAT_WEBHOOK_URL") == "" {
		return nil, fmt.Errorf("CHAT_WEBHOOK_URL must be set")
	}
	if viper.GetString("SOURCE_PATH") == "" && viper.GetString("SOURCE_URL") == "" {
		return nil, fmt.Errorf("either SOURCE_PATH or SOURCE_URL must be set")
	}
	if viper.GetString("REPO") == "" {
		return nil, fmt.Errorf("REPO must be set (owner/name)")
	}
	if repo := viper.GetString("REPO"); strings.Count(repo, "/") != 1 {
		return nil, fmt.Errorf("REPO must have the form owner/name, got %q", repo)
	}

	timeout := viper.GetDuration("HTTP_TIMEOUT")
	if timeout <= 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", timeout)
	}

	return &Config{
		SourcePath:       viper.GetString("SOURCE_PATH"),
		SourceURL:        viper.GetString("SOURCE_URL"),
		CompilerURL:      viper.GetString("COMPILER_URL"),
		CompilationLevel: viper.GetString("COMPILATION_LEVEL"),
		LanguageLevel:    viper.GetString("LANGUAGE_LEVEL"),
		WebhookURL:       viper.GetString("CHAT_WEBHOOK_URL"),
		WebhookKey:       viper.GetString("CHAT_WEBHOOK_KEY"),
		WebhookToken:     viper.GetString("CHAT_WEBHOOK_TOKEN"),
		RepoFullName:     viper.GetString("REPO"),
		Ref:              viper.GetString("REF"),
		GitHubToken:      viper.GetString("GITHUB_TOKEN"),
		WorkspacePath:    viper.GetString("WORKSPACE_PATH"),
		NotifyImageURL:   viper.GetString("NOTIFY_IMAGE_URL"),
		HTTPTimeout:      timeout,
		Logger: logger.Config{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
			Output: viper.GetString("LOG_OUTPUT"),
		},
	}, nil
}
