package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "herald",
	Short: "herald checks a source file against a remote compile service and notifies chat on failure.",
	Long: `build-herald is a CI step: it submits a source file to an external
compile service and, when compilation fails, posts a card with the
extracted errors and source-line links to a chat webhook.

Configuration comes from HERALD_* environment variables (or a .env
file); the flags below override the most common values.`,
	SilenceUsage: true,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	flags := rootCmd.PersistentFlags()
	flags.StringP("source", "s", "", "Path of the source file to check, relative to the workspace")
	flags.StringP("repo", "r", "", "Repository full name (owner/name) used in source links")
	flags.String("ref", "", "Git ref for source links (defaults to the workspace HEAD)")
	flags.String("webhook-url", "", "Chat webhook URL for failure notifications")

	bind := map[string]string{
		"SOURCE_PATH":      "source",
		"REPO":             "repo",
		"REF":              "ref",
		"CHAT_WEBHOOK_URL": "webhook-url",
	}
	for key, flag := range bind {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			slog.Error("Error binding flag", "flag", flag, "error", err)
			os.Exit(1)
		}
	}
}
