package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sevigo/build-herald/internal/compiler"
	"github.com/sevigo/build-herald/internal/config"
	"github.com/sevigo/build-herald/internal/core"
	"github.com/sevigo/build-herald/internal/github"
	"github.com/sevigo/build-herald/internal/logger"
	"github.com/sevigo/build-herald/internal/notify"
	"github.com/sevigo/build-herald/internal/runner"
)

// Color definitions
var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	infoColor    = color.New(color.FgWhite)
	dimColor     = color.New(color.FgHiBlack)
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the compile check and notify chat on failure",
	Long: `Run the compile check for the configured source file.

The check reads the source, submits it to the compile service, and on
failure delivers a notification card to the chat webhook. The exit code
is non-zero when the source fails to compile or the run itself fails;
a webhook delivery problem alone never fails the step.

Examples:
  HERALD_SOURCE_PATH=src/app.js herald check --repo acme/widgets
  herald check -s src/app.js -r acme/widgets --ref "$GITHUB_SHA"`,
	RunE: runCheck,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log := logger.NewLogger(cfg.Logger, nil)

	svc := compiler.NewClient(cfg.CompilerURL, cfg.HTTPTimeout, log)
	notifier := notify.NewWebhookNotifier(cfg.WebhookURL, cfg.WebhookKey, cfg.WebhookToken, cfg.HTTPTimeout, log)

	var status github.StatusReporter
	if cfg.GitHubToken != "" {
		status = github.NewStatusReporter(ctx, cfg.GitHubToken, log)
	}

	titleColor.Println("🛠  build-herald — compile check")
	dimColor.Printf("   Repo: %s\n\n", cfg.RepoFullName)

	report, err := runner.New(cfg, svc, notifier, status, log).Run(ctx)
	if err != nil && !errors.Is(err, runner.ErrCompileFailed) {
		return err
	}

	printReport(report)
	return err
}

func printReport(report *core.Report) {
	if report.Succeeded {
		successColor.Println("✓ Compilation succeeded")
		return
	}

	errorColor.Printf("✗ Compilation failed (%d error(s))\n\n", len(report.Errors))
	for _, e := range report.Errors {
		if e.Line > 0 {
			errorColor.Printf("  Line %d: ", e.Line)
		} else {
			errorColor.Print("  ")
		}
		infoColor.Println(e.Message)
	}

	fmt.Println()
	if report.Notified {
		dimColor.Println("Chat notification delivered.")
	} else {
		dimColor.Println("Chat notification could not be delivered (see log).")
	}
}
