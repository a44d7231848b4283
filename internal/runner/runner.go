// Package runner executes one compile-and-notify run: read the source,
// submit it to the compile service, and deliver a chat notification when
// the service reports failure.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sevigo/build-herald/internal/compiler"
	"github.com/sevigo/build-herald/internal/config"
	"github.com/sevigo/build-herald/internal/core"
	"github.com/sevigo/build-herald/internal/github"
	"github.com/sevigo/build-herald/internal/gitutil"
	"github.com/sevigo/build-herald/internal/notify"
)

// ErrCompileFailed signals that the run itself completed but the source
// did not compile. The CLI maps it to a non-zero exit code so the CI
// step fails; notification delivery problems never produce it.
var ErrCompileFailed = errors.New("compilation failed")

// CompileService is the runner's view of the compile-service client.
type CompileService interface {
	Compile(ctx context.Context, req *core.CompileRequest) (*core.CompileResult, error)
}

// Runner performs the single linear sequence of a compile check.
type Runner struct {
	cfg      *config.Config
	compiler CompileService
	notifier notify.Notifier
	status   github.StatusReporter // nil when no token is configured
	logger   *slog.Logger
}

// settings are the effective per-run values after the repo-level
// .build-herald.yml overrides have been applied.
type settings struct {
	sourcePath string
	level      string
	langLevel  string
	imageURL   string
}

// New creates a Runner with its collaborators. The status reporter is
// optional; everything else is required.
func New(cfg *config.Config, svc CompileService, notifier notify.Notifier, status github.StatusReporter, logger *slog.Logger) *Runner {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if svc == nil {
		panic("compile service cannot be nil")
	}
	if notifier == nil {
		panic("notifier cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Runner{cfg: cfg, compiler: svc, notifier: notifier, status: status, logger: logger}
}

// Run executes the compile check. File-read and compile-service failures
// abort the run with a wrapped error and no webhook call. A failed
// compile sends the notification (delivery errors are logged and
// swallowed) and returns ErrCompileFailed alongside the report.
func (r *Runner) Run(ctx context.Context) (*core.Report, error) {
	st, err := r.loadSettings()
	if err != nil {
		return nil, err
	}

	req, err := r.buildRequest(st)
	if err != nil {
		return nil, err
	}

	r.logger.Info("starting compile check",
		"repo", r.cfg.RepoFullName,
		"source", r.displayPath(st),
		"compilation_level", req.CompilationLevel)

	result, err := r.compiler.Compile(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("compile service call failed: %w", err)
	}

	ref := r.resolveRef()

	if result.Success {
		r.logger.Info("compile check passed", "repo", r.cfg.RepoFullName)
		r.reportStatus(ctx, ref, true)
		return &core.Report{Succeeded: true}, nil
	}

	compileErrors := compiler.ParseErrors(result.ErrorText)
	report := &core.Report{Errors: compileErrors}

	r.logger.Warn("compile check failed",
		"repo", r.cfg.RepoFullName,
		"errors", len(compileErrors))

	var linkFn func(line int) string
	if st.sourcePath != "" {
		linkFn = func(line int) string {
			return gitutil.SourceLineURL(r.cfg.RepoFullName, ref, st.sourcePath, line)
		}
	}

	card := notify.BuildFailureCard(notify.FailureInfo{
		RepoFullName: r.cfg.RepoFullName,
		Ref:          ref,
		SourcePath:   r.displayPath(st),
		ImageURL:     st.imageURL,
		Entries:      notify.EntriesFromErrors(compileErrors, linkFn),
	})

	// Delivery problems must not change the step's outcome.
	if err := r.notifier.Send(ctx, card); err != nil {
		r.logger.Error("failed to deliver chat notification", "error", err)
	} else {
		report.Notified = true
	}

	r.reportStatus(ctx, ref, false)
	return report, ErrCompileFailed
}

// loadSettings merges the environment configuration with the optional
// repo-level override file.
func (r *Runner) loadSettings() (settings, error) {
	st := settings{
		sourcePath: r.cfg.SourcePath,
		level:      r.cfg.CompilationLevel,
		langLevel:  r.cfg.LanguageLevel,
		imageURL:   r.cfg.NotifyImageURL,
	}

	repoCfg, err := config.LoadRepoConfig(r.cfg.WorkspacePath)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return st, nil
		}
		return settings{}, fmt.Errorf("failed to load repo config: %w", err)
	}

	if repoCfg.SourcePath != "" {
		st.sourcePath = repoCfg.SourcePath
	}
	if repoCfg.CompilationLevel != "" {
		st.level = repoCfg.CompilationLevel
	}
	if repoCfg.LanguageLevel != "" {
		st.langLevel = repoCfg.LanguageLevel
	}
	if repoCfg.NotifyImageURL != "" {
		st.imageURL = repoCfg.NotifyImageURL
	}
	return st, nil
}

// buildRequest assembles the compile request, reading the source file
// unless the run references a fetchable URL instead.
func (r *Runner) buildRequest(st settings) (*core.CompileRequest, error) {
	req := &core.CompileRequest{
		CompilationLevel: st.level,
		LanguageLevel:    st.langLevel,
	}

	if r.cfg.SourceURL != "" {
		req.CodeURL = r.cfg.SourceURL
		return req, nil
	}

	data, err := os.ReadFile(filepath.Join(r.cfg.WorkspacePath, st.sourcePath))
	if err != nil {
		return nil, fmt.Errorf("failed to read source file: %w", err)
	}
	req.Source = string(data)
	return req, nil
}

// resolveRef pins source links to the configured ref, falling back to
// the workspace's HEAD commit. Resolution problems only degrade the
// links, never the run.
func (r *Runner) resolveRef() string {
	ref, err := gitutil.ResolveRef(r.cfg.WorkspacePath, r.cfg.Ref)
	if err != nil {
		r.logger.Warn("could not resolve git ref, source links will use HEAD", "error", err)
		return "HEAD"
	}
	return ref
}

// reportStatus posts the commit status when a reporter is configured.
// Failures are logged and swallowed, like notification failures.
func (r *Runner) reportStatus(ctx context.Context, ref string, succeeded bool) {
	if r.status == nil {
		return
	}
	if err := r.status.Report(ctx, r.cfg.RepoFullName, ref, succeeded); err != nil {
		r.logger.Error("failed to report commit status", "error", err)
	}
}

// displayPath names the checked source in logs and notifications.
func (r *Runner) displayPath(st settings) string {
	if st.sourcePath != "" {
		return st.sourcePath
	}
	return r.cfg.SourceURL
}
