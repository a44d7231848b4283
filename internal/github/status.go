// Package github reports compile-check outcomes to the GitHub commit
// status API. Reporting is optional: when no token is configured the
// runner simply carries a nil reporter.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"
)

// StatusContext is the context string shown next to the commit status.
const StatusContext = "build-herald/compile"

// StatusReporter posts the outcome of a compile check as a commit status.
type StatusReporter interface {
	Report(ctx context.Context, repoFullName, ref string, succeeded bool) error
}

type statusReporter struct {
	client *github.Client
	logger *slog.Logger
}

// NewStatusReporter creates a StatusReporter authenticated with a
// Personal Access Token. This is the right auth mode for a CI step; an
// App installation is not available here.
func NewStatusReporter(ctx context.Context, token string, logger *slog.Logger) StatusReporter {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	return &statusReporter{client: github.NewClient(tc), logger: logger}
}

// Report sets a "success" or "failure" status on the given ref.
func (s *statusReporter) Report(ctx context.Context, repoFullName, ref string, succeeded bool) error {
	owner, name, ok := strings.Cut(repoFullName, "/")
	if !ok || owner == "" || name == "" {
		return fmt.Errorf("invalid repository full name: %q", repoFullName)
	}

	state := "success"
	description := "Compile check passed"
	if !succeeded {
		state = "failure"
		description = "Compile check failed"
	}

	status := &github.RepoStatus{
		State:       github.Ptr(state),
		Description: github.Ptr(description),
		Context:     github.Ptr(StatusContext),
	}

	s.logger.Debug("reporting commit status", "repo", repoFullName, "ref", ref, "state", state)
	_, _, err := s.client.Repositories.CreateStatus(ctx, owner, name, ref, status)
	if err != nil {
		return fmt.Errorf("failed to create commit status: %w", err)
	}
	return nil
}
