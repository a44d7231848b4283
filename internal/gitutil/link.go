// Package gitutil builds source-line links and resolves the git ref they
// are pinned to.
package gitutil

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
)

// SourceLineURL builds the hyperlink back to a specific line of a file
// on GitHub: https://github.com/{owner}/{repo}/blob/{ref}/{path}#L{line}.
// A non-positive line yields a link to the file itself.
func SourceLineURL(repoFullName, ref, path string, line int) string {
	path = strings.TrimPrefix(path, "./")
	path = strings.TrimPrefix(path, "/")

	u := fmt.Sprintf("https://github.com/%s/blob/%s/%s", repoFullName, ref, path)
	if line > 0 {
		u += fmt.Sprintf("#L%d", line)
	}
	return u
}

// ResolveRef returns the configured ref unchanged, or — when it is
// empty — the HEAD commit hash of the repository at workspacePath, so
// links pin the exact commit the check ran against.
func ResolveRef(workspacePath, ref string) (string, error) {
	if ref != "" {
		return ref, nil
	}

	repo, err := git.PlainOpen(workspacePath)
	if err != nil {
		return "", fmt.Errorf("failed to open repository at %s: %w", workspacePath, err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return head.Hash().String(), nil
}
