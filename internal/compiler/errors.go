package compiler

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sevigo/build-herald/internal/core"
)

// Matches the line-number markers the compile service emits at the start
// of each error entry, e.g.:
//
//	Line 12: missing semicolon
//	ERROR - Line 12: missing semicolon
//	Error on line 12: missing semicolon
var errorMarkerRegex = regexp.MustCompile(`(?i)^\s*(?:error\s*(?:[-:]|on)?\s*)?line\s+(\d+)\s*:?\s*(.*)$`)

// ParseErrors maps the raw error text of a failed compile result to a
// sequence of structured entries. Lines without a marker continue the
// preceding entry's message. Text with no marker at all degrades to a
// single entry with line zero so that any non-empty error text still
// yields a well-formed notification.
func ParseErrors(text string) []core.CompileError {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var entries []core.CompileError
	var current *core.CompileError

	for _, line := range strings.Split(text, "\n") {
		matches := errorMarkerRegex.FindStringSubmatch(line)
		if matches != nil {
			if current != nil {
				entries = append(entries, *current)
			}
			lineNum, _ := strconv.Atoi(matches[1])
			current = &core.CompileError{
				Line:    lineNum,
				Message: strings.TrimSpace(matches[2]),
			}
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || current == nil {
			continue
		}
		if current.Message != "" {
			current.Message += "\n"
		}
		current.Message += trimmed
	}
	if current != nil {
		entries = append(entries, *current)
	}

	if len(entries) == 0 {
		entries = append(entries, core.CompileError{
			Line:    0,
			Message: strings.TrimSpace(text),
		})
	}
	return entries
}
