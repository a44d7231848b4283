// Package core defines the essential data structures that form the backbone
// of the application: the compile request/result pair, the structured error
// entries extracted from the service's output, and the run report handed
// back to the CLI.
package core

// Compilation levels accepted by the compile service.
const (
	LevelWhitespaceOnly = "WHITESPACE_ONLY"
	LevelSimple         = "SIMPLE_OPTIMIZATIONS"
	LevelAdvanced       = "ADVANCED_OPTIMIZATIONS"
)

// CompileRequest describes one submission to the compile service. Exactly
// one of Source and CodeURL is set: Source carries the raw file contents
// for a POST submission, CodeURL points the service at a fetchable copy.
type CompileRequest struct {
	Source           string
	CodeURL          string
	CompilationLevel string
	LanguageLevel    string
}

// CompileResult is the service's JSON response. ErrorText is only
// populated when Success is false and holds one or more error entries
// embedded as free text.
type CompileResult struct {
	Success   bool   `json:"success"`
	ErrorText string `json:"errors,omitempty"`
}

// CompileError is one structured entry extracted from a result's error
// text. Line is zero when the text carried no recognizable line marker.
type CompileError struct {
	Line    int
	Message string
}

// Report summarizes a finished run for the caller. Notified records
// whether the failure notification actually reached the webhook.
type Report struct {
	Succeeded bool
	Errors    []CompileError
	Notified  bool
}
