package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Tree errors (TREE-001 to TREE-099)
	ErrCodeTreeNotFound    ErrorCode = "TREE-001"
	ErrCodeTreeUnmarshal   ErrorCode = "TREE-002"
	ErrCodeTreeMarshal     ErrorCode = "TREE-003"
	ErrCodeTreeFormat      ErrorCode = "TREE-004"
	ErrCodeTreeMalformed   ErrorCode = "TREE-005"
	ErrCodeTreeUnprocessed ErrorCode = "TREE-006"

	// Gate errors (GATE-001 to GATE-099)
	ErrCodeGateInvalid      ErrorCode = "GATE-001"
	ErrCodeGateLowScore     ErrorCode = "GATE-002"
	ErrCodeGateWarnings     ErrorCode = "GATE-003"
	ErrCodeGateTooManyNodes ErrorCode = "GATE-004"
	ErrCodeGateTooDeep      ErrorCode = "GATE-005"

	// Config errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigNotFound  ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid   ErrorCode = "CONFIG-002"
	ErrCodeConfigUnmarshal ErrorCode = "CONFIG-003"
	ErrCodeConfigExists    ErrorCode = "CONFIG-004"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
	ErrCodeDirectoryFailed ErrorCode = "IO-004"
)

// Error is a coded error with optional suggestions and a documentation link.
type Error struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)

	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			fmt.Fprintf(&b, "\n  • %s", suggestion)
		}
	}

	if e.DocsURL != "" {
		fmt.Fprintf(&b, "\n\nDocumentation: %s", e.DocsURL)
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new coded error
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new coded error wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *Error) WithSuggestions(suggestions ...string) *Error {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *Error) WithDocs(url string) *Error {
	e.DocsURL = url
	return e
}

// CodeOf returns the code of the first coded error in err's chain, or ""
// when there is none.
func CodeOf(err error) ErrorCode {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ""
}

// HasPrefix reports whether err carries a code in the given family,
// e.g. "GATE".
func HasPrefix(err error, family string) bool {
	return strings.HasPrefix(string(CodeOf(err)), family+"-")
}

const docsBase = "https://github.com/felixgeelhaar/treecheck#"

// Common error constructors for frequently used errors

// NewTreeNotFoundError creates a tree file not found error
func NewTreeNotFoundError(path string) *Error {
	return New(ErrCodeTreeNotFound, fmt.Sprintf("tree file not found: %s", path)).
		WithSuggestion("Check the path passed with --in").
		WithSuggestion("Tree files are JSON or YAML, e.g. tree.json or tree.yaml")
}

// NewTreeUnmarshalError creates a tree parse error
func NewTreeUnmarshalError(path string, format string, cause error) *Error {
	return Wrap(ErrCodeTreeUnmarshal, fmt.Sprintf("failed to parse %s tree: %s", format, path), cause).
		WithSuggestion("Check the file syntax").
		WithSuggestion("A tree is either a list of nodes or an object with a \"nodes\" list").
		WithDocs(docsBase + "tree-format")
}

// NewTreeMalformedError reports a tree the validator could not traverse
func NewTreeMalformedError(cause error) *Error {
	return Wrap(ErrCodeTreeMalformed, "tree could not be traversed", cause).
		WithSuggestion("Remove null entries from node and children lists")
}

// NewGateInvalidError reports a tree rejected because it has errors
func NewGateInvalidError(errorCount int) *Error {
	return New(ErrCodeGateInvalid, fmt.Sprintf("tree rejected: %d error(s)", errorCount)).
		WithSuggestion("Run 'treecheck validate' to list the errors").
		WithSuggestion("Run 'treecheck fix' to repair auto-fixable issues")
}

// NewGateLowScoreError reports a tree whose score is below the gate minimum
func NewGateLowScoreError(score, minScore int) *Error {
	return New(ErrCodeGateLowScore, fmt.Sprintf("tree rejected: score %d is below the minimum of %d", score, minScore)).
		WithSuggestion("Address the warnings listed by 'treecheck validate'").
		WithSuggestion("Lower gate.min_score in the config if the threshold is too strict")
}

// NewGateWarningsError reports warnings on a gate configured to fail on them
func NewGateWarningsError(warningCount int) *Error {
	return New(ErrCodeGateWarnings, fmt.Sprintf("tree rejected: %d warning(s) with fail_on_warnings set", warningCount)).
		WithSuggestion("Address the warnings or unset gate.fail_on_warnings")
}

// NewGateLimitError reports input that exceeds a configured ceiling
func NewGateLimitError(code ErrorCode, what string, got, limit int) *Error {
	return New(code, fmt.Sprintf("tree rejected: %s %d exceeds the limit of %d", what, got, limit)).
		WithSuggestion("Split the tree into smaller documents").
		WithSuggestion("Raise the limit under gate in the config")
}

// NewConfigInvalidError creates a config validation error
func NewConfigInvalidError(path string, cause error) *Error {
	return Wrap(ErrCodeConfigInvalid, fmt.Sprintf("invalid config: %s", path), cause).
		WithSuggestion("Run 'treecheck config view' to see the effective values").
		WithSuggestion("Run 'treecheck config init --force' to start from the defaults")
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *Error {
	return New(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}
