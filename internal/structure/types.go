package structure

// Kind classifies an issue. Only errors make a tree invalid.
type Kind string

const (
	KindError      Kind = "error"
	KindWarning    Kind = "warning"
	KindSuggestion Kind = "suggestion"
)

// Severity weighs an issue for scoring.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Code identifies the rule that produced an issue.
type Code string

// Hierarchy rules
const (
	CodeExcessiveDepth   Code = "EXCESSIVE_DEPTH"
	CodeInvalidNodeType  Code = "INVALID_NODE_TYPE"
	CodeInvalidHierarchy Code = "INVALID_HIERARCHY"
	CodeTooManyChildren  Code = "TOO_MANY_CHILDREN"
)

// Node field rules
const (
	CodeMissingID          Code = "MISSING_ID"
	CodeDuplicateID        Code = "DUPLICATE_ID"
	CodeMissingTitle       Code = "MISSING_TITLE"
	CodeLongTitle          Code = "LONG_TITLE"
	CodeShortTitle         Code = "SHORT_TITLE"
	CodeInvalidPriority    Code = "INVALID_PRIORITY"
	CodeMissingDescription Code = "MISSING_DESCRIPTION"
)

// Dependency rules
const (
	CodeInvalidDependency  Code = "INVALID_DEPENDENCY"
	CodeCircularDependency Code = "CIRCULAR_DEPENDENCY"
)

// Estimate rules
const (
	CodeNegativeEstimate Code = "NEGATIVE_ESTIMATE"
	CodeLargeEstimate    Code = "LARGE_ESTIMATE"
	CodeZeroEstimate     Code = "ZERO_ESTIMATE"
	CodeLongTask         Code = "LONG_TASK"
	CodeMissingEstimate  Code = "MISSING_ESTIMATE"
)

// Completeness and feasibility rules
const (
	CodeIncompleteEstimates    Code = "INCOMPLETE_ESTIMATES"
	CodeIncompleteDescriptions Code = "INCOMPLETE_DESCRIPTIONS"
	CodeLargeProject           Code = "LARGE_PROJECT"
	CodeUnrealisticBreakdown   Code = "UNREALISTIC_BREAKDOWN"
)

// CodeValidationError is the single issue of a degraded result.
const CodeValidationError Code = "VALIDATION_ERROR"

// Issue is a single finding. Issues are data: they are returned, never raised.
type Issue struct {
	Kind        Kind     `json:"kind" yaml:"kind"`
	Code        Code     `json:"code" yaml:"code"`
	Message     string   `json:"message" yaml:"message"`
	NodeID      string   `json:"nodeId,omitempty" yaml:"nodeId,omitempty"`
	Severity    Severity `json:"severity" yaml:"severity"`
	AutoFixable bool     `json:"autoFixable" yaml:"autoFixable"`
}

// Metrics are shape measurements derived from the tree on every call.
type Metrics struct {
	Depth        int `json:"depth" yaml:"depth"`
	Breadth      int `json:"breadth" yaml:"breadth"`
	Complexity   int `json:"complexity" yaml:"complexity"`
	Completeness int `json:"completeness" yaml:"completeness"`
	Feasibility  int `json:"feasibility" yaml:"feasibility"`
}

// Result is the outcome of validating a tree.
type Result struct {
	IsValid     bool     `json:"isValid" yaml:"isValid"`
	Issues      []Issue  `json:"issues" yaml:"issues"`
	Suggestions []string `json:"suggestions" yaml:"suggestions"`
	Score       int      `json:"score" yaml:"score"`
	Metrics     Metrics  `json:"metrics" yaml:"metrics"`
}

// Count returns the number of issues of the given kind.
func (r Result) Count(kind Kind) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Kind == kind {
			n++
		}
	}
	return n
}

// Errors returns the error issues in output order.
func (r Result) Errors() []Issue {
	return r.filter(KindError)
}

// Warnings returns the warning issues in output order.
func (r Result) Warnings() []Issue {
	return r.filter(KindWarning)
}

// Has reports whether any issue carries the given code.
func (r Result) Has(code Code) bool {
	for _, issue := range r.Issues {
		if issue.Code == code {
			return true
		}
	}
	return false
}

func (r Result) filter(kind Kind) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Kind == kind {
			out = append(out, issue)
		}
	}
	return out
}
