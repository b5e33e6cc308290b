package exitcode

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/felixgeelhaar/treecheck/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// GateRejected indicates the tree did not pass the quality gate
	GateRejected = 3

	// InputError indicates the tree or config could not be read or parsed
	InputError = 4

	// Interrupted indicates the run was cancelled (128 + SIGINT)
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// DetermineExitCode maps an error onto an exit code. Coded errors are
// classified by family; other errors fall back to message matching for
// the usage errors cobra reports.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	if stderrors.Is(err, context.Canceled) {
		return Interrupted
	}

	switch {
	case errors.HasPrefix(err, "GATE"):
		return GateRejected
	case errors.HasPrefix(err, "TREE"), errors.HasPrefix(err, "CONFIG"), errors.HasPrefix(err, "IO"):
		return InputError
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "unknown flag") || strings.Contains(errMsg, "unknown command") {
		return UsageError
	}
	if strings.Contains(errMsg, "required flag") || strings.Contains(errMsg, "invalid argument") {
		return UsageError
	}

	return GeneralError
}

// Describe returns a human-readable description of an exit code
func Describe(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case GateRejected:
		return "Tree rejected by the quality gate"
	case InputError:
		return "Input error (tree or config unreadable)"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
