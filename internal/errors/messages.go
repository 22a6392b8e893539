package errors

import "fmt"

// Common error messages for the bempot engine.
// These templates ensure consistent, actionable error messages.

// InvalidThreadCount creates an error for a thread count that is neither
// positive nor the automatic sentinel.
func InvalidThreadCount(n int) *EvalError {
	return NewInvalidArgument(
		fmt.Sprintf("max thread count must be positive or automatic, got %d", n),
		"Pass a positive thread count, e.g. SetMaxThreadCount(4)",
		"Or pass options.AutoThreads (-1) to let the runtime decide",
	)
}

// UnknownEvaluationMode creates an error for an unrecognized evaluation mode tag.
func UnknownEvaluationMode(mode string) *EvalError {
	return NewInvalidArgument(
		fmt.Sprintf("unknown evaluation mode %q", mode),
		"Valid modes: dense, hmat",
	)
}

// UnknownVerbosityLevel creates an error for an unrecognized verbosity level.
func UnknownVerbosityLevel(level string) *EvalError {
	return NewInvalidArgument(
		fmt.Sprintf("unknown verbosity level %q", level),
		"Valid levels: low, default, high",
	)
}

// MissingProblemFile creates an error for a problem-definition file that does
// not exist on disk.
func MissingProblemFile(path string) *EvalError {
	return NewInvalidArgumentWithUsage(
		fmt.Sprintf("problem file not found: %s", path),
		"bempot evaluate <problem.yml>",
		"Check the file path",
		"Run 'bempot evaluate --help' for the expected problem format",
	)
}

// UnknownKernel creates an error for an unrecognized kernel name in a problem file.
func UnknownKernel(name string) *EvalError {
	return NewInvalidArgument(
		fmt.Sprintf("unknown kernel %q", name),
		"Valid kernels: laplace, yukawa",
	)
}
