// Package parallel defines the thread-count policy used during evaluation of
// potentials. A policy is either automatic, deferring the decision to the
// runtime at dispatch time, or a fixed positive thread count. The policy type
// is a small comparable value; the options core records intent and never
// probes hardware itself.
package parallel

import (
	"fmt"
	"runtime"

	evalerr "github.com/gridwave/bempot/internal/errors"
)

// AutoThreads is the sentinel thread count meaning "let the runtime decide".
// It survives from the original integer-valued API and is accepted anywhere a
// raw thread count crosses a configuration boundary (parameter lists, CLI
// flags, config files).
const AutoThreads = -1

// Options is the parallelization policy: automatic, or a fixed positive
// thread count. The zero value is the automatic policy. Options is comparable
// and copyable; the accessor on EvaluationOptions returns it by value.
type Options struct {
	// threads is 0 for the automatic policy, otherwise a positive count.
	threads int
}

// Automatic returns the policy that defers the thread-count decision to the
// runtime at dispatch time.
func Automatic() Options {
	return Options{}
}

// Fixed returns the policy pinning evaluation to n threads.
// n must be strictly positive.
func Fixed(n int) (Options, error) {
	if n <= 0 {
		return Options{}, evalerr.InvalidThreadCount(n)
	}
	return Options{threads: n}, nil
}

// FromThreadCount converts a raw thread count into a policy. AutoThreads maps
// to the automatic policy; positive values map to a fixed policy; anything
// else fails with an invalid-argument error.
func FromThreadCount(n int) (Options, error) {
	if n == AutoThreads {
		return Automatic(), nil
	}
	return Fixed(n)
}

// IsAutomatic reports whether the policy defers to the runtime.
func (o Options) IsAutomatic() bool {
	return o.threads == 0
}

// MaxThreadCount returns the fixed thread count and true, or 0 and false for
// the automatic policy.
func (o Options) MaxThreadCount() (int, bool) {
	if o.threads == 0 {
		return 0, false
	}
	return o.threads, true
}

// ThreadCount returns the policy in the raw integer encoding: the fixed count,
// or AutoThreads for the automatic policy. Used to mirror the policy into the
// canonical parameter list.
func (o Options) ThreadCount() int {
	if o.threads == 0 {
		return AutoThreads
	}
	return o.threads
}

// Resolve returns the concrete worker count to use for a run: the fixed count,
// or the hardware concurrency for the automatic policy. Called by the
// evaluation pipeline at dispatch time, never during configuration.
func (o Options) Resolve() int {
	if o.threads > 0 {
		return o.threads
	}
	return runtime.NumCPU()
}

// String returns a human-readable description of the policy.
func (o Options) String() string {
	if o.threads == 0 {
		return "automatic"
	}
	return fmt.Sprintf("%d threads", o.threads)
}
