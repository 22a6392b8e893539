// Package options provides EvaluationOptions, the configuration object
// controlling evaluation of potentials. It owns the evaluation-mode selector,
// the parallelization policy, the verbosity level, and a canonical parameter
// list kept in agreement with the typed fields after every mutation.
//
// The object is configured single-threaded by one owner and then handed,
// read-only, to the evaluation pipeline, which reads it once at the start of
// a run to pick the dense or hierarchical-matrix code path. Concurrent
// mutation is out of contract.
package options

import (
	"github.com/gridwave/bempot/internal/hmat"
	"github.com/gridwave/bempot/internal/parallel"
	"github.com/gridwave/bempot/internal/params"
	"github.com/gridwave/bempot/internal/verbosity"
)

// AutoThreads is the sentinel thread count requesting the automatic
// parallelization policy.
const AutoThreads = parallel.AutoThreads

// Recognized parameter-list keys. Unrecognized keys pass through the
// canonical list untouched for downstream consumers.
const (
	KeyEvaluationMode = "evaluationMode"
	KeyMaxThreadCount = "maxThreadCount"
	KeyVerbosityLevel = "verbosityLevel"
	KeyHMatTolerance  = "hmat.tolerance"
	KeyHMatEta        = "hmat.eta"
	KeyHMatLeafSize   = "hmat.leafSize"
	KeyHMatMaxRank    = "hmat.maxRank"
)

// EvaluationOptions controls evaluation of potentials.
type EvaluationOptions struct {
	mode      Mode
	par       parallel.Options
	verbosity verbosity.Level
	hmatOpts  hmat.Options
	list      *params.List
}

// New returns evaluation options with defaults: dense mode, automatic
// parallelization, and the baseline verbosity level.
func New() *EvaluationOptions {
	o := &EvaluationOptions{
		mode:      ModeDense,
		par:       parallel.Automatic(),
		verbosity: verbosity.Default,
		hmatOpts:  hmat.DefaultOptions(),
		list:      params.New(),
	}
	o.syncAll()
	return o
}

// FromParameterList constructs evaluation options from an externally supplied
// parameter list. Recognized keys populate the typed fields with the same
// validation as the corresponding setters; unrecognized keys are preserved
// verbatim in the canonical list. The input list is copied, never retained.
func FromParameterList(pl *params.List) (*EvaluationOptions, error) {
	o := New()
	if pl == nil {
		return o, nil
	}

	// Carry every supplied key into the canonical list first, so that
	// unrecognized keys survive for downstream consumers. Recognized keys are
	// overwritten below by the typed setters.
	for key, value := range pl.All() {
		if err := o.list.Set(key, value); err != nil {
			return nil, err
		}
	}

	// The hmat.* keys are recognized regardless of the selected mode: they
	// populate the typed hmat options even in dense mode, and invalid values
	// fail construction just like SwitchToHMatMode would.
	hopts, err := hmatOptionsFromList(pl)
	if err != nil {
		return nil, err
	}
	if err := hopts.Validate(); err != nil {
		return nil, err
	}
	o.hmatOpts = hopts
	o.syncHMat()

	if pl.Has(KeyEvaluationMode) {
		tag, err := pl.String(KeyEvaluationMode, "")
		if err != nil {
			return nil, err
		}
		mode, err := ParseMode(tag)
		if err != nil {
			return nil, err
		}
		switch mode {
		case ModeDense:
			o.SwitchToDenseMode()
		case ModeHMat:
			if err := o.SwitchToHMatMode(o.hmatOpts); err != nil {
				return nil, err
			}
		}
	}

	if pl.Has(KeyMaxThreadCount) {
		n, err := pl.Int(KeyMaxThreadCount, AutoThreads)
		if err != nil {
			return nil, err
		}
		if err := o.SetMaxThreadCount(n); err != nil {
			return nil, err
		}
	}

	if pl.Has(KeyVerbosityLevel) {
		name, err := pl.String(KeyVerbosityLevel, "")
		if err != nil {
			return nil, err
		}
		level, err := verbosity.Parse(name)
		if err != nil {
			return nil, err
		}
		o.SetVerbosityLevel(level)
	}

	return o, nil
}

// hmatOptionsFromList reads the hmat.* keys out of a parameter list, falling
// back to defaults for absent keys.
func hmatOptionsFromList(pl *params.List) (hmat.Options, error) {
	def := hmat.DefaultOptions()
	var err error
	if def.Tolerance, err = pl.Float(KeyHMatTolerance, def.Tolerance); err != nil {
		return hmat.Options{}, err
	}
	if def.Eta, err = pl.Float(KeyHMatEta, def.Eta); err != nil {
		return hmat.Options{}, err
	}
	if def.LeafSize, err = pl.Int(KeyHMatLeafSize, def.LeafSize); err != nil {
		return hmat.Options{}, err
	}
	if def.MaxRank, err = pl.Int(KeyHMatMaxRank, def.MaxRank); err != nil {
		return hmat.Options{}, err
	}
	return def, nil
}

// SwitchToDenseMode selects dense-matrix representations of elementary
// potential operators. It has no failure conditions and is idempotent.
func (o *EvaluationOptions) SwitchToDenseMode() {
	o.mode = ModeDense
	o.syncMode()
}

// SwitchToHMatMode selects hierarchical-matrix representations, configured by
// the hierarchical-matrix subsystem's own options type. Invalid hmat options
// fail without changing the current mode.
func (o *EvaluationOptions) SwitchToHMatMode(hopts hmat.Options) error {
	if err := hopts.Validate(); err != nil {
		return err
	}
	o.mode = ModeHMat
	o.hmatOpts = hopts
	o.syncMode()
	o.syncHMat()
	return nil
}

// EvaluationMode returns the current evaluation mode.
func (o *EvaluationOptions) EvaluationMode() Mode {
	return o.mode
}

// SetMaxThreadCount sets the maximum number of threads used during evaluation
// of potentials. maxThreadCount must be a positive number or AutoThreads; any
// other value fails with an invalid-argument error and leaves the options
// unchanged.
func (o *EvaluationOptions) SetMaxThreadCount(maxThreadCount int) error {
	p, err := parallel.FromThreadCount(maxThreadCount)
	if err != nil {
		return err
	}
	o.par = p
	o.syncThreads()
	return nil
}

// SwitchToTbb sets the maximum number of threads used during evaluation of
// potentials.
//
// Deprecated: Use SetMaxThreadCount instead.
func (o *EvaluationOptions) SwitchToTbb(maxThreadCount int) error {
	return o.SetMaxThreadCount(maxThreadCount)
}

// ParallelizationOptions returns the current parallelization policy by value.
func (o *EvaluationOptions) ParallelizationOptions() parallel.Options {
	return o.par
}

// SetVerbosityLevel sets the verbosity level. This setting determines the
// amount of information the evaluation pipeline logs; the options object
// itself never logs.
func (o *EvaluationOptions) SetVerbosityLevel(level verbosity.Level) {
	o.verbosity = level
	o.syncVerbosity()
}

// VerbosityLevel returns the current verbosity level.
func (o *EvaluationOptions) VerbosityLevel() verbosity.Level {
	return o.verbosity
}

// HMatOptions returns the hierarchical-matrix configuration used when the
// evaluation mode is ModeHMat.
func (o *EvaluationOptions) HMatOptions() hmat.Options {
	return o.hmatOpts
}

// Parameters returns the canonical parameter list. The list mirrors the typed
// fields after every mutation and additionally carries any externally supplied
// unrecognized keys. Callers must treat it as read-only.
func (o *EvaluationOptions) Parameters() *params.List {
	return o.list
}

// Canonical-list synchronization. Values stored here are already validated,
// so Set cannot fail.

func (o *EvaluationOptions) syncAll() {
	o.syncMode()
	o.syncThreads()
	o.syncVerbosity()
	o.syncHMat()
}

func (o *EvaluationOptions) syncMode() {
	_ = o.list.Set(KeyEvaluationMode, o.mode.String())
}

func (o *EvaluationOptions) syncThreads() {
	_ = o.list.Set(KeyMaxThreadCount, o.par.ThreadCount())
}

func (o *EvaluationOptions) syncVerbosity() {
	_ = o.list.Set(KeyVerbosityLevel, o.verbosity.String())
}

func (o *EvaluationOptions) syncHMat() {
	_ = o.list.Set(KeyHMatTolerance, o.hmatOpts.Tolerance)
	_ = o.list.Set(KeyHMatEta, o.hmatOpts.Eta)
	_ = o.list.Set(KeyHMatLeafSize, o.hmatOpts.LeafSize)
	_ = o.list.Set(KeyHMatMaxRank, o.hmatOpts.MaxRank)
}
