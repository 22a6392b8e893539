// Package problem defines the problem files consumed by the bempot CLI: a
// boundary quadrature rule (source points and weights), a charge-distribution
// density, the target points, and the kernel selection. Files are YAML or
// JSON; values are validated before any evaluation runs.
package problem

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	evalerr "github.com/gridwave/bempot/internal/errors"
	"github.com/gridwave/bempot/internal/kernel"
	"github.com/gridwave/bempot/internal/quadrature"
	"github.com/go-playground/validator/v10"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

// Definition is a fully specified potential-evaluation problem.
type Definition struct {
	// Kernel names the integral kernel: "laplace" or "yukawa".
	Kernel string `yaml:"kernel" json:"kernel" validate:"required"`
	// Lambda is the screening parameter for the yukawa kernel.
	Lambda float64 `yaml:"lambda" json:"lambda" validate:"gte=0"`
	// Sources are the boundary quadrature points, one [x, y, z] triple each.
	Sources [][]float64 `yaml:"sources" json:"sources" validate:"required,min=1,dive,len=3"`
	// Weights are the quadrature weights, parallel to Sources.
	Weights []float64 `yaml:"weights" json:"weights" validate:"required,min=1"`
	// Density holds the charge-distribution values at the quadrature points.
	Density []float64 `yaml:"density" json:"density" validate:"required,min=1"`
	// Targets are the evaluation points, one [x, y, z] triple each.
	Targets [][]float64 `yaml:"targets" json:"targets" validate:"required,min=1,dive,len=3"`
}

// Load reads and validates a problem definition from a YAML or JSON file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, evalerr.MissingProblemFile(path)
		}
		return nil, evalerr.WrapWithMessage(err, evalerr.Configuration, "reading problem file")
	}

	var def Definition
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, evalerr.WrapWithMessage(err, evalerr.Configuration, fmt.Sprintf("parsing %s", path))
		}
	default:
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, evalerr.WrapWithMessage(err, evalerr.Configuration, fmt.Sprintf("parsing %s", path))
		}
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks field constraints and cross-field consistency.
func (d *Definition) Validate() error {
	v := validator.New()
	if err := v.Struct(d); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return evalerr.NewInvalidArgument(
				fmt.Sprintf("problem field %q %s", strings.ToLower(fe.Field()), describeTag(fe)))
		}
		return evalerr.Wrap(err, evalerr.InvalidArgument)
	}

	if len(d.Weights) != len(d.Sources) {
		return evalerr.NewInvalidArgument(
			fmt.Sprintf("problem has %d sources but %d weights", len(d.Sources), len(d.Weights)))
	}
	if len(d.Density) != len(d.Sources) {
		return evalerr.NewInvalidArgument(
			fmt.Sprintf("problem has %d sources but %d density values", len(d.Sources), len(d.Density)))
	}
	if _, err := kernel.New(d.Kernel, d.Lambda); err != nil {
		return err
	}
	return nil
}

// Rule returns the boundary quadrature rule described by the problem.
func (d *Definition) Rule() (quadrature.Rule, error) {
	return quadrature.NewRule(toVecs(d.Sources), d.Weights)
}

// TargetPoints returns the evaluation points.
func (d *Definition) TargetPoints() []r3.Vec {
	return toVecs(d.Targets)
}

// BuildKernel instantiates the kernel named by the problem.
func (d *Definition) BuildKernel() (kernel.Kernel, error) {
	return kernel.New(d.Kernel, d.Lambda)
}

func toVecs(triples [][]float64) []r3.Vec {
	vecs := make([]r3.Vec, len(triples))
	for i, t := range triples {
		vecs[i] = r3.Vec{X: t[0], Y: t[1], Z: t[2]}
	}
	return vecs
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "len":
		return fmt.Sprintf("must have exactly %s entries", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed validation: %s", fe.Tag())
	}
}
