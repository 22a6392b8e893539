package problem

import (
	"os"
	"path/filepath"
	"testing"

	evalerr "github.com/gridwave/bempot/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `kernel: laplace
sources:
  - [0, 0, 0]
  - [1, 0, 0]
weights: [0.5, 0.5]
density: [1, 1]
targets:
  - [0.5, 0, 2]
`

const validJSON = `{
  "kernel": "yukawa",
  "lambda": 0.5,
  "sources": [[0, 0, 0], [1, 0, 0]],
  "weights": [0.5, 0.5],
  "density": [1, 2],
  "targets": [[0.5, 0, 2]]
}`

func writeProblem(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	def, err := Load(writeProblem(t, "problem.yml", validYAML))
	require.NoError(t, err)

	assert.Equal(t, "laplace", def.Kernel)
	assert.Len(t, def.Sources, 2)
	assert.Len(t, def.Targets, 1)

	rule, err := def.Rule()
	require.NoError(t, err)
	assert.Equal(t, 2, rule.Len())

	targets := def.TargetPoints()
	require.Len(t, targets, 1)
	assert.Equal(t, 2.0, targets[0].Z)

	k, err := def.BuildKernel()
	require.NoError(t, err)
	assert.Equal(t, "laplace", k.Name())
}

func TestLoadJSON(t *testing.T) {
	t.Parallel()

	def, err := Load(writeProblem(t, "problem.json", validJSON))
	require.NoError(t, err)

	assert.Equal(t, "yukawa", def.Kernel)
	assert.Equal(t, 0.5, def.Lambda)

	k, err := def.BuildKernel()
	require.NoError(t, err)
	assert.Equal(t, "yukawa", k.Name())
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	assert.True(t, evalerr.IsInvalidArgument(err) || evalerr.AsEvalError(err) != nil)
}

func TestLoadMalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := Load(writeProblem(t, "broken.yml", "kernel: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	base := func() Definition {
		return Definition{
			Kernel:  "laplace",
			Sources: [][]float64{{0, 0, 0}, {1, 0, 0}},
			Weights: []float64{0.5, 0.5},
			Density: []float64{1, 1},
			Targets: [][]float64{{0.5, 0, 2}},
		}
	}

	tests := map[string]struct {
		mutate  func(d *Definition)
		wantErr bool
	}{
		"valid": {
			mutate: func(d *Definition) {},
		},
		"missing kernel": {
			mutate:  func(d *Definition) { d.Kernel = "" },
			wantErr: true,
		},
		"unknown kernel": {
			mutate:  func(d *Definition) { d.Kernel = "helmholtz" },
			wantErr: true,
		},
		"negative lambda": {
			mutate:  func(d *Definition) { d.Kernel = "yukawa"; d.Lambda = -1 },
			wantErr: true,
		},
		"no sources": {
			mutate:  func(d *Definition) { d.Sources = nil },
			wantErr: true,
		},
		"source not a triple": {
			mutate:  func(d *Definition) { d.Sources = [][]float64{{0, 0}} },
			wantErr: true,
		},
		"weights length mismatch": {
			mutate:  func(d *Definition) { d.Weights = []float64{1} },
			wantErr: true,
		},
		"density length mismatch": {
			mutate:  func(d *Definition) { d.Density = []float64{1, 2, 3} },
			wantErr: true,
		},
		"no targets": {
			mutate:  func(d *Definition) { d.Targets = nil },
			wantErr: true,
		},
		"target not a triple": {
			mutate:  func(d *Definition) { d.Targets = [][]float64{{1, 2, 3, 4}} },
			wantErr: true,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			d := base()
			tt.mutate(&d)
			err := d.Validate()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
