package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gridwave/bempot/internal/options"
)

// isolateConfigDirs points every config search path at empty temp directories
// so tests never pick up the developer's real configuration. Not compatible
// with t.Parallel.
func isolateConfigDirs(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	isolateConfigDirs(t)

	list, err := Load("")
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if mode, err := list.String("evaluationMode", ""); err != nil || mode != "dense" {
		t.Errorf("evaluationMode = (%q, %v), want dense", mode, err)
	}
	if n, err := list.Int("maxThreadCount", 0); err != nil || n != -1 {
		t.Errorf("maxThreadCount = (%d, %v), want -1", n, err)
	}
	if tol, err := list.Float("hmat.tolerance", 0); err != nil || tol != 1e-4 {
		t.Errorf("hmat.tolerance = (%g, %v), want 1e-04", tol, err)
	}
}

func TestLoadProjectConfigOverridesDefaults(t *testing.T) {
	isolateConfigDirs(t)

	path := writeConfig(t, `evaluationMode: hmat
maxThreadCount: 4
hmat:
  leafSize: 16
customKey: kept
`)

	list, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if mode, _ := list.String("evaluationMode", ""); mode != "hmat" {
		t.Errorf("evaluationMode = %q, want hmat", mode)
	}
	if n, _ := list.Int("maxThreadCount", 0); n != 4 {
		t.Errorf("maxThreadCount = %d, want 4", n)
	}
	if leaf, _ := list.Int("hmat.leafSize", 0); leaf != 16 {
		t.Errorf("hmat.leafSize = %d, want 16", leaf)
	}
	// Untouched sibling keys keep their defaults.
	if rank, _ := list.Int("hmat.maxRank", 0); rank != 64 {
		t.Errorf("hmat.maxRank = %d, want default 64", rank)
	}
	// Unrecognized keys pass through.
	if s, _ := list.String("customKey", ""); s != "kept" {
		t.Errorf("customKey = %q, want kept", s)
	}
}

func TestEnvironmentOverridesProjectConfig(t *testing.T) {
	isolateConfigDirs(t)

	path := writeConfig(t, "maxThreadCount: 4\n")
	t.Setenv("BEMPOT_MAX_THREAD_COUNT", "8")
	t.Setenv("BEMPOT_VERBOSITY_LEVEL", "high")
	t.Setenv("BEMPOT_HMAT_LEAF_SIZE", "128")
	t.Setenv("BEMPOT_HMAT_TOLERANCE", "1e-6")

	list, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if n, err := list.Int("maxThreadCount", 0); err != nil || n != 8 {
		t.Errorf("maxThreadCount = (%d, %v), want 8 from environment", n, err)
	}
	if level, _ := list.String("verbosityLevel", ""); level != "high" {
		t.Errorf("verbosityLevel = %q, want high from environment", level)
	}
	if leaf, _ := list.Int("hmat.leafSize", 0); leaf != 128 {
		t.Errorf("hmat.leafSize = %d, want 128 from environment", leaf)
	}
	if tol, _ := list.Float("hmat.tolerance", 0); tol != 1e-6 {
		t.Errorf("hmat.tolerance = %g, want 1e-06 from environment", tol)
	}
}

func TestLoadLegacyJSONWithWarning(t *testing.T) {
	isolateConfigDirs(t)

	if err := os.MkdirAll(".bempot", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	legacy := `{"evaluationMode": "hmat", "maxThreadCount": 2}`
	if err := os.WriteFile(filepath.Join(".bempot", "config.json"), []byte(legacy), 0o644); err != nil {
		t.Fatalf("writing legacy config: %v", err)
	}

	var warnings bytes.Buffer
	list, err := LoadWithOptions(LoadOptions{WarningWriter: &warnings})
	if err != nil {
		t.Fatalf("LoadWithOptions() unexpected error: %v", err)
	}

	if mode, _ := list.String("evaluationMode", ""); mode != "hmat" {
		t.Errorf("evaluationMode = %q, want hmat from legacy JSON", mode)
	}
	if n, _ := list.Int("maxThreadCount", 0); n != 2 {
		t.Errorf("maxThreadCount = %d, want 2 from legacy JSON", n)
	}
	if !strings.Contains(warnings.String(), "deprecated JSON config") {
		t.Errorf("warning output = %q, want deprecation notice", warnings.String())
	}
}

func TestLegacyJSONWarningSuppressed(t *testing.T) {
	isolateConfigDirs(t)

	if err := os.MkdirAll(".bempot", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(".bempot", "config.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatalf("writing legacy config: %v", err)
	}

	var warnings bytes.Buffer
	if _, err := LoadWithOptions(LoadOptions{WarningWriter: &warnings, SkipWarnings: true}); err != nil {
		t.Fatalf("LoadWithOptions() unexpected error: %v", err)
	}
	if warnings.Len() != 0 {
		t.Errorf("warning output = %q, want none with SkipWarnings", warnings.String())
	}
}

func TestYAMLProjectConfigPreferredOverLegacyJSON(t *testing.T) {
	isolateConfigDirs(t)

	if err := os.MkdirAll(".bempot", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(".bempot", "config.yml"), []byte("maxThreadCount: 3\n"), 0o644); err != nil {
		t.Fatalf("writing yaml config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(".bempot", "config.json"), []byte(`{"maxThreadCount": 9}`), 0o644); err != nil {
		t.Fatalf("writing legacy config: %v", err)
	}

	list, err := Load("")
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if n, _ := list.Int("maxThreadCount", 0); n != 3 {
		t.Errorf("maxThreadCount = %d, want 3 from YAML config", n)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	isolateConfigDirs(t)

	path := writeConfig(t, "maxThreadCount: [unclosed\n")
	if _, err := Load(path); err == nil {
		t.Error("Load() accepted malformed YAML, want error")
	}
}

func TestLoadEvaluationOptions(t *testing.T) {
	isolateConfigDirs(t)

	path := writeConfig(t, `evaluationMode: hmat
maxThreadCount: 4
verbosityLevel: high
`)

	opts, err := LoadEvaluationOptions(path)
	if err != nil {
		t.Fatalf("LoadEvaluationOptions() unexpected error: %v", err)
	}

	if got := opts.EvaluationMode(); got != options.ModeHMat {
		t.Errorf("EvaluationMode() = %v, want hmat", got)
	}
	if n, ok := opts.ParallelizationOptions().MaxThreadCount(); !ok || n != 4 {
		t.Errorf("MaxThreadCount() = (%d, %v), want (4, true)", n, ok)
	}
}

func TestLoadEvaluationOptionsRejectsInvalidConfig(t *testing.T) {
	isolateConfigDirs(t)

	path := writeConfig(t, "maxThreadCount: 0\n")
	if _, err := LoadEvaluationOptions(path); err == nil {
		t.Error("LoadEvaluationOptions() accepted a zero thread count, want error")
	}
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		env  string
		want string
	}{
		"simple key":      {env: "BEMPOT_VERBOSITY_LEVEL", want: "verbosityLevel"},
		"multi token":     {env: "BEMPOT_MAX_THREAD_COUNT", want: "maxThreadCount"},
		"hmat subtree":    {env: "BEMPOT_HMAT_LEAF_SIZE", want: "hmat.leafSize"},
		"hmat single":     {env: "BEMPOT_HMAT_ETA", want: "hmat.eta"},
		"single token":    {env: "BEMPOT_KERNEL", want: "kernel"},
		"already lowered": {env: "BEMPOT_kernel", want: "kernel"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := envTransform(tt.env); got != tt.want {
				t.Errorf("envTransform(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestParseEnvValue(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		value string
		want  interface{}
	}{
		"integer":        {value: "8", want: 8},
		"negative":       {value: "-1", want: -1},
		"float":          {value: "1e-6", want: 1e-6},
		"bool":           {value: "true", want: true},
		"string":         {value: "hmat", want: "hmat"},
		"padded integer": {value: " 4 ", want: 4},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := parseEnvValue(tt.value); got != tt.want {
				t.Errorf("parseEnvValue(%q) = %v (%T), want %v (%T)", tt.value, got, got, tt.want, tt.want)
			}
		})
	}
}
