package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestCategoryString(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		category Category
		want     string
	}{
		"invalid argument": {category: InvalidArgument, want: "Invalid Argument"},
		"configuration":    {category: Configuration, want: "Configuration Error"},
		"assembly":         {category: Assembly, want: "Assembly Error"},
		"runtime":          {category: Runtime, want: "Runtime Error"},
		"unknown":          {category: Category(99), want: "Error"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := tt.category.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewInvalidArgument(t *testing.T) {
	t.Parallel()

	err := NewInvalidArgument("bad value", "try something else")
	if err.Category != InvalidArgument {
		t.Errorf("Category = %v, want InvalidArgument", err.Category)
	}
	if err.Error() != "bad value" {
		t.Errorf("Error() = %q, want %q", err.Error(), "bad value")
	}
	if len(err.Remediation) != 1 {
		t.Errorf("Remediation = %v, want one entry", err.Remediation)
	}
}

func TestIsInvalidArgument(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want bool
	}{
		"invalid argument":      {err: NewInvalidArgument("x"), want: true},
		"config error":          {err: NewConfigError("x"), want: false},
		"plain error":           {err: stderrors.New("x"), want: false},
		"nil":                   {err: nil, want: false},
		"wrapped in fmt.Errorf": {err: fmt.Errorf("ctx: %w", NewInvalidArgument("x")), want: true},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := IsInvalidArgument(tt.err); got != tt.want {
				t.Errorf("IsInvalidArgument() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	inner := stderrors.New("disk on fire")
	wrapped := Wrap(inner, Runtime)
	if wrapped.Category != Runtime {
		t.Errorf("Category = %v, want Runtime", wrapped.Category)
	}
	if wrapped.Message != "disk on fire" {
		t.Errorf("Message = %q, want original message", wrapped.Message)
	}

	if Wrap(nil, Runtime) != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestWrapWithMessage(t *testing.T) {
	t.Parallel()

	inner := stderrors.New("boom")
	wrapped := WrapWithMessage(inner, Assembly, "assembling operator")
	want := "assembling operator: boom"
	if wrapped.Message != want {
		t.Errorf("Message = %q, want %q", wrapped.Message, want)
	}

	if WrapWithMessage(nil, Assembly, "x") != nil {
		t.Error("WrapWithMessage(nil) should return nil")
	}
}

func TestAsEvalError(t *testing.T) {
	t.Parallel()

	orig := NewAssemblyError("blocks failed")
	if got := AsEvalError(orig); got != orig {
		t.Errorf("AsEvalError() = %v, want original", got)
	}
	if got := AsEvalError(stderrors.New("plain")); got != nil {
		t.Errorf("AsEvalError(plain) = %v, want nil", got)
	}
	if got := AsEvalError(fmt.Errorf("outer: %w", orig)); got != orig {
		t.Errorf("AsEvalError(wrapped) = %v, want original", got)
	}
}

func TestMessageTemplates(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err          *EvalError
		wantContains string
	}{
		"invalid thread count": {err: InvalidThreadCount(0), wantContains: "got 0"},
		"unknown mode":         {err: UnknownEvaluationMode("sparse"), wantContains: `"sparse"`},
		"unknown verbosity":    {err: UnknownVerbosityLevel("loud"), wantContains: `"loud"`},
		"missing problem file": {err: MissingProblemFile("p.yml"), wantContains: "p.yml"},
		"unknown kernel":       {err: UnknownKernel("helmholtz"), wantContains: `"helmholtz"`},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Category != InvalidArgument {
				t.Errorf("Category = %v, want InvalidArgument", tt.err.Category)
			}
			if !strings.Contains(tt.err.Message, tt.wantContains) {
				t.Errorf("Message = %q, want to contain %q", tt.err.Message, tt.wantContains)
			}
			if len(tt.err.Remediation) == 0 {
				t.Error("message templates should carry remediation steps")
			}
		})
	}
}
