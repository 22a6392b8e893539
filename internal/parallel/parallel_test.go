package parallel

import (
	"testing"

	evalerr "github.com/gridwave/bempot/internal/errors"
)

func TestFixed(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		n       int
		wantErr bool
	}{
		"one thread":      {n: 1},
		"several threads": {n: 8},
		"large count":     {n: 1024},
		"zero":            {n: 0, wantErr: true},
		"negative":        {n: -2, wantErr: true},
		"auto sentinel rejected by fixed": {
			n:       AutoThreads,
			wantErr: true,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			opts, err := Fixed(tt.n)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("Fixed(%d) = %v, want error", tt.n, opts)
				}
				if !evalerr.IsInvalidArgument(err) {
					t.Errorf("Fixed(%d) error = %v, want invalid-argument", tt.n, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Fixed(%d) unexpected error: %v", tt.n, err)
			}
			got, ok := opts.MaxThreadCount()
			if !ok || got != tt.n {
				t.Errorf("MaxThreadCount() = (%d, %v), want (%d, true)", got, ok, tt.n)
			}
		})
	}
}

func TestFromThreadCount(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		n        int
		wantAuto bool
		wantErr  bool
	}{
		"auto sentinel": {n: AutoThreads, wantAuto: true},
		"positive":      {n: 4},
		"zero":          {n: 0, wantErr: true},
		"negative two":  {n: -2, wantErr: true},
		"very negative": {n: -100, wantErr: true},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			opts, err := FromThreadCount(tt.n)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("FromThreadCount(%d) = %v, want error", tt.n, opts)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromThreadCount(%d) unexpected error: %v", tt.n, err)
			}
			if opts.IsAutomatic() != tt.wantAuto {
				t.Errorf("IsAutomatic() = %v, want %v", opts.IsAutomatic(), tt.wantAuto)
			}
			if opts.ThreadCount() != tt.n {
				t.Errorf("ThreadCount() = %d, want round-trip of %d", opts.ThreadCount(), tt.n)
			}
		})
	}
}

func TestZeroValueIsAutomatic(t *testing.T) {
	t.Parallel()

	var opts Options
	if !opts.IsAutomatic() {
		t.Error("zero value should be the automatic policy")
	}
	if opts != Automatic() {
		t.Error("zero value should equal Automatic()")
	}
	if got := opts.ThreadCount(); got != AutoThreads {
		t.Errorf("ThreadCount() = %d, want %d", got, AutoThreads)
	}
	if _, ok := opts.MaxThreadCount(); ok {
		t.Error("MaxThreadCount() should report no fixed count for automatic policy")
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	fixed, err := Fixed(3)
	if err != nil {
		t.Fatalf("Fixed(3) unexpected error: %v", err)
	}
	if got := fixed.Resolve(); got != 3 {
		t.Errorf("Resolve() = %d, want 3", got)
	}

	if got := Automatic().Resolve(); got < 1 {
		t.Errorf("Resolve() = %d for automatic policy, want >= 1", got)
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	if got := Automatic().String(); got != "automatic" {
		t.Errorf("String() = %q, want %q", got, "automatic")
	}
	fixed, _ := Fixed(2)
	if got := fixed.String(); got != "2 threads" {
		t.Errorf("String() = %q, want %q", got, "2 threads")
	}
}
