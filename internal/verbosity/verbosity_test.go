package verbosity

import (
	"log/slog"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    Level
		wantErr bool
	}{
		"low":                   {input: "low", want: Low},
		"default":               {input: "default", want: Default},
		"high":                  {input: "high", want: High},
		"medium alias":          {input: "medium", want: Default},
		"uppercase":             {input: "HIGH", want: High},
		"mixed case":            {input: "Low", want: Low},
		"unknown level":         {input: "verbose", wantErr: true},
		"empty string":          {input: "", wantErr: true},
		"numeric string":     {input: "2", wantErr: true},
		"padding is trimmed": {input: " low ", want: Low},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, level := range Levels() {
		got, err := Parse(level.String())
		if err != nil {
			t.Fatalf("Parse(%q) unexpected error: %v", level.String(), err)
		}
		if got != level {
			t.Errorf("Parse(%q) = %v, want %v", level.String(), got, level)
		}
	}
}

func TestOrdering(t *testing.T) {
	t.Parallel()

	if !(Low < Default && Default < High) {
		t.Errorf("levels are not ordered: Low=%d Default=%d High=%d", Low, Default, High)
	}
}

func TestSlogLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		level Level
		want  slog.Level
	}{
		"low maps to warn":     {level: Low, want: slog.LevelWarn},
		"default maps to info": {level: Default, want: slog.LevelInfo},
		"high maps to debug":   {level: High, want: slog.LevelDebug},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := tt.level.SlogLevel(); got != tt.want {
				t.Errorf("SlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValid(t *testing.T) {
	t.Parallel()

	for _, level := range Levels() {
		if !level.Valid() {
			t.Errorf("Valid() = false for %v", level)
		}
	}
	if Level(99).Valid() {
		t.Error("Valid() = true for out-of-range level")
	}
}
