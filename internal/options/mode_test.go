package options

import "testing"

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    Mode
		wantErr bool
	}{
		"dense":          {input: "dense", want: ModeDense},
		"hmat":           {input: "hmat", want: ModeHMat},
		"uppercase":      {input: "HMAT", want: ModeHMat},
		"mixed case":     {input: "Dense", want: ModeDense},
		"padded":         {input: " hmat ", want: ModeHMat},
		"unknown mode":   {input: "sparse", wantErr: true},
		"empty string":   {input: "", wantErr: true},
		"legacy tbb tag": {input: "tbb", wantErr: true},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseMode(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseMode(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMode(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	t.Parallel()

	if got := ModeDense.String(); got != "dense" {
		t.Errorf("ModeDense.String() = %q, want dense", got)
	}
	if got := ModeHMat.String(); got != "hmat" {
		t.Errorf("ModeHMat.String() = %q, want hmat", got)
	}
	if got := Mode(42).String(); got != "unknown" {
		t.Errorf("Mode(42).String() = %q, want unknown", got)
	}
}
