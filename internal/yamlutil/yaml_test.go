package yamlutil_test

// Notes:
// - Marshal error branch is not tested: yaml.Marshal only fails on
//   unmarshalable types (channels, functions) that never reach it

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-wiki2pdf/internal/yamlutil"
)

type testConfig struct {
	Name    string `yaml:"name"`
	Count   int    `yaml:"count"`
	Enabled bool   `yaml:"enabled"`
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    testConfig
		wantErr error
		anyErr  bool
	}{
		{
			name:  "all fields",
			input: "name: wiki\ncount: 3\nenabled: true\n",
			want:  testConfig{Name: "wiki", Count: 3, Enabled: true},
		},
		{
			name:  "absent fields keep defaults",
			input: "name: wiki\n",
			want:  testConfig{Name: "wiki", Count: 7},
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:   "unknown field rejected",
			input:  "name: wiki\ncolour: red\n",
			anyErr: true,
		},
		{
			name:   "type mismatch",
			input:  "count: many\n",
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := testConfig{Count: 7}
			err := yamlutil.UnmarshalStrict([]byte(tt.input), &got)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("UnmarshalStrict() error = %v, want %v", err, tt.wantErr)
				}
			case tt.anyErr:
				if err == nil {
					t.Error("UnmarshalStrict() error = nil, want error")
				}
			default:
				if err != nil {
					t.Fatalf("UnmarshalStrict() error = %v", err)
				}
				if got != tt.want {
					t.Errorf("UnmarshalStrict() = %+v, want %+v", got, tt.want)
				}
			}
		})
	}
}

func TestUnmarshalStrict_Limits(t *testing.T) {
	t.Parallel()

	if err := yamlutil.UnmarshalStrict([]byte("name: x"), nil); !errors.Is(err, yamlutil.ErrNilDestination) {
		t.Errorf("nil destination error = %v, want ErrNilDestination", err)
	}

	big := "name: " + strings.Repeat("x", yamlutil.MaxInputSize) + "\n"
	var cfg testConfig
	if err := yamlutil.UnmarshalStrict([]byte(big), &cfg); !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("oversized input error = %v, want ErrInputTooLarge", err)
	}
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	out, err := yamlutil.Marshal(testConfig{Name: "wiki", Count: 2})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, want := range []string{"name: wiki", "count: 2", "enabled: false"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("Marshal() = %q, missing %q", out, want)
		}
	}
}
