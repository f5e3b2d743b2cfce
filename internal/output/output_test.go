package output

import (
	"bytes"
	"testing"
)

type sample struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatYAML, false},
		{"yaml", FormatYAML, false},
		{"YML", FormatYAML, false},
		{" json ", FormatJSON, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, expected %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	data := sample{Name: "run", Count: 2}

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Write(&buf, FormatYAML, data); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got, want := buf.String(), "name: run\ncount: 2\n"; got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Write(&buf, FormatJSON, data); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got, want := buf.String(), "{\n  \"name\": \"run\",\n  \"count\": 2\n}\n"; got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if err := Write(&bytes.Buffer{}, Format("toml"), data); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}
