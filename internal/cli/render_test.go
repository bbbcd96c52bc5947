package cli

import (
	"slices"
	"testing"

	"github.com/listviz/listviz/pkg/render"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback string
		want     []render.Format
		wantErr  bool
	}{
		{"single", "svg", "png", []render.Format{render.SVG}, false},
		{"multiple", "svg,png", "svg", []render.Format{render.SVG, render.PNG}, false},
		{"spaces", " svg , png ", "svg", []render.Format{render.SVG, render.PNG}, false},
		{"empty uses fallback", "", "png", []render.Format{render.PNG}, false},
		{"invalid", "pdf", "svg", nil, true},
		{"invalid among valid", "svg,pdf", "svg", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFormats(tt.input, tt.fallback)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseFormats(%q) should fail", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseFormats(%q) error: %v", tt.input, err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		dir    string
		format render.Format
		want   string
	}{
		{"next to input", "graphs/a.dot", "", render.SVG, "graphs/a.svg"},
		{"output directory", "graphs/a.dot", "out", render.PNG, "out/a.png"},
		{"bare name", "a.dot", "", render.SVG, "a.svg"},
		{"no extension", "graphs/a", "", render.SVG, "graphs/a.svg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := artifactPath(tt.input, tt.dir, tt.format)
			if got != tt.want {
				t.Errorf("artifactPath(%q, %q, %q) = %q, want %q", tt.input, tt.dir, tt.format, got, tt.want)
			}
		})
	}
}
