package render

import (
	"strings"
	"testing"
)

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>
<svg width="134pt" height="52pt" viewBox="0.00 0.00 134.00 52.00" xmlns="http://www.w3.org/2000/svg">
<g class="graph"></g>
</svg>`)

	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 134.00 52.00" width="134" height="52">`
	if !strings.Contains(got, want) {
		t.Errorf("normalizeViewBox did not rewrite svg tag:\ngot  %s\nwant substring %s", got, want)
	}
	if strings.Contains(got, "134pt") {
		t.Errorf("normalizeViewBox left point units in place:\n%s", got)
	}
}

func TestNormalizeViewBoxOffsetOrigin(t *testing.T) {
	in := []byte(`<svg width="10pt" height="10pt" viewBox="4.00 8.00 120.50 64.25">body</svg>`)

	got := string(normalizeViewBox(in))
	want := `viewBox="0 0 120.50 64.25"`
	if !strings.Contains(got, want) {
		t.Errorf("normalizeViewBox did not move viewBox to origin:\ngot  %s\nwant substring %s", got, want)
	}
}

func TestNormalizeViewBoxPassthrough(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"no viewBox", `<svg width="10" height="10">body</svg>`},
		{"zero dimensions", `<svg viewBox="0 0 0 0">body</svg>`},
		{"not svg", `digraph {}`},
	}
	for _, tt := range tests {
		if got := string(normalizeViewBox([]byte(tt.in))); got != tt.in {
			t.Errorf("%s: normalizeViewBox rewrote input:\ngot  %s\nwant %s", tt.name, got, tt.in)
		}
	}
}
