package services

import (
	"image/color"
	"testing"
)

func TestParseCSSColor(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"hex6", "#0a0a0f", color.NRGBA{0x0a, 0x0a, 0x0f, 0xff}, true},
		{"hex3", "#fff", color.NRGBA{0xff, 0xff, 0xff, 0xff}, true},
		{"hex8", "#60a5fa80", color.NRGBA{0x60, 0xa5, 0xfa, 0x80}, true},
		{"rgba", "rgba(255,255,255,0.6)", color.NRGBA{255, 255, 255, 153}, true},
		{"rgb", "rgb(16, 32, 48)", color.NRGBA{16, 32, 48, 255}, true},
		{"spaces", "  #ffffff  ", color.NRGBA{255, 255, 255, 255}, true},
		{"named_unsupported", "rebeccapurple", color.NRGBA{}, false},
		{"garbage", "#zzz", color.NRGBA{}, false},
		{"bad_rgba_range", "rgba(300,0,0,1)", color.NRGBA{}, false},
		{"empty", "", color.NRGBA{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseCSSColor(tc.in)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Errorf("color = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestParseLinearGradient(t *testing.T) {
	grad, ok := parseLinearGradient("linear-gradient(135deg, #0a0a0f 0%, #111118 100%)", 1080, 1350)
	if !ok || grad == nil {
		t.Fatal("expected valid gradient")
	}

	// rgba stops contain nested commas and must survive splitting.
	grad, ok = parseLinearGradient("linear-gradient(90deg, rgba(0,0,0,1) 0%, rgba(255,255,255,0.5) 100%)", 100, 100)
	if !ok || grad == nil {
		t.Fatal("expected valid gradient with rgba stops")
	}

	// Missing angle defaults to "to bottom"; missing positions spread
	// evenly.
	grad, ok = parseLinearGradient("linear-gradient(#000000, #ffffff)", 100, 100)
	if !ok || grad == nil {
		t.Fatal("expected valid two-stop gradient without angle")
	}
}

func TestParseLinearGradientRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"radial-gradient(#000, #fff)",
		"linear-gradient(135deg)",
		"linear-gradient(135deg, #000000)",
		"linear-gradient(135deg, nope, alsono)",
		"solid #fff",
	}
	for _, in := range cases {
		if _, ok := parseLinearGradient(in, 100, 100); ok {
			t.Errorf("parseLinearGradient(%q) accepted, want reject", in)
		}
	}
}

func TestSplitTopLevel(t *testing.T) {
	got := splitTopLevel("135deg, rgba(0,0,0,1) 0%, #fff 100%")
	if len(got) != 3 {
		t.Fatalf("parts = %d (%q), want 3", len(got), got)
	}
}
