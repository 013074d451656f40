package utility

import (
	"testing"

	"huelint/check"
)

func TestPaletteColors(t *testing.T) {
	t.Parallel()
	p := Default()

	tests := []struct {
		name     string
		class    string
		bg       bool
		expected *check.Color
	}{
		{"text_white", "text-white", false, colorOf(255, 255, 255)},
		{"text_gray_700", "text-gray-700", false, colorOf(0x37, 0x41, 0x51)},
		{"bg_blue_900", "bg-blue-900", true, colorOf(0x1e, 0x3a, 0x8a)},
		{"bg_black", "bg-black", true, colorOf(0, 0, 0)},
		{"unknown_shade", "text-gray-950", false, nil},
		{"wrong_prefix", "border-red-500", false, nil},
		{"size_class_not_color", "text-2xl", false, nil},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var got *check.Color
			if tc.bg {
				got = p.BackgroundColor(tc.class)
			} else {
				got = p.TextColor(tc.class)
			}
			if (got == nil) != (tc.expected == nil) {
				t.Fatalf("resolve(%q) = %v, expected %v", tc.class, got, tc.expected)
			}
			if got != nil && *got != *tc.expected {
				t.Fatalf("resolve(%q) = %v, expected %v", tc.class, got, tc.expected)
			}
		})
	}

	if c := p.BackgroundColor("bg-transparent"); c == nil || c.A != 0 {
		t.Fatalf("bg-transparent = %v", c)
	}
}

func colorOf(r, g, b uint8) *check.Color {
	c := check.RGB(r, g, b)
	return &c
}

func TestPaletteTypography(t *testing.T) {
	t.Parallel()
	p := Default()

	if px, ok := p.FontSizePx("text-2xl"); !ok || px != 24 {
		t.Fatalf("text-2xl = (%v, %v)", px, ok)
	}
	if px, ok := p.FontSizePx("text-xs"); !ok || px != 12 {
		t.Fatalf("text-xs = (%v, %v)", px, ok)
	}
	if _, ok := p.FontSizePx("text-gray-500"); ok {
		t.Fatal("color class resolved as size")
	}
	if w, ok := p.FontWeight("font-bold"); !ok || w != 700 {
		t.Fatalf("font-bold = (%d, %v)", w, ok)
	}
	if w, ok := p.FontWeight("font-thin"); !ok || w != 100 {
		t.Fatalf("font-thin = (%d, %v)", w, ok)
	}
	if _, ok := p.FontWeight("font-cursive"); ok {
		t.Fatal("unknown weight resolved")
	}
}
