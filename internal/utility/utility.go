// Package utility resolves Tailwind-style utility classes to colors
// and typography. The palette is a module-level constant table,
// initialized once and never mutated, so it is shared across
// concurrent file runs without synchronization.
package utility

import (
	"strings"

	"huelint/check"
)

// Palette implements check.UtilityResolver over static lookup tables.
type Palette struct{}

// Default returns the built-in palette.
func Default() *Palette { return &Palette{} }

// TextColor resolves text-* color classes.
func (*Palette) TextColor(class string) *check.Color {
	name, ok := strings.CutPrefix(class, "text-")
	if !ok {
		return nil
	}
	return paletteColor(name)
}

// BackgroundColor resolves bg-* classes; bg-transparent resolves to a
// fully translucent color so the surface behind it shows through.
func (*Palette) BackgroundColor(class string) *check.Color {
	name, ok := strings.CutPrefix(class, "bg-")
	if !ok {
		return nil
	}
	if name == "transparent" {
		c := check.Color{A: 0}
		return &c
	}
	return paletteColor(name)
}

// FontSizePx resolves text size classes (text-sm, text-2xl, ...).
func (*Palette) FontSizePx(class string) (float64, bool) {
	name, ok := strings.CutPrefix(class, "text-")
	if !ok {
		return 0, false
	}
	px, ok := fontSizes[name]
	return px, ok
}

// FontWeight resolves font weight classes (font-bold, ...).
func (*Palette) FontWeight(class string) (int, bool) {
	name, ok := strings.CutPrefix(class, "font-")
	if !ok {
		return 0, false
	}
	w, ok := fontWeights[name]
	return w, ok
}

func paletteColor(name string) *check.Color {
	v, ok := palette[name]
	if !ok {
		return nil
	}
	c := check.RGB(uint8(v>>16), uint8(v>>8), uint8(v))
	return &c
}

var fontSizes = map[string]float64{
	"xs":   12,
	"sm":   14,
	"base": 16,
	"lg":   18,
	"xl":   20,
	"2xl":  24,
	"3xl":  30,
	"4xl":  36,
	"5xl":  48,
	"6xl":  60,
}

var fontWeights = map[string]int{
	"thin":       100,
	"extralight": 200,
	"light":      300,
	"normal":     400,
	"medium":     500,
	"semibold":   600,
	"bold":       700,
	"extrabold":  800,
	"black":      900,
}

// palette holds the color utility values, packed 0xRRGGBB.
var palette = map[string]uint32{
	"white": 0xffffff,
	"black": 0x000000,

	"gray-50": 0xf9fafb, "gray-100": 0xf3f4f6, "gray-200": 0xe5e7eb,
	"gray-300": 0xd1d5db, "gray-400": 0x9ca3af, "gray-500": 0x6b7280,
	"gray-600": 0x4b5563, "gray-700": 0x374151, "gray-800": 0x1f2937,
	"gray-900": 0x111827,

	"red-50": 0xfef2f2, "red-100": 0xfee2e2, "red-200": 0xfecaca,
	"red-300": 0xfca5a5, "red-400": 0xf87171, "red-500": 0xef4444,
	"red-600": 0xdc2626, "red-700": 0xb91c1c, "red-800": 0x991b1b,
	"red-900": 0x7f1d1d,

	"orange-50": 0xfff7ed, "orange-100": 0xffedd5, "orange-200": 0xfed7aa,
	"orange-300": 0xfdba74, "orange-400": 0xfb923c, "orange-500": 0xf97316,
	"orange-600": 0xea580c, "orange-700": 0xc2410c, "orange-800": 0x9a3412,
	"orange-900": 0x7c2d12,

	"yellow-50": 0xfefce8, "yellow-100": 0xfef9c3, "yellow-200": 0xfef08a,
	"yellow-300": 0xfde047, "yellow-400": 0xfacc15, "yellow-500": 0xeab308,
	"yellow-600": 0xca8a04, "yellow-700": 0xa16207, "yellow-800": 0x854d0e,
	"yellow-900": 0x713f12,

	"green-50": 0xf0fdf4, "green-100": 0xdcfce7, "green-200": 0xbbf7d0,
	"green-300": 0x86efac, "green-400": 0x4ade80, "green-500": 0x22c55e,
	"green-600": 0x16a34a, "green-700": 0x15803d, "green-800": 0x166534,
	"green-900": 0x14532d,

	"teal-50": 0xf0fdfa, "teal-100": 0xccfbf1, "teal-200": 0x99f6e4,
	"teal-300": 0x5eead4, "teal-400": 0x2dd4bf, "teal-500": 0x14b8a6,
	"teal-600": 0x0d9488, "teal-700": 0x0f766e, "teal-800": 0x115e59,
	"teal-900": 0x134e4a,

	"blue-50": 0xeff6ff, "blue-100": 0xdbeafe, "blue-200": 0xbfdbfe,
	"blue-300": 0x93c5fd, "blue-400": 0x60a5fa, "blue-500": 0x3b82f6,
	"blue-600": 0x2563eb, "blue-700": 0x1d4ed8, "blue-800": 0x1e40af,
	"blue-900": 0x1e3a8a,

	"indigo-50": 0xeef2ff, "indigo-100": 0xe0e7ff, "indigo-200": 0xc7d2fe,
	"indigo-300": 0xa5b4fc, "indigo-400": 0x818cf8, "indigo-500": 0x6366f1,
	"indigo-600": 0x4f46e5, "indigo-700": 0x4338ca, "indigo-800": 0x3730a3,
	"indigo-900": 0x312e81,

	"purple-50": 0xfaf5ff, "purple-100": 0xf3e8ff, "purple-200": 0xe9d5ff,
	"purple-300": 0xd8b4fe, "purple-400": 0xc084fc, "purple-500": 0xa855f7,
	"purple-600": 0x9333ea, "purple-700": 0x7e22ce, "purple-800": 0x6b21a8,
	"purple-900": 0x581c87,

	"pink-50": 0xfdf2f8, "pink-100": 0xfce7f3, "pink-200": 0xfbcfe8,
	"pink-300": 0xf9a8d4, "pink-400": 0xf472b6, "pink-500": 0xec4899,
	"pink-600": 0xdb2777, "pink-700": 0xbe185d, "pink-800": 0x9d174d,
	"pink-900": 0x831843,
}
