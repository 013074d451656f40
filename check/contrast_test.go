package check

import (
	"errors"
	"math"
	"testing"
)

func TestRelativeLuminance(t *testing.T) {
	t.Parallel()
	if got := RelativeLuminance(RGB(0, 0, 0)); got != 0 {
		t.Fatalf("black luminance = %v", got)
	}
	if got := RelativeLuminance(RGB(255, 255, 255)); math.Abs(got-1) > 1e-9 {
		t.Fatalf("white luminance = %v", got)
	}
	// green contributes the most, blue the least
	lr := RelativeLuminance(RGB(255, 0, 0))
	lg := RelativeLuminance(RGB(0, 255, 0))
	lb := RelativeLuminance(RGB(0, 0, 255))
	if !(lg > lr && lr > lb) {
		t.Fatalf("channel weights out of order: r=%v g=%v b=%v", lr, lg, lb)
	}
}

func TestContrastRatio(t *testing.T) {
	t.Parallel()
	black := RGB(0, 0, 0)
	white := RGB(255, 255, 255)

	if got := ContrastRatio(black, white); math.Abs(got-21) > 1e-9 {
		t.Fatalf("black/white ratio = %v, expected 21", got)
	}
	if got := ContrastRatio(black, black); math.Abs(got-1) > 1e-9 {
		t.Fatalf("same color ratio = %v, expected 1", got)
	}
	a, b := RGB(0x76, 0x76, 0x76), white
	if ContrastRatio(a, b) != ContrastRatio(b, a) {
		t.Fatal("ratio not symmetric")
	}
	// #767676 on white is the canonical just-passes-AA gray
	if got := ContrastRatio(a, b); got < 4.5 || got > 4.6 {
		t.Fatalf("#767676/white ratio = %v, expected ~4.54", got)
	}
}

func TestIsLargeText(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		sizePx   float64
		weight   int
		expected bool
	}{
		{"18px_regular", 18, 400, true},
		{"just_under_18px", 17.9, 400, false},
		{"14px_bold", 14, 700, true},
		{"14px_almost_bold", 14, 699, false},
		{"13px_bold", 13.9, 700, false},
		{"unknown_size_bold", 0, 900, false},
		{"huge", 72, 100, true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := IsLargeText(tc.sizePx, tc.weight); got != tc.expected {
				t.Fatalf("IsLargeText(%v, %d) = %v, expected %v", tc.sizePx, tc.weight, got, tc.expected)
			}
		})
	}
}

func infoOf(c Color) ColorInfo {
	return ColorInfo{Original: c.Hex(), RGBA: &c}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	t.Run("pass", func(t *testing.T) {
		t.Parallel()
		v, err := Evaluate(ContrastPair{Foreground: infoOf(RGB(0, 0, 0)), Background: infoOf(RGB(255, 255, 255))})
		if err != nil {
			t.Fatal(err)
		}
		if v.Level != LevelPass || !v.MeetsAA || !v.MeetsAAA {
			t.Fatalf("verdict = %+v", v)
		}
	})

	t.Run("aa_only_normal_text", func(t *testing.T) {
		t.Parallel()
		v, err := Evaluate(ContrastPair{Foreground: infoOf(RGB(0x76, 0x76, 0x76)), Background: infoOf(RGB(255, 255, 255))})
		if err != nil {
			t.Fatal(err)
		}
		if v.Level != LevelAAAOnlyFail || !v.MeetsAA || v.MeetsAAA {
			t.Fatalf("verdict = %+v", v)
		}
	})

	t.Run("same_pair_passes_as_large_text", func(t *testing.T) {
		t.Parallel()
		v, err := Evaluate(ContrastPair{
			Foreground: infoOf(RGB(0x76, 0x76, 0x76)),
			Background: infoOf(RGB(255, 255, 255)),
			FontSizePx: 18,
		})
		if err != nil {
			t.Fatal(err)
		}
		if v.Level != LevelPass {
			t.Fatalf("verdict = %+v", v)
		}
	})

	t.Run("fail", func(t *testing.T) {
		t.Parallel()
		v, err := Evaluate(ContrastPair{Foreground: infoOf(RGB(200, 200, 200)), Background: infoOf(RGB(255, 255, 255))})
		if err != nil {
			t.Fatal(err)
		}
		if v.Level != LevelAAFail || v.MeetsAA {
			t.Fatalf("verdict = %+v", v)
		}
	})

	t.Run("unresolved_foreground", func(t *testing.T) {
		t.Parallel()
		_, err := Evaluate(ContrastPair{
			Foreground: ColorInfo{Original: "var(--missing)"},
			Background: infoOf(RGB(255, 255, 255)),
		})
		if !errors.Is(err, ErrColorResolve) {
			t.Fatalf("err = %v, expected ErrColorResolve", err)
		}
	})

	t.Run("unresolved_background", func(t *testing.T) {
		t.Parallel()
		_, err := Evaluate(ContrastPair{
			Foreground: infoOf(RGB(0, 0, 0)),
			Background: ColorInfo{Original: "oops"},
		})
		if !errors.Is(err, ErrColorResolve) {
			t.Fatalf("err = %v, expected ErrColorResolve", err)
		}
	})
}
