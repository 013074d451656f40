package check

import "fmt"

// WCAG thresholds.
const (
	thresholdNormalAA  = 4.5
	thresholdNormalAAA = 7.0
	thresholdLargeAA   = 3.0
	thresholdLargeAAA  = 4.5

	largeSizePx     = 18.0
	largeBoldSizePx = 14.0
	boldWeight      = 700
)

// RelativeLuminance computes WCAG relative luminance of an opaque
// color.
func RelativeLuminance(c Color) float64 {
	r := srgbToLinear(float64(c.R) / 255)
	g := srgbToLinear(float64(c.G) / 255)
	b := srgbToLinear(float64(c.B) / 255)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio computes (L1+0.05)/(L2+0.05) with L1 the lighter
// luminance. Symmetric in its arguments.
func ContrastRatio(a, b Color) float64 {
	la := RelativeLuminance(a)
	lb := RelativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// IsLargeText applies the WCAG large-text classification: at least
// 18px, or at least 14px with bold weight. A size of 0 means the size
// was not statically determinable and classifies as normal, the
// stricter assumption.
func IsLargeText(sizePx float64, weight int) bool {
	if sizePx >= largeSizePx {
		return true
	}
	return sizePx >= largeBoldSizePx && weight >= boldWeight
}

// Evaluate produces the contrast verdict for an assembled pair. A pair
// with an unresolvable side yields ErrColorResolve; the caller records
// it as a warning and keeps going.
func Evaluate(pair ContrastPair) (Verdict, error) {
	if pair.Foreground.RGBA == nil {
		return Verdict{}, fmt.Errorf("foreground %q: %w", pair.Foreground.Original, ErrColorResolve)
	}
	if pair.Background.RGBA == nil {
		return Verdict{}, fmt.Errorf("background %q: %w", pair.Background.Original, ErrColorResolve)
	}

	ratio := ContrastRatio(*pair.Foreground.RGBA, *pair.Background.RGBA)
	aa, aaa := thresholdNormalAA, thresholdNormalAAA
	if IsLargeText(pair.FontSizePx, pair.FontWeight) {
		aa, aaa = thresholdLargeAA, thresholdLargeAAA
	}

	v := Verdict{
		Ratio:    ratio,
		MeetsAA:  ratio >= aa,
		MeetsAAA: ratio >= aaa,
	}
	switch {
	case v.MeetsAAA:
		v.Level = LevelPass
	case v.MeetsAA:
		v.Level = LevelAAAOnlyFail
	default:
		v.Level = LevelAAFail
	}
	return v, nil
}
