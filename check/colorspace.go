package check

import (
	"math"
	"strings"
)

// sRGB companding. IEC 61966-2-1 thresholds and exponent.

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func linearToSrgb(c float64) float64 {
	if c <= 0.0031308 {
		return c * 12.92
	}
	return 1.055*math.Pow(c, 1.0/2.4) - 0.055
}

// OKLab. Matrices from the reference implementation by Björn Ottosson,
// as adopted by CSS Color 4.

func rgbToOklab(r, g, b float64) (float64, float64, float64) {
	rl := srgbToLinear(r)
	gl := srgbToLinear(g)
	bl := srgbToLinear(b)

	l := 0.4122214708*rl + 0.5363325363*gl + 0.0514459929*bl
	m := 0.2119034982*rl + 0.6806995451*gl + 0.1073969566*bl
	s := 0.0883024619*rl + 0.2817188376*gl + 0.6299787005*bl

	l = math.Cbrt(l)
	m = math.Cbrt(m)
	s = math.Cbrt(s)

	return 0.2104542553*l + 0.7936177850*m - 0.0040720468*s,
		1.9779984951*l - 2.4285922050*m + 0.4505937099*s,
		0.0259040371*l + 0.7827717662*m - 0.8086757660*s
}

func oklabToRgb(l, a, b float64) (float64, float64, float64) {
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l3 := l_ * l_ * l_
	m3 := m_ * m_ * m_
	s3 := s_ * s_ * s_

	rl := 4.0767416621*l3 - 3.3077115913*m3 + 0.2309699292*s3
	gl := -1.2684380046*l3 + 2.6097574011*m3 - 0.3413193965*s3
	bl := -0.0041960863*l3 - 0.7034186147*m3 + 1.7076147010*s3

	return linearToSrgb(rl), linearToSrgb(gl), linearToSrgb(bl)
}

// CIE Lab, D65 white point.

const (
	d65X = 0.95047
	d65Y = 1.00000
	d65Z = 1.08883
)

func rgbToLab(r, g, b float64) (float64, float64, float64) {
	rl := srgbToLinear(r)
	gl := srgbToLinear(g)
	bl := srgbToLinear(b)

	x := 0.4124564*rl + 0.3575761*gl + 0.1804375*bl
	y := 0.2126729*rl + 0.7151522*gl + 0.0721750*bl
	z := 0.0193339*rl + 0.1191920*gl + 0.9503041*bl

	f := func(t float64) float64 {
		const delta = 6.0 / 29.0
		if t > delta*delta*delta {
			return math.Cbrt(t)
		}
		return t/(3*delta*delta) + 4.0/29.0
	}

	fx := f(x / d65X)
	fy := f(y / d65Y)
	fz := f(z / d65Z)

	return 116*fy - 16, 500 * (fx - fy), 200 * (fy - fz)
}

func labToRgb(l, a, b float64) (float64, float64, float64) {
	fy := (l + 16) / 116
	fx := a/500 + fy
	fz := fy - b/200

	fInv := func(t float64) float64 {
		const delta = 6.0 / 29.0
		if t > delta {
			return t * t * t
		}
		return 3 * delta * delta * (t - 4.0/29.0)
	}

	x := d65X * fInv(fx)
	y := d65Y * fInv(fy)
	z := d65Z * fInv(fz)

	rl := 3.2404542*x - 1.5371385*y - 0.4985314*z
	gl := -0.9692660*x + 1.8760108*y + 0.0415560*z
	bl := 0.0556434*x - 0.2040259*y + 1.0572252*z

	return linearToSrgb(rl), linearToSrgb(gl), linearToSrgb(bl)
}

// HSL. Hue in degrees, saturation and lightness in [0,1].

func rgbToHsl(r, g, b float64) (float64, float64, float64) {
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l := (max + min) / 2

	if max == min {
		return 0, 0, l
	}

	d := max - min
	var s float64
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	var h float64
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h * 60, s, l
}

func hslToRgb(h, s, l float64) (float64, float64, float64) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if s <= 0 {
		return l, l, l
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	hue := func(t float64) float64 {
		if t < 0 {
			t++
		}
		if t > 1 {
			t--
		}
		switch {
		case t < 1.0/6.0:
			return p + (q-p)*6*t
		case t < 1.0/2.0:
			return q
		case t < 2.0/3.0:
			return p + (q-p)*(2.0/3.0-t)*6
		}
		return p
	}

	hn := h / 360
	return hue(hn + 1.0/3.0), hue(hn), hue(hn - 1.0/3.0)
}

func toPolar(a, b float64) (float64, float64) {
	c := math.Sqrt(a*a + b*b)
	h := math.Atan2(b, a) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return c, h
}

func fromPolar(c, h float64) (float64, float64) {
	rad := h * math.Pi / 180
	return c * math.Cos(rad), c * math.Sin(rad)
}

// mixSpace identifies the coordinate systems Mix supports and whether
// the third coordinate is a hue angle.
type mixSpace struct {
	name   string
	hueIdx int // index of the hue coordinate, -1 when rectangular
}

var mixSpaces = map[string]mixSpace{
	"srgb":        {name: "srgb", hueIdx: -1},
	"srgb-linear": {name: "srgb-linear", hueIdx: -1},
	"oklab":       {name: "oklab", hueIdx: -1},
	"oklch":       {name: "oklch", hueIdx: 2},
	"lab":         {name: "lab", hueIdx: -1},
	"lch":         {name: "lch", hueIdx: 2},
	"hsl":         {name: "hsl", hueIdx: 0},
}

func toSpaceCoords(space string, c Color) [3]float64 {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255
	switch space {
	case "srgb":
		return [3]float64{r, g, b}
	case "srgb-linear":
		return [3]float64{srgbToLinear(r), srgbToLinear(g), srgbToLinear(b)}
	case "oklab":
		l, a, bb := rgbToOklab(r, g, b)
		return [3]float64{l, a, bb}
	case "oklch":
		l, a, bb := rgbToOklab(r, g, b)
		ch, h := toPolar(a, bb)
		return [3]float64{l, ch, h}
	case "lab":
		l, a, bb := rgbToLab(r, g, b)
		return [3]float64{l, a, bb}
	case "lch":
		l, a, bb := rgbToLab(r, g, b)
		ch, h := toPolar(a, bb)
		return [3]float64{l, ch, h}
	case "hsl":
		h, s, l := rgbToHsl(r, g, b)
		return [3]float64{h, s, l}
	}
	return [3]float64{}
}

func fromSpaceCoords(space string, v [3]float64) (float64, float64, float64) {
	switch space {
	case "srgb":
		return v[0], v[1], v[2]
	case "srgb-linear":
		return linearToSrgb(v[0]), linearToSrgb(v[1]), linearToSrgb(v[2])
	case "oklab":
		return oklabToRgb(v[0], v[1], v[2])
	case "oklch":
		a, b := fromPolar(v[1], v[2])
		return oklabToRgb(v[0], a, b)
	case "lab":
		return labToRgb(v[0], v[1], v[2])
	case "lch":
		a, b := fromPolar(v[1], v[2])
		return labToRgb(v[0], a, b)
	case "hsl":
		return hslToRgb(v[0], v[1], v[2])
	}
	return 0, 0, 0
}

// mixHue interpolates two hue angles along the shortest circular arc.
func mixHue(h1, h2, w2 float64) float64 {
	d := math.Mod(h2-h1, 360)
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	h := h1 + d*w2
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// PctOmitted is the sentinel passed to Mix for an absent percentage.
const PctOmitted = -1.0

// Mix blends two colors in the named color space with color-mix
// percentage semantics: both percentages omitted means an even split,
// a single percentage implies its complement for the other color, and
// two explicit percentages are normalized to sum to 100. A
// non-positive percentage sum or an unsupported space yields nil.
func Mix(space string, c1 Color, p1 float64, c2 Color, p2 float64) *Color {
	sp, ok := mixSpaces[strings.ToLower(strings.TrimSpace(space))]
	if !ok {
		return nil
	}

	var w1, w2 float64
	switch {
	case p1 < 0 && p2 < 0:
		w1, w2 = 0.5, 0.5
	case p1 < 0:
		w2 = p2 / 100
		w1 = 1 - w2
	case p2 < 0:
		w1 = p1 / 100
		w2 = 1 - w1
	default:
		sum := p1 + p2
		if sum <= 0 {
			return nil
		}
		w1 = p1 / sum
		w2 = p2 / sum
	}
	if w1 < 0 || w2 < 0 {
		return nil
	}

	v1 := toSpaceCoords(sp.name, c1)
	v2 := toSpaceCoords(sp.name, c2)

	// non-hue coordinates interpolate premultiplied by alpha, hue does not
	aOut := c1.A*w1 + c2.A*w2
	var out [3]float64
	for i := 0; i < 3; i++ {
		if i == sp.hueIdx {
			out[i] = mixHue(v1[i], v2[i], w2)
			continue
		}
		if aOut > 0 {
			out[i] = (v1[i]*c1.A*w1 + v2[i]*c2.A*w2) / aOut
		} else {
			out[i] = v1[i]*w1 + v2[i]*w2
		}
	}

	r, g, b := fromSpaceCoords(sp.name, out)
	mixed := Color{
		R: clampChannel(r * 255),
		G: clampChannel(g * 255),
		B: clampChannel(b * 255),
		A: aOut,
	}
	return &mixed
}

// clampChannel rounds a 0..255 float channel to a byte, clamping
// out-of-gamut values.
func clampChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
