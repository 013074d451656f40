package check

import (
	"math"
	"strconv"
	"strings"
)

// ParseColor converts CSS color text to an RGBA value. It accepts,
// case-insensitively: named colors, `transparent` (no color), 3/4/6/8
// digit hex, rgb()/rgba() and hsl()/hsla() in comma or space syntax,
// oklab()/oklch(), CIE lab()/lch(), and color-mix(). Unknown syntax or
// an unresolvable nested reference yields nil; the parser never
// panics.
func ParseColor(text string) *Color {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" || s == "transparent" {
		return nil
	}

	if c := namedColor(s); c != nil {
		return c
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}

	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return nil
	}
	name := strings.TrimSpace(s[:open])
	inner := s[open+1 : len(s)-1]

	switch name {
	case "rgb", "rgba":
		return parseRgbFunc(inner)
	case "hsl", "hsla":
		return parseHslFunc(inner)
	case "oklab":
		return parseLabLike(inner, true, false)
	case "oklch":
		return parseLabLike(inner, true, true)
	case "lab":
		return parseLabLike(inner, false, false)
	case "lch":
		return parseLabLike(inner, false, true)
	case "color-mix":
		return parseColorMix(inner)
	}
	return nil
}

func parseHex(hex string) *Color {
	for _, r := range hex {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')) {
			return nil
		}
	}
	nib := func(b byte) uint8 {
		if b >= 'a' {
			return b - 'a' + 10
		}
		return b - '0'
	}
	byteAt := func(i int) uint8 { return nib(hex[i])<<4 | nib(hex[i+1]) }

	switch len(hex) {
	case 3:
		c := RGB(nib(hex[0])*17, nib(hex[1])*17, nib(hex[2])*17)
		return &c
	case 4:
		c := RGBA(nib(hex[0])*17, nib(hex[1])*17, nib(hex[2])*17, float64(nib(hex[3])*17)/255)
		return &c
	case 6:
		c := RGB(byteAt(0), byteAt(2), byteAt(4))
		return &c
	case 8:
		c := RGBA(byteAt(0), byteAt(2), byteAt(4), float64(byteAt(6))/255)
		return &c
	}
	return nil
}

// splitTopLevel splits s at sep occurrences outside parentheses.
func splitTopLevel(s string, sep byte) []string {
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}

// functionArgs normalizes both legacy comma syntax and modern space
// syntax with an optional "/ alpha" tail into (channels, alpha,
// hasAlpha).
func functionArgs(inner string) ([]string, string, bool) {
	parts := splitTopLevel(inner, ',')
	if len(parts) > 1 {
		args := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				return nil, "", false
			}
			args = append(args, p)
		}
		if len(args) == 4 {
			return args[:3], args[3], true
		}
		return args, "", false
	}

	head := strings.TrimSpace(inner)
	alpha := ""
	hasAlpha := false
	if slash := splitTopLevel(head, '/'); len(slash) == 2 {
		head = strings.TrimSpace(slash[0])
		alpha = strings.TrimSpace(slash[1])
		hasAlpha = true
	} else if len(slash) > 2 {
		return nil, "", false
	}
	return strings.Fields(head), alpha, hasAlpha
}

func parseChannel255(tok string) (uint8, bool) {
	tok = strings.TrimSpace(tok)
	if strings.HasSuffix(tok, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(tok, "%"), 64)
		if err != nil {
			return 0, false
		}
		return clampChannel(v * 255 / 100), true
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	return clampChannel(v), true
}

func parseAlpha(tok string) (float64, bool) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return 1, false
	}
	scale := 1.0
	if strings.HasSuffix(tok, "%") {
		tok = strings.TrimSuffix(tok, "%")
		scale = 1.0 / 100
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 1, false
	}
	v *= scale
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return v, true
}

// parseHue reads an angle with an optional deg|rad|grad|turn unit,
// defaulting to degrees, and returns it in degrees.
func parseHue(tok string) (float64, bool) {
	tok = strings.TrimSpace(tok)
	unit := "deg"
	for _, u := range []string{"deg", "grad", "rad", "turn"} {
		if strings.HasSuffix(tok, u) {
			unit = u
			tok = strings.TrimSuffix(tok, u)
			break
		}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
	if err != nil {
		return 0, false
	}
	switch unit {
	case "rad":
		v = v * 180 / math.Pi
	case "grad":
		v = v * 360 / 400
	case "turn":
		v = v * 360
	}
	return v, true
}

func parseRgbFunc(inner string) *Color {
	args, alphaTok, hasAlpha := functionArgs(inner)
	if len(args) != 3 {
		return nil
	}
	r, ok1 := parseChannel255(args[0])
	g, ok2 := parseChannel255(args[1])
	b, ok3 := parseChannel255(args[2])
	if !ok1 || !ok2 || !ok3 {
		return nil
	}
	a := 1.0
	if hasAlpha {
		var ok bool
		if a, ok = parseAlpha(alphaTok); !ok {
			return nil
		}
	}
	c := RGBA(r, g, b, a)
	return &c
}

func parseHslFunc(inner string) *Color {
	args, alphaTok, hasAlpha := functionArgs(inner)
	if len(args) != 3 {
		return nil
	}
	h, ok := parseHue(args[0])
	if !ok {
		return nil
	}
	s, ok := parsePercentOrNumber(args[1], 100)
	if !ok {
		return nil
	}
	l, ok := parsePercentOrNumber(args[2], 100)
	if !ok {
		return nil
	}
	a := 1.0
	if hasAlpha {
		if a, ok = parseAlpha(alphaTok); !ok {
			return nil
		}
	}
	r, g, b := hslToRgb(h, s/100, l/100)
	c := RGBA(clampChannel(r*255), clampChannel(g*255), clampChannel(b*255), a)
	return &c
}

// parsePercentOrNumber reads a value where "NN%" maps onto [0,full]
// and a bare number is taken as already being on that scale.
func parsePercentOrNumber(tok string, full float64) (float64, bool) {
	tok = strings.TrimSpace(tok)
	pct := strings.HasSuffix(tok, "%")
	if pct {
		tok = strings.TrimSuffix(tok, "%")
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	if pct {
		v = v * full / 100
	}
	return v, true
}

// parseLabLike handles oklab/oklch (ok=true) and CIE lab/lch
// (ok=false); polar selects the chroma/hue form.
func parseLabLike(inner string, okSpace, polar bool) *Color {
	args, alphaTok, hasAlpha := functionArgs(inner)
	if len(args) != 3 {
		return nil
	}

	lightFull := 100.0
	if okSpace {
		lightFull = 1.0
	}
	l, ok := parsePercentOrNumber(args[0], lightFull)
	if !ok {
		return nil
	}

	// Chroma and a/b channels are taken as given; a percent sign is
	// tolerated but does not rescale the number.
	var c1, c2 float64
	if polar {
		c1, ok = parsePercentOrNumber(args[1], 100)
		if !ok {
			return nil
		}
		c2, ok = parseHue(args[2])
		if !ok {
			return nil
		}
	} else {
		c1, ok = parsePercentOrNumber(args[1], 100)
		if !ok {
			return nil
		}
		c2, ok = parsePercentOrNumber(args[2], 100)
		if !ok {
			return nil
		}
	}

	a := 1.0
	if hasAlpha {
		if a, ok = parseAlpha(alphaTok); !ok {
			return nil
		}
	}

	var aCh, bCh float64
	if polar {
		aCh, bCh = fromPolar(c1, c2)
	} else {
		aCh, bCh = c1, c2
	}

	var r, g, b float64
	if okSpace {
		r, g, b = oklabToRgb(l, aCh, bCh)
	} else {
		r, g, b = labToRgb(l, aCh, bCh)
	}
	col := RGBA(clampChannel(r*255), clampChannel(g*255), clampChannel(b*255), a)
	return &col
}

// parseColorMix handles color-mix(in <space>, <color> [<pct>%],
// <color> [<pct>%]). Component colors are parsed recursively, so
// nested functions and already-substituted custom property values work
// unchanged.
func parseColorMix(inner string) *Color {
	parts := splitTopLevel(inner, ',')
	if len(parts) != 3 {
		return nil
	}
	head := strings.Fields(strings.TrimSpace(parts[0]))
	if len(head) != 2 || head[0] != "in" {
		return nil
	}
	space := head[1]

	c1, p1, ok := parseMixComponent(parts[1])
	if !ok {
		return nil
	}
	c2, p2, ok := parseMixComponent(parts[2])
	if !ok {
		return nil
	}
	return Mix(space, c1, p1, c2, p2)
}

// parseMixComponent splits "<color> [<pct>%]" and parses the color. A
// missing percentage is reported as PctOmitted.
func parseMixComponent(part string) (Color, float64, bool) {
	part = strings.TrimSpace(part)
	pct := PctOmitted

	// A trailing top-level "NN%" token is the weight; anything else,
	// percentage included, belongs to the color expression itself.
	if idx := lastTopLevelSpace(part); idx >= 0 {
		tail := part[idx+1:]
		if strings.HasSuffix(tail, "%") {
			if v, err := strconv.ParseFloat(strings.TrimSuffix(tail, "%"), 64); err == nil {
				pct = v
				part = strings.TrimSpace(part[:idx])
			}
		}
	}

	c := ParseColor(part)
	if c == nil {
		return Color{}, 0, false
	}
	return *c, pct, true
}

func lastTopLevelSpace(s string) int {
	depth := 0
	last := -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ' ', '\t':
			if depth == 0 {
				last = i
			}
		}
	}
	return last
}
