package check

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// UtilityResolver looks up colors and typography bound to utility
// classes (a Tailwind-style palette). Implementations must be
// read-only; the engine consults them from concurrent runs. A nil
// resolver disables the utility tier.
type UtilityResolver interface {
	TextColor(class string) *Color
	BackgroundColor(class string) *Color
	FontSizePx(class string) (float64, bool)
	FontWeight(class string) (int, bool)
}

// headingDefaults are the built-in browser font defaults for heading
// tags, used as the last resolution tier for font size and weight.
var headingDefaults = map[string]struct {
	size   float64
	weight int
}{
	"h1": {32, 700},
	"h2": {24, 700},
	"h3": {18.72, 700},
	"h4": {16, 700},
	"h5": {13.28, 700},
	"h6": {10.72, 700},
}

var rootSelectors = map[string]bool{
	"html":  true,
	"body":  true,
	":root": true,
}

// AnalyzeElements assembles one contrast pair per eligible element:
// every element with text content that is not ignored and carries an
// explicit foreground or background somewhere in its chain. Inputs are
// read-only apart from Declaration.Resolved, which is filled at most
// once per declaration. util may be nil.
func AnalyzeElements(doc *Document, rules []StyleRule, props map[string]string, util UtilityResolver) ([]ContrastPair, []Warning) {
	var pairs []ContrastPair
	var warns []Warning

	for i := range doc.Elements {
		el := &doc.Elements[i]
		if !el.HasText || el.Ignored {
			continue
		}

		fg, fgFound := lookupForeground(doc, i, rules, props, util)
		layers := backgroundLayers(doc, i, rules, props, util)
		if !fgFound && len(layers) == 0 {
			continue
		}

		bg := assembleBackground(layers)
		if !fgFound {
			black := RGB(0, 0, 0)
			fg = ColorInfo{Original: "#000000", RGBA: &black, Source: SourceDefault}
		}

		if fg.RGBA == nil {
			warns = append(warns, Warning{Element: i, Message: fmt.Sprintf("unresolvable foreground color %q", fg.Original)})
		}
		if bg.RGBA == nil {
			warns = append(warns, Warning{Element: i, Message: fmt.Sprintf("unresolvable background color %q", bg.Original)})
		}

		// Foreground alpha composites onto the already-opaque background.
		if fg.RGBA != nil && !fg.RGBA.Opaque() && bg.RGBA != nil {
			c := compositeOver(*fg.RGBA, *bg.RGBA)
			fg.RGBA = &c
		}

		size := resolveFontSize(doc, i, rules, props, util)
		weight := resolveFontWeight(doc, i, rules, props, util)

		pairs = append(pairs, ContrastPair{
			Element:    i,
			Foreground: fg,
			Background: bg,
			FontSizePx: size,
			FontWeight: weight,
		})
	}
	return pairs, warns
}

// resolveRaw fills Declaration.Resolved exactly once and returns the
// substituted value. A failed resolution leaves the declaration
// unresolved; retrying is idempotent.
func resolveRaw(d *Declaration, props map[string]string) (string, bool) {
	if d.ResolvedOK {
		return d.Resolved, true
	}
	v, ok := ResolveCustomProperty(d.Raw, props, 0)
	if ok {
		d.Resolved = v
		d.ResolvedOK = true
	}
	return v, ok
}

// colorFromText parses resolved declaration text, mapping the literal
// transparent to a fully translucent black so compositing sees through
// it instead of failing.
func colorFromText(text string) *Color {
	if strings.EqualFold(strings.TrimSpace(text), "transparent") {
		c := Color{A: 0}
		return &c
	}
	return ParseColor(text)
}

// lookupForeground applies the strict priority order: inline
// declaration, utility class, stylesheet cascade. The boolean reports
// whether any explicit declaration was found, resolvable or not.
func lookupForeground(doc *Document, el int, rules []StyleRule, props map[string]string, util UtilityResolver) (ColorInfo, bool) {
	e := &doc.Elements[el]

	if d := lastInline(e, PropColor, false); d != nil {
		return inlineColorInfo(d, props), true
	}

	if util != nil {
		var found *Color
		label := ""
		for _, class := range e.Classes {
			if c := util.TextColor(class); c != nil {
				found = c
				label = "." + class
			}
		}
		if found != nil {
			return ColorInfo{Original: label, RGBA: found, Source: SourceUtility, Selector: label}, true
		}
	}

	if best := FindBestDeclaration(doc, el, rules, PropColor); best != nil {
		return stylesheetColorInfo(best, props), true
	}
	return ColorInfo{}, false
}

func inlineColorInfo(d *Declaration, props map[string]string) ColorInfo {
	info := ColorInfo{Original: d.Raw, Source: SourceInline}
	if v, ok := resolveRaw(d, props); ok {
		info.RGBA = colorFromText(v)
	}
	return info
}

func stylesheetColorInfo(best *BestDeclaration, props map[string]string) ColorInfo {
	info := ColorInfo{Original: best.Declaration.Raw, Source: SourceStylesheet, Selector: best.Selector}
	if v, ok := resolveRaw(best.Declaration, props); ok {
		info.RGBA = colorFromText(v)
	}
	return info
}

// lastInline returns the last inline declaration for the property;
// with orBackground set, a bare background declaration also counts.
func lastInline(e *Element, prop Property, orBackground bool) *Declaration {
	var found *Declaration
	for i := range e.Inline {
		d := &e.Inline[i]
		if d.Ignored {
			continue
		}
		if d.Property == prop || (orBackground && d.Property == PropBackground) {
			found = d
		}
	}
	return found
}

// bgLayer is one explicit background surface in the inheritance chain,
// topmost first.
type bgLayer struct {
	info  ColorInfo
	color *Color
}

// backgroundLayers walks the element and its ancestors collecting
// every explicit background (inline, utility or stylesheet), then a
// root-scope declaration. The structural white default is not
// included; assembleBackground supplies it.
func backgroundLayers(doc *Document, el int, rules []StyleRule, props map[string]string, util UtilityResolver) []bgLayer {
	var layers []bgLayer
	for idx := el; idx >= 0; {
		if info, found := elementBackground(doc, idx, rules, props, util); found {
			layers = append(layers, bgLayer{info: info, color: info.RGBA})
		}
		_, parent := doc.Parent(idx)
		idx = parent
	}
	if info, found := rootBackground(rules, props); found {
		layers = append(layers, bgLayer{info: info, color: info.RGBA})
	}
	return layers
}

// elementBackground resolves the explicit background of one element
// through the inline/utility/stylesheet tiers.
func elementBackground(doc *Document, el int, rules []StyleRule, props map[string]string, util UtilityResolver) (ColorInfo, bool) {
	e := &doc.Elements[el]

	if d := lastInline(e, PropBackgroundColor, true); d != nil {
		return inlineColorInfo(d, props), true
	}

	if util != nil {
		var found *Color
		label := ""
		for _, class := range e.Classes {
			if c := util.BackgroundColor(class); c != nil {
				found = c
				label = "." + class
			}
		}
		if found != nil {
			return ColorInfo{Original: label, RGBA: found, Source: SourceUtility, Selector: label}, true
		}
	}

	if best := FindBestDeclaration(doc, el, rules, PropBackgroundColor); best != nil {
		return stylesheetColorInfo(best, props), true
	}
	return ColorInfo{}, false
}

// rootBackground finds a background declared on a root-scope selector
// (html, body or :root); the last one in document order wins.
func rootBackground(rules []StyleRule, props map[string]string) (ColorInfo, bool) {
	var found *BestDeclaration
	for ri := range rules {
		rule := &rules[ri]
		if rule.Ignored || !rootSelectors[strings.ToLower(strings.TrimSpace(rule.Selector))] {
			continue
		}
		for di := range rule.Declarations {
			d := &rule.Declarations[di]
			if d.Ignored {
				continue
			}
			if d.Property == PropBackgroundColor || d.Property == PropBackground {
				found = &BestDeclaration{Declaration: d, Selector: rule.Selector}
			}
		}
	}
	if found == nil {
		return ColorInfo{}, false
	}
	return stylesheetColorInfo(found, props), true
}

// assembleBackground folds the layer chain bottom-up onto opaque white
// so the final background always comes out fully opaque. The reported
// origin is the topmost explicit layer.
func assembleBackground(layers []bgLayer) ColorInfo {
	acc := RGB(255, 255, 255)
	for i := len(layers) - 1; i >= 0; i-- {
		if layers[i].color == nil {
			continue
		}
		acc = compositeOver(*layers[i].color, acc)
	}

	if len(layers) == 0 {
		return ColorInfo{Original: "#ffffff", RGBA: &acc, Source: SourceDefault}
	}

	top := layers[0].info
	if top.RGBA != nil {
		top.RGBA = &acc
	}
	return top
}

// compositeOver blends a possibly translucent color onto an opaque
// surface: c·a + behind·(1−a) per channel, rounded.
func compositeOver(top, behind Color) Color {
	if top.Opaque() {
		top.A = 1
		return top
	}
	blend := func(c, b uint8) uint8 {
		v := float64(c)*top.A + float64(b)*(1-top.A)
		return clampChannel(math.Round(v))
	}
	return Color{
		R: blend(top.R, behind.R),
		G: blend(top.G, behind.G),
		B: blend(top.B, behind.B),
		A: 1,
	}
}

func resolveFontSize(doc *Document, el int, rules []StyleRule, props map[string]string, util UtilityResolver) float64 {
	e := &doc.Elements[el]

	if d := lastInline(e, PropFontSize, false); d != nil {
		if v, ok := resolveRaw(d, props); ok {
			if px, ok := ParseFontSize(v); ok {
				return px
			}
		}
	}
	if util != nil {
		size := 0.0
		found := false
		for _, class := range e.Classes {
			if px, ok := util.FontSizePx(class); ok {
				size, found = px, true
			}
		}
		if found {
			return size
		}
	}
	if best := FindBestDeclaration(doc, el, rules, PropFontSize); best != nil {
		if v, ok := resolveRaw(best.Declaration, props); ok {
			if px, ok := ParseFontSize(v); ok {
				return px
			}
		}
	}
	if def, ok := headingDefaults[e.Tag]; ok {
		return def.size
	}
	return 0
}

func resolveFontWeight(doc *Document, el int, rules []StyleRule, props map[string]string, util UtilityResolver) int {
	e := &doc.Elements[el]

	if d := lastInline(e, PropFontWeight, false); d != nil {
		if v, ok := resolveRaw(d, props); ok {
			if w, ok := ParseFontWeight(v); ok {
				return w
			}
		}
	}
	if util != nil {
		weight := 0
		found := false
		for _, class := range e.Classes {
			if w, ok := util.FontWeight(class); ok {
				weight, found = w, true
			}
		}
		if found {
			return weight
		}
	}
	if best := FindBestDeclaration(doc, el, rules, PropFontWeight); best != nil {
		if v, ok := resolveRaw(best.Declaration, props); ok {
			if w, ok := ParseFontWeight(v); ok {
				return w
			}
		}
	}
	if def, ok := headingDefaults[e.Tag]; ok {
		return def.weight
	}
	return 0
}

// absoluteSizeKeywords maps CSS absolute size keywords to pixels at
// the default 16px medium.
var absoluteSizeKeywords = map[string]float64{
	"xx-small": 9.6,
	"x-small":  12,
	"small":    13.33,
	"medium":   16,
	"large":    18,
	"x-large":  24,
	"xx-large": 32,
}

// ParseFontSize converts a font-size value to pixels. Relative units
// resolve against the 16px default; values that depend on layout
// (calc, viewport units) report false, which downstream classifies as
// "not large".
func ParseFontSize(value string) (float64, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return 0, false
	}
	if px, ok := absoluteSizeKeywords[v]; ok {
		return px, true
	}

	num := func(s string) (float64, bool) {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || f < 0 {
			return 0, false
		}
		return f, true
	}
	switch {
	case strings.HasSuffix(v, "px"):
		return num(v[:len(v)-2])
	case strings.HasSuffix(v, "pt"):
		f, ok := num(v[:len(v)-2])
		return f * 96 / 72, ok
	case strings.HasSuffix(v, "rem"):
		f, ok := num(v[:len(v)-3])
		return f * 16, ok
	case strings.HasSuffix(v, "em"):
		f, ok := num(v[:len(v)-2])
		return f * 16, ok
	case strings.HasSuffix(v, "%"):
		f, ok := num(v[:len(v)-1])
		return f * 16 / 100, ok
	}
	return 0, false
}

// ParseFontWeight converts a font-weight value to its numeric form.
func ParseFontWeight(value string) (int, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "normal":
		return 400, true
	case "bold":
		return 700, true
	case "bolder":
		return 700, true
	case "lighter":
		return 300, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > 1000 {
		return 0, false
	}
	return n, true
}
