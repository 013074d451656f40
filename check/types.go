// Package check resolves effective text colors in parsed component
// documents and evaluates them against WCAG contrast thresholds. The
// package is pure: no I/O, no shared mutable state, safe to run over
// independent documents concurrently.
package check

import "fmt"

// Color is a parsed sRGB color with an alpha channel. It is a value
// type and is copied freely; A is in [0,1] where 1 is fully opaque.
type Color struct {
	R uint8
	G uint8
	B uint8
	A float64
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA returns a color with an explicit alpha in [0,1].
func RGBA(r, g, b uint8, a float64) Color {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return Color{R: r, G: g, B: b, A: a}
}

// Hex renders the color as #rrggbb, dropping alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Opaque reports whether the color has no translucency.
func (c Color) Opaque() bool {
	return c.A >= 1
}

// Property names the declaration kinds the engine tracks. Everything
// else is filtered out during rule normalization.
type Property string

const (
	PropColor           Property = "color"
	PropBackgroundColor Property = "background-color"
	PropBackground      Property = "background"
	PropFontSize        Property = "font-size"
	PropFontWeight      Property = "font-weight"
)

// KnownProperty reports whether the engine tracks the named property.
func KnownProperty(name string) bool {
	switch Property(name) {
	case PropColor, PropBackgroundColor, PropBackground, PropFontSize, PropFontWeight:
		return true
	}
	return false
}

// Declaration is one property:value pair from a style rule or an
// inline style attribute. Resolved is filled at most once, by the
// custom property resolver; it stays empty with ResolvedOK=false when
// the raw value references a custom property that cannot be resolved.
type Declaration struct {
	Property   Property
	Raw        string
	Resolved   string
	ResolvedOK bool
	Ignored    bool
}

// StyleRule is one simple (non-compound) selector plus its filtered
// declarations. Compound selectors are expanded into one StyleRule per
// simple selector before construction; nested selectors arrive already
// flattened. Rules are created once per analysis pass in document
// order and are read-only afterwards.
type StyleRule struct {
	Selector     string
	Declarations []Declaration
	Ignored      bool
}

// Element is one node of a parsed document. Elements live in the
// Document arena and reference their parent by index, so the ancestor
// walks used for background inheritance and descendant matching never
// chase pointers.
type Element struct {
	Tag     string
	ID      string
	Classes []string
	Inline  []Declaration
	HasText bool
	Ignored bool
	Line    int
	Col     int
	Parent  int // index into Document.Elements, -1 at the root
}

// HasClass reports whether the element carries the class.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.Classes {
		if c == name {
			return true
		}
	}
	return false
}

// Document is an arena of elements in document order. Index 0, when
// present, is the first element encountered; parents always precede
// their children.
type Document struct {
	Name     string
	Elements []Element
}

// Parent returns the parent element of index i, or nil at the root.
func (d *Document) Parent(i int) (*Element, int) {
	if i < 0 || i >= len(d.Elements) {
		return nil, -1
	}
	p := d.Elements[i].Parent
	if p < 0 || p >= len(d.Elements) {
		return nil, -1
	}
	return &d.Elements[p], p
}

// ColorSource labels where a resolved color came from, in priority
// order of the pair assembly.
type ColorSource string

const (
	SourceInline     ColorSource = "inline"
	SourceUtility    ColorSource = "utility"
	SourceStylesheet ColorSource = "stylesheet"
	SourceDefault    ColorSource = "default"
)

// ColorInfo is one resolved-and-labeled side of a contrast pair. A nil
// RGBA means the declared value could not be resolved to a color; that
// is surfaced as a warning, never a failure of the whole run.
type ColorInfo struct {
	Original string
	RGBA     *Color
	Source   ColorSource
	Selector string
}

// ContrastPair is the unit the contrast evaluator consumes: one
// element with text content plus its effective foreground and
// background. Pairs are immutable once assembled. FontSizePx and
// FontWeight are zero when not statically determinable.
type ContrastPair struct {
	Element    int
	Foreground ColorInfo
	Background ColorInfo
	FontSizePx float64
	FontWeight int
}

// Level is the tri-state contrast verdict.
type Level string

const (
	LevelPass        Level = "pass"
	LevelAAAOnlyFail Level = "aaa-only-fail"
	LevelAAFail      Level = "aa-fail"
)

// Verdict is the outcome of evaluating one contrast pair.
type Verdict struct {
	Ratio    float64
	MeetsAA  bool
	MeetsAAA bool
	Level    Level
}

// Warning is a per-element diagnostic emitted during pair assembly,
// typically an unresolvable color value.
type Warning struct {
	Element int
	Message string
}
