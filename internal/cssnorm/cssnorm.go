// Package cssnorm turns raw CSS text into the normalized rule list
// and custom-property map the check engine consumes. Compound
// selectors are expanded one StyleRule per simple selector, nested
// rules are flattened to full selector strings, and declarations are
// filtered down to the color and typography properties the engine
// tracks.
package cssnorm

import (
	"strings"

	"github.com/aymerick/douceur/parser"

	"huelint/check"
)

// ignoreComment marks the next declaration (inside a block) or the
// next rule (outside one) as excluded from analysis.
const ignoreComment = "huelint-ignore"

// ignoreToken is the internal sentinel the comment pass leaves behind;
// NUL cannot appear in valid CSS identifiers.
const ignoreToken = "\x00ign\x00"

// markerProperty carries an in-block ignore sentinel through the
// declaration parser.
const markerProperty = "--huelint-ignore-next"

// Normalize parses stylesheet text into engine rules plus the custom
// properties declared anywhere in it. Rules come out in document
// order; on key collision the later custom property wins.
func Normalize(cssText string) ([]check.StyleRule, map[string]string, error) {
	src := stripComments(cssText)

	var raw []rawRule
	scanRules(src, nil, &raw)

	var rules []check.StyleRule
	props := map[string]string{}
	for _, rr := range raw {
		decls := parseDeclarations(rr.body, props)
		if len(decls) == 0 {
			continue
		}
		rules = append(rules, check.StyleRule{
			Selector:     rr.selector,
			Declarations: decls,
			Ignored:      rr.ignored,
		})
	}
	return rules, props, nil
}

// MergeProperties merges custom-property maps in ascending priority
// order: later maps win on key collision.
func MergeProperties(maps ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// ParseInline converts a style attribute into engine declarations,
// applying the same property filter as stylesheet rules.
func ParseInline(style string) []check.Declaration {
	style = strings.TrimSpace(style)
	if style == "" {
		return nil
	}
	return parseDeclarations(stripComments(style), nil)
}

// rawRule is one flattened selector plus its declaration text.
type rawRule struct {
	selector string
	body     string
	ignored  bool
}

// stripComments removes CSS comments, replacing huelint-ignore
// comments with a sentinel the scanner understands.
func stripComments(src string) string {
	var b strings.Builder
	for i := 0; i < len(src); {
		if src[i] == '/' && i+1 < len(src) && src[i+1] == '*' {
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				break
			}
			content := strings.TrimSpace(src[i+2 : i+2+end])
			if content == ignoreComment {
				b.WriteString(ignoreToken)
			}
			i += end + 4
			continue
		}
		b.WriteByte(src[i])
		i++
	}
	return b.String()
}

// scanRules walks rule blocks, flattening nesting into full selector
// strings. parents carries the enclosing selectors; conditional
// at-rules (@media, @supports) pass through unscoped, matching the
// engine's documented media handling.
func scanRules(src string, parents []string, out *[]rawRule) {
	i := 0
	pendingIgnore := false
	for i < len(src) {
		// leading whitespace and rule-level ignore sentinels
		for i < len(src) {
			if src[i] == ' ' || src[i] == '\t' || src[i] == '\n' || src[i] == '\r' {
				i++
				continue
			}
			if strings.HasPrefix(src[i:], ignoreToken) {
				pendingIgnore = true
				i += len(ignoreToken)
				continue
			}
			break
		}
		if i >= len(src) {
			return
		}

		open := indexAny(src[i:], '{', ';')
		if open < 0 {
			return
		}
		if src[i+open] == ';' {
			// statement at-rule (@import, @charset): not fetched here
			i += open + 1
			pendingIgnore = false
			continue
		}

		header := strings.TrimSpace(src[i : i+open])
		body, next := matchBlock(src, i+open+1)

		if strings.HasPrefix(header, "@") {
			name := strings.ToLower(strings.Fields(header)[0])
			switch name {
			case "@media", "@supports":
				scanRules(body, parents, out)
			}
			// other block at-rules (@keyframes, @font-face) are dropped
			i = next
			pendingIgnore = false
			continue
		}

		declText, nested := splitBody(body)
		selectors := joinSelectors(parents, splitSelectorList(header))
		for _, sel := range selectors {
			*out = append(*out, rawRule{selector: sel, body: declText, ignored: pendingIgnore})
		}
		for _, n := range nested {
			scanRules(n.header+"{"+n.body+"}", selectors, out)
		}
		pendingIgnore = false
		i = next
	}
}

func indexAny(s string, a, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == a || s[i] == b {
			return i
		}
	}
	return -1
}

// matchBlock returns the content of the brace block starting at open
// (the index just past '{') and the index just past its closing brace.
func matchBlock(src string, open int) (string, int) {
	depth := 1
	for i := open; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return src[open:i], i + 1
			}
		}
	}
	return src[open:], len(src)
}

type nestedRule struct {
	header string
	body   string
}

// splitBody separates a rule body into its direct declaration text and
// any nested rule blocks.
func splitBody(body string) (string, []nestedRule) {
	var decls strings.Builder
	var nested []nestedRule

	segStart := 0
	i := 0
	for i < len(body) {
		switch body[i] {
		case ';':
			decls.WriteString(body[segStart : i+1])
			segStart = i + 1
			i++
		case '{':
			header := strings.TrimSpace(body[segStart:i])
			inner, next := matchBlock(body, i+1)
			nested = append(nested, nestedRule{header: header, body: inner})
			segStart = next
			i = next
		default:
			i++
		}
	}
	decls.WriteString(body[segStart:])
	return decls.String(), nested
}

func splitSelectorList(header string) []string {
	parts := strings.Split(header, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// joinSelectors flattens child selectors against their parents: `&`
// references are substituted, anything else becomes a descendant of
// the parent selector.
func joinSelectors(parents, children []string) []string {
	if len(parents) == 0 {
		return children
	}
	var out []string
	for _, p := range parents {
		for _, c := range children {
			if strings.Contains(c, "&") {
				out = append(out, strings.ReplaceAll(c, "&", p))
			} else {
				out = append(out, p+" "+c)
			}
		}
	}
	return out
}

// parseDeclarations runs douceur over declaration text, falling back
// to a manual split when it rejects the input, then filters and
// converts to engine declarations. Custom properties are collected
// into props when non-nil.
func parseDeclarations(declText string, props map[string]string) []check.Declaration {
	text := strings.ReplaceAll(declText, ignoreToken, markerProperty+":1;")
	// douceur returns an empty Value for a declaration that is not
	// terminated by a semicolon, so terminate the list explicitly
	if t := strings.TrimSpace(text); t != "" && !strings.HasSuffix(t, ";") {
		text = t + ";"
	}

	type kv struct {
		prop  string
		value string
	}
	var list []kv

	if parsed, err := parser.ParseDeclarations(text); err == nil {
		for _, d := range parsed {
			if d == nil {
				continue
			}
			list = append(list, kv{strings.ToLower(strings.TrimSpace(d.Property)), strings.TrimSpace(d.Value)})
		}
	} else {
		for _, part := range strings.Split(text, ";") {
			s := strings.SplitN(part, ":", 2)
			if len(s) != 2 {
				continue
			}
			list = append(list, kv{strings.ToLower(strings.TrimSpace(s[0])), strings.TrimSpace(s[1])})
		}
	}

	var out []check.Declaration
	ignoreNext := false
	for _, d := range list {
		if d.prop == markerProperty {
			ignoreNext = true
			continue
		}
		if d.prop == "" || d.value == "" {
			continue
		}
		value := strings.TrimSpace(d.value)
		if strings.HasSuffix(strings.ToLower(value), "!important") {
			value = strings.TrimSpace(value[:len(value)-len("!important")])
		}

		if strings.HasPrefix(d.prop, "--") {
			if props != nil && !ignoreNext {
				props[d.prop] = value
			}
			ignoreNext = false
			continue
		}
		if !check.KnownProperty(d.prop) {
			ignoreNext = false
			continue
		}

		prop := check.Property(d.prop)
		if prop == check.PropBackground {
			token, ok := ExtractColorToken(value)
			if !ok {
				ignoreNext = false
				continue
			}
			value = token
		}

		out = append(out, check.Declaration{
			Property: prop,
			Raw:      value,
			Ignored:  ignoreNext,
		})
		ignoreNext = false
	}
	return out
}

var colorFunctions = []string{
	"rgba(", "rgb(", "hsla(", "hsl(", "oklab(", "oklch(", "lab(", "lch(", "color-mix(",
}

// ExtractColorToken pulls the color component out of a background
// shorthand. Values that defer to custom properties pass through
// whole; image and gradient shorthands without a color component
// report false.
func ExtractColorToken(value string) (string, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", false
	}
	if strings.Contains(v, "var(") {
		return v, true
	}

	lower := strings.ToLower(v)
	for _, fn := range colorFunctions {
		if idx := strings.Index(lower, fn); idx >= 0 {
			if end, ok := matchParenFrom(v, idx+len(fn)); ok {
				return v[idx:end], true
			}
		}
	}

	for _, tok := range strings.Fields(v) {
		tok = strings.Trim(tok, ",")
		if check.ParseColor(tok) != nil || strings.EqualFold(tok, "transparent") {
			return tok, true
		}
	}
	return "", false
}

func matchParenFrom(s string, open int) (int, bool) {
	depth := 1
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}
