package check

import "strings"

// maxVarDepth caps recursive var() substitution. The cap fails closed:
// a chain (or cycle) deeper than this resolves to nothing rather than
// looping.
const maxVarDepth = 10

// ResolveCustomProperty substitutes every var(name[, fallback])
// occurrence in value. Substitution walks matched parentheses, so a
// var() nested inside another function call (a color-mix argument, for
// instance) is replaced in place rather than by naive string
// splicing. Resolution is all-or-nothing for the value: one unresolved
// reference, or a reference chain deeper than the guard, makes the
// whole result ("", false) even when sibling references resolved.
func ResolveCustomProperty(value string, props map[string]string, depth int) (string, bool) {
	if depth > maxVarDepth {
		return "", false
	}

	idx := indexVar(value)
	if idx < 0 {
		return value, true
	}

	inner, end, ok := matchParen(value, idx+len("var("))
	if !ok {
		return "", false
	}

	name, fallback, hasFallback := splitVarArgs(inner)
	var sub string
	if bound, exists := props[name]; exists {
		sub, ok = ResolveCustomProperty(bound, props, depth+1)
	} else if hasFallback {
		sub, ok = ResolveCustomProperty(fallback, props, depth+1)
	} else {
		return "", false
	}
	if !ok {
		return "", false
	}

	rest, ok := ResolveCustomProperty(value[end:], props, depth)
	if !ok {
		return "", false
	}
	return value[:idx] + sub + rest, true
}

// indexVar finds the next var( occurrence that is not part of a longer
// identifier.
func indexVar(s string) int {
	from := 0
	for {
		i := strings.Index(s[from:], "var(")
		if i < 0 {
			return -1
		}
		i += from
		if i == 0 || !isIdentByte(s[i-1]) {
			return i
		}
		from = i + 1
	}
}

func isIdentByte(b byte) bool {
	return b == '-' || b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// matchParen returns the content between s[open] and its matching
// close paren, plus the index just past that paren. open points at the
// first byte after the opening parenthesis.
func matchParen(s string, open int) (string, int, bool) {
	depth := 1
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[open:i], i + 1, true
			}
		}
	}
	return "", 0, false
}

// splitVarArgs splits "name[, fallback]" at the first top-level comma.
// The fallback may itself contain commas inside nested function calls.
func splitVarArgs(inner string) (string, string, bool) {
	depth := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				return strings.TrimSpace(inner[:i]), strings.TrimSpace(inner[i+1:]), true
			}
		}
	}
	return strings.TrimSpace(inner), "", false
}
