package check

import "strings"

// IgnoreConfig post-filters evaluated pairs: by literal color, by
// literal (foreground, background) pair, or by selector pattern.
// Selector patterns accept a tag, .class or #id, optionally with a
// trailing * wildcard. Filtering happens after evaluation, so
// pre-filter statistics stay intact.
type IgnoreConfig struct {
	Colors    []string
	Pairs     [][2]string
	Selectors []string
}

// Empty reports whether the configuration filters nothing.
func (cfg IgnoreConfig) Empty() bool {
	return len(cfg.Colors) == 0 && len(cfg.Pairs) == 0 && len(cfg.Selectors) == 0
}

// Matches reports whether the pair is covered by the ignore
// configuration.
func (cfg IgnoreConfig) Matches(doc *Document, pair ContrastPair) bool {
	for _, lit := range cfg.Colors {
		if colorInfoMatches(pair.Foreground, lit) || colorInfoMatches(pair.Background, lit) {
			return true
		}
	}
	for _, p := range cfg.Pairs {
		if colorInfoMatches(pair.Foreground, p[0]) && colorInfoMatches(pair.Background, p[1]) {
			return true
		}
	}
	if pair.Element >= 0 && pair.Element < len(doc.Elements) {
		el := &doc.Elements[pair.Element]
		for _, sel := range cfg.Selectors {
			if ignoreSelectorMatches(sel, el) {
				return true
			}
		}
	}
	return false
}

// Filter returns the pairs not covered by the configuration, keeping
// input order.
func (cfg IgnoreConfig) Filter(doc *Document, pairs []ContrastPair) []ContrastPair {
	if cfg.Empty() {
		return pairs
	}
	kept := make([]ContrastPair, 0, len(pairs))
	for _, p := range pairs {
		if !cfg.Matches(doc, p) {
			kept = append(kept, p)
		}
	}
	return kept
}

// colorInfoMatches compares a literal against either the original
// declaration text or the resolved RGBA.
func colorInfoMatches(info ColorInfo, literal string) bool {
	lit := strings.ToLower(strings.TrimSpace(literal))
	if lit == "" {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(info.Original), lit) {
		return true
	}
	want := ParseColor(lit)
	if want == nil || info.RGBA == nil {
		return false
	}
	return want.R == info.RGBA.R && want.G == info.RGBA.G && want.B == info.RGBA.B
}

func ignoreSelectorMatches(pattern string, el *Element) bool {
	pat := strings.TrimSpace(pattern)
	if pat == "" {
		return false
	}
	wildcard := strings.HasSuffix(pat, "*")
	if wildcard {
		pat = strings.TrimSuffix(pat, "*")
	}

	match := func(value string) bool {
		if wildcard {
			return strings.HasPrefix(value, pat)
		}
		return value == pat
	}

	switch {
	case strings.HasPrefix(pat, "."):
		prefix := pat[1:]
		for _, class := range el.Classes {
			if wildcard && strings.HasPrefix(class, prefix) {
				return true
			}
			if !wildcard && class == prefix {
				return true
			}
		}
		return false
	case strings.HasPrefix(pat, "#"):
		if wildcard {
			return el.ID != "" && strings.HasPrefix(el.ID, pat[1:])
		}
		return el.ID == pat[1:]
	default:
		return match(el.Tag)
	}
}
