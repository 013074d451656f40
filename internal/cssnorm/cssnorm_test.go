package cssnorm

import (
	"testing"

	"huelint/check"
)

func normalize(t *testing.T, css string) ([]check.StyleRule, map[string]string) {
	t.Helper()
	rules, props, err := Normalize(css)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	return rules, props
}

func TestNormalizeBasics(t *testing.T) {
	t.Parallel()

	t.Run("simple_rule", func(t *testing.T) {
		t.Parallel()
		rules, _ := normalize(t, `p { color: red; font-size: 14px; margin: 0 }`)
		if len(rules) != 1 || rules[0].Selector != "p" {
			t.Fatalf("rules = %+v", rules)
		}
		if len(rules[0].Declarations) != 2 {
			t.Fatalf("declarations = %+v", rules[0].Declarations)
		}
		if rules[0].Declarations[0].Property != check.PropColor || rules[0].Declarations[0].Raw != "red" {
			t.Fatalf("first declaration = %+v", rules[0].Declarations[0])
		}
	})

	t.Run("selector_list_expands", func(t *testing.T) {
		t.Parallel()
		rules, _ := normalize(t, `h1, .title { color: blue }`)
		if len(rules) != 2 || rules[0].Selector != "h1" || rules[1].Selector != ".title" {
			t.Fatalf("rules = %+v", rules)
		}
	})

	t.Run("custom_properties_collected", func(t *testing.T) {
		t.Parallel()
		rules, props := normalize(t, `:root { --brand: #331188; --pad: 4px; }`)
		if len(rules) != 0 {
			t.Fatalf("rules = %+v", rules)
		}
		if props["--brand"] != "#331188" || props["--pad"] != "4px" {
			t.Fatalf("props = %+v", props)
		}
	})

	t.Run("later_property_wins", func(t *testing.T) {
		t.Parallel()
		_, props := normalize(t, `:root { --x: 1 } .theme { --x: 2 }`)
		if props["--x"] != "2" {
			t.Fatalf("props = %+v", props)
		}
	})

	t.Run("important_trimmed", func(t *testing.T) {
		t.Parallel()
		rules, _ := normalize(t, `p { color: red !important }`)
		if len(rules) != 1 || rules[0].Declarations[0].Raw != "red" {
			t.Fatalf("rules = %+v", rules)
		}
	})

	t.Run("important_uppercase_trimmed", func(t *testing.T) {
		t.Parallel()
		rules, _ := normalize(t, `p { color: red !IMPORTANT; background-color: blue !Important }`)
		if len(rules) != 1 || len(rules[0].Declarations) != 2 {
			t.Fatalf("rules = %+v", rules)
		}
		if rules[0].Declarations[0].Raw != "red" || rules[0].Declarations[1].Raw != "blue" {
			t.Fatalf("declarations = %+v", rules[0].Declarations)
		}
	})

	t.Run("no_trailing_semicolon", func(t *testing.T) {
		t.Parallel()
		rules, _ := normalize(t, `p { color: red }`)
		if len(rules) != 1 || len(rules[0].Declarations) != 1 {
			t.Fatalf("rules = %+v", rules)
		}
		if rules[0].Declarations[0].Raw != "red" {
			t.Fatalf("declaration = %+v", rules[0].Declarations[0])
		}
	})

	t.Run("custom_property_no_trailing_semicolon", func(t *testing.T) {
		t.Parallel()
		_, props := normalize(t, `:root { --x: #ff0000 }`)
		if props["--x"] != "#ff0000" {
			t.Fatalf("props = %+v", props)
		}
	})

	t.Run("unknown_properties_filtered", func(t *testing.T) {
		t.Parallel()
		rules, _ := normalize(t, `p { display: flex; border: 1px solid red }`)
		if len(rules) != 0 {
			t.Fatalf("rules = %+v", rules)
		}
	})
}

func TestNormalizeNesting(t *testing.T) {
	t.Parallel()

	t.Run("nested_rule_flattens", func(t *testing.T) {
		t.Parallel()
		rules, _ := normalize(t, `.card { color: #111; .title { color: #222; } }`)
		if len(rules) != 2 {
			t.Fatalf("rules = %+v", rules)
		}
		if rules[0].Selector != ".card" || rules[1].Selector != ".card .title" {
			t.Fatalf("selectors = %q, %q", rules[0].Selector, rules[1].Selector)
		}
	})

	t.Run("ampersand_substitution", func(t *testing.T) {
		t.Parallel()
		rules, _ := normalize(t, `.btn { &.primary { color: #fff } }`)
		if len(rules) != 1 || rules[0].Selector != ".btn.primary" {
			t.Fatalf("rules = %+v", rules)
		}
	})

	t.Run("media_contents_included", func(t *testing.T) {
		t.Parallel()
		rules, _ := normalize(t, `@media (min-width: 600px) { p { color: red } }`)
		if len(rules) != 1 || rules[0].Selector != "p" {
			t.Fatalf("rules = %+v", rules)
		}
	})

	t.Run("keyframes_dropped", func(t *testing.T) {
		t.Parallel()
		rules, _ := normalize(t, `@keyframes spin { from { color: red } } p { color: blue }`)
		if len(rules) != 1 || rules[0].Selector != "p" {
			t.Fatalf("rules = %+v", rules)
		}
	})

	t.Run("import_statement_skipped", func(t *testing.T) {
		t.Parallel()
		rules, _ := normalize(t, `@import url("x.css"); p { color: red }`)
		if len(rules) != 1 || rules[0].Selector != "p" {
			t.Fatalf("rules = %+v", rules)
		}
	})
}

func TestNormalizeIgnoreComments(t *testing.T) {
	t.Parallel()

	t.Run("rule_level", func(t *testing.T) {
		t.Parallel()
		rules, _ := normalize(t, `/* huelint-ignore */ .x { color: red } .y { color: blue }`)
		if len(rules) != 2 {
			t.Fatalf("rules = %+v", rules)
		}
		if !rules[0].Ignored || rules[1].Ignored {
			t.Fatalf("ignore flags = %v, %v", rules[0].Ignored, rules[1].Ignored)
		}
	})

	t.Run("declaration_level", func(t *testing.T) {
		t.Parallel()
		rules, _ := normalize(t, `.x { /* huelint-ignore */ color: red; background-color: blue }`)
		if len(rules) != 1 || len(rules[0].Declarations) != 2 {
			t.Fatalf("rules = %+v", rules)
		}
		if !rules[0].Declarations[0].Ignored || rules[0].Declarations[1].Ignored {
			t.Fatalf("declarations = %+v", rules[0].Declarations)
		}
	})

	t.Run("ordinary_comment_harmless", func(t *testing.T) {
		t.Parallel()
		rules, _ := normalize(t, `/* colors */ .x { color: red }`)
		if len(rules) != 1 || rules[0].Ignored {
			t.Fatalf("rules = %+v", rules)
		}
	})
}

func TestNormalizeBackgroundShorthand(t *testing.T) {
	t.Parallel()

	t.Run("color_token_extracted", func(t *testing.T) {
		t.Parallel()
		rules, _ := normalize(t, `.x { background: url("i.png") no-repeat #336699 }`)
		if len(rules) != 1 {
			t.Fatalf("rules = %+v", rules)
		}
		d := rules[0].Declarations[0]
		if d.Property != check.PropBackground || d.Raw != "#336699" {
			t.Fatalf("declaration = %+v", d)
		}
	})

	t.Run("gradient_without_color_dropped", func(t *testing.T) {
		t.Parallel()
		rules, _ := normalize(t, `.x { background: linear-gradient(red, blue) }`)
		if len(rules) != 0 {
			t.Fatalf("rules = %+v", rules)
		}
	})
}

func TestExtractColorToken(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"bare_hex", "#336699", "#336699", true},
		{"shorthand_tail", `url("i.png") no-repeat #336699`, "#336699", true},
		{"named", "red url(i.png)", "red", true},
		{"function", "no-repeat rgba(0, 0, 0, 0.5) fixed", "rgba(0, 0, 0, 0.5)", true},
		{"color_mix", "color-mix(in srgb, red, blue) center", "color-mix(in srgb, red, blue)", true},
		{"var_passthrough", "var(--bg) no-repeat", "var(--bg) no-repeat", true},
		{"transparent", "transparent", "transparent", true},
		{"no_color", "url(i.png) no-repeat", "", false},
		{"empty", "  ", "", false},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ExtractColorToken(tc.input)
			if ok != tc.ok || got != tc.expected {
				t.Fatalf("ExtractColorToken(%q) = (%q, %v), expected (%q, %v)", tc.input, got, ok, tc.expected, tc.ok)
			}
		})
	}
}

func TestParseInline(t *testing.T) {
	t.Parallel()
	decls := ParseInline("color: red; font-weight: bold; margin: 0")
	if len(decls) != 2 {
		t.Fatalf("declarations = %+v", decls)
	}
	if decls[0].Property != check.PropColor || decls[1].Property != check.PropFontWeight {
		t.Fatalf("declarations = %+v", decls)
	}
	if ParseInline("   ") != nil {
		t.Fatal("blank style produced declarations")
	}
	bare := ParseInline("color: red")
	if len(bare) != 1 || bare[0].Raw != "red" {
		t.Fatalf("bare declaration = %+v", bare)
	}
}

func TestMergeProperties(t *testing.T) {
	t.Parallel()
	got := MergeProperties(
		map[string]string{"--a": "1", "--b": "1"},
		map[string]string{"--b": "2"},
		nil,
	)
	if got["--a"] != "1" || got["--b"] != "2" {
		t.Fatalf("merged = %+v", got)
	}
}
