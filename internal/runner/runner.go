// Package runner wires the collaborator layers around the check
// engine into a per-file analysis pass. Each run is independent and
// touches only read-only shared configuration, so callers fan out one
// run per file concurrently.
package runner

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"huelint/check"
	"huelint/internal/cssnorm"
	"huelint/internal/htmldoc"
)

// Options is the read-only configuration shared by all runs. Custom
// properties merge in ascending priority: token files, manually
// supplied stylesheets, in-document declarations.
type Options struct {
	Tokens     map[string]string
	ExtraRules []check.StyleRule
	ExtraProps map[string]string
	Ignore     check.IgnoreConfig
	Utility    check.UtilityResolver
}

// Finding is one evaluated contrast pair.
type Finding struct {
	Pair    check.ContrastPair
	Verdict check.Verdict
}

// Stats counts evaluated pairs before ignore filtering.
type Stats struct {
	Total       int `json:"total"`
	Pass        int `json:"pass"`
	AAAOnlyFail int `json:"aaaOnlyFail"`
	AAFail      int `json:"aaFail"`
	Unresolved  int `json:"unresolved"`
	Ignored     int `json:"ignored"`
}

// FileResult is the outcome of analyzing one file. ParseErr set means
// the document produced zero pairs and one diagnostic; it never fails
// the multi-file run.
type FileResult struct {
	Path     string
	ParseErr string
	Doc      *check.Document
	Findings []Finding
	Warnings []check.Warning
	Stats    Stats
}

// RunFile reads and analyzes one file.
func RunFile(path string, opts Options) FileResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, ParseErr: err.Error()}
	}
	return Run(data, path, opts)
}

// Run analyzes one in-memory document.
func Run(data []byte, name string, opts Options) FileResult {
	res := FileResult{Path: name}

	doc, err := htmldoc.Parse(data, name)
	if err != nil {
		res.ParseErr = err.Error()
		return res
	}
	res.Doc = doc

	inline, links := htmldoc.ExtractStyles(data)
	var blocks []string
	for _, href := range links {
		if css, ok := readLinkedStylesheet(name, href); ok {
			blocks = append(blocks, css)
		}
	}
	// in-document styles come after linked sheets, so they win ties
	blocks = append(blocks, inline...)
	// resolution caches into Declaration, so shared rules get their own copies
	rules := make([]check.StyleRule, len(opts.ExtraRules))
	copy(rules, opts.ExtraRules)
	for i := range rules {
		rules[i].Declarations = append([]check.Declaration(nil), rules[i].Declarations...)
	}
	docProps := map[string]string{}
	for _, block := range blocks {
		rs, props, err := cssnorm.Normalize(block)
		if err != nil {
			continue
		}
		rules = append(rules, rs...)
		docProps = cssnorm.MergeProperties(docProps, props)
	}
	props := cssnorm.MergeProperties(opts.Tokens, opts.ExtraProps, docProps)

	pairs, warns := check.AnalyzeElements(doc, rules, props, opts.Utility)
	res.Warnings = warns

	for _, pair := range pairs {
		verdict, err := check.Evaluate(pair)
		res.Stats.Total++
		if err != nil {
			// already surfaced as a warning by pair assembly
			if errors.Is(err, check.ErrColorResolve) {
				res.Stats.Unresolved++
			}
			continue
		}
		switch verdict.Level {
		case check.LevelPass:
			res.Stats.Pass++
		case check.LevelAAAOnlyFail:
			res.Stats.AAAOnlyFail++
		case check.LevelAAFail:
			res.Stats.AAFail++
		}
		if opts.Ignore.Matches(doc, pair) {
			res.Stats.Ignored++
			continue
		}
		res.Findings = append(res.Findings, Finding{Pair: pair, Verdict: verdict})
	}
	return res
}

// readLinkedStylesheet loads a <link rel="stylesheet"> target when it
// is a local file, resolved against the document's directory. Remote
// and unreadable targets are skipped; the document's own styles still
// apply.
func readLinkedStylesheet(docName, href string) (string, bool) {
	if strings.Contains(href, "://") || strings.HasPrefix(href, "//") {
		return "", false
	}
	href = strings.TrimPrefix(href, "/")
	path := href
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(docName), filepath.FromSlash(href))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// FailureCount reports pairs failing the requested level among the
// kept findings.
func (r FileResult) FailureCount(level string) int {
	n := 0
	for _, f := range r.Findings {
		switch level {
		case "aaa":
			if !f.Verdict.MeetsAAA {
				n++
			}
		default:
			if !f.Verdict.MeetsAA {
				n++
			}
		}
	}
	return n
}
