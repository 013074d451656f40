// Package report renders analysis results for humans (styled console
// output) and machines (JSON).
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"huelint/check"
	"huelint/internal/runner"
)

var (
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	fileStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

// Console writes a human-readable report. Only non-passing findings
// and warnings are listed per file; the summary covers everything.
func Console(w io.Writer, results []runner.FileResult) {
	var total runner.Stats
	for _, res := range results {
		total.Total += res.Stats.Total
		total.Pass += res.Stats.Pass
		total.AAAOnlyFail += res.Stats.AAAOnlyFail
		total.AAFail += res.Stats.AAFail
		total.Unresolved += res.Stats.Unresolved
		total.Ignored += res.Stats.Ignored

		if res.ParseErr != "" {
			fmt.Fprintf(w, "%s\n  %s\n", fileStyle.Render(res.Path), failStyle.Render("parse error: "+res.ParseErr))
			continue
		}
		if !hasOutput(res) {
			continue
		}

		fmt.Fprintln(w, fileStyle.Render(res.Path))
		for _, f := range res.Findings {
			if f.Verdict.Level == check.LevelPass {
				continue
			}
			el := res.Doc.Elements[f.Pair.Element]
			loc := fmt.Sprintf("%d:%d <%s>", el.Line, el.Col, el.Tag)
			line := fmt.Sprintf("  %s %s on %s  ratio %.2f",
				loc, describe(f.Pair.Foreground), describe(f.Pair.Background), f.Verdict.Ratio)
			switch f.Verdict.Level {
			case check.LevelAAFail:
				fmt.Fprintln(w, failStyle.Render(line+"  fails AA"))
			case check.LevelAAAOnlyFail:
				fmt.Fprintln(w, warnStyle.Render(line+"  AA only"))
			}
		}
		for _, warn := range res.Warnings {
			el := res.Doc.Elements[warn.Element]
			fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("  %d:%d <%s> %s", el.Line, el.Col, el.Tag, warn.Message)))
		}
	}

	summary := fmt.Sprintf("%d pairs: %s, %s, %s",
		total.Total,
		passStyle.Render(fmt.Sprintf("%d pass", total.Pass)),
		warnStyle.Render(fmt.Sprintf("%d AA-only", total.AAAOnlyFail)),
		failStyle.Render(fmt.Sprintf("%d fail", total.AAFail)))
	if total.Unresolved > 0 {
		summary += faintStyle.Render(fmt.Sprintf(", %d unresolved", total.Unresolved))
	}
	if total.Ignored > 0 {
		summary += faintStyle.Render(fmt.Sprintf(", %d ignored", total.Ignored))
	}
	fmt.Fprintln(w, summary)
}

func hasOutput(res runner.FileResult) bool {
	if len(res.Warnings) > 0 {
		return true
	}
	for _, f := range res.Findings {
		if f.Verdict.Level != check.LevelPass {
			return true
		}
	}
	return false
}

// jsonFinding mirrors Finding with stable field names for CI
// consumers.
type jsonFinding struct {
	Line       int     `json:"line"`
	Col        int     `json:"col"`
	Tag        string  `json:"tag"`
	Foreground string  `json:"foreground"`
	Background string  `json:"background"`
	FgSource   string  `json:"fgSource"`
	BgSource   string  `json:"bgSource"`
	Ratio      float64 `json:"ratio"`
	MeetsAA    bool    `json:"meetsAA"`
	MeetsAAA   bool    `json:"meetsAAA"`
	Level      string  `json:"level"`
}

type jsonFile struct {
	Path     string        `json:"path"`
	ParseErr string        `json:"parseError,omitempty"`
	Findings []jsonFinding `json:"findings"`
	Warnings []string      `json:"warnings,omitempty"`
	Stats    runner.Stats  `json:"stats"`
}

// JSON writes the machine-readable report.
func JSON(w io.Writer, results []runner.FileResult) error {
	files := make([]jsonFile, 0, len(results))
	for _, res := range results {
		jf := jsonFile{Path: res.Path, ParseErr: res.ParseErr, Stats: res.Stats, Findings: []jsonFinding{}}
		for _, f := range res.Findings {
			el := res.Doc.Elements[f.Pair.Element]
			jf.Findings = append(jf.Findings, jsonFinding{
				Line:       el.Line,
				Col:        el.Col,
				Tag:        el.Tag,
				Foreground: colorText(f.Pair.Foreground),
				Background: colorText(f.Pair.Background),
				FgSource:   string(f.Pair.Foreground.Source),
				BgSource:   string(f.Pair.Background.Source),
				Ratio:      f.Verdict.Ratio,
				MeetsAA:    f.Verdict.MeetsAA,
				MeetsAAA:   f.Verdict.MeetsAAA,
				Level:      string(f.Verdict.Level),
			})
		}
		for _, warn := range res.Warnings {
			el := res.Doc.Elements[warn.Element]
			jf.Warnings = append(jf.Warnings, fmt.Sprintf("%d:%d <%s> %s", el.Line, el.Col, el.Tag, warn.Message))
		}
		files = append(files, jf)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(files)
}

func describe(info check.ColorInfo) string {
	text := colorText(info)
	if info.Selector != "" {
		return fmt.Sprintf("%s (%s %s)", text, info.Source, info.Selector)
	}
	return fmt.Sprintf("%s (%s)", text, info.Source)
}

func colorText(info check.ColorInfo) string {
	if info.RGBA != nil {
		return info.RGBA.Hex()
	}
	return info.Original
}
