package main

import (
	"fmt"
	"log"
	"os"

	"huelint/internal/runner"
	"huelint/internal/utility"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: huedebug FILE")
	}
	path := os.Args[1]
	res := runner.RunFile(path, runner.Options{Utility: utility.Default()})
	if res.ParseErr != "" {
		log.Fatalf("parse %s: %s", path, res.ParseErr)
	}
	fmt.Printf("%s: %d elements, %d pairs\n", path, len(res.Doc.Elements), len(res.Findings))
	for _, f := range res.Findings {
		el := res.Doc.Elements[f.Pair.Element]
		fg := "unresolved"
		if f.Pair.Foreground.RGBA != nil {
			fg = f.Pair.Foreground.RGBA.Hex()
		}
		bg := "unresolved"
		if f.Pair.Background.RGBA != nil {
			bg = f.Pair.Background.RGBA.Hex()
		}
		fmt.Printf("%d:%d <%s> fg=%s(%s) bg=%s(%s) size=%.1f weight=%d ratio=%.2f %s\n",
			el.Line, el.Col, el.Tag,
			fg, f.Pair.Foreground.Source, bg, f.Pair.Background.Source,
			f.Pair.FontSizePx, f.Pair.FontWeight, f.Verdict.Ratio, f.Verdict.Level)
	}
	for _, w := range res.Warnings {
		el := res.Doc.Elements[w.Element]
		fmt.Printf("warn %d:%d <%s>: %s\n", el.Line, el.Col, el.Tag, w.Message)
	}
}
