package htmldoc

import (
	"testing"

	"huelint/check"
)

const sampleDoc = `<div id="main" class="wrap card">
  <p style="color: red">Hi</p>
  <br>
  <!-- huelint-ignore -->
  <span>decorative</span>
  <em data-huelint-ignore>also decorative</em>
</div>`

func TestParse(t *testing.T) {
	t.Parallel()
	doc, err := Parse([]byte(sampleDoc), "sample.html")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Name != "sample.html" {
		t.Fatalf("name = %q", doc.Name)
	}
	if len(doc.Elements) != 5 {
		t.Fatalf("got %d elements: %+v", len(doc.Elements), doc.Elements)
	}

	div := doc.Elements[0]
	if div.Tag != "div" || div.ID != "main" || div.Parent != -1 {
		t.Fatalf("div = %+v", div)
	}
	if len(div.Classes) != 2 || !div.HasClass("card") {
		t.Fatalf("div classes = %v", div.Classes)
	}
	if div.Line != 1 || div.Col != 1 {
		t.Fatalf("div position = %d:%d", div.Line, div.Col)
	}

	p := doc.Elements[1]
	if p.Tag != "p" || p.Parent != 0 || !p.HasText {
		t.Fatalf("p = %+v", p)
	}
	if p.Line != 2 || p.Col != 3 {
		t.Fatalf("p position = %d:%d", p.Line, p.Col)
	}
	if len(p.Inline) != 1 || p.Inline[0].Property != check.PropColor || p.Inline[0].Raw != "red" {
		t.Fatalf("p inline = %+v", p.Inline)
	}

	br := doc.Elements[2]
	if br.Tag != "br" || br.Parent != 0 || br.HasText {
		t.Fatalf("br = %+v", br)
	}

	span := doc.Elements[3]
	if span.Tag != "span" || !span.Ignored {
		t.Fatalf("span = %+v", span)
	}

	em := doc.Elements[4]
	if em.Tag != "em" || !em.Ignored {
		t.Fatalf("em = %+v", em)
	}
}

func TestParseNesting(t *testing.T) {
	t.Parallel()
	doc, err := Parse([]byte(`<ul><li><a href="#">x</a></li><li>y</li></ul>`), "t.html")
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Elements) != 4 {
		t.Fatalf("got %d elements", len(doc.Elements))
	}
	a := doc.Elements[2]
	if a.Tag != "a" || a.Parent != 1 || !a.HasText {
		t.Fatalf("a = %+v", a)
	}
	li2 := doc.Elements[3]
	if li2.Parent != 0 || !li2.HasText {
		t.Fatalf("second li = %+v", li2)
	}
}

func TestParseRawTextNotCounted(t *testing.T) {
	t.Parallel()
	doc, err := Parse([]byte(`<style>p { color: red }</style><script>let x = 1</script>`), "t.html")
	if err != nil {
		t.Fatal(err)
	}
	for _, el := range doc.Elements {
		if el.HasText {
			t.Fatalf("%s counted as text-bearing", el.Tag)
		}
	}
}

func TestParseForgiving(t *testing.T) {
	t.Parallel()
	// unclosed tags must not error
	doc, err := Parse([]byte(`<div><p>open`), "t.html")
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Elements) != 2 || !doc.Elements[1].HasText {
		t.Fatalf("elements = %+v", doc.Elements)
	}
}

func TestExtractStyles(t *testing.T) {
	t.Parallel()
	const page = `<html><head>
<style>p { color: red }</style>
<link rel="stylesheet" href="main.css">
<link rel="icon" href="favicon.ico">
<link rel="stylesheet" type="text/plain" href="not-css.txt">
<link rel="preload stylesheet" href="extra.css">
</head><body><style>.x { color: blue }</style></body></html>`

	blocks, links := ExtractStyles([]byte(page))
	if len(blocks) != 2 {
		t.Fatalf("blocks = %+v", blocks)
	}
	if blocks[0] != "p { color: red }" || blocks[1] != ".x { color: blue }" {
		t.Fatalf("blocks = %+v", blocks)
	}
	if len(links) != 2 || links[0] != "main.css" || links[1] != "extra.css" {
		t.Fatalf("links = %+v", links)
	}
}
