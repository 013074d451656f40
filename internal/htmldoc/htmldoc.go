// Package htmldoc parses HTML component files into the element arena
// the check engine consumes. Elements keep their source line/column
// and reference parents by index; a `huelint-ignore` comment or a
// data-huelint-ignore attribute excludes the following element from
// analysis.
package htmldoc

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"huelint/check"
	"huelint/internal/cssnorm"
)

const ignoreComment = "huelint-ignore"
const ignoreAttr = "data-huelint-ignore"

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// rawTextElements hold non-rendered text content.
var rawTextElements = map[string]bool{
	"script": true, "style": true, "template": true, "title": true, "noscript": true,
}

// Parse tokenizes a component file into a document arena. The
// tokenizer is forgiving about malformed markup; only an unreadable
// input surfaces as a parse error.
func Parse(data []byte, name string) (*check.Document, error) {
	doc := &check.Document{Name: name}
	z := html.NewTokenizer(bytes.NewReader(data))

	var stack []int
	line, col := 1, 1
	pendingIgnore := false

	for {
		tokLine, tokCol := line, col
		tt := z.Next()
		raw := z.Raw()
		for _, b := range raw {
			if b == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}

		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, fmt.Errorf("%s: %v: %w", name, err, check.ErrParse)
			}
			return doc, nil

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			el := check.Element{
				Tag:    strings.ToLower(tok.Data),
				Line:   tokLine,
				Col:    tokCol,
				Parent: -1,
			}
			if len(stack) > 0 {
				el.Parent = stack[len(stack)-1]
			}
			for _, attr := range tok.Attr {
				switch strings.ToLower(attr.Key) {
				case "id":
					el.ID = strings.TrimSpace(attr.Val)
				case "class":
					el.Classes = strings.Fields(attr.Val)
				case "style":
					el.Inline = cssnorm.ParseInline(attr.Val)
				case ignoreAttr:
					el.Ignored = true
				}
			}
			if pendingIgnore {
				el.Ignored = true
				pendingIgnore = false
			}
			doc.Elements = append(doc.Elements, el)
			if tt == html.StartTagToken && !voidElements[el.Tag] {
				stack = append(stack, len(doc.Elements)-1)
			}

		case html.EndTagToken:
			tok := z.Token()
			tag := strings.ToLower(tok.Data)
			for i := len(stack) - 1; i >= 0; i-- {
				if doc.Elements[stack[i]].Tag == tag {
					stack = stack[:i]
					break
				}
			}

		case html.TextToken:
			if len(stack) == 0 || strings.TrimSpace(string(raw)) == "" {
				continue
			}
			top := stack[len(stack)-1]
			if !rawTextElements[doc.Elements[top].Tag] {
				doc.Elements[top].HasText = true
			}

		case html.CommentToken:
			if strings.TrimSpace(z.Token().Data) == ignoreComment {
				pendingIgnore = true
			}
		}
	}
}

var (
	styleSel = cascadia.MustCompile("style")
	linkSel  = cascadia.MustCompile("link[rel]")
)

// ExtractStyles collects in-document stylesheet text and stylesheet
// link targets. Link targets are returned as written; the caller
// decides which of them it can read.
func ExtractStyles(data []byte) (blocks []string, links []string) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil
	}

	for _, n := range styleSel.MatchAll(root) {
		if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
			if txt := strings.TrimSpace(n.FirstChild.Data); txt != "" {
				blocks = append(blocks, txt)
			}
		}
	}
	for _, n := range linkSel.MatchAll(root) {
		rel := strings.ToLower(strings.TrimSpace(getAttr(n, "rel")))
		if !strings.Contains(rel, "stylesheet") {
			continue
		}
		if typ := strings.ToLower(strings.TrimSpace(getAttr(n, "type"))); typ != "" && typ != "text/css" {
			continue
		}
		if href := strings.TrimSpace(getAttr(n, "href")); href != "" {
			links = append(links, href)
		}
	}
	return blocks, links
}

func getAttr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}
