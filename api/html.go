package api

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// PlainText reduces developer-authored HTML to terminal-friendly text.
// Block elements become line breaks and list items are bulleted. Input
// without markup is returned trimmed.
func PlainText(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.Contains(s, "<") {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	doc.Find("script,style").Remove()
	doc.Find("li").Each(func(_ int, li *goquery.Selection) {
		li.PrependNodes(textNode("• "))
		li.AppendNodes(textNode("\n"))
	})
	doc.Find("br").Each(func(_ int, br *goquery.Selection) {
		br.ReplaceWithNodes(textNode("\n"))
	})
	doc.Find("p,div,h1,h2,h3,h4,h5,h6,ul,ol").Each(func(_ int, block *goquery.Selection) {
		block.AppendNodes(textNode("\n"))
	})

	lines := strings.Split(doc.Text(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func textNode(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}
