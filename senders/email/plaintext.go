package email

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

var (
	whitespace = regexp.MustCompile(`\s+`)
)

// PlainText flattens an HTML document to the text of its body. Link targets
// are kept next to the link text so they survive in text-only clients.
func PlainText(doc string) string {
	root, err := htmlquery.Parse(strings.NewReader(doc))
	if err != nil {
		return ""
	}
	body := htmlquery.FindOne(root, "//body")
	if body == nil {
		body = root
	}
	return digForText(body)
}

func digForText(n *html.Node) string {
	if n == nil {
		return ""
	}
	buf := new(bytes.Buffer)
	dig(n, buf)
	return compactWhitespace(buf.String())
}

func dig(n *html.Node, buf *bytes.Buffer) {
	if n == nil {
		return
	}
	switch {
	case n.Type == html.TextNode:
		buf.WriteString(n.Data)
	case n.Type == html.ElementNode && (n.Data == "p" || n.Data == "tr" || n.Data == "h2"):
		buf.WriteString(" ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		dig(c, buf)
	}
	if n.Type == html.ElementNode && n.Data == "a" {
		if href := htmlquery.SelectAttr(n, "href"); href != "" {
			buf.WriteString(" (" + href + ")")
		}
	}
}

func compactWhitespace(s string) string {
	s = whitespace.ReplaceAllString(s, " ")
	s = strings.Trim(s, " ")
	return s
}
