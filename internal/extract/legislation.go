package extract

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// ItemKey normalizes a legislation item identifier for matching against
// agenda text: ASCII letters and whitespace are removed, so "Res 2025-0142"
// becomes "2025-0142". The result may be empty.
func ItemKey(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			return -1
		}
		return r
	}, raw)
}

// VisibleText returns the readable text of legislation content. Plain text is
// returned unchanged. Markup is parsed and only text outside script, style,
// noscript and iframe elements is kept; block elements and <br> become line
// breaks and runs of spaces inside a line are collapsed.
func VisibleText(content string) (string, error) {
	if !looksLikeMarkup(content) {
		return content, nil
	}

	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", err
	}
	return tidyLines(visibleText(doc)), nil
}

// looksLikeMarkup reports whether content contains a tag, comment or doctype
func looksLikeMarkup(content string) bool {
	for i := strings.IndexByte(content, '<'); i >= 0 && i+1 < len(content); {
		c := content[i+1]
		if c == '/' || c == '!' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') {
			return true
		}
		next := strings.IndexByte(content[i+1:], '<')
		if next < 0 {
			return false
		}
		i += next + 1
	}
	return false
}

var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"tr": true, "table": true, "section": true, "article": true, "blockquote": true,
	"pre": true, "hr": true,
}

func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		block := false
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
			block = blockElements[n.Data]
		}
		if block {
			buf.WriteString("\n")
		}

		if n.Type == html.TextNode {
			// source line breaks inside markup are not content
			buf.WriteString(strings.Map(func(r rune) rune {
				if unicode.IsSpace(r) {
					return ' '
				}
				return r
			}, n.Data))
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			buf.WriteString("\n")
		}
	}

	walk(n)
	return buf.String()
}

// tidyLines collapses spaces within each line and drops empty lines
func tidyLines(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
